// Package stopwatch implements the time-tracking timer: an Idle/Running
// state machine whose authoritative duration is wall-clock time between
// Start and Stop, not a tick count. A 1-second tick can drive a visible
// counter but never the emitted session.
package stopwatch

import (
	"sync"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Running
)

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock replaces the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Stopwatch) { s.clock = clock }
}

// WithTick registers a display callback invoked roughly once per second
// with the elapsed seconds while the stopwatch is running.
func WithTick(onTick func(elapsedSeconds int)) Option {
	return func(s *Stopwatch) { s.onTick = onTick }
}

// Stopwatch tracks one task's active work period. Safe for concurrent use;
// the emitted duration always comes from the clock, never from ticks.
type Stopwatch struct {
	mu        sync.Mutex
	state     State
	taskID    string
	startedAt time.Time
	clock     func() time.Time
	onTick    func(int)
	stopTick  chan struct{}
}

func New(taskID string, opts ...Option) *Stopwatch {
	s := &Stopwatch{
		taskID: taskID,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start transitions Idle -> Running and records the start instant.
func (s *Stopwatch) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return entity.ErrTimerRunning
	}
	s.state = Running
	s.startedAt = s.clock()

	if s.onTick != nil {
		s.stopTick = make(chan struct{})
		go s.runTicker(s.stopTick)
	}
	return nil
}

// Stop transitions Running -> Idle and emits the completed session. The
// elapsed duration is computed from the clock so time spent suspended
// still counts.
func (s *Stopwatch) Stop() (entity.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return entity.TimeSession{}, entity.ErrTimerNotRunning
	}
	session := entity.TimeSession{
		ID:             uuid.NewString(),
		TaskID:         s.taskID,
		StartedAt:      s.startedAt,
		ElapsedSeconds: int(s.clock().Sub(s.startedAt).Seconds()),
	}
	s.toIdleLocked()
	return session, nil
}

// Reset discards the current run without emitting a session.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toIdleLocked()
}

// Close tears the stopwatch down: any run in progress is discarded and
// the ticker goroutine is released. An abandoned running stopwatch built
// with WithTick must be closed, otherwise its ticker keeps running.
func (s *Stopwatch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toIdleLocked()
}

// Elapsed returns the seconds accumulated so far, 0 while idle.
func (s *Stopwatch) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return 0
	}
	return int(s.clock().Sub(s.startedAt).Seconds())
}

func (s *Stopwatch) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Stopwatch) toIdleLocked() {
	s.state = Idle
	s.startedAt = time.Time{}
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

// runTicker drives the visible counter only. Each tick snapshots state
// and elapsed under the lock; the callback itself runs outside it, so a
// tick already in flight when Stop is called may deliver one last value.
// The emitted session never depends on ticks.
func (s *Stopwatch) runTicker(done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			running := s.state == Running
			elapsed := 0
			if running {
				elapsed = int(s.clock().Sub(s.startedAt).Seconds())
			}
			s.mu.Unlock()
			if running {
				s.onTick(elapsed)
			}
		}
	}
}

// ManualSession builds a completed session from a user-supplied minute
// count. It bypasses the state machine: no start instant, no state change.
func ManualSession(taskID string, minutes int) (entity.TimeSession, error) {
	if minutes <= 0 {
		return entity.TimeSession{}, entity.ErrInvalidDuration
	}
	return entity.TimeSession{
		ID:             uuid.NewString(),
		TaskID:         taskID,
		ElapsedSeconds: minutes * 60,
	}, nil
}
