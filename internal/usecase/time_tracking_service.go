package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/Atharva2908/task-manager/internal/stopwatch"
)

// TimeLogGateway is the slice of the backend API used for time logs.
type TimeLogGateway interface {
	SubmitTimeLog(ctx context.Context, token, taskID string, req *entity.TimeLogRequest) (*entity.TimeLog, error)
	ListTimeLogs(ctx context.Context, token, taskID string) ([]entity.TimeLog, error)
}

// TimeTrackingService holds one stopwatch per user+task and flushes
// completed sessions to the backend. Local state is cleared only after a
// confirmed write: a failed submission keeps the session pending so the
// caller can retry, and a single in-flight flag per timer prevents double
// submission of the same session.
type TimeTrackingService struct {
	mu      sync.Mutex
	backend TimeLogGateway
	clock   func() time.Time
	timers  map[timerKey]*timerState
}

type timerKey struct {
	userID string
	taskID string
}

type timerState struct {
	watch    *stopwatch.Stopwatch
	pending  *entity.TimeSession
	inFlight bool
}

func NewTimeTrackingService(backend TimeLogGateway) *TimeTrackingService {
	return &TimeTrackingService{
		backend: backend,
		clock:   time.Now,
		timers:  make(map[timerKey]*timerState),
	}
}

func (s *TimeTrackingService) timer(userID, taskID string) *timerState {
	key := timerKey{userID: userID, taskID: taskID}
	state, ok := s.timers[key]
	if !ok {
		state = &timerState{watch: stopwatch.New(taskID, stopwatch.WithClock(s.clock))}
		s.timers[key] = state
	}
	return state
}

func (s *TimeTrackingService) StartTimer(userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.timer(userID, taskID)
	if state.pending != nil {
		// an unflushed session is still waiting for a confirmed write
		return entity.ErrSubmitInFlight
	}
	return state.watch.Start()
}

// StopTimer stops the stopwatch and submits the completed session. On a
// failed write the session is retained and the error returned; a later
// StopTimer or RetryPending call resubmits it.
func (s *TimeTrackingService) StopTimer(ctx context.Context, token, userID, taskID string) (*entity.TimeLog, error) {
	s.mu.Lock()
	state := s.timer(userID, taskID)

	if state.pending == nil {
		session, err := state.watch.Stop()
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		state.pending = &session
	}
	s.mu.Unlock()

	return s.flush(ctx, token, state, taskID)
}

// RetryPending resubmits a session retained after a failed write.
func (s *TimeTrackingService) RetryPending(ctx context.Context, token, userID, taskID string) (*entity.TimeLog, error) {
	s.mu.Lock()
	state := s.timer(userID, taskID)
	if state.pending == nil {
		s.mu.Unlock()
		return nil, entity.ErrNoPendingTimeLog
	}
	s.mu.Unlock()

	return s.flush(ctx, token, state, taskID)
}

func (s *TimeTrackingService) ResetTimer(userID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.timer(userID, taskID)
	state.watch.Reset()
	state.pending = nil
}

// Elapsed returns the running counter, or the retained session's seconds
// while a failed write awaits retry.
func (s *TimeTrackingService) Elapsed(userID, taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.timer(userID, taskID)
	if state.pending != nil {
		return state.pending.ElapsedSeconds
	}
	return state.watch.Elapsed()
}

// LogManual submits a user-entered minute count. It bypasses the timer
// state machine entirely.
func (s *TimeTrackingService) LogManual(ctx context.Context, token, taskID string, minutes int) (*entity.TimeLog, error) {
	session, err := stopwatch.ManualSession(taskID, minutes)
	if err != nil {
		return nil, err
	}
	return s.backend.SubmitTimeLog(ctx, token, taskID, &entity.TimeLogRequest{
		Duration: session.ElapsedSeconds,
	})
}

// LogSeconds submits an already-measured duration in seconds, the shape
// the backend's time-log endpoint speaks natively.
func (s *TimeTrackingService) LogSeconds(ctx context.Context, token, taskID string, seconds int) (*entity.TimeLog, error) {
	if seconds <= 0 {
		return nil, entity.ErrInvalidDuration
	}
	return s.backend.SubmitTimeLog(ctx, token, taskID, &entity.TimeLogRequest{
		Duration: seconds,
	})
}

func (s *TimeTrackingService) ListTimeLogs(ctx context.Context, token, taskID string) ([]entity.TimeLog, error) {
	return s.backend.ListTimeLogs(ctx, token, taskID)
}

// flush submits the pending session and clears it only on success.
func (s *TimeTrackingService) flush(ctx context.Context, token string, state *timerState, taskID string) (*entity.TimeLog, error) {
	s.mu.Lock()
	if state.inFlight {
		s.mu.Unlock()
		return nil, entity.ErrSubmitInFlight
	}
	if state.pending == nil {
		// a concurrent reset discarded the session
		s.mu.Unlock()
		return nil, entity.ErrNoPendingTimeLog
	}
	state.inFlight = true
	session := *state.pending
	s.mu.Unlock()

	start := session.StartedAt
	end := start.Add(time.Duration(session.ElapsedSeconds) * time.Second)
	logEntry, err := s.backend.SubmitTimeLog(ctx, token, taskID, &entity.TimeLogRequest{
		Duration: session.ElapsedSeconds,
		Start:    &start,
		End:      &end,
	})

	s.mu.Lock()
	state.inFlight = false
	if err == nil {
		state.pending = nil
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return logEntry, nil
}
