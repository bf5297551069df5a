package entity

import "time"

// TimeLog is the durable record the backend keeps for a logged work period.
type TimeLog struct {
	ID        string     `json:"_id"`
	TaskID    string     `json:"task_id"`
	UserID    string     `json:"user_id"`
	Duration  int        `json:"duration"` // seconds
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type TimeLogRequest struct {
	Duration int        `json:"duration"` // seconds
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
}

// TimeSession is an ephemeral, completed stopwatch run (or a manual entry,
// in which case StartedAt is zero). It exists only until the corresponding
// time log write is confirmed by the backend.
type TimeSession struct {
	ID             string    `json:"id"`
	TaskID         string    `json:"task_id"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
}
