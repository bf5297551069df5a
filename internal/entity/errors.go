package entity

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized: missing or invalid token")
	ErrForbidden        = errors.New("forbidden: access denied")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTaskData  = errors.New("invalid task data")
	ErrInvalidDuration  = errors.New("invalid time log duration")
	ErrTimerRunning     = errors.New("timer already running")
	ErrTimerNotRunning  = errors.New("timer not running")
	ErrSubmitInFlight   = errors.New("time log submission already in flight")
	ErrNoPendingTimeLog = errors.New("no pending time log to retry")
)
