package attendance

import "errors"

var (
	// Session lifecycle errors
	ErrActiveSessionExists = errors.New("an active work session already exists")
	ErrNoActiveSession     = errors.New("no active work session found")
	ErrBreakAlreadyStarted = errors.New("a break is already in progress")
	ErrNoBreakInProgress   = errors.New("no break in progress")

	// General errors
	ErrSessionNotFound = errors.New("work session not found")
)
