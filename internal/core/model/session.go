package model

import "time"

// RunningDuration marks a session that has not been stopped yet.
const RunningDuration = -1

// Session is one recorded interval during which a recordable unit was active.
type Session struct {
	Description     string
	StartedAt       time.Time
	StoppedAt       time.Time
	DurationSeconds int
}

// Running reports whether the session is still open.
func (session Session) Running() bool {
	return session.DurationSeconds < 0
}
