package models

import "time"

// AdminSession is the decoded admin cookie. There is a single operator
// account, so the session carries no identity beyond its lifetime.
type AdminSession struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
