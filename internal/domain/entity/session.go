package entity

import "time"

// Session holds the persisted credentials of the current login. It is the
// durable replacement for the browser's localStorage triple: both tokens and
// the backend user id survive a process restart, so startup needs no network
// call to restore the login. Expiry is not tracked here; it is discovered
// reactively when the backend answers 401.
type Session struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
	UpdatedAt    time.Time
}

// Authenticated reports whether the session carries usable credentials.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}
