package model

import "time"

// Session is a time-bounded grant linking a bearer token to a user.
//
// A session is valid iff the current time is before ExpiresAt. Expired
// sessions are deleted lazily on the next lookup, not proactively swept
// (see service.AuthService). UserID is not a foreign key — the owning user
// could in principle be deleted out of band.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) RecordID() string      { return s.ID }
func (s *Session) SetRecordID(id string) { s.ID = id }

// Clone returns a copy detached from the original.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
