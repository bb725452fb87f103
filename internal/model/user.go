// Package model defines the data structures used throughout the application.
package model

import "time"

// RepoInsight is a snapshot of one external repository's metadata, taken
// from the code-hosting API. It is a value object: the whole slice on a
// user is replaced on every successful fetch, never merged.
//
// WHY Description *string?
// The upstream API returns null for repositories without a description.
// A pointer keeps "no description" (null) distinguishable from "empty
// description" ("") and round-trips through JSON unchanged.
type RepoInsight struct {
	ID          int64   `json:"id"`        // upstream numeric repo id
	Name        string  `json:"name"`      // short name, e.g. "userverse"
	FullName    string  `json:"full_name"` // owner-qualified, e.g. "alice/userverse"
	Description *string `json:"description"`
}

// User represents a registered account: identity plus profile.
//
// The Password field holds whatever the configured password scheme stores
// (plaintext by default, a bcrypt hash when enabled). It must NEVER be
// serialized to a client — handlers always go through Public().
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	UserName     string        `json:"userName"`
	Password     string        `json:"password"`
	GitUserName  string        `json:"gitUserName,omitempty"`
	RepoInsights []RepoInsight `json:"repoInsights,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// RecordID and SetRecordID satisfy store.Record.
func (u *User) RecordID() string      { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

// Clone returns a copy detached from the original. The insights slice gets
// its own backing array; Description pointers are shared but never written
// through, insights are only ever replaced wholesale.
func (u *User) Clone() *User {
	c := *u
	if u.RepoInsights != nil {
		c.RepoInsights = append([]RepoInsight(nil), u.RepoInsights...)
	}
	return &c
}

// PublicUser is the client-facing view of a User. It has no password field
// at all, so a public view can never leak credentials regardless of how it
// is serialized.
type PublicUser struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	UserName     string        `json:"userName"`
	GitUserName  string        `json:"gitUserName,omitempty"`
	RepoInsights []RepoInsight `json:"repoInsights,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		UserName:     u.UserName,
		GitUserName:  u.GitUserName,
		RepoInsights: u.RepoInsights,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// AuthUser is the compact user view embedded in register/login responses.
type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

// Auth returns the compact view used in authentication responses.
func (u *User) Auth() AuthUser {
	return AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		UserName: u.UserName,
	}
}
