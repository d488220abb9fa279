package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Session is a server-side login session. SessionToken is the unique external
// lookup key; Expires is the absolute expiry.
type Session struct {
	ID           string
	UserID       string
	SessionToken string
	Expires      time.Time
}

// SessionAndUser is the join shape returned by the facade's session lookup.
type SessionAndUser struct {
	Session *Session
	User    *User
}

// CreateSessionInput carries the caller-supplied fields for a new session.
type CreateSessionInput struct {
	UserID       string
	SessionToken string
	Expires      time.Time
}

func (in CreateSessionInput) Validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: session user id is required", common.ErrValidation)
	}
	if in.SessionToken == "" {
		return fmt.Errorf("%w: session token is required", common.ErrValidation)
	}
	if in.Expires.IsZero() {
		return fmt.Errorf("%w: session expiry is required", common.ErrValidation)
	}
	return nil
}

// SessionUpdate enumerates the updatable session fields, keyed by the session
// token. Nil fields are left untouched.
type SessionUpdate struct {
	SessionToken string
	UserID       *string
	Expires      *time.Time
}

func (u SessionUpdate) Validate() error {
	if u.SessionToken == "" {
		return fmt.Errorf("%w: session token is required", common.ErrValidation)
	}
	if u.UserID != nil && *u.UserID == "" {
		return fmt.Errorf("%w: session user id cannot be cleared", common.ErrValidation)
	}
	if u.Expires != nil && u.Expires.IsZero() {
		return fmt.Errorf("%w: session expiry cannot be cleared", common.ErrValidation)
	}
	return nil
}
