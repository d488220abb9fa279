// Package models defines the domain shapes handed to and returned from the
// identity store adapter, plus the creation and update inputs for each entity.
// Domain shapes use camelCase field naming and native time.Time values;
// optional date-times are *time.Time where nil means absent.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// User is an identity record. Email is unique across all users.
type User struct {
	ID            string
	Name          string
	Email         string
	EmailVerified *time.Time
}

// CreateUserInput carries the caller-supplied fields for a new user.
// The identifier is store-assigned and deliberately absent.
type CreateUserInput struct {
	Name          string
	Email         string
	EmailVerified *time.Time
}

func (in CreateUserInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: user name is required", common.ErrValidation)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: user email is required", common.ErrValidation)
	}
	return nil
}

// UserUpdate enumerates the updatable user fields. Nil fields are left
// untouched; ID identifies the row and is required.
type UserUpdate struct {
	ID            string
	Name          *string
	Email         *string
	EmailVerified *time.Time
}

func (u UserUpdate) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("%w: user name cannot be cleared", common.ErrValidation)
	}
	if u.Email != nil && *u.Email == "" {
		return fmt.Errorf("%w: user email cannot be cleared", common.ErrValidation)
	}
	return nil
}
