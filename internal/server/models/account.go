package models

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Account is an external identity (OAuth or email provider binding) owned by
// exactly one user. Credential material is passed through unchanged; the
// (Provider, ProviderAccountID) pair is unique.
type Account struct {
	ID                string
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      *string
	AccessToken       *string
	ExpiresAt         *int64
	TokenType         *string
	Scope             *string
	IDToken           *string
	SessionState      *string
}

// CreateAccountInput carries the caller-supplied fields for linking an
// external identity. The identifier is store-assigned.
type CreateAccountInput struct {
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      *string
	AccessToken       *string
	ExpiresAt         *int64
	TokenType         *string
	Scope             *string
	IDToken           *string
	SessionState      *string
}

func (in CreateAccountInput) Validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: account user id is required", common.ErrValidation)
	}
	if in.Type == "" {
		return fmt.Errorf("%w: account type is required", common.ErrValidation)
	}
	if in.Provider == "" {
		return fmt.Errorf("%w: account provider is required", common.ErrValidation)
	}
	if in.ProviderAccountID == "" {
		return fmt.Errorf("%w: provider account id is required", common.ErrValidation)
	}
	return nil
}
