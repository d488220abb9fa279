package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// VerificationToken is a one-time secret for passwordless sign-in. The
// (Identifier, Token) pair is the business key; consumption is destructive.
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}

// CreateVerificationTokenInput carries the fields for a new one-time token.
// The pair itself is the key, so the input matches the stored shape.
type CreateVerificationTokenInput struct {
	Identifier string
	Token      string
	Expires    time.Time
}

func (in CreateVerificationTokenInput) Validate() error {
	if in.Identifier == "" {
		return fmt.Errorf("%w: verification token identifier is required", common.ErrValidation)
	}
	if in.Token == "" {
		return fmt.Errorf("%w: verification token secret is required", common.ErrValidation)
	}
	if in.Expires.IsZero() {
		return fmt.Errorf("%w: verification token expiry is required", common.ErrValidation)
	}
	return nil
}
