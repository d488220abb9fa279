package schema

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// VerificationTokenRow mirrors the verification_tokens table. The
// (identifier, token) pair is the key; there is no surrogate id.
type VerificationTokenRow struct {
	Identifier string
	Token      string
	Expires    string
}

func (r *VerificationTokenRow) Validate() error {
	if r.Identifier == "" {
		return fmt.Errorf("%w: verification_tokens row missing identifier", common.ErrSchemaDrift)
	}
	if r.Token == "" {
		return fmt.Errorf("%w: verification_tokens row %s missing token", common.ErrSchemaDrift, r.Identifier)
	}
	if _, err := ParseTime(r.Expires); err != nil {
		return fmt.Errorf("%w: verification_tokens row %s expires: %v", common.ErrSchemaDrift, r.Identifier, err)
	}
	return nil
}

// Domain validates the row and transforms it to the domain shape.
func (r *VerificationTokenRow) Domain() (*models.VerificationToken, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	expires, _ := ParseTime(r.Expires)
	return &models.VerificationToken{
		Identifier: r.Identifier,
		Token:      r.Token,
		Expires:    expires,
	}, nil
}
