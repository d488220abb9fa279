package schema

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// UserRow mirrors the users table: id, name, email, email_verified (nullable
// timestamp scanned as text).
type UserRow struct {
	ID            string
	Name          string
	Email         string
	EmailVerified sql.NullString
}

// Validate rejects rows missing required columns or holding a malformed
// timestamp. Failures mean the stored data no longer matches the schema this
// code was written against, so they carry common.ErrSchemaDrift.
func (r *UserRow) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: users row missing id", common.ErrSchemaDrift)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: users row %s missing name", common.ErrSchemaDrift, r.ID)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: users row %s missing email", common.ErrSchemaDrift, r.ID)
	}
	if r.EmailVerified.Valid {
		if _, err := ParseTime(r.EmailVerified.String); err != nil {
			return fmt.Errorf("%w: users row %s email_verified: %v", common.ErrSchemaDrift, r.ID, err)
		}
	}
	return nil
}

// Domain validates the row and transforms it to the domain shape.
func (r *UserRow) Domain() (*models.User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	u := &models.User{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
	if r.EmailVerified.Valid {
		t, _ := ParseTime(r.EmailVerified.String)
		u.EmailVerified = &t
	}
	return u, nil
}
