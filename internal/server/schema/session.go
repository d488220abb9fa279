package schema

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// SessionRow mirrors the sessions table. Expires is scanned as timestamp text.
type SessionRow struct {
	ID           string
	UserID       string
	SessionToken string
	Expires      string
}

func (r *SessionRow) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: sessions row missing id", common.ErrSchemaDrift)
	}
	if r.UserID == "" {
		return fmt.Errorf("%w: sessions row %s missing user_id", common.ErrSchemaDrift, r.ID)
	}
	if r.SessionToken == "" {
		return fmt.Errorf("%w: sessions row %s missing session_token", common.ErrSchemaDrift, r.ID)
	}
	if _, err := ParseTime(r.Expires); err != nil {
		return fmt.Errorf("%w: sessions row %s expires: %v", common.ErrSchemaDrift, r.ID, err)
	}
	return nil
}

// Domain validates the row and transforms it to the domain shape.
func (r *SessionRow) Domain() (*models.Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	expires, _ := ParseTime(r.Expires)
	return &models.Session{
		ID:           r.ID,
		UserID:       r.UserID,
		SessionToken: r.SessionToken,
		Expires:      expires,
	}, nil
}
