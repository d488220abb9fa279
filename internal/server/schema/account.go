package schema

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// AccountRow mirrors the accounts table. Credential columns are nullable and
// passed through unchanged; the adapter never interprets them.
type AccountRow struct {
	ID                string
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      sql.NullString
	AccessToken       sql.NullString
	ExpiresAt         sql.NullInt64
	TokenType         sql.NullString
	Scope             sql.NullString
	IDToken           sql.NullString
	SessionState      sql.NullString
}

func (r *AccountRow) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: accounts row missing id", common.ErrSchemaDrift)
	}
	if r.UserID == "" {
		return fmt.Errorf("%w: accounts row %s missing user_id", common.ErrSchemaDrift, r.ID)
	}
	if r.Type == "" {
		return fmt.Errorf("%w: accounts row %s missing type", common.ErrSchemaDrift, r.ID)
	}
	if r.Provider == "" {
		return fmt.Errorf("%w: accounts row %s missing provider", common.ErrSchemaDrift, r.ID)
	}
	if r.ProviderAccountID == "" {
		return fmt.Errorf("%w: accounts row %s missing provider_account_id", common.ErrSchemaDrift, r.ID)
	}
	return nil
}

// Domain validates the row and transforms it to the domain shape.
func (r *AccountRow) Domain() (*models.Account, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &models.Account{
		ID:                r.ID,
		UserID:            r.UserID,
		Type:              r.Type,
		Provider:          r.Provider,
		ProviderAccountID: r.ProviderAccountID,
		RefreshToken:      stringPtr(r.RefreshToken),
		AccessToken:       stringPtr(r.AccessToken),
		ExpiresAt:         int64Ptr(r.ExpiresAt),
		TokenType:         stringPtr(r.TokenType),
		Scope:             stringPtr(r.Scope),
		IDToken:           stringPtr(r.IDToken),
		SessionState:      stringPtr(r.SessionState),
	}, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// NullString converts an optional domain string for binding into a nullable
// column.
func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// NullInt64 converts an optional domain integer for binding into a nullable
// column.
func NullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
