// Package verificationtokens provides a PostgreSQL-backed repository for
// one-time passwordless sign-in tokens. Consumption is destructive: a single
// DELETE ... RETURNING round-trip guarantees at-most-once use even under
// concurrent consumers.
package verificationtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/schema"
)

// PostgresRepository implements create and consume for verification tokens
// over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create validates the input and inserts a token. A duplicate
// (identifier, token) pair yields common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, in models.CreateVerificationTokenInput) (*models.VerificationToken, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO verification_tokens (identifier, token, expires)
		VALUES ($1, $2, $3)
		RETURNING identifier, token, expires::text
	`
	row := &schema.VerificationTokenRow{}
	err := r.db.QueryRowContext(ctx, query,
		in.Identifier, in.Token, schema.FormatTime(in.Expires)).
		Scan(&row.Identifier, &row.Token, &row.Expires)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: verification token for %s", common.ErrConflict, in.Identifier)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// Consume removes the (identifier, token) pair and returns its last state.
// A second call with the same pair, or any unknown pair, yields
// common.ErrNotFound.
func (r *PostgresRepository) Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	query := `
		DELETE FROM verification_tokens
		WHERE identifier = $1 AND token = $2
		RETURNING identifier, token, expires::text
	`
	row := &schema.VerificationTokenRow{}
	err := r.db.QueryRowContext(ctx, query, identifier, token).
		Scan(&row.Identifier, &row.Token, &row.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: verification token for %s", common.ErrNotFound, identifier)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}
