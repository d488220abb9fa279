// Package sessions provides a PostgreSQL-backed repository for server-side
// login sessions, keyed externally by the unique session token.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/schema"
)

// PostgresRepository implements CRUD operations for sessions over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create validates the input and inserts a session. A duplicate session
// token yields common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, in models.CreateSessionInput) (*models.Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO sessions (user_id, session_token, expires)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, session_token, expires::text
	`
	row := &schema.SessionRow{}
	err := r.db.QueryRowContext(ctx, query,
		in.UserID, in.SessionToken, schema.FormatTime(in.Expires)).
		Scan(&row.ID, &row.UserID, &row.SessionToken, &row.Expires)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: session token", common.ErrConflict)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// GetByToken returns the session with the given token, or common.ErrNotFound.
func (r *PostgresRepository) GetByToken(ctx context.Context, sessionToken string) (*models.Session, error) {
	query := `
		SELECT id, user_id, session_token, expires::text
		FROM sessions
		WHERE session_token = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sessionToken))
}

// Update applies only the fields set on upd, keyed by the session token.
// Column names are fixed literals; every value is bound as a parameter.
// An update with no fields set degrades to a plain fetch.
func (r *PostgresRepository) Update(ctx context.Context, upd models.SessionUpdate) (*models.Session, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.UserID != nil {
		add("user_id", *upd.UserID)
	}
	if upd.Expires != nil {
		add("expires", schema.FormatTime(*upd.Expires))
	}

	if len(set) == 0 {
		return r.GetByToken(ctx, upd.SessionToken)
	}

	args = append(args, upd.SessionToken)
	query := fmt.Sprintf(`
		UPDATE sessions
		SET %s
		WHERE session_token = $%d
		RETURNING id, user_id, session_token, expires::text
	`, strings.Join(set, ", "), len(args))

	row := &schema.SessionRow{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&row.ID, &row.UserID, &row.SessionToken, &row.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session token", common.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// DeleteByToken removes the session and returns its last state, or
// common.ErrNotFound when no such session exists.
func (r *PostgresRepository) DeleteByToken(ctx context.Context, sessionToken string) (*models.Session, error) {
	query := `
		DELETE FROM sessions
		WHERE session_token = $1
		RETURNING id, user_id, session_token, expires::text
	`
	session, err := r.scanOne(r.db.QueryRowContext(ctx, query, sessionToken))
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: session token", common.ErrNotFound)
	}
	return session, err
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Session, error) {
	s := &schema.SessionRow{}
	err := row.Scan(&s.ID, &s.UserID, &s.SessionToken, &s.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return s.Domain()
}
