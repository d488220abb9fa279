// Package users provides a PostgreSQL-backed repository for identity user
// records.
package users

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

// PostgresRepository implements CRUD operations for users over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx). Timestamp columns are selected as text
// and converted by the schema package.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create validates the input and inserts a user, letting the store assign the
// id. A duplicate email yields common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, email_verified)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, email_verified::text
	`
	row := &schema.UserRow{}
	err := r.db.QueryRowContext(ctx, query,
		in.Name, in.Email, schema.FormatNullTime(in.EmailVerified)).
		Scan(&row.ID, &row.Name, &row.Email, &row.EmailVerified)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user with email %q", common.ErrConflict, in.Email)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// GetByID returns the user with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, email_verified::text
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail returns the user with the given unique email, or common.ErrNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, email_verified::text
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// Update applies only the fields set on upd. Column names are fixed literals;
// every value is bound as a parameter. An update with no fields set degrades
// to a plain fetch.
func (r *PostgresRepository) Update(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.EmailVerified != nil {
		add("email_verified", schema.FormatTime(*upd.EmailVerified))
	}

	if len(set) == 0 {
		return r.GetByID(ctx, upd.ID)
	}

	args = append(args, upd.ID)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, email_verified::text
	`, strings.Join(set, ", "), len(args))

	row := &schema.UserRow{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&row.ID, &row.Name, &row.Email, &row.EmailVerified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, upd.ID)
		}
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %s", common.ErrConflict, upd.ID)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// Delete removes the user and returns its last state. Linked sessions and
// accounts are removed by the store's FK cascade, not by this repository.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, email_verified::text
	`
	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, id)
	}
	return user, err
}

// List returns all users in insertion order. Intended for administrative use.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, email_verified::text
		FROM users
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		row := &schema.UserRow{}
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.EmailVerified); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		user, err := row.Domain()
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &schema.UserRow{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EmailVerified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return u.Domain()
}
