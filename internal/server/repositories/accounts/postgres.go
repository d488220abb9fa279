// Package accounts provides a PostgreSQL-backed repository for linked
// external provider accounts.
package accounts

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

// PostgresRepository implements CRUD operations for provider accounts over
// dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, user_id, type, provider, provider_account_id,
		refresh_token, access_token, expires_at, token_type, scope, id_token, session_state`

// Create validates the input and inserts an account. Credential material is
// bound as-is; a duplicate (provider, provider_account_id) pair yields
// common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, in models.CreateAccountInput) (*models.Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO accounts (user_id, type, provider, provider_account_id,
			refresh_token, access_token, expires_at, token_type, scope, id_token, session_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + accountColumns

	row := &schema.AccountRow{}
	err := r.db.QueryRowContext(ctx, query,
		in.UserID, in.Type, in.Provider, in.ProviderAccountID,
		schema.NullString(in.RefreshToken), schema.NullString(in.AccessToken),
		schema.NullInt64(in.ExpiresAt), schema.NullString(in.TokenType),
		schema.NullString(in.Scope), schema.NullString(in.IDToken),
		schema.NullString(in.SessionState)).
		Scan(&row.ID, &row.UserID, &row.Type, &row.Provider, &row.ProviderAccountID,
			&row.RefreshToken, &row.AccessToken, &row.ExpiresAt, &row.TokenType,
			&row.Scope, &row.IDToken, &row.SessionState)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: account %s/%s", common.ErrConflict, in.Provider, in.ProviderAccountID)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return row.Domain()
}

// GetByID returns the account with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByProviderAccount returns the account for the unique
// (provider, provider_account_id) pair, or common.ErrNotFound.
func (r *PostgresRepository) GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE provider = $1 AND provider_account_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, provider, providerAccountID))
}

// DeleteByProviderAccount removes the account for the pair and returns its
// last state, or common.ErrNotFound when no such link exists.
func (r *PostgresRepository) DeleteByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error) {
	query := `
		DELETE FROM accounts
		WHERE provider = $1 AND provider_account_id = $2
		RETURNING ` + accountColumns

	account, err := r.scanOne(r.db.QueryRowContext(ctx, query, provider, providerAccountID))
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: account %s/%s", common.ErrNotFound, provider, providerAccountID)
	}
	return account, err
}

// DeleteByUser removes every account linked to the user and returns the
// removed rows. A user with no linked accounts yields an empty result, not an
// error. The store's FK cascade covers user deletion; this is for explicitly
// severing all provider links while keeping the user.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) ([]*models.Account, error) {
	query := `
		DELETE FROM accounts
		WHERE user_id = $1
		RETURNING ` + accountColumns

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// List returns all accounts in insertion order. Intended for administrative use.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *PostgresRepository) collect(rows *sql.Rows) ([]*models.Account, error) {
	var result []*models.Account
	for rows.Next() {
		row := &schema.AccountRow{}
		err := rows.Scan(&row.ID, &row.UserID, &row.Type, &row.Provider, &row.ProviderAccountID,
			&row.RefreshToken, &row.AccessToken, &row.ExpiresAt, &row.TokenType,
			&row.Scope, &row.IDToken, &row.SessionState)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		account, err := row.Domain()
		if err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &schema.AccountRow{}
	err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Provider, &a.ProviderAccountID,
		&a.RefreshToken, &a.AccessToken, &a.ExpiresAt, &a.TokenType,
		&a.Scope, &a.IDToken, &a.SessionState)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return a.Domain()
}
