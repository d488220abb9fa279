package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// PostgresAdapter satisfies Adapter against a PostgreSQL store. It holds the
// shared pool handle and no other mutable state; connections are acquired
// per operation and never held across repository calls. Facade methods that
// touch two entities perform two independent round-trips without a shared
// transaction, a consistency trade-off accepted by the framework contract.
type PostgresAdapter struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewPostgresAdapter constructs the adapter from a pool handle, a repository
// manager, and a logger.
func NewPostgresAdapter(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *PostgresAdapter {
	return &PostgresAdapter{db: db, repos: m, logger: l.With("component", "adapter")}
}

// CreateUser inserts a new user and returns it with the store-assigned id.
func (a *PostgresAdapter) CreateUser(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	return a.repos.Users(a.db).Create(ctx, in)
}

// GetUser returns the user with the given id, or (nil, nil) when absent.
func (a *PostgresAdapter) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := a.repos.Users(a.db).GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// GetUserByEmail returns the user with the given email, or (nil, nil) when
// absent.
func (a *PostgresAdapter) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := a.repos.Users(a.db).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// GetUserByAccount resolves the (provider, providerAccountID) pair to its
// owning user. An unlinked pair is absent; the user lookup is skipped
// entirely. A link whose owner row is gone is a data-integrity failure and
// surfaces as an error.
func (a *PostgresAdapter) GetUserByAccount(ctx context.Context, providerAccountID, provider string) (*models.User, error) {
	account, err := a.repos.Accounts(a.db).GetByProviderAccount(ctx, provider, providerAccountID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := a.repos.Users(a.db).GetByID(ctx, account.UserID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: account %s references missing user %s",
			common.ErrSchemaDrift, account.ID, account.UserID)
	}
	return user, err
}

// UpdateUser applies the partial update; an unknown id yields
// common.ErrNotFound.
func (a *PostgresAdapter) UpdateUser(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	return a.repos.Users(a.db).Update(ctx, upd)
}

// DeleteUser removes the user and returns its last state. The store's FK
// cascade removes linked sessions and accounts.
func (a *PostgresAdapter) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	return a.repos.Users(a.db).Delete(ctx, id)
}

// LinkAccount binds an external identity to a user. Relinking the same
// (provider, providerAccountID) pair yields common.ErrConflict.
func (a *PostgresAdapter) LinkAccount(ctx context.Context, in models.CreateAccountInput) (*models.Account, error) {
	return a.repos.Accounts(a.db).Create(ctx, in)
}

// UnlinkAccount removes the link for the pair. By framework convention this
// is fire-and-forget: unlinking a pair that was never linked is a no-op.
func (a *PostgresAdapter) UnlinkAccount(ctx context.Context, providerAccountID, provider string) error {
	_, err := a.repos.Accounts(a.db).DeleteByProviderAccount(ctx, provider, providerAccountID)
	if errors.Is(err, common.ErrNotFound) {
		a.logger.Debug(ctx, "unlink of unknown account ignored", "provider", provider)
		return nil
	}
	return err
}

// CreateSession inserts a new session for a signed-in user.
func (a *PostgresAdapter) CreateSession(ctx context.Context, in models.CreateSessionInput) (*models.Session, error) {
	return a.repos.Sessions(a.db).Create(ctx, in)
}

// GetSessionAndUser resolves a session token to the session and its owning
// user, sequencing the user lookup after the session lookup. An unknown token
// is absent; a session whose owner row is gone is a data-integrity failure
// and surfaces as an error, never as absent.
func (a *PostgresAdapter) GetSessionAndUser(ctx context.Context, sessionToken string) (*models.SessionAndUser, error) {
	session, err := a.repos.Sessions(a.db).GetByToken(ctx, sessionToken)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := a.repos.Users(a.db).GetByID(ctx, session.UserID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: session %s references missing user %s",
			common.ErrSchemaDrift, session.ID, session.UserID)
	}
	if err != nil {
		return nil, err
	}

	return &models.SessionAndUser{Session: session, User: user}, nil
}

// UpdateSession applies the partial update keyed by token. The framework
// calls this speculatively, so an unknown token is a no-op returning
// (nil, nil) rather than an error.
func (a *PostgresAdapter) UpdateSession(ctx context.Context, upd models.SessionUpdate) (*models.Session, error) {
	session, err := a.repos.Sessions(a.db).Update(ctx, upd)
	if errors.Is(err, common.ErrNotFound) {
		a.logger.Debug(ctx, "speculative update of unknown session ignored")
		return nil, nil
	}
	return session, err
}

// DeleteSession removes the session at sign-out and returns its last state;
// an unknown token yields common.ErrNotFound.
func (a *PostgresAdapter) DeleteSession(ctx context.Context, sessionToken string) (*models.Session, error) {
	return a.repos.Sessions(a.db).DeleteByToken(ctx, sessionToken)
}

// CreateVerificationToken stores a one-time passwordless sign-in token.
func (a *PostgresAdapter) CreateVerificationToken(ctx context.Context, in models.CreateVerificationTokenInput) (*models.VerificationToken, error) {
	return a.repos.VerificationTokens(a.db).Create(ctx, in)
}

// UseVerificationToken consumes the (identifier, token) pair destructively.
// The first call returns the token record; any later call with the same pair
// returns (nil, nil).
func (a *PostgresAdapter) UseVerificationToken(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	vt, err := a.repos.VerificationTokens(a.db).Consume(ctx, identifier, token)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return vt, err
}
