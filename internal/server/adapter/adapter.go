// Package adapter implements the storage capability set the external
// authentication framework requires. The Adapter interface mirrors the
// framework's contract exactly so alternative stores remain swappable; the
// PostgreSQL implementation composes the per-entity repositories.
//
// Lookups for which the framework treats absence as routine return
// (nil, nil) instead of an error. Everything else propagates the repository
// error kinds from internal/common unchanged.
package adapter

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Adapter interface {
	CreateUser(ctx context.Context, in models.CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByAccount(ctx context.Context, providerAccountID, provider string) (*models.User, error)
	UpdateUser(ctx context.Context, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)

	LinkAccount(ctx context.Context, in models.CreateAccountInput) (*models.Account, error)
	UnlinkAccount(ctx context.Context, providerAccountID, provider string) error

	CreateSession(ctx context.Context, in models.CreateSessionInput) (*models.Session, error)
	GetSessionAndUser(ctx context.Context, sessionToken string) (*models.SessionAndUser, error)
	UpdateSession(ctx context.Context, upd models.SessionUpdate) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionToken string) (*models.Session, error)

	CreateVerificationToken(ctx context.Context, in models.CreateVerificationTokenInput) (*models.VerificationToken, error)
	UseVerificationToken(ctx context.Context, identifier, token string) (*models.VerificationToken, error)
}
