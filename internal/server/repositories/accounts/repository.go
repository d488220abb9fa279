package accounts

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, in models.CreateAccountInput) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error)
	DeleteByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error)
	DeleteByUser(ctx context.Context, userID string) ([]*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
}
