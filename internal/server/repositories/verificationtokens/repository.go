package verificationtokens

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, in models.CreateVerificationTokenInput) (*models.VerificationToken, error)
	Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error)
}
