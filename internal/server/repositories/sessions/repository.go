package sessions

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, in models.CreateSessionInput) (*models.Session, error)
	GetByToken(ctx context.Context, sessionToken string) (*models.Session, error)
	Update(ctx context.Context, upd models.SessionUpdate) (*models.Session, error)
	DeleteByToken(ctx context.Context, sessionToken string) (*models.Session, error)
}
