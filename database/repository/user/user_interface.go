package userRepo

import (
	"context"

	"asumo/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository manages resident accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	GetByEmailWithProjection(ctx context.Context, email string, projection bson.M) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}
