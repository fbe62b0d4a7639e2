package user

import (
	"context"

	userRepo "asumo/database/repository/user"
	"asumo/models"
)

// AuthResponse contains the resident's ID, token, and profile basics.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UserService manages resident accounts and doubles as the verified-identity
// capability consumed by the payment subsystem.
type UserService interface {
	RegisterResident(ctx context.Context, usr models.User) (*AuthResponse, error)
	AuthenticateResident(ctx context.Context, email, password string) (*AuthResponse, error)
	VerifyBearer(ctx context.Context, bearer string) (models.Identity, error)

	GetResidentByID(ctx context.Context, id string) (*models.User, error)
	ListResidents(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
