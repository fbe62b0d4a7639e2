package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asumo/models"
	"asumo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued resident token stays valid.
const tokenTTL = 72 * time.Hour

// RegisterResident creates a new resident account, hashes the password and
// issues a token.
func (s *DefaultUserService) RegisterResident(ctx context.Context, usr models.User) (*AuthResponse, error) {
	// Validate required fields.
	if usr.Email == "" || usr.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if usr.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if usr.Apartment == "" {
		return nil, fmt.Errorf("apartment is required")
	}
	if len(usr.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	usr.Email = strings.ToLower(strings.TrimSpace(usr.Email))

	// Check for an existing account.
	existing, err := s.Repo.GetByEmailWithProjection(ctx, usr.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing resident", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(usr.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	usr.PasswordHash = string(hash)
	usr.Password = ""
	if usr.Role == "" {
		usr.Role = models.RoleResident
	}

	created, err := s.Repo.Create(ctx, usr)
	if err != nil {
		utils.GetLogger().Error("Failed to create resident", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(created.ID, created.Email, created.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		ID:        created.ID,
		Token:     token,
		Name:      created.Name,
		Email:     created.Email,
		Apartment: created.Apartment,
		Role:      created.Role,
	}, nil
}

// AuthenticateResident checks credentials and issues a fresh token.
func (s *DefaultUserService) AuthenticateResident(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	usr, err := s.Repo.GetByEmailWithProjection(ctx, email, nil)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch resident for login", zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		ID:        usr.ID,
		Token:     token,
		Name:      usr.Name,
		Email:     usr.Email,
		Apartment: usr.Apartment,
		Role:      usr.Role,
	}, nil
}

// VerifyBearer resolves a bearer credential to a verified identity. It fails
// closed: an invalid token, a missing subject or a missing email all reject
// the caller. This is the capability the payment subsystem consumes.
func (s *DefaultUserService) VerifyBearer(ctx context.Context, bearer string) (models.Identity, error) {
	id, email, _, err := utils.ExtractIdentityFromToken(bearer)
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid bearer token: %w", err)
	}
	if email == "" {
		// Tokens issued before the email claim existed: resolve via store.
		usr, err := s.Repo.GetByIDWithProjection(ctx, id, bson.M{"id": 1, "email": 1})
		if err != nil || usr == nil {
			return models.Identity{}, fmt.Errorf("could not resolve identity email")
		}
		email = usr.Email
	}
	if email == "" {
		return models.Identity{}, fmt.Errorf("identity has no email")
	}
	return models.Identity{UserID: id, Email: email}, nil
}
