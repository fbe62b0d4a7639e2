package user

import (
	"context"
	"fmt"

	"asumo/models"
)

// GetResidentByID fetches a resident profile.
func (s *DefaultUserService) GetResidentByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resident: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("resident %s not found", id)
	}
	usr.PasswordHash = ""
	return usr, nil
}

// ListResidents returns every account, for the admin view and for broadcast
// recipient lists.
func (s *DefaultUserService) ListResidents(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
