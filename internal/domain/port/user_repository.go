package port

import (
	"context"

	"coffee-grader/internal/domain/entity"
)

// UserRepository stores bot user dialog state.
type UserRepository interface {
	// Get returns the user by ID, creating one if not found.
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save persists the user's state.
	Save(ctx context.Context, user *entity.User) error

	// UpdateState updates the state of an existing user.
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
