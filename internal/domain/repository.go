package domain

import (
	"context"

	"github.com/google/uuid"
)

// HistoryRepository defines the interface for saved-calculation operations
type HistoryRepository interface {
	// Save stores a new calculation record
	Save(ctx context.Context, record *CalculationRecord) error

	// GetByUserID retrieves the most recent records for a user, optionally
	// filtered to one calculator (empty string means all)
	GetByUserID(ctx context.Context, userID uuid.UUID, calculator string, limit int) ([]*CalculationRecord, error)

	// GetByID retrieves a record by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*CalculationRecord, error)

	// Delete removes a record owned by the given user
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)
}
