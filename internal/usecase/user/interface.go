package user

import (
	"context"

	domain "user-crud-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
	CreateAndPersistUser(ctx context.Context, name, email string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User, newEmail string) error
	DeleteUser(ctx context.Context, id int64) error
	SerializeUser(u *domain.User) (string, error)
	DeserializeUser(data string) (*domain.User, error)
}

// Repository defines the storage gateway contract for user rows.
// Each operation maps to exactly one SQL statement; there are no
// multi-statement transactions.
type Repository interface {
	// Create inserts a new user row. The caller assigns the ID.
	Create(ctx context.Context, u *domain.User) error
	// FindByEmail returns (nil, nil) when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns all users ordered by ascending ID.
	List(ctx context.Context) ([]domain.User, error)
	// UpdateEmail updates the email of the row with the given ID.
	// A missing ID affects zero rows and is not an error.
	UpdateEmail(ctx context.Context, id int64, newEmail string) error
	// Delete removes the row with the given ID; a miss is a no-op.
	Delete(ctx context.Context, id int64) error
}
