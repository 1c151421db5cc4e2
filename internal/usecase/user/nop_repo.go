package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
)

// NopRepository is the explicit "no backing store configured" variant of
// the Repository contract. Reads report absence, writes are skipped with a
// warning, and only the in-memory service logic executes. The service is
// never constructed around a nil repository.
type NopRepository struct {
	log *zap.Logger
}

// NewNopRepository creates a repository variant that persists nothing.
func NewNopRepository(log *zap.Logger) *NopRepository {
	return &NopRepository{log: log}
}

// Create skips persistence and logs a warning.
func (r *NopRepository) Create(ctx context.Context, u *domain.User) error {
	r.log.Warn("no backing store configured; skipping persistence", zap.Int64("id", u.ID))
	return nil
}

// FindByEmail reports absence for every email.
func (r *NopRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.log.Warn("no backing store configured; cannot read from database", zap.String("email", email))
	return nil, nil
}

// FindByID reports absence for every ID.
func (r *NopRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.log.Warn("no backing store configured; cannot read from database", zap.Int64("id", id))
	return nil, nil
}

// List returns an empty sequence.
func (r *NopRepository) List(ctx context.Context) ([]domain.User, error) {
	r.log.Warn("no backing store configured; returning empty list")
	return []domain.User{}, nil
}

// UpdateEmail leaves the update applied only in memory.
func (r *NopRepository) UpdateEmail(ctx context.Context, id int64, newEmail string) error {
	r.log.Warn("no backing store configured; update only applied in memory", zap.Int64("id", id))
	return nil
}

// Delete skips the delete.
func (r *NopRepository) Delete(ctx context.Context, id int64) error {
	r.log.Warn("no backing store configured; delete skipped", zap.Int64("id", id))
	return nil
}
