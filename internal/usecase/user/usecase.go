package user

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// Service implements the business logic for user management: input
// validation, ID assignment, and orchestration of the storage gateway.
// It holds no mutable state of its own between calls.
type Service struct {
	repo  Repository  // Storage gateway for user rows
	codec Codec       // Codec for user interop serialization
	log   *zap.Logger // Logger for structured logging
}

// New creates a Service with the provided repository, codec, and logger.
// Pass a NopRepository to run without a backing store; a nil codec
// defaults to JSONCodec.
func New(repo Repository, codec Codec, log *zap.Logger) *Service {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Service{repo: repo, codec: codec, log: log}
}

// isBlank reports whether s is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isValidEmail applies the deliberately weak validity check: the address
// must contain both "@" and ".". Not a full syntactic check.
func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// generateID derives an ID from the wall clock. IDs are monotonically
// increasing across ticks; two creations within the same millisecond can
// collide, which the store's primary-key constraint will reject.
func generateID() int64 {
	return time.Now().UnixMilli()
}

// CreateUser validates the inputs and constructs a new in-memory user
// with a freshly assigned ID. It has no side effect beyond construction.
func (s *Service) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	s.log.Debug("creating user", zap.String("name", name), zap.String("email", email))

	if isBlank(name) || isBlank(email) {
		s.log.Warn("invalid user input", zap.String("name", name), zap.String("email", email))
		return nil, pkgerrors.NewValidationError("", "name and email cannot be blank")
	}

	u := &domain.User{
		ID:    generateID(),
		Name:  name,
		Email: email,
	}

	s.log.Info("user created", zap.Int64("id", u.ID), zap.String("name", u.Name))
	return u, nil
}

// CreateAndPersistUser creates a user and hands it to the storage gateway.
// On persistence failure the constructed user is returned alongside the
// error; its fields still reflect the attempted values.
func (s *Service) CreateAndPersistUser(ctx context.Context, name, email string) (*domain.User, error) {
	u, err := s.CreateUser(ctx, name, email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.log.Error("failed to persist user", zap.Int64("id", u.ID), zap.Error(err))
		return u, err
	}
	return u, nil
}

// FindUserByEmail returns the matching user, or (nil, nil) when no row
// matches. It never fabricates a placeholder user.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// FindUserByID returns the matching user, or (nil, nil) when no row
// matches.
func (s *Service) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUsers returns all users ordered by ascending ID. An empty store
// yields an empty slice, not an error.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser validates newEmail, mutates the passed-in entity, and issues
// an update-by-id to the storage gateway. On validation failure the
// entity is left untouched.
func (s *Service) UpdateUser(ctx context.Context, u *domain.User, newEmail string) error {
	s.log.Debug("updating user email",
		zap.Int64("id", u.ID),
		zap.String("old_email", u.Email),
		zap.String("new_email", newEmail),
	)

	if !isValidEmail(newEmail) {
		s.log.Warn("invalid email format", zap.String("email", newEmail))
		return pkgerrors.NewValidationError("email", "invalid email format")
	}

	u.Email = newEmail

	if err := s.repo.UpdateEmail(ctx, u.ID, newEmail); err != nil {
		s.log.Error("failed to update user email", zap.Int64("id", u.ID), zap.Error(err))
		return err
	}

	s.log.Info("user updated", zap.Int64("id", u.ID))
	return nil
}

// DeleteUser removes the user with the given ID. Deleting a missing ID is
// a no-op, not an error.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SerializeUser produces the JSON representation of a user.
func (s *Service) SerializeUser(u *domain.User) (string, error) {
	s.log.Debug("serializing user", zap.Int64("id", u.ID))
	return s.codec.Encode(u)
}

// DeserializeUser is the inverse of SerializeUser.
func (s *Service) DeserializeUser(data string) (*domain.User, error) {
	u, err := s.codec.Decode(data)
	if err != nil {
		s.log.Warn("failed to deserialize user", zap.Error(err))
		return nil, err
	}
	s.log.Debug("user deserialized", zap.String("name", u.Name))
	return u, nil
}
