package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// UserRepoPG implements the storage gateway contract using PostgreSQL and
// GORM. Every operation executes exactly one statement; the underlying
// pool scopes connection acquisition to the call and releases it on every
// exit path.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// The ID is assigned by the service, not by the database.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey"`      // Service-assigned unique identifier
	Name  string `gorm:"not null"`        // User's full name (required)
	Email string `gorm:"not null;unique"` // User's unique email address (required, unique)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user row. Any store-level error, including a
// unique-constraint violation on email, surfaces as a PersistenceError.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return pkgerrors.NewPersistenceError("create user", errors.New("user cannot be nil"))
	}

	model := UserSchema{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return pkgerrors.NewPersistenceError("create user", err)
	}

	r.log.Info("user persisted", zap.Int64("id", model.ID), zap.String("email", model.Email))
	return nil
}

// FindByEmail retrieves a user by email address, returning (nil, nil)
// when no row matches.
func (r *UserRepoPG) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, pkgerrors.NewPersistenceError("find user by email", err)
	}

	return &user.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}

// FindByID retrieves a user by ID, returning (nil, nil) when no row
// matches.
func (r *UserRepoPG) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, pkgerrors.NewPersistenceError("find user by id", err)
	}

	return &user.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}

// List retrieves all users ordered by ascending ID.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, pkgerrors.NewPersistenceError("list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			ID:    model.ID,
			Name:  model.Name,
			Email: model.Email,
		}
	}

	return users, nil
}

// UpdateEmail updates the email of the row with the given ID. A missing
// ID affects zero rows and is not surfaced as an error.
func (r *UserRepoPG) UpdateEmail(ctx context.Context, id int64, newEmail string) error {
	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", id).Update("email", newEmail)
	if res.Error != nil {
		r.log.Error("failed to update user email in db", zap.Error(res.Error), zap.Int64("id", id))
		return pkgerrors.NewPersistenceError("update user email", res.Error)
	}

	r.log.Info("user email updated", zap.Int64("id", id), zap.Int64("rows_affected", res.RowsAffected))
	return nil
}

// Delete removes the row with the given ID. Deleting a missing ID is a
// no-op with zero rows affected.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return pkgerrors.NewPersistenceError("delete user", res.Error)
	}

	r.log.Info("user deleted", zap.Int64("id", id), zap.Int64("rows_affected", res.RowsAffected))
	return nil
}
