package user

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/store"
	"gorm.io/gorm"
)

// Create inserts a new user. The unique index on email serializes
// concurrent registrations: at most one insert for a given email succeeds.
func (r *Repository) Create(ctx context.Context, user *store.User) error {
	return r.store.WithRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(user).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, store.CodeBusy)
}

// GetByEmail retrieves a user by its email address
func (r *Repository) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	var user store.User
	err := r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by its ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*store.User, error) {
	var user store.User
	err := r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&user, id).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the total number of users
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&store.User{}).Count(&count).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a user by ID, cascading to its tasks
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&store.User{}, id).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
}
