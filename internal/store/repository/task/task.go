package task

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/store"
	"gorm.io/gorm"
)

// Create inserts a new task
func (r *Repository) Create(ctx context.Context, task *store.Task) error {
	return r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(task).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
}

// ListByCreator retrieves the tasks owned by the given user
func (r *Repository) ListByCreator(ctx context.Context, userID uint) ([]*store.Task, error) {
	var tasks []*store.Task
	err := r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where("created_by_id = ?", userID).Order("created_at ASC").Find(&tasks).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Toggle flips the completion flag of a task by ID. Ownership is not
// checked, matching the original behavior (see DESIGN.md).
func (r *Repository) Toggle(ctx context.Context, id uint) error {
	return r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Model(&store.Task{}).
			Where("id = ?", id).
			Update("is_completed", gorm.Expr("NOT is_completed")).Error
		if err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
}

// Delete deletes a task by ID
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&store.Task{}, id).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
}

// GetByID retrieves a task by its ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*store.Task, error) {
	var task store.Task
	err := r.store.WithDatabase(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&task, id).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
