package repository

import (
	"time"

	"github.com/calmtasks/calmtasks-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByOwner retrieves tasks owned by a user with filtering and pagination
	ListByOwner(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists the named columns of a task. Columns not listed
	// keep whatever value is in the store, so a stale in-memory copy
	// cannot clobber state written by a concurrent claim.
	Update(task *models.Task, fields ...string) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// ClaimDueReminder atomically selects one task whose reminder is due
	// (reminder_date <= now, reminder_sent false), marks it sent, and
	// returns it. Returns nil when no task is claimable. Two concurrent
	// callers never both claim the same task.
	ClaimDueReminder(now time.Time) (*models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID   uint64
	Completed *bool
	Page      int
	PageSize  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)
}
