package repository

import (
	"errors"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner retrieves tasks owned by a user with filtering and pagination
func (r *GormTaskRepository) ListByOwner(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("user_id = ?", filter.OwnerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update writes only the named columns. A full-row Save here would flush
// the reminder_sent value read before the edit, un-claiming a reminder
// the dispatcher claimed in between.
func (r *GormTaskRepository) Update(task *models.Task, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(task).Select(fields).Updates(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ClaimDueReminder atomically claims one due, unsent reminder.
//
// The claim is a guarded UPDATE keyed on the unsent state: of any set of
// concurrent callers, only the one whose UPDATE reports an affected row
// owns the task. A caller that loses the race moves on to the next
// candidate; the candidate set can only shrink, so the loop terminates.
func (r *GormTaskRepository) ClaimDueReminder(now time.Time) (*models.Task, error) {
	for {
		var task models.Task
		err := r.db.
			Where("reminder_date <= ? AND reminder_sent = ?", now, false).
			Order("reminder_date ASC").
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}

		res := r.db.Model(&models.Task{}).
			Where("id = ? AND reminder_sent = ? AND reminder_date <= ?", task.ID, false, now).
			Update("reminder_sent", true)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race for this candidate, try the next one.
			continue
		}

		task.ReminderSent = true
		return &task, nil
	}
}
