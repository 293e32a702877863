package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/models"
	"github.com/calmtasks/calmtasks-api/internal/notifier"
	"github.com/calmtasks/calmtasks-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrNotTaskOwner  = errors.New("only the task owner can perform this action")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier notifier.Notifier
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, n notifier.Notifier) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: n,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	OwnerID   uint64
	Completed *bool
	Page      int
	PageSize  int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Content      string
	Priority     models.TaskPriority
	DueDate      *time.Time
	ReminderDate *time.Time
	OwnerID      uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title             *string
	Content           *string
	Priority          *models.TaskPriority
	Completed         *bool
	DueDate           *time.Time
	ClearDueDate      bool
	ReminderDate      *time.Time
	ClearReminderDate bool
}

// ListTasks returns the caller's tasks
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		OwnerID:   input.OwnerID,
		Completed: input.Completed,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	tasks, total, err := s.taskRepo.ListByOwner(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a single task owned by the actor
func (s *TaskService) GetTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.findOwnedTask(taskID, actorID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask creates a new task owned by the caller. New tasks always
// start unsent and uncompleted, whatever the client sent.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:        input.Title,
		Content:      input.Content,
		Priority:     input.Priority,
		DueDate:      input.DueDate,
		ReminderDate: input.ReminderDate,
		ReminderSent: false,
		Completed:    false,
		UserID:       input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task owned by the actor.
//
// Moving the reminder timestamp into the future re-arms an already-sent
// reminder; a past or unchanged timestamp leaves the sent flag alone.
// A false-to-true completed transition fires a best-effort completion
// email; repeating it is a no-op on the email side.
//
// Only the columns the request touches are written back. The sent flag
// in particular is written only when the re-arm rule fires, so a claim
// the dispatcher takes between the read and the write stays claimed.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(taskID, actorID)
	if err != nil {
		return nil, err
	}

	wasCompleted := task.Completed
	changed := make([]string, 0, 6)

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
		changed = append(changed, "title")
	}
	if input.Content != nil {
		task.Content = *input.Content
		changed = append(changed, "content")
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
		changed = append(changed, "priority")
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
		changed = append(changed, "completed")
	}
	if input.ClearDueDate {
		task.DueDate = nil
		changed = append(changed, "due_date")
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
		changed = append(changed, "due_date")
	}
	if input.ClearReminderDate {
		task.ReminderDate = nil
		changed = append(changed, "reminder_date")
	} else if input.ReminderDate != nil {
		task.ReminderDate = input.ReminderDate
		changed = append(changed, "reminder_date")
		if task.ReminderSent && input.ReminderDate.After(time.Now()) {
			task.ReminderSent = false
			changed = append(changed, "reminder_sent")
		}
	}

	if err := s.taskRepo.Update(task, changed...); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if !wasCompleted && task.Completed {
		s.sendCompletionEmail(task)
	}

	return task, nil
}

// DeleteTask deletes a task if the actor is the owner
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != actorID {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// sendCompletionEmail notifies the owner that a task was completed.
// Failures never surface to the request path.
func (s *TaskService) sendCompletionEmail(task *models.Task) {
	user, err := s.userRepo.FindByID(task.UserID)
	if err != nil {
		log.Printf("[tasks] failed to resolve owner %d for completion email: %v", task.UserID, err)
		return
	}
	if user.Email == "" {
		log.Printf("[tasks] owner %d has no email, skipping completion notice", user.ID)
		return
	}

	if err := s.notifier.TaskCompleted(user, task); err != nil {
		log.Printf("[tasks] failed to send completion email for task %d: %v", task.ID, err)
	}
}

// findOwnedTask loads a task and hides it from non-owners. Reads report
// a foreign task as not found rather than forbidden so task IDs do not
// leak across accounts.
func (s *TaskService) findOwnedTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != actorID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
