package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/dto"
	apierrors "github.com/calmtasks/calmtasks-api/internal/errors"
	"github.com/calmtasks/calmtasks-api/internal/middleware"
	"github.com/calmtasks/calmtasks-api/internal/models"
	"github.com/calmtasks/calmtasks-api/internal/services"
	"github.com/calmtasks/calmtasks-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		OwnerID:  userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid completed filter")
			return
		}
		input.Completed = &completed
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task owned by the caller.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title        string              `json:"title" binding:"required"`
		Content      string              `json:"content"`
		Priority     models.TaskPriority `json:"priority" binding:"omitempty,oneof=high low"`
		DueDate      *time.Time          `json:"dueDate"`
		ReminderDate *time.Time          `json:"reminderDate"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:        req.Title,
		Content:      req.Content,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ReminderDate: req.ReminderDate,
		OwnerID:      userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task owned by the caller.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	// The timestamp fields come in raw so a JSON null (clear the date)
	// can be told apart from the field being absent (leave it alone).
	type UpdateTaskRequest struct {
		Title        *string              `json:"title"`
		Content      *string              `json:"content"`
		Priority     *models.TaskPriority `json:"priority" binding:"omitempty,oneof=high low"`
		Completed    *bool                `json:"completed"`
		DueDate      json.RawMessage      `json:"dueDate"`
		ReminderDate json.RawMessage      `json:"reminderDate"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, clearDueDate, err := parseOptionalTime(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid dueDate")
		return
	}
	reminderDate, clearReminderDate, err := parseOptionalTime(req.ReminderDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid reminderDate")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Title:             req.Title,
		Content:           req.Content,
		Priority:          req.Priority,
		Completed:         req.Completed,
		DueDate:           dueDate,
		ClearDueDate:      clearDueDate,
		ReminderDate:      reminderDate,
		ClearReminderDate: clearReminderDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task if the caller owns it.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deleted",
	})
}

// parseOptionalTime decodes a raw timestamp field from a partial update.
// An absent field returns (nil, false), an explicit null returns
// (nil, true) to clear the stored value.
func parseOptionalTime(raw json.RawMessage) (*time.Time, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false, err
	}
	return &t, false, nil
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
