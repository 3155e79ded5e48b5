package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neer47/task-manager/db"
	"github.com/neer47/task-manager/internal/models"
	"github.com/neer47/task-manager/internal/services"
	"github.com/neer47/task-manager/internal/types"
	"github.com/neer47/task-manager/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// TaskHandler carries the dependencies of the task endpoints. The
// summarizer is injected so it can be replaced in tests.
type TaskHandler struct {
	Summarizer services.Summarizer
}

func NewTaskHandler(summarizer services.Summarizer) *TaskHandler {
	return &TaskHandler{Summarizer: summarizer}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"dueDate" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// findOwnedTask resolves a task id for the given owner. A missing task and
// a task owned by someone else are indistinguishable: both come back as
// gorm.ErrRecordNotFound.
func findOwnedTask(taskID string, userID uint) (models.Task, error) {
	var task models.Task
	err := db.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	return task, err
}

func (h *TaskHandler) CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid due date"})
		return
	}

	if !types.ValidPriority(req.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid priority"})
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
		UserID:      userID,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		logrus.WithError(err).Error("Failed to create task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(task))
}

func (h *TaskHandler) ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	// Non-numeric or out-of-range values fall back to the defaults.
	page, err := strconv.Atoi(ctx.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	query := db.DB.Model(&models.Task{}).Where("user_id = ?", userID)

	if priority := ctx.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	if dueDate := ctx.Query("dueDate"); dueDate != "" {
		parsed, err := parseDueDate(dueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid due date"})
			return
		}
		query = query.Where("due_date = ?", parsed)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("Failed to count tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tasks"})
		return
	}

	var tasks []models.Task

	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&tasks).Error; err != nil {
		logrus.WithError(err).Error("Failed to list tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tasks"})
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, types.TaskListResponse{
		Tasks: response,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *TaskHandler) GetTaskByID(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	task, err := findOwnedTask(ctx.Param("id"), userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			logrus.WithError(err).Error("Failed to fetch task")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve task"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

// UpdateTask applies a partial update. A field overwrites the stored value
// only when it is present and non-empty; empty strings, unparseable dates
// and unknown priorities are ignored. The owner is never reassigned.
func (h *TaskHandler) UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	task, err := findOwnedTask(ctx.Param("id"), userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			logrus.WithError(err).Error("Failed to fetch task")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve task"})
		}
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}

	if req.Description != "" {
		task.Description = req.Description
	}

	if req.DueDate != "" {
		if dueDate, err := parseDueDate(req.DueDate); err == nil {
			task.DueDate = dueDate
		}
	}

	if types.ValidPriority(req.Priority) {
		task.Priority = req.Priority
	}

	if err := db.DB.Save(&task).Error; err != nil {
		logrus.WithError(err).Error("Failed to update task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	task, err := findOwnedTask(ctx.Param("id"), userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			logrus.WithError(err).Error("Failed to fetch task")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// SummarizeTask asks the summarization service for a one-sentence summary
// of the task description. The task row is only written after the upstream
// call succeeds.
func (h *TaskHandler) SummarizeTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	task, err := findOwnedTask(ctx.Param("id"), userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			logrus.WithError(err).Error("Failed to fetch task")
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve task"})
		}
		return
	}

	summary, err := h.Summarizer.Summarize(ctx.Request.Context(), task.Description)

	if err != nil {
		logrus.WithError(err).Error("Failed to summarize task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "OpenAI summarization failed"})
		return
	}

	task.Summary = summary

	if err := db.DB.Save(&task).Error; err != nil {
		logrus.WithError(err).Error("Failed to save task summary")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"taskId": task.ID, "summary": summary})
}
