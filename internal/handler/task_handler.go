package handler

import (
	"context"
	"net/http"
	"time"

	"tracker/internal/model"
	"tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskService interface {
	Create(ctx context.Context, actor *model.User, in service.CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, actor *model.User) ([]model.Task, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, in service.UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type ProgressReporter interface {
	UpdateProgress(ctx context.Context, actor *model.User, taskID uuid.UUID, percent int) (*model.Task, error)
}

type TaskHandler struct {
	users    UserResolver
	tasks    TaskService
	progress ProgressReporter
}

func NewTaskHandler(users UserResolver, tasks TaskService, progress ProgressReporter) *TaskHandler {
	return &TaskHandler{users: users, tasks: tasks, progress: progress}
}

// TaskRequest представляет запрос на создание задачи
type TaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Points      int        `json:"points" binding:"required"`
	EndTime     *time.Time `json:"end_time"`
	GraceTime   *time.Time `json:"grace_time"`
}

// TaskUpdateRequest содержит только изменяемые поля
type TaskUpdateRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	AssignedTo        *uuid.UUID `json:"assigned_to"`
	Unassign          bool       `json:"unassign"`
	Points            *int       `json:"points"`
	Status            *string    `json:"status"`
	EndTime           *time.Time `json:"end_time"`
	GraceTime         *time.Time `json:"grace_time"`
	CompletionPercent *int       `json:"completion_percent"`
}

// ProgressRequest сообщает процент выполнения задачи. Диапазон проверяет калькулятор баллов.
type ProgressRequest struct {
	CompletionPercent *int `json:"completion_percent" binding:"required"`
}

// TaskResponse представляет ответ с данными задачи
type TaskResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	AssignedTo        *string `json:"assigned_to,omitempty"`
	CreatedBy         string  `json:"created_by"`
	Points            int     `json:"points"`
	CompletionPercent int     `json:"completion_percent"`
	Status            string  `json:"status"`
	EarnedPoints      int     `json:"earned_points"`
	EndTime           *string `json:"end_time,omitempty"`
	GraceTime         *string `json:"grace_time,omitempty"`
	CompletedDate     *string `json:"completed_date,omitempty"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:                task.ID.String(),
		Title:             task.Title,
		Description:       task.Description,
		CreatedBy:         task.CreatedBy.String(),
		Points:            task.Points,
		CompletionPercent: task.CompletionPercent,
		Status:            string(task.Status),
		EarnedPoints:      task.EarnedPoints,
		EndTime:           formatTime(task.EndTime),
		GraceTime:         formatTime(task.GraceTime),
		CompletedDate:     formatTime(task.CompletedDate),
	}
	if task.AssignedTo != nil {
		assignedTo := task.AssignedTo.String()
		response.AssignedTo = &assignedTo
	}
	return response
}

// Create godoc
// @Summary   Create a task
// @Tags      Tasks
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      TaskRequest  true  "Task"
// @Success   201      {object}  TaskResponse
// @Failure   400,403  {object}  ErrorResponse
// @Router    /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), actor, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Points:      req.Points,
		EndTime:     req.EndTime,
		GraceTime:   req.GraceTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetByID godoc
// @Summary   Get a task
// @Tags      Tasks
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      string  true  "Task ID"
// @Success   200  {object}  TaskResponse
// @Failure   403,404  {object}  ErrorResponse
// @Router    /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), actor, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// List godoc
// @Summary      List tasks
// @Description  Admins see every company task, employees their own
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  TaskResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		response = append(response, toTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Update godoc
// @Summary   Edit a task
// @Tags      Tasks
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      string             true  "Task ID"
// @Param     request  body      TaskUpdateRequest  true  "Changes"
// @Success   200      {object}  TaskResponse
// @Failure   400,403,404  {object}  ErrorResponse
// @Router    /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	in := service.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		AssignedTo:        req.AssignedTo,
		Unassign:          req.Unassign,
		Points:            req.Points,
		EndTime:           req.EndTime,
		GraceTime:         req.GraceTime,
		CompletionPercent: req.CompletionPercent,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		in.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), actor, taskID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete godoc
// @Summary   Delete a task
// @Tags      Tasks
// @Security  BearerAuth
// @Param     id  path  string  true  "Task ID"
// @Success   204
// @Failure   403,404  {object}  ErrorResponse
// @Router    /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), actor, taskID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateProgress godoc
// @Summary      Report task progress
// @Description  Stores the completion percent and recomputes earned points
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Task ID"
// @Param        request  body      ProgressRequest  true  "Progress"
// @Success      200      {object}  TaskResponse
// @Failure      400,403,404  {object}  ErrorResponse
// @Router       /tasks/{id}/progress [patch]
func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.progress.UpdateProgress(c.Request.Context(), actor, taskID, *req.CompletionPercent)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}
