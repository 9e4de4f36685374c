package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracker/internal/logger"
	"tracker/internal/model"
	"tracker/internal/repository"
	"tracker/internal/scoring"
)

type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  *uuid.UUID
	Points      int
	EndTime     *time.Time
	GraceTime   *time.Time
}

// UpdateTaskInput carries optional edits; nil fields are left unchanged.
// Setting CompletionPercent recomputes earned points, nothing else does.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	AssignedTo        *uuid.UUID
	Unassign          bool
	Points            *int
	Status            *model.TaskStatus
	EndTime           *time.Time
	GraceTime         *time.Time
	CompletionPercent *int
}

type TaskService struct {
	tasks TaskStore
	users UserStore
	now   Clock
}

func NewTaskService(tasks TaskStore, users UserStore, now Clock) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, users: users, now: now}
}

func (s *TaskService) Create(ctx context.Context, actor *model.User, in CreateTaskInput) (*model.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if in.Points < 1 {
		return nil, scoring.ErrInvalidPoints
	}
	if err := validateDeadlines(in.EndTime, in.GraceTime); err != nil {
		return nil, err
	}
	if in.AssignedTo != nil {
		if err := s.checkAssignee(ctx, actor.CompanyID, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ID:          uuid.New(),
		CompanyID:   actor.CompanyID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actor.ID,
		Points:      in.Points,
		Status:      model.StatusPending,
		EndTime:     in.EndTime,
		GraceTime:   in.GraceTime,
		IsActive:    true,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("task created",
		zap.String("task_id", task.ID.String()),
		zap.String("company_id", task.CompanyID.String()),
		zap.Int("points", task.Points),
	)
	return task, nil
}

// Get returns a task visible to actor: any company task for admins, only
// assigned ones for employees.
func (s *TaskService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.CompanyID != actor.CompanyID {
		return nil, repository.ErrTaskNotFound
	}
	if !actor.IsAdmin() && (task.AssignedTo == nil || *task.AssignedTo != actor.ID) {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, actor *model.User) ([]model.Task, error) {
	if actor.IsAdmin() {
		return s.tasks.ListActiveByCompany(ctx, actor.CompanyID)
	}
	return s.tasks.ListByAssignee(ctx, actor.CompanyID, actor.ID)
}

// Update applies admin edits. Changing points or deadlines does not rescore
// work that was already reported.
func (s *TaskService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.CompanyID != actor.CompanyID {
		return nil, repository.ErrTaskNotFound
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrEmptyTitle
		}
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Points != nil {
		if *in.Points < 1 {
			return nil, scoring.ErrInvalidPoints
		}
		task.Points = *in.Points
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *in.Status
	}
	if in.EndTime != nil {
		task.EndTime = in.EndTime
	}
	if in.GraceTime != nil {
		task.GraceTime = in.GraceTime
	}
	if err := validateDeadlines(task.EndTime, task.GraceTime); err != nil {
		return nil, err
	}
	switch {
	case in.Unassign:
		task.AssignedTo = nil
	case in.AssignedTo != nil:
		if err := s.checkAssignee(ctx, actor.CompanyID, *in.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = in.AssignedTo
	}
	if in.CompletionPercent != nil {
		if err := scoring.Apply(task, *in.CompletionPercent, s.now()); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.CompanyID != actor.CompanyID {
		return repository.ErrTaskNotFound
	}
	if err := s.tasks.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.Info("task deleted", zap.String("task_id", id.String()), zap.String("actor_id", actor.ID.String()))
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, companyID, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUnknownAssignee
	}
	if err != nil {
		return err
	}
	if user.CompanyID != companyID || !user.IsActive {
		return ErrUnknownAssignee
	}
	return nil
}

func validateDeadlines(end, grace *time.Time) error {
	if end != nil && grace != nil && grace.Before(*end) {
		return ErrInvalidDeadlines
	}
	return nil
}
