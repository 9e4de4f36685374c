// Package service holds the use cases behind the HTTP handlers: task
// management, progress reporting with scoring, and account management.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tracker/internal/model"
	"tracker/internal/scoring"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")

	ErrInvalidDeadlines = fmt.Errorf("%w: grace time must not be before end time", scoring.ErrInvalidInput)
	ErrUnknownAssignee  = fmt.Errorf("%w: assignee is not an active member of the company", scoring.ErrInvalidInput)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown task status", scoring.ErrInvalidInput)
	ErrEmptyTitle       = fmt.Errorf("%w: title is required", scoring.ErrInvalidInput)
	ErrInvalidRole      = fmt.Errorf("%w: role must be admin or employee", scoring.ErrInvalidInput)
)

// Clock returns the current instant. Production code passes time.Now.
type Clock func() time.Time

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Task, error)
	ListByAssignee(ctx context.Context, companyID, userID uuid.UUID) ([]model.Task, error)
	ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.User, error)
}

type CompanyRegistrar interface {
	RegisterCompany(ctx context.Context, company *model.Company, admin *model.User) error
}
