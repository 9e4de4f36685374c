package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Unresolved reports whether a task in this status still counts as outstanding work.
func (s TaskStatus) Unresolved() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusReview
}

type Task struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title             string    `gorm:"not null"`
	Description       string
	AssignedTo        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy         uuid.UUID  `gorm:"type:uuid;not null"`
	Points            int        `gorm:"not null"`
	CompletionPercent int        `gorm:"not null;default:0"`
	Status            TaskStatus `gorm:"type:varchar(16);not null;default:'pending'"`
	EndTime           *time.Time
	GraceTime         *time.Time
	CompletedDate     *time.Time
	EarnedPoints      int       `gorm:"not null;default:0"`
	IsActive          bool      `gorm:"not null;default:true;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}
