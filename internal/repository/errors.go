package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when an active task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")
)
