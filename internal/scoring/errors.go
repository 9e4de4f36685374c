package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the parent of every validation failure raised by the calculator.
var ErrInvalidInput = errors.New("invalid input")

var (
	// ErrInvalidCompletion is returned when the completion percent is outside [0, 100]
	ErrInvalidCompletion = fmt.Errorf("%w: completion percent must be between 0 and 100", ErrInvalidInput)

	// ErrInvalidPoints is returned when a task has no positive point budget
	ErrInvalidPoints = fmt.Errorf("%w: points must be at least 1", ErrInvalidInput)
)
