// Package scoring turns task completion into earned points and aggregates
// those points into per-company leaderboards and daily progress series.
//
// Everything here is a pure function of its arguments: the current time is
// always passed in and nothing touches storage.
package scoring

import (
	"math"
	"time"

	"tracker/internal/model"
)

const (
	// GraceRate is the share of the budget awarded for completion inside the grace window.
	GraceRate = 0.5
	// PartialRate caps credit for late or unfinished work.
	PartialRate = 0.3
)

// ComputeEarnedPoints returns the points a task earns at instant now when its
// reported completion is completionPercent.
//
// Tiers, first match wins:
//   - 100% done on or before endTime: the full budget
//   - 100% done after endTime but on or before graceTime: half the budget
//   - past graceTime, any completion: points * pct * 0.3
//   - anything else (deadline not reached, or no deadlines): points * pct * 0.3
//
// The last two tiers share a formula on purpose. A task without an endTime can
// never earn full or grace credit. Values are rounded with math.Round.
func ComputeEarnedPoints(points, completionPercent int, endTime, graceTime *time.Time, now time.Time) (int, error) {
	if points < 1 {
		return 0, ErrInvalidPoints
	}
	if completionPercent < 0 || completionPercent > 100 {
		return 0, ErrInvalidCompletion
	}

	pct := float64(completionPercent) / 100
	done := pct >= 1

	switch {
	case done && endTime != nil && !now.After(*endTime):
		return points, nil
	case done && endTime != nil && graceTime != nil && now.After(*endTime) && !now.After(*graceTime):
		return round(float64(points) * GraceRate), nil
	case graceTime != nil && now.After(*graceTime):
		return round(float64(points) * pct * PartialRate), nil
	default:
		return round(float64(points) * pct * PartialRate), nil
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// Apply records a new completion percent on task and recomputes its earned
// points. Reaching 100% marks the task completed and stamps CompletedDate the
// first time only. The task is left untouched when validation fails.
func Apply(task *model.Task, completionPercent int, now time.Time) error {
	earned, err := ComputeEarnedPoints(task.Points, completionPercent, task.EndTime, task.GraceTime, now)
	if err != nil {
		return err
	}

	task.CompletionPercent = completionPercent
	task.EarnedPoints = earned

	if completionPercent >= 100 {
		task.Status = model.StatusCompleted
		if task.CompletedDate == nil {
			completed := now
			task.CompletedDate = &completed
		}
	}
	return nil
}
