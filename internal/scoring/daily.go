package scoring

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"tracker/internal/model"
)

// DayLayout is the calendar-day format used in daily series.
const DayLayout = "2006-01-02"

type DailyPointSample struct {
	UserID uuid.UUID `json:"user_id"`
	Date   string    `json:"date"`
	Points int       `json:"points"`
}

type DailySeries struct {
	Start   string             `json:"start"`
	End     string             `json:"end"`
	Samples []DailyPointSample `json:"samples"`
}

type dayKey struct {
	user uuid.UUID
	day  string
}

// BuildDailySeries sums earned points of completed tasks per assignee and
// calendar day in loc. The day comes from CompletedDate, falling back to
// UpdatedAt for records that never got one. When there is nothing to report
// the range collapses to the day of now.
func BuildDailySeries(tasks []model.Task, loc *time.Location, now time.Time) DailySeries {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[dayKey]int)
	for _, task := range tasks {
		if !task.IsActive || task.Status != model.StatusCompleted || task.AssignedTo == nil {
			continue
		}

		at := task.UpdatedAt
		if task.CompletedDate != nil {
			at = *task.CompletedDate
		}

		// legacy rows may have no computed value
		points := task.EarnedPoints
		if points <= 0 {
			points = task.Points
		}

		key := dayKey{user: *task.AssignedTo, day: at.In(loc).Format(DayLayout)}
		buckets[key] += points
	}

	series := DailySeries{Samples: make([]DailyPointSample, 0, len(buckets))}
	for key, points := range buckets {
		if points == 0 {
			continue
		}
		series.Samples = append(series.Samples, DailyPointSample{UserID: key.user, Date: key.day, Points: points})
	}

	slices.SortFunc(series.Samples, func(a, b DailyPointSample) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.UserID.String(), b.UserID.String())
	})

	if len(series.Samples) == 0 {
		today := now.In(loc).Format(DayLayout)
		series.Start, series.End = today, today
		return series
	}
	series.Start = series.Samples[0].Date
	series.End = series.Samples[len(series.Samples)-1].Date
	return series
}
