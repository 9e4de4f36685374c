package scoring_test

import (
	"math"
	"testing"
	"time"

	"tracker/internal/model"
	"tracker/internal/scoring"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deadline = time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return deadline.Add(d)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func partial(points, percent int) int {
	return int(math.Round(float64(points) * (float64(percent) / 100) * 0.3))
}

func TestComputeEarnedPoints_Tiers(t *testing.T) {
	end := ptr(deadline)
	grace := ptr(deadline.Add(48 * time.Hour))

	tests := []struct {
		name    string
		points  int
		percent int
		end     *time.Time
		grace   *time.Time
		now     time.Time
		want    int
	}{
		{"full credit before deadline", 100, 100, end, grace, at(-time.Hour), 100},
		{"full credit exactly at deadline", 100, 100, end, grace, at(0), 100},
		{"full credit without grace window", 40, 100, end, nil, at(-time.Minute), 40},
		{"grace credit inside window", 100, 100, end, grace, at(10 * time.Hour), 50},
		{"grace credit exactly at grace end", 100, 100, end, grace, at(48 * time.Hour), 50},
		{"grace credit rounds half up", 5, 100, end, grace, at(time.Hour), 3},
		{"late credit finished after grace", 100, 100, end, grace, at(49 * time.Hour), 30},
		{"late credit unfinished after grace", 100, 50, end, grace, at(72 * time.Hour), 15},
		{"in-flight credit before deadline", 100, 50, end, grace, at(-time.Hour), 15},
		{"in-flight credit inside grace window", 100, 80, end, grace, at(time.Hour), 24},
		{"no deadlines, finished", 100, 100, nil, nil, at(0), 30},
		{"no deadlines, half done", 20, 50, nil, nil, at(0), 3},
		{"only grace set, finished before grace", 100, 100, nil, grace, at(time.Hour), 30},
		{"only end set, finished late", 100, 100, end, nil, at(time.Hour), 30},
		{"zero progress", 100, 0, end, grace, at(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoring.ComputeEarnedPoints(tt.points, tt.percent, tt.end, tt.grace, tt.now)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeEarnedPoints_Rejects(t *testing.T) {
	end := ptr(deadline)

	_, err := scoring.ComputeEarnedPoints(100, 101, end, nil, at(0))
	assert.ErrorIs(t, err, scoring.ErrInvalidCompletion)
	assert.ErrorIs(t, err, scoring.ErrInvalidInput)

	_, err = scoring.ComputeEarnedPoints(100, -1, end, nil, at(0))
	assert.ErrorIs(t, err, scoring.ErrInvalidCompletion)

	_, err = scoring.ComputeEarnedPoints(0, 50, end, nil, at(0))
	assert.ErrorIs(t, err, scoring.ErrInvalidPoints)
	assert.ErrorIs(t, err, scoring.ErrInvalidInput)
}

// Grace before end is never produced by task validation; the ordering of the
// tiers still yields a defined answer.
func TestComputeEarnedPoints_GraceBeforeEnd(t *testing.T) {
	end := ptr(deadline)
	grace := ptr(deadline.Add(-time.Hour))

	got, err := scoring.ComputeEarnedPoints(100, 100, end, grace, at(-30*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 100, got)

	got, err = scoring.ComputeEarnedPoints(100, 100, end, grace, at(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 30, got)
}

func TestComputeEarnedPoints_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	end := ptr(deadline)
	grace := ptr(deadline.Add(48 * time.Hour))

	properties.Property("on-time completion earns the full budget", prop.ForAll(
		func(points int, minutesEarly int) bool {
			got, err := scoring.ComputeEarnedPoints(points, 100, end, grace, at(-time.Duration(minutesEarly)*time.Minute))
			return err == nil && got == points
		},
		gen.IntRange(1, 100000),
		gen.IntRange(0, 60*24*30),
	))

	properties.Property("completion inside grace window earns half", prop.ForAll(
		func(points int, minutesLate int) bool {
			got, err := scoring.ComputeEarnedPoints(points, 100, end, grace, at(time.Duration(minutesLate)*time.Minute))
			return err == nil && got == int(math.Round(float64(points)*0.5))
		},
		gen.IntRange(1, 100000),
		gen.IntRange(1, 48*60),
	))

	properties.Property("past grace any completion earns 30% of progress", prop.ForAll(
		func(points, percent, minutesLate int) bool {
			now := grace.Add(time.Duration(minutesLate) * time.Minute)
			got, err := scoring.ComputeEarnedPoints(points, percent, end, grace, now)
			return err == nil && got == partial(points, percent)
		},
		gen.IntRange(1, 100000),
		gen.IntRange(0, 100),
		gen.IntRange(1, 60*24*365),
	))

	properties.Property("no deadlines earns 30% of progress", prop.ForAll(
		func(points, percent int) bool {
			got, err := scoring.ComputeEarnedPoints(points, percent, nil, nil, at(0))
			return err == nil && got == partial(points, percent)
		},
		gen.IntRange(1, 100000),
		gen.IntRange(0, 100),
	))

	properties.Property("lower progress never earns more", prop.ForAll(
		func(points, first, drop int) bool {
			second := first - drop
			if second < 0 {
				second = 0
			}
			a, errA := scoring.ComputeEarnedPoints(points, first, end, grace, at(time.Hour))
			b, errB := scoring.ComputeEarnedPoints(points, second, end, grace, at(time.Hour))
			return errA == nil && errB == nil && b <= a
		},
		gen.IntRange(1, 100000),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestApply_CompletesTaskOnce(t *testing.T) {
	// Arrange
	task := &model.Task{
		Points:    100,
		Status:    model.StatusInProgress,
		EndTime:   ptr(deadline),
		GraceTime: ptr(deadline.Add(48 * time.Hour)),
	}
	finishedAt := at(10 * time.Hour)

	// Act
	err := scoring.Apply(task, 100, finishedAt)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, task.EarnedPoints)
	assert.Equal(t, 100, task.CompletionPercent)
	assert.Equal(t, model.StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedDate)
	assert.True(t, task.CompletedDate.Equal(finishedAt))

	// Повторное обновление не перезаписывает дату завершения
	err = scoring.Apply(task, 100, at(72*time.Hour))
	require.NoError(t, err)
	assert.True(t, task.CompletedDate.Equal(finishedAt))
	assert.Equal(t, 30, task.EarnedPoints)
}

func TestApply_ProgressIsNotRatcheted(t *testing.T) {
	task := &model.Task{Points: 100, Status: model.StatusInProgress}

	require.NoError(t, scoring.Apply(task, 80, at(0)))
	assert.Equal(t, 24, task.EarnedPoints)

	require.NoError(t, scoring.Apply(task, 40, at(time.Hour)))
	assert.Equal(t, 12, task.EarnedPoints)
	assert.Equal(t, 40, task.CompletionPercent)
	assert.Equal(t, model.StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedDate)
}

func TestApply_InvalidLeavesTaskUntouched(t *testing.T) {
	task := &model.Task{Points: 100, CompletionPercent: 20, EarnedPoints: 6, Status: model.StatusInProgress}

	err := scoring.Apply(task, 150, at(0))

	assert.ErrorIs(t, err, scoring.ErrInvalidCompletion)
	assert.Equal(t, 20, task.CompletionPercent)
	assert.Equal(t, 6, task.EarnedPoints)
}
