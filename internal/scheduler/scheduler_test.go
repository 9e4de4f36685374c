package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"tracker/internal/logger"
	"tracker/internal/scoring"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) CompaniesWithTasks(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *MockSource) Leaderboard(ctx context.Context, companyID uuid.UUID) (scoring.Leaderboard, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(scoring.Leaderboard), args.Error(1)
}

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })
	return logs
}

func rows(n int) []scoring.LeaderboardRow {
	out := make([]scoring.LeaderboardRow, n)
	for i := range out {
		out[i] = scoring.LeaderboardRow{Rank: i + 1, UserID: uuid.New(), Score: 100 - i}
	}
	return out
}

func TestRunDigest_LogsTopRowsPerCompany(t *testing.T) {
	logs := observe(t)
	source := new(MockSource)
	c1, c2 := uuid.New(), uuid.New()

	source.On("CompaniesWithTasks", mock.Anything).Return([]uuid.UUID{c1, c2}, nil)
	source.On("Leaderboard", mock.Anything, c1).Return(scoring.Leaderboard{Rows: rows(5)}, nil)
	source.On("Leaderboard", mock.Anything, c2).Return(scoring.Leaderboard{Rows: rows(1)}, nil)

	reported := New(source, time.UTC).RunDigest(context.Background())

	assert.Equal(t, 2, reported)
	assert.Equal(t, DigestTopN+1, logs.FilterMessage("digest").Len())
	source.AssertExpectations(t)
}

func TestRunDigest_SkipsFailingCompany(t *testing.T) {
	logs := observe(t)
	source := new(MockSource)
	bad, good := uuid.New(), uuid.New()

	source.On("CompaniesWithTasks", mock.Anything).Return([]uuid.UUID{bad, good}, nil)
	source.On("Leaderboard", mock.Anything, bad).Return(scoring.Leaderboard{}, errors.New("db down"))
	source.On("Leaderboard", mock.Anything, good).Return(scoring.Leaderboard{Rows: rows(2)}, nil)

	reported := New(source, nil).RunDigest(context.Background())

	assert.Equal(t, 1, reported)
	assert.Equal(t, 1, logs.FilterMessage("digest: build leaderboard").Len())
	assert.Equal(t, 2, logs.FilterMessage("digest").Len())
}

func TestRunDigest_ListFailure(t *testing.T) {
	observe(t)
	source := new(MockSource)
	source.On("CompaniesWithTasks", mock.Anything).Return(nil, errors.New("db down"))

	assert.Equal(t, 0, New(source, time.UTC).RunDigest(context.Background()))
	source.AssertNotCalled(t, "Leaderboard", mock.Anything, mock.Anything)
}

func TestScheduleDigest_RejectsBadSpec(t *testing.T) {
	s := New(new(MockSource), time.UTC)

	_, err := s.ScheduleDigest("every day at six")
	assert.Error(t, err)

	_, err = s.ScheduleDigest("0 0 18 * * *")
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
