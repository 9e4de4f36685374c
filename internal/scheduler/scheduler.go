// Package scheduler runs the periodic leaderboard digest.
package scheduler

import (
	"context"
	"time"

	"tracker/internal/logger"
	"tracker/internal/scoring"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DigestTopN is how many leaderboard rows each company digest logs.
const DigestTopN = 3

// LeaderboardSource is the read side of the performance service the digest needs.
type LeaderboardSource interface {
	CompaniesWithTasks(ctx context.Context) ([]uuid.UUID, error)
	Leaderboard(ctx context.Context, companyID uuid.UUID) (scoring.Leaderboard, error)
}

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron    *cron.Cron
	source  LeaderboardSource
	timeout time.Duration
}

func New(source LeaderboardSource, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		source:  source,
		timeout: time.Minute,
	}
}

// ScheduleDigest registers the digest at spec (six fields, seconds first).
func (s *Scheduler) ScheduleDigest(spec string) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.RunDigest(ctx)
	})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running digest to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunDigest logs the top of every company leaderboard. It never writes scores.
// A failing company is logged and skipped.
func (s *Scheduler) RunDigest(ctx context.Context) int {
	companies, err := s.source.CompaniesWithTasks(ctx)
	if err != nil {
		logger.Error("digest: list companies", zap.Error(err))
		return 0
	}

	reported := 0
	for _, companyID := range companies {
		board, err := s.source.Leaderboard(ctx, companyID)
		if err != nil {
			logger.Error("digest: build leaderboard", zap.String("company_id", companyID.String()), zap.Error(err))
			continue
		}

		top := board.Rows
		if len(top) > DigestTopN {
			top = top[:DigestTopN]
		}
		for _, row := range top {
			logger.Info("digest",
				zap.String("company_id", companyID.String()),
				zap.Int("rank", row.Rank),
				zap.String("user_id", row.UserID.String()),
				zap.String("name", row.Name),
				zap.Int("score", row.Score),
				zap.Int("earned_points", row.EarnedPoints),
				zap.Int("pending_tasks", row.PendingTasks),
			)
		}
		reported++
	}
	return reported
}
