package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracker/internal/logger"
	"tracker/internal/model"
	"tracker/internal/repository"
	"tracker/internal/scoring"
)

// PerformanceService applies the scoring engine to stored tasks. Every read
// recomputes from the current task set; nothing is cached.
type PerformanceService struct {
	tasks TaskStore
	users UserStore
	loc   *time.Location
	now   Clock
}

func NewPerformanceService(tasks TaskStore, users UserStore, loc *time.Location, now Clock) *PerformanceService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &PerformanceService{tasks: tasks, users: users, loc: loc, now: now}
}

// UpdateProgress records a completion percent reported by the assignee or a
// company admin and stores the recomputed earned points.
func (s *PerformanceService) UpdateProgress(ctx context.Context, actor *model.User, taskID uuid.UUID, percent int) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CompanyID != actor.CompanyID {
		return nil, repository.ErrTaskNotFound
	}
	if !canReport(actor, task) {
		return nil, ErrForbidden
	}

	previous := task.EarnedPoints
	if err := scoring.Apply(task, percent, s.now()); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("task progress updated",
		zap.String("task_id", task.ID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Int("completion_percent", task.CompletionPercent),
		zap.Int("earned_points", task.EarnedPoints),
		zap.Int("previous_points", previous),
		zap.String("status", string(task.Status)),
	)
	return task, nil
}

func canReport(actor *model.User, task *model.Task) bool {
	if actor.IsAdmin() {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == actor.ID
}

// Leaderboard ranks the members of a company. Tasks whose assignee cannot be
// resolved are skipped and logged.
func (s *PerformanceService) Leaderboard(ctx context.Context, companyID uuid.UUID) (scoring.Leaderboard, error) {
	tasks, err := s.tasks.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return scoring.Leaderboard{}, err
	}
	members, err := s.users.ListByCompany(ctx, companyID)
	if err != nil {
		return scoring.Leaderboard{}, err
	}

	users := make(map[uuid.UUID]model.User, len(members))
	for _, u := range members {
		users[u.ID] = u
	}

	board := scoring.BuildLeaderboard(tasks, users)
	for _, id := range board.Unresolved {
		logger.Warn("leaderboard skipped task with unknown assignee",
			zap.String("company_id", companyID.String()),
			zap.String("task_id", id.String()),
		)
	}
	return board, nil
}

// DailyProgress returns points earned per member and day.
func (s *PerformanceService) DailyProgress(ctx context.Context, companyID uuid.UUID) (scoring.DailySeries, error) {
	tasks, err := s.tasks.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return scoring.DailySeries{}, err
	}
	return scoring.BuildDailySeries(tasks, s.loc, s.now()), nil
}

type MyStats struct {
	Standing *scoring.LeaderboardRow `json:"standing"`
	Daily    scoring.DailySeries     `json:"daily"`
}

// MyStats returns the actor's own leaderboard row, if ranked, and daily series.
func (s *PerformanceService) MyStats(ctx context.Context, actor *model.User) (MyStats, error) {
	board, err := s.Leaderboard(ctx, actor.CompanyID)
	if err != nil {
		return MyStats{}, err
	}
	own, err := s.tasks.ListByAssignee(ctx, actor.CompanyID, actor.ID)
	if err != nil {
		return MyStats{}, err
	}

	stats := MyStats{Daily: scoring.BuildDailySeries(own, s.loc, s.now())}
	if row, ok := board.Find(actor.ID); ok {
		stats.Standing = &row
	}
	return stats, nil
}

// CompaniesWithTasks lists companies that currently have active tasks.
func (s *PerformanceService) CompaniesWithTasks(ctx context.Context) ([]uuid.UUID, error) {
	return s.tasks.ListCompanyIDs(ctx)
}
