package handler

import (
	"context"
	"net/http"

	"tracker/internal/model"
	"tracker/internal/scoring"
	"tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PerformanceService interface {
	Leaderboard(ctx context.Context, companyID uuid.UUID) (scoring.Leaderboard, error)
	DailyProgress(ctx context.Context, companyID uuid.UUID) (scoring.DailySeries, error)
	MyStats(ctx context.Context, actor *model.User) (service.MyStats, error)
}

type PerformanceHandler struct {
	users       UserResolver
	performance PerformanceService
}

func NewPerformanceHandler(users UserResolver, performance PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{users: users, performance: performance}
}

// Leaderboard godoc
// @Summary      Company leaderboard
// @Description  Members ranked by earned points minus 5 per unresolved task
// @Tags         Performance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   scoring.LeaderboardRow
// @Failure      403  {object}  ErrorResponse
// @Router       /performance/leaderboard [get]
func (h *PerformanceHandler) Leaderboard(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view the leaderboard"})
		return
	}

	board, err := h.performance.Leaderboard(c.Request.Context(), actor.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, board.Rows)
}

// Daily godoc
// @Summary      Daily earned points
// @Description  Points of completed tasks per member and calendar day
// @Tags         Performance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  scoring.DailySeries
// @Failure      403  {object}  ErrorResponse
// @Router       /performance/daily [get]
func (h *PerformanceHandler) Daily(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}
	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view company progress"})
		return
	}

	series, err := h.performance.DailyProgress(c.Request.Context(), actor.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// Me godoc
// @Summary   Own standing and daily points
// @Tags      Performance
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  service.MyStats
// @Router    /performance/me [get]
func (h *PerformanceHandler) Me(c *gin.Context) {
	actor := currentUser(c, h.users)
	if actor == nil {
		return
	}

	stats, err := h.performance.MyStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
