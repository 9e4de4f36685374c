package scoring

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"tracker/internal/model"
)

// PendingPenalty is deducted from a user's score for every unresolved task.
const PendingPenalty = 5

type LeaderboardRow struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	EarnedPoints int       `json:"earned_points"`
	TotalPoints  int       `json:"total_points"`
	PendingTasks int       `json:"pending_tasks"`
	Score        int       `json:"score"`
}

type Leaderboard struct {
	Rows []LeaderboardRow `json:"rows"`
	// Unresolved holds IDs of tasks skipped because their assignee is unknown.
	Unresolved []uuid.UUID `json:"-"`
}

// BuildLeaderboard ranks the assignees of tasks by score. Only users present
// in users are ranked; inactive tasks are ignored.
func BuildLeaderboard(tasks []model.Task, users map[uuid.UUID]model.User) Leaderboard {
	board := Leaderboard{Rows: []LeaderboardRow{}}
	index := make(map[uuid.UUID]int)

	for _, task := range tasks {
		if !task.IsActive {
			continue
		}
		if task.AssignedTo == nil {
			board.Unresolved = append(board.Unresolved, task.ID)
			continue
		}
		user, ok := users[*task.AssignedTo]
		if !ok {
			board.Unresolved = append(board.Unresolved, task.ID)
			continue
		}

		i, seen := index[user.ID]
		if !seen {
			i = len(board.Rows)
			index[user.ID] = i
			board.Rows = append(board.Rows, LeaderboardRow{UserID: user.ID, Name: user.Name})
		}

		row := &board.Rows[i]
		row.EarnedPoints += task.EarnedPoints
		row.TotalPoints += task.Points
		if task.Status.Unresolved() {
			row.PendingTasks++
		}
	}

	for i := range board.Rows {
		board.Rows[i].Score = board.Rows[i].EarnedPoints - board.Rows[i].PendingTasks*PendingPenalty
	}

	slices.SortStableFunc(board.Rows, func(a, b LeaderboardRow) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.EarnedPoints, a.EarnedPoints)
	})

	for i := range board.Rows {
		board.Rows[i].Rank = i + 1
	}
	return board
}

// Find returns the row for userID, if ranked.
func (l Leaderboard) Find(userID uuid.UUID) (LeaderboardRow, bool) {
	for _, row := range l.Rows {
		if row.UserID == userID {
			return row, true
		}
	}
	return LeaderboardRow{}, false
}
