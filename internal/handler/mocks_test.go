package handler_test

import (
	"context"

	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/scoring"
	"tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Мок сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	session := args.Get(0)
	if session == nil {
		return nil, args.Error(1)
	}
	return session.(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	session := args.Get(0)
	if session == nil {
		return nil, args.Error(1)
	}
	return session.(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) CreateUser(ctx context.Context, actor *model.User, in service.NewUserInput) (*model.User, error) {
	args := m.Called(ctx, actor, in)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockAuthService) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	args := m.Called(ctx, actor)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

// Мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, actor *model.User, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, actor, in)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, actor, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, actor *model.User) ([]model.Task, error) {
	args := m.Called(ctx, actor)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in service.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, actor, id, in)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// Мок сервиса производительности
type MockPerformanceService struct {
	mock.Mock
}

func (m *MockPerformanceService) UpdateProgress(ctx context.Context, actor *model.User, taskID uuid.UUID, percent int) (*model.Task, error) {
	args := m.Called(ctx, actor, taskID, percent)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockPerformanceService) Leaderboard(ctx context.Context, companyID uuid.UUID) (scoring.Leaderboard, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(scoring.Leaderboard), args.Error(1)
}

func (m *MockPerformanceService) DailyProgress(ctx context.Context, companyID uuid.UUID) (scoring.DailySeries, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(scoring.DailySeries), args.Error(1)
}

func (m *MockPerformanceService) MyStats(ctx context.Context, actor *model.User) (service.MyStats, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(service.MyStats), args.Error(1)
}

// authenticatedAs подставляет пользователя в контекст вместо JWT middleware
func authenticatedAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.TokenKey, "test-token")
		c.Next()
	}
}
