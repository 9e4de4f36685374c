package service_test

import (
	"context"

	"tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Мок хранилища задач
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskStore) ListActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, companyID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) ListByAssignee(ctx context.Context, companyID, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, companyID, userID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

// Мок хранилища пользователей
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, companyID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) RegisterCompany(ctx context.Context, company *model.Company, admin *model.User) error {
	return m.Called(ctx, company, admin).Error(0)
}

func member(companyID uuid.UUID, name, role string) *model.User {
	return &model.User{ID: uuid.New(), CompanyID: companyID, Name: name, Role: role, IsActive: true}
}
