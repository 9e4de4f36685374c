package repository

import (
	"context"

	"gorm.io/gorm"

	"tracker/internal/model"
)

// Store groups the repositories that share one connection.
type Store struct {
	db        *gorm.DB
	Users     *UserRepository
	Companies *CompanyRepository
	Tasks     *TaskRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Companies: NewCompanyRepository(db),
		Tasks:     NewTaskRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single database transaction
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// RegisterCompany creates a company together with its first admin
func (s *Store) RegisterCompany(ctx context.Context, company *model.Company, admin *model.User) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Companies.Create(ctx, company); err != nil {
			return err
		}
		admin.CompanyID = company.ID
		return tx.Users.Create(ctx, admin)
	})
}
