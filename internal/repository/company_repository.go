package repository

import (
	"context"
	"errors"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}
