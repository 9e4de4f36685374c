package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Role           string    `gorm:"not null;check:role IN ('admin', 'employee')"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Роли пользователей внутри компании
const (
	RoleAdmin    = "admin"    // управляет задачами и видит рейтинг
	RoleEmployee = "employee" // работает со своими задачами
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
