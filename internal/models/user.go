package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254);not null;default:''" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
