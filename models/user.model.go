package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Role                string `gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR
	Password            string `gorm:"not null"`
	IsEmailVerified     bool   `gorm:"default:false"`
	FailedLoginAttempts int    `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
