package models

import (
	"time"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Email        string   `gorm:"size:320;uniqueIndex;not null"`
	FullName     *string  `gorm:"size:200"`
	Role         UserRole `gorm:"size:20;index;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	CreatedAt    time.Time

	TaskLinks   []TaskUserLink `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuditEvents []AuditEvent   `gorm:"foreignKey:ActorUserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
