package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
)

// ParseUserRole accepts "employee" or "manager" in any letter case.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleManager:
		return RoleManager, true
	default:
		return "", false
	}
}

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Username     string    `gorm:"type:varchar(255);not null" bson:"username" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" bson:"password" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);index:idx_users_role" bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
