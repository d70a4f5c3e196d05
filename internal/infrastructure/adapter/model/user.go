package model

import (
	"time"
)

// User represents the database model for users. Membership is the invite
// code itself; the association below makes group_code a real foreign key to
// groups(code) so a member row can never point at a missing group.
type User struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	Username       string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordDigest string    `gorm:"not null;size:255"`
	GroupCode      string    `gorm:"not null;index;size:16"`
	Multiplier     int       `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`

	Group Group `gorm:"foreignKey:GroupCode;references:Code"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
