package model

import (
	"time"
)

// Group represents the database model for savings groups
type Group struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Code      string    `gorm:"uniqueIndex;not null;size:16"`
	Name      string    `gorm:"not null;size:255"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}
