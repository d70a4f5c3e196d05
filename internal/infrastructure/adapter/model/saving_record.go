package model

import (
	"time"
)

// SavingRecord represents the database model for ledger rows. The composite
// unique index on (user_id, day_number) enforces the one-row-per-day rule.
type SavingRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_day"`
	DayNumber int       `gorm:"not null;uniqueIndex:idx_user_day"`
	Amount    int64     `gorm:"not null"`
	Note      string    `gorm:"type:text"`
	Photo     string    `gorm:"size:255"`
	SavedOn   string    `gorm:"not null;size:10"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for SavingRecord
func (SavingRecord) TableName() string {
	return "saving_records"
}
