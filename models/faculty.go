package models

import (
	"time"
)

type Faculty struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `gorm:"not null;size:200" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null;size:200" json:"email"`
	Department string    `gorm:"not null;size:200" json:"department"`
}

// TableName keeps the plural the rest of the SQL uses.
func (Faculty) TableName() string {
	return "faculties"
}

// FacultyTotals is one row of the per-faculty workload roll-up.
type FacultyTotals struct {
	FacultyID uint    `json:"faculty_id"`
	Name      string  `json:"name"`
	Hours     float64 `json:"workload"`
	Pay       int64   `json:"salary"`
	Entries   int64   `json:"entries"`
}
