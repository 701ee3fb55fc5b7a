package models

import (
	"time"
)

type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	FacultyID uint      `gorm:"not null;index" json:"faculty_id"`
	Faculty   *Faculty  `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
}
