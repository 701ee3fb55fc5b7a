package models

import (
	"time"

	"facultypay/workload"
)

// WorkloadEntry is a persisted teaching activity. DurationHours,
// HourlyRate and DailyPay are derived from the times and activity and are
// only ever written by the pricing path.
type WorkloadEntry struct {
	ID            uint                  `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	FacultyID     uint                  `gorm:"not null;index:idx_workload_faculty_date,priority:1" json:"faculty_id"`
	Faculty       *Faculty              `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
	SubjectID     uint                  `gorm:"not null;index" json:"subject_id"`
	Subject       *Subject              `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
	WorkDate      time.Time             `gorm:"not null;type:date;index:idx_workload_faculty_date,priority:2" json:"work_date"`
	ActivityType  workload.ActivityType `gorm:"not null;size:20" json:"activity_type"`
	StartTime     string                `gorm:"not null;size:5" json:"start_time"`
	EndTime       string                `gorm:"not null;size:5" json:"end_time"`
	DurationHours float64               `gorm:"not null" json:"duration_hours"`
	HourlyRate    int64                 `gorm:"not null" json:"hourly_rate"`
	DailyPay      int64                 `gorm:"not null" json:"daily_pay"`
}

// EntryFilter narrows entry listings. Zero values mean "any".
type EntryFilter struct {
	FacultyID uint
	SubjectID uint
	From      time.Time
	To        time.Time
	ExcludeID uint
}

// Reprice recomputes the derived fields from the entry's own times and
// activity.
func (e *WorkloadEntry) Reprice(rates workload.RateTable) {
	e.DurationHours, e.HourlyRate, e.DailyPay = workload.Price(e.StartTime, e.EndTime, e.ActivityType, rates)
}

func (e *WorkloadEntry) Calc() workload.Entry {
	return workload.Entry{
		WorkDate:      e.WorkDate,
		SubjectID:     e.SubjectID,
		ActivityType:  e.ActivityType,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		DurationHours: e.DurationHours,
		DailyPay:      e.DailyPay,
	}
}

func (e *WorkloadEntry) SubjectName() string {
	if e.Subject == nil {
		return ""
	}
	return e.Subject.Name
}

func (e *WorkloadEntry) FacultyName() string {
	if e.Faculty == nil {
		return ""
	}
	return e.Faculty.Name
}
