package handlers

import (
	"facultypay/models"
	"facultypay/report"
	"facultypay/workload"
)

type entryView struct {
	ID                uint                  `json:"id"`
	FacultyID         uint                  `json:"faculty_id"`
	FacultyName       string                `json:"faculty_name,omitempty"`
	SubjectID         uint                  `json:"subject_id"`
	SubjectName       string                `json:"subject_name"`
	WorkDate          string                `json:"work_date"`
	WorkDateFormatted string                `json:"work_date_formatted"`
	ActivityType      workload.ActivityType `json:"activity_type"`
	StartTime         string                `json:"start_time"`
	EndTime           string                `json:"end_time"`
	DurationHours     float64               `json:"duration_hours"`
	HourlyRate        int64                 `json:"hourly_rate"`
	DailyPay          int64                 `json:"daily_pay"`
}

func viewEntry(e *models.WorkloadEntry) entryView {
	return entryView{
		ID:                e.ID,
		FacultyID:         e.FacultyID,
		FacultyName:       e.FacultyName(),
		SubjectID:         e.SubjectID,
		SubjectName:       e.SubjectName(),
		WorkDate:          e.WorkDate.Format(workload.DateLayout),
		WorkDateFormatted: report.FormatDate(e.WorkDate),
		ActivityType:      e.ActivityType,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		DurationHours:     e.DurationHours,
		HourlyRate:        e.HourlyRate,
		DailyPay:          e.DailyPay,
	}
}

func viewEntries(entries []models.WorkloadEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for i := range entries {
		views = append(views, viewEntry(&entries[i]))
	}
	return views
}

type summaryView struct {
	Month      string      `json:"month"`
	Entries    []entryView `json:"entries"`
	TotalPay   int64       `json:"total_pay"`
	TotalHours float64     `json:"total_hours"`
	UniqueDays int         `json:"unique_days"`
}

// summarizeMonth aggregates entries with the workload calculator and
// pairs the totals with display rows in the same order.
func summarizeMonth(month string, entries []models.WorkloadEntry) summaryView {
	calc := make([]workload.Entry, 0, len(entries))
	for i := range entries {
		calc = append(calc, entries[i].Calc())
	}
	summary := workload.AggregateMonth(calc)
	return summaryView{
		Month:      month,
		Entries:    viewEntries(entries),
		TotalPay:   summary.TotalPay,
		TotalHours: summary.TotalHours,
		UniqueDays: summary.UniqueDays,
	}
}

type subjectView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	FacultyID   uint   `json:"faculty_id"`
	FacultyName string `json:"faculty_name,omitempty"`
}

func viewSubjects(subjects []models.Subject) []subjectView {
	views := make([]subjectView, 0, len(subjects))
	for _, s := range subjects {
		v := subjectView{ID: s.ID, Name: s.Name, FacultyID: s.FacultyID}
		if s.Faculty != nil {
			v.FacultyName = s.Faculty.Name
		}
		views = append(views, v)
	}
	return views
}
