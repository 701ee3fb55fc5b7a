package database

import (
	"context"
	"fmt"
	"time"

	"facultypay/models"

	"gorm.io/gorm"
)

// Store is the gorm-backed persistence layer for users, faculty,
// subjects and workload entries.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Users

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindUserByEmail matches email case-insensitively.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", translate(err))
	}
	return nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("saving user: %w", translate(err))
	}
	return nil
}

// Faculty

func (s *Store) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	var faculty []models.Faculty
	if err := s.db.WithContext(ctx).Order("id asc").Find(&faculty).Error; err != nil {
		return nil, fmt.Errorf("listing faculty: %w", err)
	}
	return faculty, nil
}

func (s *Store) FindFaculty(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return nil, translate(err)
	}
	return &faculty, nil
}

func (s *Store) FindFacultyByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&faculty).Error; err != nil {
		return nil, translate(err)
	}
	return &faculty, nil
}

func (s *Store) CreateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if err := s.db.WithContext(ctx).Create(faculty).Error; err != nil {
		return fmt.Errorf("creating faculty: %w", translate(err))
	}
	return nil
}

// DeleteFaculty removes the faculty record together with its entries,
// subjects and the login account sharing its email.
func (s *Store) DeleteFaculty(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var faculty models.Faculty
		if err := tx.First(&faculty, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("faculty_id = ?", id).Delete(&models.WorkloadEntry{}).Error; err != nil {
			return fmt.Errorf("deleting entries: %w", err)
		}
		if err := tx.Where("faculty_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return fmt.Errorf("deleting subjects: %w", err)
		}
		if err := tx.Where("lower(email) = lower(?) AND role = ?", faculty.Email, models.RoleFaculty).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}
		if err := tx.Delete(&faculty).Error; err != nil {
			return fmt.Errorf("deleting faculty: %w", err)
		}
		return nil
	})
}

// FacultyTotals returns hours, pay and entry counts for every faculty
// member, busiest first.
func (s *Store) FacultyTotals(ctx context.Context) ([]models.FacultyTotals, error) {
	var totals []models.FacultyTotals
	err := s.db.WithContext(ctx).
		Table("faculties AS f").
		Select("f.id AS faculty_id, f.name AS name, " +
			"COALESCE(SUM(e.duration_hours), 0) AS hours, " +
			"COALESCE(SUM(e.daily_pay), 0) AS pay, " +
			"COUNT(e.id) AS entries").
		Joins("LEFT JOIN workload_entries e ON e.faculty_id = f.id").
		Group("f.id, f.name").
		Order("hours DESC, f.name").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("computing faculty totals: %w", err)
	}
	return totals, nil
}

// Subjects

func (s *Store) ListSubjects(ctx context.Context, facultyID uint) ([]models.Subject, error) {
	query := s.db.WithContext(ctx).Preload("Faculty").Order("name asc")
	if facultyID != 0 {
		query = query.Where("faculty_id = ?", facultyID)
	}
	var subjects []models.Subject
	if err := query.Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	return subjects, nil
}

func (s *Store) FindSubject(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, translate(err)
	}
	return &subject, nil
}

func (s *Store) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if err := s.db.WithContext(ctx).Create(subject).Error; err != nil {
		return fmt.Errorf("creating subject: %w", translate(err))
	}
	return nil
}

func (s *Store) DeleteSubject(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&models.WorkloadEntry{}).Error; err != nil {
			return fmt.Errorf("deleting entries: %w", err)
		}
		result := tx.Delete(&models.Subject{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting subject: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Workload entries

func (s *Store) CreateEntry(ctx context.Context, entry *models.WorkloadEntry) error {
	if err := s.db.WithContext(ctx).Omit("Faculty", "Subject").Create(entry).Error; err != nil {
		return fmt.Errorf("creating entry: %w", translate(err))
	}
	return nil
}

func (s *Store) FindEntry(ctx context.Context, facultyID, entryID uint) (*models.WorkloadEntry, error) {
	var entry models.WorkloadEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND faculty_id = ?", entryID, facultyID).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (s *Store) SaveEntry(ctx context.Context, entry *models.WorkloadEntry) error {
	if err := s.db.WithContext(ctx).Omit("Faculty", "Subject").Save(entry).Error; err != nil {
		return fmt.Errorf("saving entry: %w", translate(err))
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, facultyID, entryID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND faculty_id = ?", entryID, facultyID).
		Delete(&models.WorkloadEntry{})
	if result.Error != nil {
		return fmt.Errorf("deleting entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEntries returns entries matching filter with faculty and subject
// loaded, newest day first and by start time within a day.
func (s *Store) ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.WorkloadEntry, error) {
	query := s.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Subject").
		Joins("JOIN faculties ON faculties.id = workload_entries.faculty_id")

	if filter.FacultyID != 0 {
		query = query.Where("workload_entries.faculty_id = ?", filter.FacultyID)
	}
	if filter.SubjectID != 0 {
		query = query.Where("workload_entries.subject_id = ?", filter.SubjectID)
	}
	if !filter.From.IsZero() {
		query = query.Where("workload_entries.work_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("workload_entries.work_date < ?", filter.To)
	}
	if filter.ExcludeID != 0 {
		query = query.Where("workload_entries.id <> ?", filter.ExcludeID)
	}

	var entries []models.WorkloadEntry
	err := query.
		Order("workload_entries.work_date desc, faculties.name asc, workload_entries.start_time asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// DayRange is the half-open range covering the calendar day of t.
func DayRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}
