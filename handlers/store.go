package handlers

import (
	"context"

	"facultypay/database"
	"facultypay/models"
)

// Store is the persistence the handlers need. *database.Store is the
// production implementation.
type Store interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error

	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	FindFaculty(ctx context.Context, id uint) (*models.Faculty, error)
	FindFacultyByEmail(ctx context.Context, email string) (*models.Faculty, error)
	CreateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id uint) error
	FacultyTotals(ctx context.Context) ([]models.FacultyTotals, error)

	ListSubjects(ctx context.Context, facultyID uint) ([]models.Subject, error)
	FindSubject(ctx context.Context, id uint) (*models.Subject, error)
	CreateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, id uint) error

	CreateEntry(ctx context.Context, entry *models.WorkloadEntry) error
	FindEntry(ctx context.Context, facultyID, entryID uint) (*models.WorkloadEntry, error)
	SaveEntry(ctx context.Context, entry *models.WorkloadEntry) error
	DeleteEntry(ctx context.Context, facultyID, entryID uint) error
	ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.WorkloadEntry, error)
}

var _ Store = (*database.Store)(nil)
