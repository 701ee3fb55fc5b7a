package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"facultypay/database"
	"facultypay/models"
)

// memStore is an in-memory Store for handler tests. It mirrors the
// ordering and cascade behaviour of the gorm store. Unique emails are
// case-sensitive, like the postgres unique indexes.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]*models.User
	faculty  map[uint]*models.Faculty
	subjects map[uint]*models.Subject
	entries  map[uint]*models.WorkloadEntry
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]*models.User{},
		faculty:  map[uint]*models.Faculty{},
		subjects: map[uint]*models.Subject{},
		entries:  map[uint]*models.WorkloadEntry{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *memStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	user.ID = s.id()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) ListFaculty(_ context.Context) ([]models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Faculty{}
	for _, f := range s.faculty {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) FindFaculty(_ context.Context, id uint) (*models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.faculty[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *memStore) FindFacultyByEmail(_ context.Context, email string) (*models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.faculty {
		if strings.EqualFold(f.Email, email) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) CreateFaculty(_ context.Context, faculty *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.faculty {
		if f.Email == faculty.Email {
			return database.ErrDuplicate
		}
	}
	faculty.ID = s.id()
	cp := *faculty
	s.faculty[faculty.ID] = &cp
	return nil
}

func (s *memStore) DeleteFaculty(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.faculty[id]
	if !ok {
		return database.ErrNotFound
	}
	for eid, e := range s.entries {
		if e.FacultyID == id {
			delete(s.entries, eid)
		}
	}
	for sid, sub := range s.subjects {
		if sub.FacultyID == id {
			delete(s.subjects, sid)
		}
	}
	for uid, u := range s.users {
		if u.Role == models.RoleFaculty && strings.EqualFold(u.Email, f.Email) {
			delete(s.users, uid)
		}
	}
	delete(s.faculty, id)
	return nil
}

func (s *memStore) FacultyTotals(_ context.Context) ([]models.FacultyTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var totals []models.FacultyTotals
	for _, f := range s.faculty {
		t := models.FacultyTotals{FacultyID: f.ID, Name: f.Name}
		for _, e := range s.entries {
			if e.FacultyID == f.ID {
				t.Hours += e.DurationHours
				t.Pay += e.DailyPay
				t.Entries++
			}
		}
		totals = append(totals, t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Hours != totals[j].Hours {
			return totals[i].Hours > totals[j].Hours
		}
		return totals[i].Name < totals[j].Name
	})
	return totals, nil
}

func (s *memStore) ListSubjects(_ context.Context, facultyID uint) ([]models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Subject
	for _, sub := range s.subjects {
		if facultyID != 0 && sub.FacultyID != facultyID {
			continue
		}
		cp := *sub
		if f, ok := s.faculty[sub.FacultyID]; ok {
			fc := *f
			cp.Faculty = &fc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) FindSubject(_ context.Context, id uint) (*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subjects[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *memStore) CreateSubject(_ context.Context, subject *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.faculty[subject.FacultyID]; !ok {
		return database.ErrInvalidReference
	}
	subject.ID = s.id()
	cp := *subject
	cp.Faculty = nil
	s.subjects[subject.ID] = &cp
	return nil
}

func (s *memStore) DeleteSubject(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[id]; !ok {
		return database.ErrNotFound
	}
	for eid, e := range s.entries {
		if e.SubjectID == id {
			delete(s.entries, eid)
		}
	}
	delete(s.subjects, id)
	return nil
}

func (s *memStore) store(entry *models.WorkloadEntry) {
	cp := *entry
	cp.Faculty = nil
	cp.Subject = nil
	s.entries[entry.ID] = &cp
}

func (s *memStore) CreateEntry(_ context.Context, entry *models.WorkloadEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.faculty[entry.FacultyID]; !ok {
		return database.ErrInvalidReference
	}
	entry.ID = s.id()
	entry.CreatedAt = time.Now()
	s.store(entry)
	return nil
}

func (s *memStore) FindEntry(_ context.Context, facultyID, entryID uint) (*models.WorkloadEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[entryID]; ok && e.FacultyID == facultyID {
		cp := *e
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *memStore) SaveEntry(_ context.Context, entry *models.WorkloadEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(entry)
	return nil
}

func (s *memStore) DeleteEntry(_ context.Context, facultyID, entryID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[entryID]; ok && e.FacultyID == facultyID {
		delete(s.entries, entryID)
		return nil
	}
	return database.ErrNotFound
}

func (s *memStore) ListEntries(_ context.Context, filter models.EntryFilter) ([]models.WorkloadEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkloadEntry
	for _, e := range s.entries {
		switch {
		case filter.FacultyID != 0 && e.FacultyID != filter.FacultyID,
			filter.SubjectID != 0 && e.SubjectID != filter.SubjectID,
			!filter.From.IsZero() && e.WorkDate.Before(filter.From),
			!filter.To.IsZero() && !e.WorkDate.Before(filter.To),
			filter.ExcludeID != 0 && e.ID == filter.ExcludeID:
			continue
		}
		cp := *e
		if f, ok := s.faculty[e.FacultyID]; ok {
			fc := *f
			cp.Faculty = &fc
		}
		if sub, ok := s.subjects[e.SubjectID]; ok {
			sc := *sub
			cp.Subject = &sc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.WorkDate.Equal(b.WorkDate) {
			return a.WorkDate.After(b.WorkDate)
		}
		if a.FacultyName() != b.FacultyName() {
			return a.FacultyName() < b.FacultyName()
		}
		return a.StartTime < b.StartTime
	})
	return out, nil
}
