package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"facultypay/config"
	"facultypay/database"
	"facultypay/middleware"
	"facultypay/models"
	"facultypay/report"
	"facultypay/workload"
)

type WorkloadHandler struct {
	config *config.Config
	store  Store
}

func NewWorkloadHandler(cfg *config.Config, store Store) *WorkloadHandler {
	return &WorkloadHandler{
		config: cfg,
		store:  store,
	}
}

type entryRequest struct {
	Date         string `json:"date" validate:"required,isodate"`
	SubjectID    uint   `json:"subject_id" validate:"required"`
	ActivityType string `json:"activity_type" validate:"required,activity"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
}

// requestError is a rejection the client can fix.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// faculty resolves {facultyID} and checks the caller may read it, or
// write to it when write is set. It answers the request itself and
// returns nil when access is refused.
func (h *WorkloadHandler) faculty(w http.ResponseWriter, r *http.Request, write bool) *models.Faculty {
	user := middleware.GetUserFromContext(r.Context())

	id, ok := urlID(r, "facultyID")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid faculty ID")
		return nil
	}
	faculty, err := h.store.FindFaculty(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) && !user.IsAdmin() {
			// Do not reveal which faculty IDs exist.
			writeError(w, http.StatusForbidden, "Forbidden")
			return nil
		}
		writeStoreError(w, r, err, "Faculty not found")
		return nil
	}

	allowed := user.CanViewFaculty(faculty)
	if write {
		allowed = user.CanManageWorkloadFor(faculty)
	}
	if !allowed {
		writeError(w, http.StatusForbidden, "Forbidden")
		return nil
	}
	return faculty
}

func (h *WorkloadHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, false)
	if faculty == nil {
		return
	}

	subjects, err := h.store.ListSubjects(r.Context(), faculty.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewSubjects(subjects))
}

// buildEntry validates req for faculty and fills entry with the
// submitted fields and freshly computed pay. A non-zero entry.ID is left
// out of the overlap check so an edit does not collide with itself.
func (h *WorkloadHandler) buildEntry(r *http.Request, faculty *models.Faculty, req *entryRequest, entry *models.WorkloadEntry) error {
	req.ActivityType = strings.ToLower(strings.TrimSpace(req.ActivityType))
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	if err := validate.Struct(req); err != nil {
		return badRequest("%s", validationMessage(err))
	}

	date, err := workload.ParseDate(req.Date)
	if err != nil {
		return badRequest("Invalid date format")
	}
	activity, _ := workload.ParseActivityType(req.ActivityType)

	priced := *entry
	priced.ActivityType = activity
	priced.StartTime = req.StartTime
	priced.EndTime = req.EndTime
	priced.Reprice(h.config.Rates)
	if priced.DurationHours <= 0 {
		return badRequest("End time must be after start time")
	}

	subject, err := h.store.FindSubject(r.Context(), req.SubjectID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && subject.FacultyID != faculty.ID) {
		return badRequest("Subject is not assigned to this faculty member")
	}
	if err != nil {
		return err
	}

	from, to := database.DayRange(date)
	sameDay, err := h.store.ListEntries(r.Context(), models.EntryFilter{
		FacultyID: faculty.ID,
		From:      from,
		To:        to,
		ExcludeID: entry.ID,
	})
	if err != nil {
		return err
	}
	for _, other := range sameDay {
		if workload.Overlaps(req.StartTime, req.EndTime, other.StartTime, other.EndTime) {
			return badRequest("Time slot overlaps with existing entry (%s-%s)", other.StartTime, other.EndTime)
		}
	}

	priced.FacultyID = faculty.ID
	priced.SubjectID = subject.ID
	priced.Subject = subject
	priced.WorkDate = date
	*entry = priced
	return nil
}

func (h *WorkloadHandler) writeBuildError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeError(w, reqErr.status, reqErr.message)
		return
	}
	internalError(w, r, err)
}

func (h *WorkloadHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, true)
	if faculty == nil {
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var entry models.WorkloadEntry
	if err := h.buildEntry(r, faculty, &req, &entry); err != nil {
		h.writeBuildError(w, r, err)
		return
	}

	if err := h.store.CreateEntry(r.Context(), &entry); err != nil {
		writeStoreError(w, r, err, "Faculty not found")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Entry added successfully",
		"data":    viewEntry(&entry),
	})
}

func (h *WorkloadHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, true)
	if faculty == nil {
		return
	}

	entryID, ok := urlID(r, "entryID")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.store.FindEntry(r.Context(), faculty.ID, entryID)
	if err != nil {
		writeStoreError(w, r, err, "Entry not found")
		return
	}

	if err := h.buildEntry(r, faculty, &req, entry); err != nil {
		h.writeBuildError(w, r, err)
		return
	}

	if err := h.store.SaveEntry(r.Context(), entry); err != nil {
		writeStoreError(w, r, err, "Entry not found")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Entry updated successfully",
		"data":    viewEntry(entry),
	})
}

func (h *WorkloadHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, true)
	if faculty == nil {
		return
	}

	entryID, ok := urlID(r, "entryID")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.store.DeleteEntry(r.Context(), faculty.ID, entryID); err != nil {
		writeStoreError(w, r, err, "Entry not found")
		return
	}
	writeMessage(w, http.StatusOK, "Entry deleted")
}

// monthEntries loads the faculty member's entries for the ?month= query
// parameter. It answers the request itself on failure.
func (h *WorkloadHandler) monthEntries(w http.ResponseWriter, r *http.Request, faculty *models.Faculty) (string, []models.WorkloadEntry, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "Month parameter required")
		return "", nil, false
	}
	from, to, err := workload.ParseMonth(month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Month must be in YYYY-MM format")
		return "", nil, false
	}

	entries, err := h.store.ListEntries(r.Context(), models.EntryFilter{
		FacultyID: faculty.ID,
		From:      from,
		To:        to,
	})
	if err != nil {
		internalError(w, r, err)
		return "", nil, false
	}
	return month, entries, true
}

func (h *WorkloadHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, false)
	if faculty == nil {
		return
	}

	month, entries, ok := h.monthEntries(w, r, faculty)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, summarizeMonth(month, entries))
}

func (h *WorkloadHandler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	faculty := h.faculty(w, r, false)
	if faculty == nil {
		return
	}

	month, entries, ok := h.monthEntries(w, r, faculty)
	if !ok {
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "No entries found for this month")
		return
	}

	// Receipts list the month oldest first.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].WorkDate.Equal(entries[j].WorkDate) {
			return entries[i].WorkDate.Before(entries[j].WorkDate)
		}
		return entries[i].StartTime < entries[j].StartTime
	})

	var buf bytes.Buffer
	receipt, err := report.WriteReceipt(&buf, report.ReceiptData{
		Institution: h.config.InstitutionName,
		Faculty:     *faculty,
		Month:       month,
		Entries:     entries,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	setAttachment(w, receipt.Filename)
	w.Header().Set("X-Receipt-Number", receipt.Number)
	_, _ = buf.WriteTo(w)
}
