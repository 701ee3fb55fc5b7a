package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"strings"

	"facultypay/config"
	"facultypay/database"
	"facultypay/models"
	"facultypay/report"
	"facultypay/workload"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type AdminHandler struct {
	config *config.Config
	store  Store
}

func NewAdminHandler(cfg *config.Config, store Store) *AdminHandler {
	return &AdminHandler{
		config: cfg,
		store:  store,
	}
}

type facultyRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email,max=200"`
	Department string `json:"department" validate:"required,max=200"`
}

type subjectRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	FacultyID uint   `json:"faculty_id" validate:"required"`
}

// ListFaculty returns every faculty record, or with ?email= the single
// matching record (null when there is none).
func (h *AdminHandler) ListFaculty(w http.ResponseWriter, r *http.Request) {
	if email := strings.TrimSpace(r.URL.Query().Get("email")); email != "" {
		faculty, err := h.store.FindFacultyByEmail(r.Context(), email)
		if errors.Is(err, database.ErrNotFound) {
			writeData(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			internalError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, faculty)
		return
	}

	faculty, err := h.store.ListFaculty(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if faculty == nil {
		faculty = []models.Faculty{}
	}
	writeData(w, http.StatusOK, faculty)
}

func (h *AdminHandler) CreateFaculty(w http.ResponseWriter, r *http.Request) {
	var req facultyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Department = strings.TrimSpace(req.Department)
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.store.FindFacultyByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, r, err)
		return
	}

	faculty := models.Faculty{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}
	if err := h.store.CreateFaculty(r.Context(), &faculty); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Faculty added successfully",
		"data":    faculty,
	})
}

func (h *AdminHandler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid faculty ID")
		return
	}
	if err := h.store.DeleteFaculty(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "Faculty not found")
		return
	}
	writeMessage(w, http.StatusOK, "Faculty deleted")
}

func (h *AdminHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects(r.Context(), 0)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewSubjects(subjects))
}

func (h *AdminHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	faculty, err := h.store.FindFaculty(r.Context(), req.FacultyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Faculty not found")
			return
		}
		internalError(w, r, err)
		return
	}

	subject := models.Subject{Name: req.Name, FacultyID: faculty.ID}
	if err := h.store.CreateSubject(r.Context(), &subject); err != nil {
		writeStoreError(w, r, err, "Faculty not found")
		return
	}
	subject.Faculty = faculty

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Subject added successfully",
		"data":    viewSubjects([]models.Subject{subject})[0],
	})
}

func (h *AdminHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	if err := h.store.DeleteSubject(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "Subject not found")
		return
	}
	writeMessage(w, http.StatusOK, "Subject deleted")
}

// monthFilter reads an optional ?month= into an entry filter.
func monthFilter(r *http.Request, required bool) (string, models.EntryFilter, error) {
	month := r.URL.Query().Get("month")
	if month == "" {
		if required {
			return "", models.EntryFilter{}, badRequest("Month parameter required")
		}
		return "", models.EntryFilter{}, nil
	}
	from, to, err := workload.ParseMonth(month)
	if err != nil {
		return "", models.EntryFilter{}, badRequest("Month must be in YYYY-MM format")
	}
	return month, models.EntryFilter{From: from, To: to}, nil
}

// Workload lists every faculty member's entries, optionally for one month.
func (h *AdminHandler) Workload(w http.ResponseWriter, r *http.Request) {
	_, filter, err := monthFilter(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.store.ListEntries(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewEntries(entries))
}

type analyticsView struct {
	TotalFaculty       int                    `json:"total_faculty"`
	TotalEntries       int64                  `json:"total_workload_entries"`
	TotalSalary        int64                  `json:"total_salary"`
	TotalHours         float64                `json:"total_hours"`
	FacultyWorkload    []models.FacultyTotals `json:"faculty_workload"`
	SalaryDistribution []models.FacultyTotals `json:"salary_distribution"`
}

func buildAnalytics(totals []models.FacultyTotals) analyticsView {
	view := analyticsView{
		TotalFaculty:       len(totals),
		FacultyWorkload:    make([]models.FacultyTotals, 0, len(totals)),
		SalaryDistribution: []models.FacultyTotals{},
	}
	for _, t := range totals {
		view.TotalEntries += t.Entries
		view.TotalSalary += t.Pay
		view.TotalHours += t.Hours
		view.FacultyWorkload = append(view.FacultyWorkload, t)
		if t.Pay > 0 {
			view.SalaryDistribution = append(view.SalaryDistribution, t)
		}
	}
	view.TotalHours = math.Round(view.TotalHours*100) / 100

	sort.SliceStable(view.FacultyWorkload, func(i, j int) bool {
		return view.FacultyWorkload[i].Hours > view.FacultyWorkload[j].Hours
	})
	sort.SliceStable(view.SalaryDistribution, func(i, j int) bool {
		return view.SalaryDistribution[i].Pay > view.SalaryDistribution[j].Pay
	})
	return view
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.FacultyTotals(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, buildAnalytics(totals))
}

// Export downloads a month of entries for all faculty as CSV or XLSX.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	month, filter, err := monthFilter(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, "Format must be csv or xlsx")
		return
	}

	entries, err := h.store.ListEntries(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}
	// Exports read chronologically.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].WorkDate.Equal(entries[j].WorkDate) {
			return entries[i].WorkDate.Before(entries[j].WorkDate)
		}
		if entries[i].FacultyName() != entries[j].FacultyName() {
			return entries[i].FacultyName() < entries[j].FacultyName()
		}
		return entries[i].StartTime < entries[j].StartTime
	})

	filename := fmt.Sprintf("workload_%s.%s", month, format)
	setAttachment(w, filename)

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = report.WriteXLSX(w, entries)
	default:
		w.Header().Set("Content-Type", "text/csv")
		err = report.WriteCSV(w, entries)
	}
	if err != nil {
		// The response is already committed.
		log.Printf("[%s] export %s: %v", chimiddleware.GetReqID(r.Context()), filename, err)
	}
}
