package handlers

import (
	"errors"
	"net/http"
	"strings"

	"facultypay/config"
	"facultypay/database"
	"facultypay/middleware"
	"facultypay/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
	store  Store
}

func NewAuthHandler(cfg *config.Config, store Store) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		store:  store,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=5"`
	Role     string `json:"role" validate:"omitempty,oneof=faculty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type userView struct {
	ID                 uint        `json:"id"`
	Username           string      `json:"username"`
	Email              string      `json:"email"`
	Role               models.Role `json:"role"`
	MustChangePassword bool        `json:"must_change_password"`
	FacultyID          *uint       `json:"faculty_id"`
}

// viewUser describes user for clients, resolving the linked faculty
// record when there is one.
func (h *AuthHandler) viewUser(r *http.Request, user *models.User) (userView, error) {
	view := userView{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}
	if !user.IsFaculty() {
		return view, nil
	}
	faculty, err := h.store.FindFacultyByEmail(r.Context(), user.Email)
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		return view, err
	default:
		view.FacultyID = &faculty.ID
	}
	return view, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.store.FindUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		internalError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		internalError(w, r, err)
		return
	}
	middleware.SetTokenCookie(w, token, h.config.JWTExpiration)

	view, err := h.viewUser(r, user)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "token": token, "user": view})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	// Check if username already exists
	if _, err := h.store.FindUserByUsername(r.Context(), req.Username); err == nil {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, r, err)
		return
	}

	// Accounts reach faculty records by case-insensitive email, so the
	// email must be free in any case.
	if _, err := h.store.FindUserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(w, r, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleFaculty,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Registration successful!")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.SetTokenCookie(w, "", 0)
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	view, err := h.viewUser(r, user)
	if err != nil {
		internalError(w, r, err)
		return
	}

	var faculty *models.Faculty
	if view.FacultyID != nil {
		faculty, err = h.store.FindFaculty(r.Context(), *view.FacultyID)
		if err != nil {
			writeStoreError(w, r, err, "Faculty not found")
			return
		}
	}
	writeData(w, http.StatusOK, envelope{"user": view, "faculty": faculty})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Login trims, so a stored password must be trimmed too.
	req.CurrentPassword = strings.TrimSpace(req.CurrentPassword)
	req.NewPassword = strings.TrimSpace(req.NewPassword)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	// Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		internalError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := h.store.SaveUser(r.Context(), user); err != nil {
		internalError(w, r, err)
		return
	}

	// Regenerate token with updated user info
	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		internalError(w, r, err)
		return
	}
	middleware.SetTokenCookie(w, token, h.config.JWTExpiration)

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Password updated", "token": token})
}
