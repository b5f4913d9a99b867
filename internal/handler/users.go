package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

const suggestionLimit = 10

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "users fetched", users)
}

func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	tasks, err := h.repository.GetTasksByUserID(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	user.Tasks = tasks

	h.successResponse(w, r, "user fetched", user)
}

// saveUser persists user and answers the request, mapping version and
// uniqueness conflicts to 409.
func (h *Handler) saveUser(w http.ResponseWriter, r *http.Request, user *domain.User, msg string) {
	if err := h.repository.UpdateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "user was modified by another request, please retry")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.conflict(w, r, "email already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, msg, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       *string `json:"name" validate:"omitempty,max=100"`
		Email      *string `json:"email" validate:"omitempty,email"`
		Password   *string `json:"password" validate:"omitempty,min=6,max=72"`
		DOB        *string `json:"dob" validate:"omitempty,max=32"`
		BloodGroup *string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
		DateOfJoin *string `json:"dateOfJoin" validate:"omitempty,ddmmyyyy"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		user.PasswordHash = string(hashedPassword)
	}
	if req.DOB != nil {
		user.DOB = *req.DOB
	}
	if req.BloodGroup != nil {
		user.BloodGroup = *req.BloodGroup
	}
	if req.DateOfJoin != nil {
		user.DateOfJoin = *req.DateOfJoin
	}

	h.saveUser(w, r, user, "user updated successfully")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(user.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user deleted successfully", nil)
}

func (h *Handler) AssignAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsAdmin *bool `json:"isAdmin" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)
	user.IsAdmin = *req.IsAdmin

	h.saveUser(w, r, user, "admin role updated")
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("searchTerm")
	if term == "" {
		h.badRequest(w, r, errors.New("searchTerm is required"))
		return
	}

	users, err := h.repository.SearchUsers(term, suggestionLimit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(users) == 0 {
		h.notFound(w, r, "no matching users")
		return
	}

	type suggestion struct {
		UserID     int64  `json:"userId"`
		Name       string `json:"name"`
		EmployeeID string `json:"employeeID"`
	}
	suggestions := make([]suggestion, 0, len(users))
	for _, u := range users {
		suggestions = append(suggestions, suggestion{UserID: u.ID, Name: u.Name, EmployeeID: u.EmployeeID})
	}

	h.successResponse(w, r, "suggestions fetched", suggestions)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	tasks, err := h.repository.GetAllTasks()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	tasksByUser := make(map[int64][]domain.Task, len(users))
	for _, t := range tasks {
		tasksByUser[t.UserID] = append(tasksByUser[t.UserID], t)
	}

	type userAnalytics struct {
		UserID   int64         `json:"userId"`
		UserName string        `json:"userName"`
		Tasks    []domain.Task `json:"tasks"`
	}
	analytics := make([]userAnalytics, 0, len(users))
	for _, u := range users {
		userTasks := tasksByUser[u.ID]
		if userTasks == nil {
			userTasks = make([]domain.Task, 0)
		}
		analytics = append(analytics, userAnalytics{UserID: u.ID, UserName: u.Name, Tasks: userTasks})
	}

	h.successResponse(w, r, "analytics fetched", map[string]any{
		"totalEmployees":     len(users),
		"totalTasksAssigned": len(tasks),
		"analyticsData":      analytics,
	})
}
