package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

func isDuplicateDesignation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "designations_name_key"
}

func (h *Handler) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	designation := &domain.Designation{Name: req.Name}
	if err := h.repository.CreateDesignation(designation); err != nil {
		switch {
		case isDuplicateDesignation(err):
			h.conflict(w, r, "designation already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "designation created successfully", designation)
}

func (h *Handler) GetAllDesignations(w http.ResponseWriter, r *http.Request) {
	designations, err := h.repository.GetAllDesignations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "designations fetched", designations)
}

func (h *Handler) getDesignation(w http.ResponseWriter, r *http.Request, id int64) (*domain.Designation, bool) {
	designation, err := h.repository.GetDesignationByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "designation not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}
	return designation, true
}

// UpdateDesignation renames a designation. Users keep the name they were
// assigned.
func (h *Handler) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid designation id"))
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,max=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	designation, ok := h.getDesignation(w, r, id)
	if !ok {
		return
	}
	designation.Name = req.Name

	if err := h.repository.UpdateDesignation(designation); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "designation was modified by another request, please retry")
		case isDuplicateDesignation(err):
			h.conflict(w, r, "designation already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "designation updated successfully", designation)
}

func (h *Handler) AssignDesignation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DesignationID int64 `json:"designationId" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	designation, ok := h.getDesignation(w, r, req.DesignationID)
	if !ok {
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)
	user.Designation = designation.Name

	h.saveUser(w, r, user, "designation assigned successfully")
}
