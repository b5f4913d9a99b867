package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

func (h *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"task_name" validate:"required,max=200"`
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

	task := &domain.Task{
		UserID: user.ID,
		Name:   req.Name,
		Status: domain.TaskStatusPending,
	}
	if err := h.repository.CreateTask(task); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "task assigned successfully", task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskId"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid task id"))
		return
	}

	var req struct {
		Status       *string `json:"task_status" validate:"omitempty,min=1,max=50"`
		CheckInTime  *string `json:"check_in_time" validate:"omitempty,clock12h"`
		CheckOutTime *string `json:"check_out_time" validate:"omitempty,clock12h"`
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

	task, err := h.repository.GetTask(user.ID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "task not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.CheckInTime != nil {
		task.CheckInTime = req.CheckInTime
	}
	if req.CheckOutTime != nil {
		task.CheckOutTime = req.CheckOutTime
	}

	if err := h.repository.UpdateTask(task); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "task was modified by another request, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "task updated successfully", task)
}
