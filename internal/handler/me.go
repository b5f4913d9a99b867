package handler

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	requester := r.Context().Value(RequesterCtx).(*domain.User)

	tasks, err := h.repository.GetTasksByUserID(requester.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	requester.Tasks = tasks

	h.successResponse(w, r, "profile fetched", requester)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requester := r.Context().Value(RequesterCtx).(*domain.User)

	if err := bcrypt.CompareHashAndPassword([]byte(requester.PasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.badRequest(w, r, errors.New("old password is incorrect"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	requester.PasswordHash = string(hashedPassword)

	h.saveUser(w, r, requester, "password updated successfully")
}
