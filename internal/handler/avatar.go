package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.config.Server.MaxUploadSize << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		h.badRequest(w, r, errors.New("avatar upload must be multipart form data within the size limit"))
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		h.badRequest(w, r, errors.New("no file uploaded"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	encoded, err := utils.EncodeAvatar(raw, h.config.Avatar.Size)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrUnsupportedImage), errors.Is(err, utils.ErrUndecodableImage), errors.Is(err, utils.ErrImageTooLarge):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)
	user.Avatar = encoded

	h.saveUser(w, r, user, "avatar uploaded successfully")
}

func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := h.repository.GetUserByEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if user.Avatar == "" {
		h.notFound(w, r, "avatar not found")
		return
	}

	h.successResponse(w, r, "avatar fetched", map[string]string{"avatar": user.Avatar})
}
