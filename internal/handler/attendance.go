package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

// checkIn records a session for user at the server's current time and
// answers the request.
func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request, userID int64, location string) {
	date, now := utils.CurrentDateTime(h.clock())

	session, err := h.repository.CheckIn(userID, date, now, location)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "user not found")
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
			h.conflict(w, r, "already checked in, check out first")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "checked in successfully", session)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"userId" validate:"required,gt=0"`
		Location string `json:"check_in_location" validate:"max=255"`
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
	if !canActOn(requester, req.UserID) {
		h.forbidden(w, r, "you can only check in yourself")
		return
	}

	h.checkIn(w, r, req.UserID, req.Location)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64  `json:"userId" validate:"required,gt=0"`
		Location  string `json:"check_out_location" validate:"max=255"`
		WorkHours string `json:"workHours" validate:"required,hms"`
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
	if !canActOn(requester, req.UserID) {
		h.forbidden(w, r, "you can only check out yourself")
		return
	}

	date, now := utils.CurrentDateTime(h.clock())

	session, err := h.repository.CheckOut(req.UserID, now, date, req.Location, req.WorkHours)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "user not found")
		case errors.Is(err, domain.ErrNoOpenSession):
			h.conflict(w, r, "no open check-in session to close")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "checked out successfully", session)
}

func (h *Handler) GetCheckStatus(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	checkedIn, err := h.repository.IsCheckedIn(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "check status fetched", map[string]bool{"isCheckedIn": checkedIn})
}

func (h *Handler) GetElapsedTime(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	session, err := h.repository.GetOpenSession(user.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveSession):
			h.notFound(w, r, "no active check-in session")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	elapsed, err := utils.ElapsedSinceDate(session.CheckInDate, session.CheckInTime, h.clock())
	if err != nil {
		h.internalServerError(w, r, fmt.Errorf("session %d: %w", session.ID, err))
		return
	}

	h.successResponse(w, r, "elapsed time fetched", map[string]string{"elapsedTime": elapsed})
}

// VerifyCard checks in the holder of a scanned employee card, at most
// MaxDailyScans times a day.
func (h *Handler) VerifyCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"employeeID" validate:"required"`
		Location   string `json:"location" validate:"max=255"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmployeeID(req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, fmt.Sprintf("no match found for employee ID %s", req.EmployeeID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	scans, err := h.repository.CountSessionsOnDate(user.ID, utils.FormatDate(h.clock()))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if scans >= h.config.Attendance.MaxDailyScans {
		h.conflict(w, r, fmt.Sprintf("card has already been scanned %d times today for employee ID %s", scans, req.EmployeeID))
		return
	}

	h.checkIn(w, r, user.ID, req.Location)
}
