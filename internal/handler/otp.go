package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

func otpKey(email string) string {
	return fmt.Sprintf("otp_%s_verify", strings.ToLower(email))
}

func otpAttemptsKey(email string) string {
	return fmt.Sprintf("otp_%s_attempts", strings.ToLower(email))
}

// SendOTP mails a one-time code. The code never appears in the response.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, otpKey(req.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	// a new code gets a fresh set of attempts
	if err := h.redisClient.Del(ctx, otpAttemptsKey(req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeOTP,
		To:   req.Email,
		Data: domain.OTPMailData{
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // minutes in the mail, seconds in config
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "OTP sent successfully", nil)
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=6,numeric"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, otpKey(req.Email)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.badRequest(w, r, errors.New("invalid or expired OTP"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if otp != req.OTP {
		h.rejectOTP(ctx, w, r, req.Email)
		return
	}

	// one use only
	if err := h.redisClient.Del(ctx, otpKey(req.Email), otpAttemptsKey(req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "OTP verified", map[string]bool{"verified": true})
}

// rejectOTP counts a wrong guess. Once OTP.MaxAttempts is reached the code
// is discarded and a new one must be requested.
func (h *Handler) rejectOTP(ctx context.Context, w http.ResponseWriter, r *http.Request, email string) {
	attempts, err := h.redisClient.Incr(ctx, otpAttemptsKey(email)).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if attempts == 1 {
		if err := h.redisClient.Expire(ctx, otpAttemptsKey(email), time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	if attempts >= int64(h.config.OTP.MaxAttempts) {
		if err := h.redisClient.Del(ctx, otpKey(email), otpAttemptsKey(email)).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.badRequest(w, r, errors.New("too many failed attempts, request a new OTP"))
		return
	}

	h.badRequest(w, r, errors.New("invalid or expired OTP"))
}
