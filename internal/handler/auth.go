package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

const (
	employeeIDAttempts = 100
	signupAttempts     = 3
)

type AuthClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (h *Handler) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	})
	return token.SignedString([]byte(h.config.JWT.Secret))
}

func (h *Handler) parseToken(tokenString string) (*Identity, error) {
	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}

	return &Identity{UserID: userID, Email: claims.Email, IsAdmin: claims.IsAdmin}, nil
}

func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

type signupRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	DOB        string `json:"dob" validate:"max=32"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DateOfJoin string `json:"dateOfJoin" validate:"omitempty,ddmmyyyy"`
}

func (h *Handler) SignupAdmin(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, true)
}

func (h *Handler) SignupEmployee(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, false)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	var req signupRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	exists, err := h.repository.CheckEmailIfExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.conflict(w, r, "email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dateOfJoin := req.DateOfJoin
	if dateOfJoin == "" {
		dateOfJoin = utils.FormatDate(h.clock())
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      isAdmin,
		DOB:          req.DOB,
		BloodGroup:   req.BloodGroup,
		DateOfJoin:   dateOfJoin,
	}

	// a free id can still be taken by a concurrent signup before the insert
	for attempt := 1; ; attempt++ {
		user.EmployeeID, err = utils.GenerateUniqueEmployeeID(h.repository.CheckEmployeeIDIfExists, employeeIDAttempts)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		err = h.repository.CreateUser(user)
		if err == nil {
			break
		}

		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_employee_id_key" && attempt < signupAttempts:
			continue
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.conflict(w, r, "email already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// the account exists either way, a lost welcome mail is only logged
	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   user.Email,
		Data: domain.WelcomeMailData{
			Name:       user.Name,
			EmployeeID: user.EmployeeID,
			IsAdmin:    user.IsAdmin,
		},
	}); err != nil {
		slog.Warn("failed to queue welcome mail", "email", user.Email, "error", err)
	}

	msg := "employee created successfully"
	if isAdmin {
		msg = "admin created successfully"
	}
	h.writeJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: msg,
		Data:    user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "login successful", map[string]any{
		"token":      token,
		"userId":     user.ID,
		"isAdmin":    user.IsAdmin,
		"username":   user.Name,
		"employeeID": user.EmployeeID,
	})
}

func (h *Handler) GetNameByToken(w http.ResponseWriter, r *http.Request) {
	identity, err := h.parseToken(chi.URLParam(r, "token"))
	if err != nil {
		h.forbidden(w, r, "invalid token")
		return
	}

	user, err := h.repository.GetUserByID(identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "name fetched", map[string]string{"name": user.Name})
}

func (h *Handler) GetEmployeeID(w http.ResponseWriter, r *http.Request) {
	requester := r.Context().Value(RequesterCtx).(*domain.User)
	h.successResponse(w, r, "employee id fetched", map[string]string{"employeeID": requester.EmployeeID})
}

func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	requester := r.Context().Value(RequesterCtx).(*domain.User)
	h.successResponse(w, r, "role fetched", map[string]bool{"isAdmin": requester.IsAdmin})
}
