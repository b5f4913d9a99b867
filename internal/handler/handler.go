package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/zovio-dev/hrms/backend/internal/config"
	"github.com/zovio-dev/hrms/backend/internal/report"
	"github.com/zovio-dev/hrms/backend/internal/repository"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

// MailPublisher is the part of *amqp.Channel the handlers use.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel MailPublisher
	redisClient *redis.Client
	reports     *report.Generator
	clock       func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh MailPublisher, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := utils.RegisterValidations(validate, trans); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		return nil, fmt.Errorf("attendance timezone: %w", err)
	}

	opts := report.DefaultOptions()
	if cfg.Attendance.ExpectedCheckIn != "" {
		opts.ExpectedCheckIn = cfg.Attendance.ExpectedCheckIn
	}
	if cfg.Attendance.ExpectedCheckOut != "" {
		opts.ExpectedCheckOut = cfg.Attendance.ExpectedCheckOut
	}
	if cfg.Attendance.FullDayHours > 0 {
		opts.FullDay = time.Duration(cfg.Attendance.FullDayHours) * time.Hour
	}
	reports, err := report.NewGenerator(opts)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		reports:     reports,
		clock: func() time.Time {
			return time.Now().In(loc)
		},

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Post("/signup/admin", h.SignupAdmin)
	h.Mux.Post("/signup/employee", h.SignupEmployee)
	h.Mux.Post("/login", h.Login)
	h.Mux.Get("/api/get-name/{token}", h.GetNameByToken)
	h.Mux.Get("/avatar/{employeeID}", h.GetAvatar)
	h.Mux.Post("/api/send-otp", h.SendOTP)
	h.Mux.Post("/api/verify-otp", h.VerifyOTP)

	// everything below needs a bearer token of an existing user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requester)

		r.Get("/me", h.GetMyProfile)
		r.Put("/me/password", h.UpdateMyPassword)

		r.Get("/api/get-employeeID", h.GetEmployeeID)
		r.Get("/api/check-admin", h.CheckAdmin)
		r.Get("/api/suggestions", h.GetSuggestions)
		r.Post("/api/verify", h.VerifyCard)

		r.Get("/users", h.GetAllUsers)
		r.Route("/user/{userId}", func(r chi.Router) {
			r.Use(h.userInfo)
			r.Get("/", h.GetUserProfile)
			r.With(h.requireAdmin, h.preventOperateInitialAdmin).Put("/", h.UpdateUser)
			r.With(h.requireAdmin, h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
		})
		r.With(h.requireAdmin, h.userInfo, h.preventOperateInitialAdmin).Put("/assign-admin/{userId}", h.AssignAdmin)
		r.With(h.requireAdmin, h.userInfo).Put("/assign-designation/{userId}", h.AssignDesignation)
		r.With(h.userInfo, h.requireSelfOrAdmin).Post("/upload-avatar/{userId}", h.UploadAvatar)

		r.With(h.userInfo).Post("/assign-task/{userId}", h.AssignTask)
		r.With(h.userInfo).Put("/update-task/{userId}/{taskId}", h.UpdateTask)
		r.With(h.requireAdmin).Get("/analytics", h.GetAnalytics)

		r.Route("/designations", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/", h.CreateDesignation)
			r.Get("/", h.GetAllDesignations)
			r.Put("/{id}", h.UpdateDesignation)
		})

		r.Post("/checkin", h.CheckIn)
		r.Post("/checkout", h.CheckOut)
		r.With(h.userInfo, h.requireSelfOrAdmin).Get("/checkstatus/{userId}", h.GetCheckStatus)
		r.With(h.userInfo, h.requireSelfOrAdmin).Get("/elapsedtime/{userId}", h.GetElapsedTime)

		r.Route("/api/attendanceReport/{employeeId}", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Use(h.employeeInfo)
			r.Get("/", h.GetAttendanceReport)
			r.Get("/export", h.ExportAttendanceReport)
		})
	})
}
