package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/config"
	"github.com/zovio-dev/hrms/backend/internal/repository"
	"github.com/zovio-dev/hrms/backend/internal/seed"
	"github.com/zovio-dev/hrms/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var days int
	var csvPath string

	flag.IntVar(&op, "op", 0, "operation (1: insert random employees, 2: insert random attendance history, 3: import employees from CSV)")
	flag.IntVar(&n, "n", 5, "number of employees to insert")
	flag.IntVar(&days, "days", 30, "number of past days of attendance to generate")
	flag.StringVar(&csvPath, "csv", "", "CSV file for -op 3")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		logger.Error("invalid attendance timezone", "error", err)
		os.Exit(1)
	}
	today := time.Now().In(loc)

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect, ping to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of employees must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			joinDate := today.AddDate(0, 0, -days)
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, joinDate)
			if err != nil {
				slog.Error("failed to generate employee", slog.String("error", err.Error()))
				continue
			}

			user.EmployeeID, err = utils.GenerateUniqueEmployeeID(repo.CheckEmployeeIDIfExists, 100)
			if err != nil {
				slog.Error("failed to generate employee id", slog.String("error", err.Error()))
				return
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert employee", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("employees inserted", slog.Int("count", cnt))
	case 2:
		if days <= 0 {
			slog.Error("number of days must be positive")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("failed to list users", slog.String("error", err.Error()))
			return
		}

		userIDs := make([]int64, 0, len(users))
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}

		cnt := seed.SeedAttendanceHistory(repo, userIDs, days, today)
		slog.Info("attendance records inserted", slog.Int("count", cnt))
	case 3:
		file, err := os.Open(csvPath)
		if err != nil {
			slog.Error("failed to open CSV", "path", csvPath, "error", err)
			return
		}
		defer file.Close()

		cnt, err := seed.ImportEmployees(repo, file, cfg.Seed.User.Password, today)
		if err != nil {
			slog.Error("import stopped", "error", err)
		}
		slog.Info("employees imported", slog.Int("count", cnt))
	default:
		slog.Error("unknown operation")
	}
}
