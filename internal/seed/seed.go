// Package seed fills a database with employees and attendance history for
// development and demos.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

const employeeIDAttempts = 100

type UserStore interface {
	CheckEmployeeIDIfExists(employeeID string) (bool, error)
	CreateUser(user *domain.User) error
}

type AttendanceStore interface {
	InsertAttendance(record *domain.Attendance) error
}

// ImportEmployees creates one employee per CSV row. The header must name
// the columns; name and email are required, dob, bloodGroup and dateOfJoin
// are optional. Rows that fail are logged and skipped.
func ImportEmployees(store UserStore, src io.Reader, password string, today time.Time) (int, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	for _, required := range []string{"name", "email"} {
		if !slices.Contains(headers, required) {
			return 0, fmt.Errorf("missing %q column", required)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return inserted, fmt.Errorf("line %d: %w", line, err)
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}

		if record["name"] == "" || record["email"] == "" {
			slog.Error("skipping row without name or email", "line", line)
			continue
		}

		dateOfJoin := record["dateOfJoin"]
		if dateOfJoin == "" {
			dateOfJoin = utils.FormatDate(today)
		} else if _, err := utils.ParseDate(dateOfJoin, today.Location()); err != nil {
			slog.Error("skipping row with bad join date", "line", line, "error", err)
			continue
		}

		employeeID, err := utils.GenerateUniqueEmployeeID(store.CheckEmployeeIDIfExists, employeeIDAttempts)
		if err != nil {
			return inserted, err
		}

		user := &domain.User{
			EmployeeID:   employeeID,
			Name:         record["name"],
			Email:        record["email"],
			PasswordHash: string(passwordHash),
			DOB:          record["dob"],
			BloodGroup:   record["bloodGroup"],
			DateOfJoin:   dateOfJoin,
		}
		if err := store.CreateUser(user); err != nil {
			slog.Error("failed to insert employee", "line", line, "email", user.Email, "error", err)
			continue
		}

		inserted++
	}

	return inserted, nil
}

// SeedAttendanceHistory writes random workdays for the days before today.
// It returns the number of attendance records stored.
func SeedAttendanceHistory(store AttendanceStore, userIDs []int64, days int, today time.Time) int {
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	inserted := 0
	for _, userID := range userIDs {
		for i := days; i >= 1; i-- {
			day := midnight.AddDate(0, 0, -i)

			sessions := utils.GenerateRandomWorkday(day)
			if len(sessions) == 0 {
				continue
			}

			record := &domain.Attendance{
				UserID:   userID,
				Date:     utils.FormatDate(day),
				Sessions: sessions,
			}
			if err := store.InsertAttendance(record); err != nil {
				slog.Error("failed to insert attendance", "user_id", userID, "date", record.Date, "error", err)
				continue
			}

			inserted++
		}
	}

	return inserted
}
