package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmployeeIDExhausted = errors.New("could not find a free employee ID")

// GenerateEmployeeID returns "DB" followed by four digits in [1000, 9999].
func GenerateEmployeeID() string {
	return fmt.Sprintf("%s%d", domain.EmployeeIDPrefix, 1000+rand.Intn(9000))
}

// GenerateUniqueEmployeeID draws ids until exists reports one as free.
func GenerateUniqueEmployeeID(exists func(string) (bool, error), maxAttempts int) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := GenerateEmployeeID()
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrEmployeeIDExhausted
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

var firstNames = []string{
	"Aarav", "Vivaan", "Aditya", "Ananya", "Diya", "Ishaan", "Kavya", "Rohan",
	"Saanvi", "Arjun", "Meera", "Kabir", "Priya", "Rahul", "Sneha", "Vikram",
	"Nisha", "Dev", "Pooja", "Aryan",
}
var lastNames = []string{
	"Sharma", "Patel", "Das", "Mohanty", "Nayak", "Iyer", "Reddy", "Gupta",
	"Singh", "Mishra", "Rao", "Sahoo",
}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomUser(password string, emailDomainName string, joinDate time.Time) (*domain.User, error) {
	name := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	dob := time.Date(1975+rand.Intn(28), time.Month(rand.Intn(12)+1), rand.Intn(28)+1, 0, 0, 0, 0, time.UTC)

	user := &domain.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@%s", local, rand.Intn(1000), emailDomainName),
		PasswordHash: string(passwordHash),
		DOB:          FormatDate(dob),
		BloodGroup:   bloodGroups[rand.Intn(len(bloodGroups))],
		DateOfJoin:   FormatDate(joinDate),
	}

	return user, nil
}

// GenerateRandomWorkday returns one or two sessions roughly around office
// hours on day. A day may also come back empty to simulate an absence.
func GenerateRandomWorkday(day time.Time) []domain.CheckInOut {
	if rand.Intn(8) == 0 {
		return nil
	}

	date := FormatDate(day)
	start := day.Add(9*time.Hour + time.Duration(rand.Intn(60))*time.Minute)

	sessionsNum := rand.Intn(2) + 1
	sessions := make([]domain.CheckInOut, 0, sessionsNum)
	for i := 0; i < sessionsNum; i++ {
		length := time.Duration(3+rand.Intn(3))*time.Hour + time.Duration(rand.Intn(60))*time.Minute
		end := start.Add(length)

		outTime := end.Format(TimeLayout)
		outDate := FormatDate(end)
		location := "Office"
		workHours := FormatDuration(length)

		sessions = append(sessions, domain.CheckInOut{
			CheckInTime:      start.Format(TimeLayout),
			CheckInDate:      date,
			CheckInLocation:  location,
			CheckOutTime:     &outTime,
			CheckOutDate:     &outDate,
			CheckOutLocation: &location,
			WorkHours:        &workHours,
		})

		// lunch break
		start = end.Add(time.Duration(30+rand.Intn(30)) * time.Minute)
	}

	return sessions
}
