package seed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

type memoryStore struct {
	users   []*domain.User
	records []*domain.Attendance
	failOn  string
}

func (m *memoryStore) CheckEmployeeIDIfExists(employeeID string) (bool, error) {
	for _, u := range m.users {
		if u.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) CreateUser(user *domain.User) error {
	if user.Email == m.failOn {
		return errors.New("duplicate email")
	}
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, user)
	return nil
}

func (m *memoryStore) InsertAttendance(record *domain.Attendance) error {
	m.records = append(m.records, record)
	return nil
}

func TestImportEmployees(t *testing.T) {
	csv := strings.Join([]string{
		"name,email,dob,bloodGroup,dateOfJoin",
		"Asha Rao,asha@example.com,01-01-1995,O+,15-01-2024",
		"Kabir Das,kabir@example.com,,,",
		",missing@example.com,,,",
		"Bad Date,bad@example.com,,,2024-01-15",
		"Dup,dup@example.com,,,",
	}, "\n")

	store := &memoryStore{failOn: "dup@example.com"}
	today := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	n, err := ImportEmployees(store, strings.NewReader(csv), "secret123", today)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.users, 2)

	assert.Equal(t, "15-01-2024", store.users[0].DateOfJoin)
	assert.Equal(t, "01-03-2024", store.users[1].DateOfJoin)
	assert.NotEqual(t, store.users[0].EmployeeID, store.users[1].EmployeeID)
	assert.Regexp(t, `^DB[0-9]{4}$`, store.users[0].EmployeeID)
	assert.False(t, store.users[0].IsAdmin)
}

func TestImportEmployees_MissingColumn(t *testing.T) {
	_, err := ImportEmployees(&memoryStore{}, strings.NewReader("name,dob\nAsha,01-01-1995\n"), "secret123", time.Now())
	assert.ErrorContains(t, err, `"email"`)
}

func TestSeedAttendanceHistory(t *testing.T) {
	store := &memoryStore{}
	today := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	n := SeedAttendanceHistory(store, []int64{1, 2}, 30, today)
	assert.Equal(t, len(store.records), n)
	assert.LessOrEqual(t, n, 60)

	for _, record := range store.records {
		require.NotEmpty(t, record.Sessions)
		assert.NotEqual(t, "01-03-2024", record.Date)
		for _, s := range record.Sessions {
			assert.Equal(t, record.Date, s.CheckInDate)
			assert.False(t, s.IsOpen())
		}
	}
}
