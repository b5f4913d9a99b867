package utils

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeIDPattern = regexp.MustCompile(`^DB[1-9][0-9]{3}$`)

func TestGenerateEmployeeID(t *testing.T) {
	for i := 0; i < 500; i++ {
		assert.Regexp(t, employeeIDPattern, GenerateEmployeeID())
	}
}

func TestGenerateUniqueEmployeeID_RetriesOnCollision(t *testing.T) {
	taken := map[string]bool{}
	calls := 0
	exists := func(id string) (bool, error) {
		calls++
		// the first three draws collide
		if calls <= 3 {
			return true, nil
		}
		return taken[id], nil
	}

	id, err := GenerateUniqueEmployeeID(exists, 10)
	require.NoError(t, err)
	assert.Regexp(t, employeeIDPattern, id)
	assert.Equal(t, 4, calls)
}

func TestGenerateUniqueEmployeeID_NoDuplicates(t *testing.T) {
	taken := map[string]bool{}
	exists := func(id string) (bool, error) { return taken[id], nil }

	for i := 0; i < 2000; i++ {
		id, err := GenerateUniqueEmployeeID(exists, 1000)
		require.NoError(t, err)
		require.False(t, taken[id], "duplicate id %s", id)
		taken[id] = true
	}
}

func TestGenerateUniqueEmployeeID_Errors(t *testing.T) {
	_, err := GenerateUniqueEmployeeID(func(string) (bool, error) { return true, nil }, 5)
	assert.ErrorIs(t, err, ErrEmployeeIDExhausted)

	boom := errors.New("boom")
	_, err = GenerateUniqueEmployeeID(func(string) (bool, error) { return false, boom }, 5)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, `^[1-9][0-9]{5}$`, GenerateRandomOTP())
	}
}

func TestGenerateRandomWorkday(t *testing.T) {
	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		for _, s := range GenerateRandomWorkday(day) {
			assert.Equal(t, "02-05-2024", s.CheckInDate)
			_, err := TimeOfDay(s.CheckInTime)
			require.NoError(t, err)
			require.NotNil(t, s.WorkHours)
			_, err = ParseWorkHours(*s.WorkHours)
			require.NoError(t, err)
		}
	}
}
