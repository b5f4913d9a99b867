package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

var userRowColumns = []string{
	"id", "employee_id", "name", "email", "password_hash", "is_admin", "dob",
	"blood_group", "designation", "avatar", "date_of_join", "created_at", "version",
}

func TestGetUserByEmployeeID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM users WHERE employee_id = \$1`).
		WithArgs("DB1234").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(3, "DB1234", "Asha Rao", "asha@example.com", "hash", false, "01-01-1995", "O+", "Engineer", "", "15-01-2024", time.Now(), 2))

	user, err := repo.GetUserByEmployeeID("DB1234")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "15-01-2024", user.DateOfJoin)
	assert.Equal(t, "Engineer", user.Designation)
	assert.Equal(t, int32(2), user.Version)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.GetUserByID(4)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	user := &domain.User{
		EmployeeID:   "DB4321",
		Name:         "Kabir Das",
		Email:        "kabir@example.com",
		PasswordHash: "hash",
		DOB:          "02-02-1990",
		BloodGroup:   "B+",
		DateOfJoin:   "01-03-2024",
	}

	mock.ExpectQuery(`INSERT INTO users .* to_date\(\$8, 'DD-MM-YYYY'\)`).
		WithArgs("DB4321", "Kabir Das", "kabir@example.com", "hash", false, "02-02-1990", "B+", "01-03-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(9, time.Now(), 1))

	require.NoError(t, repo.CreateUser(user))
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, int32(1), user.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_VersionConflict(t *testing.T) {
	repo, mock := newMockRepository(t)

	user := &domain.User{ID: 9, Name: "Kabir Das", Version: 1, DateOfJoin: "01-03-2024"}

	mock.ExpectQuery(`UPDATE users .* WHERE id = \$10 AND version = \$11`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	assert.ErrorIs(t, repo.UpdateUser(user), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchUsers(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`name ILIKE .* OR employee_id ILIKE`).
		WithArgs("ash", 10).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(3, "DB1234", "Asha Rao", "asha@example.com", "hash", false, "", "", "", "", "15-01-2024", time.Now(), 1).
			AddRow(5, "DB5555", "Ashwin Iyer", "ashwin@example.com", "hash", true, "", "", "", "", "16-01-2024", time.Now(), 1))

	users, err := repo.SearchUsers("ash", 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[1].IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckEmployeeIDIfExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE employee_id = \$1\)`).
		WithArgs("DB1000").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.CheckEmployeeIDIfExists("DB1000")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
