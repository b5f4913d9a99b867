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

func TestCreateTask(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO tasks \(user_id, name, status\)`).
		WithArgs(int64(7), "Write onboarding guide", domain.TaskStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(5, created, 1))

	task := &domain.Task{UserID: 7, Name: "Write onboarding guide", Status: domain.TaskStatusPending}
	require.NoError(t, repo.CreateTask(task))
	assert.Equal(t, int64(5), task.ID)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, int32(1), task.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask(t *testing.T) {
	repo, mock := newMockRepository(t)
	in := "09:00:00 AM"

	mock.ExpectQuery(`UPDATE tasks .* WHERE id = \$4 AND version = \$5\s+RETURNING version`).
		WithArgs("Done", in, nil, int64(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))

	task := &domain.Task{ID: 5, UserID: 7, Status: "Done", CheckInTime: &in, Version: 1}
	require.NoError(t, repo.UpdateTask(task))
	assert.Equal(t, int32(2), task.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask_StaleVersion(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`UPDATE tasks`).
		WithArgs("Done", nil, nil, int64(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	err := repo.UpdateTask(&domain.Task{ID: 5, Status: "Done", Version: 1})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "status", "check_in_time", "check_out_time", "created_at", "version"}).
			AddRow(5, 7, "Write onboarding guide", "Pending", nil, nil, time.Now(), 3))

	task, err := repo.GetTask(7, 5)
	require.NoError(t, err)
	assert.Equal(t, "Pending", task.Status)
	assert.Nil(t, task.CheckInTime)
	assert.Equal(t, int32(3), task.Version)
}
