package repository

import (
	"context"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

const taskColumns = `id, user_id, name, status, check_in_time, check_out_time, created_at, version`

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	dst := []any{
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.Status,
		&task.CheckInTime,
		&task.CheckOutTime,
		&task.CreatedAt,
		&task.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *Repository) CreateTask(task *domain.Task) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO tasks (user_id, name, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, task.UserID, task.Name, task.Status).Scan(&task.ID, &task.CreatedAt, &task.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTask(userID, taskID int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanTask(r.dbpool.QueryRowContext(ctx, query, taskID, userID))
}

func (r *Repository) queryTasks(query string, args ...any) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *Repository) GetTasksByUserID(userID int64) ([]domain.Task, error) {
	return r.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *Repository) GetAllTasks() ([]domain.Task, error) {
	return r.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY user_id, id`)
}

func (r *Repository) UpdateTask(task *domain.Task) error {
	query := `
		UPDATE tasks
		SET
			status = $1,
			check_in_time = $2,
			check_out_time = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{task.Status, task.CheckInTime, task.CheckOutTime, task.ID, task.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&task.Version); err != nil {
		return err
	}

	return nil
}
