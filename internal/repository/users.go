package repository

import (
	"context"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

const userColumns = `
	id, employee_id, name, email, password_hash, is_admin, dob, blood_group,
	designation, avatar, to_char(date_of_join, 'DD-MM-YYYY'), created_at, version
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	dst := []any{
		&user.ID,
		&user.EmployeeID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.DOB,
		&user.BloodGroup,
		&user.Designation,
		&user.Avatar,
		&user.DateOfJoin,
		&user.CreatedAt,
		&user.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) getUserBy(column string, value any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanUser(r.dbpool.QueryRowContext(ctx, query, value))
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	return r.getUserBy("id", id)
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	return r.getUserBy("email", email)
}

func (r *Repository) GetUserByEmployeeID(employeeID string) (*domain.User, error) {
	return r.getUserBy("employee_id", employeeID)
}

func (r *Repository) queryUsers(query string, args ...any) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	return r.queryUsers(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
}

// SearchUsers matches term against names and employee ids, case-insensitively.
func (r *Repository) SearchUsers(term string, limit int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE name ILIKE '%' || $1 || '%' OR employee_id ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`
	return r.queryUsers(query, term, limit)
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (employee_id, name, email, password_hash, is_admin, dob, blood_group, date_of_join)
		VALUES ($1, $2, $3, $4, $5, $6, $7, to_date($8, 'DD-MM-YYYY'))
		RETURNING id, created_at, version
	`

	args := []any{
		user.EmployeeID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.DOB,
		user.BloodGroup,
		user.DateOfJoin,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

// UpdateUser writes every mutable column. It fails with sql.ErrNoRows when
// the row changed since user was read.
func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			is_admin = $4,
			dob = $5,
			blood_group = $6,
			designation = $7,
			avatar = $8,
			date_of_join = to_date($9, 'DD-MM-YYYY'),
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.DOB,
		user.BloodGroup,
		user.Designation,
		user.Avatar,
		user.DateOfJoin,
		user.ID,
		user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Version); err != nil {
		return err
	}

	return nil
}

// DeleteUser removes the user together with its tasks and attendance.
func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountUsers() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var n int
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) checkIfExists(query string, arg any) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, arg).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	return r.checkIfExists(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *Repository) CheckEmployeeIDIfExists(employeeID string) (bool, error) {
	return r.checkIfExists(`SELECT EXISTS (SELECT 1 FROM users WHERE employee_id = $1)`, employeeID)
}
