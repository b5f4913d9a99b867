package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

const sessionColumns = `
	c.id, c.check_in_time, c.check_in_date, c.check_in_location,
	c.check_out_time, c.check_out_date, c.check_out_location, c.work_hours
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanSession(row rowScanner) (*domain.CheckInOut, error) {
	s := &domain.CheckInOut{}
	dst := []any{
		&s.ID,
		&s.CheckInTime,
		&s.CheckInDate,
		&s.CheckInLocation,
		&s.CheckOutTime,
		&s.CheckOutDate,
		&s.CheckOutLocation,
		&s.WorkHours,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return s, nil
}

// latestSession returns the last session of the user's most recent
// attendance record, or sql.ErrNoRows.
func latestSession(ctx context.Context, q queryRower, userID int64) (*domain.CheckInOut, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendances a
		JOIN check_in_outs c ON c.attendance_id = a.id
		WHERE a.user_id = $1
		ORDER BY a.date DESC, c.id DESC
		LIMIT 1
	`
	return scanSession(q.QueryRowContext(ctx, query, userID))
}

func lockUser(ctx context.Context, tx *sql.Tx, userID int64) error {
	var id int64
	return tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
}

// CheckIn appends an open session to the user's record for date, creating
// the record when needed. It fails with domain.ErrAlreadyCheckedIn while
// the latest session is still open, and with sql.ErrNoRows for an unknown
// user. Calls for the same user are serialized on the user row.
func (r *Repository) CheckIn(userID int64, date, checkInTime, location string) (*domain.CheckInOut, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockUser(ctx, tx, userID); err != nil {
		return nil, err
	}

	latest, err := latestSession(ctx, tx, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	case latest.IsOpen():
		return nil, domain.ErrAlreadyCheckedIn
	}

	query := `
		INSERT INTO attendances (user_id, date)
		VALUES ($1, to_date($2, 'DD-MM-YYYY'))
		ON CONFLICT (user_id, date) DO UPDATE SET date = EXCLUDED.date
		RETURNING id
	`
	var attendanceID int64
	if err := tx.QueryRowContext(ctx, query, userID, date).Scan(&attendanceID); err != nil {
		return nil, err
	}

	session := &domain.CheckInOut{
		CheckInTime:     checkInTime,
		CheckInDate:     date,
		CheckInLocation: location,
	}

	query = `
		INSERT INTO check_in_outs (attendance_id, check_in_time, check_in_date, check_in_location)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, attendanceID, checkInTime, date, location).Scan(&session.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return session, nil
}

// CheckOut closes the latest session of the user's most recent record,
// whatever date it was opened on. workHours is stored as given.
func (r *Repository) CheckOut(userID int64, checkOutTime, date, location, workHours string) (*domain.CheckInOut, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockUser(ctx, tx, userID); err != nil {
		return nil, err
	}

	session, err := latestSession(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, domain.ErrNoOpenSession
	}

	query := `
		UPDATE check_in_outs
		SET
			check_out_time = $1,
			check_out_date = $2,
			check_out_location = $3,
			work_hours = $4
		WHERE id = $5 AND check_out_time IS NULL
	`
	res, err := tx.ExecContext(ctx, query, checkOutTime, date, location, workHours, session.ID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNoOpenSession
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	session.CheckOutTime = &checkOutTime
	session.CheckOutDate = &date
	session.CheckOutLocation = &location
	session.WorkHours = &workHours

	return session, nil
}

func (r *Repository) IsCheckedIn(userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	session, err := latestSession(ctx, r.dbpool, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return session.IsOpen(), nil
}

// GetOpenSession returns the newest session without a check-out across all
// of the user's records, or domain.ErrNoActiveSession.
func (r *Repository) GetOpenSession(userID int64) (*domain.CheckInOut, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendances a
		JOIN check_in_outs c ON c.attendance_id = a.id
		WHERE a.user_id = $1 AND c.check_out_time IS NULL
		ORDER BY a.date DESC, c.id DESC
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	session, err := scanSession(r.dbpool.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, err
	}

	return session, nil
}

func (r *Repository) CountSessionsOnDate(userID int64, date string) (int, error) {
	query := `
		SELECT COUNT(c.id)
		FROM attendances a
		JOIN check_in_outs c ON c.attendance_id = a.id
		WHERE a.user_id = $1 AND a.date = to_date($2, 'DD-MM-YYYY')
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var n int
	if err := r.dbpool.QueryRowContext(ctx, query, userID, date).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetAttendancesByUserID returns every record of the user, newest first,
// each with its sessions in insertion order.
func (r *Repository) GetAttendancesByUserID(userID int64) ([]*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			a.id,
			to_char(a.date, 'DD-MM-YYYY'),
			a.created_at,
			c.id,
			c.check_in_time,
			c.check_in_date,
			c.check_in_location,
			c.check_out_time,
			c.check_out_date,
			c.check_out_location,
			c.work_hours
		FROM attendances a
		LEFT JOIN check_in_outs c ON c.attendance_id = a.id
		WHERE a.user_id = $1
		ORDER BY a.date DESC, c.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.Attendance, 0)
	var current *domain.Attendance

	for rows.Next() {
		var row struct {
			ID        int64
			Date      string
			CreatedAt time.Time

			SessionID        sql.NullInt64
			CheckInTime      sql.NullString
			CheckInDate      sql.NullString
			CheckInLocation  sql.NullString
			CheckOutTime     *string
			CheckOutDate     *string
			CheckOutLocation *string
			WorkHours        *string
		}

		dst := []any{
			&row.ID,
			&row.Date,
			&row.CreatedAt,
			&row.SessionID,
			&row.CheckInTime,
			&row.CheckInDate,
			&row.CheckInLocation,
			&row.CheckOutTime,
			&row.CheckOutDate,
			&row.CheckOutLocation,
			&row.WorkHours,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		// rows of one record are adjacent
		if current == nil || current.ID != row.ID {
			current = &domain.Attendance{
				ID:        row.ID,
				UserID:    userID,
				Date:      row.Date,
				Sessions:  make([]domain.CheckInOut, 0),
				CreatedAt: row.CreatedAt,
			}
			records = append(records, current)
		}

		if !row.SessionID.Valid {
			continue
		}

		current.Sessions = append(current.Sessions, domain.CheckInOut{
			ID:               row.SessionID.Int64,
			CheckInTime:      row.CheckInTime.String,
			CheckInDate:      row.CheckInDate.String,
			CheckInLocation:  row.CheckInLocation.String,
			CheckOutTime:     row.CheckOutTime,
			CheckOutDate:     row.CheckOutDate,
			CheckOutLocation: row.CheckOutLocation,
			WorkHours:        row.WorkHours,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// InsertAttendance stores a complete record with its sessions in one
// transaction. Used to seed history.
func (r *Repository) InsertAttendance(record *domain.Attendance) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO attendances (user_id, date)
		VALUES ($1, to_date($2, 'DD-MM-YYYY'))
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, record.UserID, record.Date).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	for i := range record.Sessions {
		s := &record.Sessions[i]

		query := `
			INSERT INTO check_in_outs (
				attendance_id, check_in_time, check_in_date, check_in_location,
				check_out_time, check_out_date, check_out_location, work_hours
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		args := []any{record.ID, s.CheckInTime, s.CheckInDate, s.CheckInLocation, s.CheckOutTime, s.CheckOutDate, s.CheckOutLocation, s.WorkHours}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
