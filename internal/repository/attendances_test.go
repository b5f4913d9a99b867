package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zovio-dev/hrms/backend/internal/config"
	"github.com/zovio-dev/hrms/backend/internal/domain"
)

var sessionRowColumns = []string{
	"id", "check_in_time", "check_in_date", "check_in_location",
	"check_out_time", "check_out_date", "check_out_location", "work_hours",
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	return NewRepository(cfg, db), mock
}

type AttendanceSuite struct {
	suite.Suite
	repo *Repository
	mock sqlmock.Sqlmock
}

func (s *AttendanceSuite) SetupTest() {
	s.repo, s.mock = newMockRepository(s.T())
}

func (s *AttendanceSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *AttendanceSuite) expectLock(userID int64) {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
}

func (s *AttendanceSuite) expectLatest(userID int64, rows *sqlmock.Rows) {
	s.mock.ExpectQuery(`ORDER BY a.date DESC, c.id DESC\s+LIMIT 1`).
		WithArgs(userID).
		WillReturnRows(rows)
}

func (s *AttendanceSuite) TestCheckIn_FirstSession() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns))
	s.mock.ExpectQuery(`INSERT INTO attendances .* ON CONFLICT \(user_id, date\)`).
		WithArgs(int64(7), "01-03-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	s.mock.ExpectQuery(`INSERT INTO check_in_outs`).
		WithArgs(int64(11), "09:30:00 AM", "01-03-2024", "office").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	s.mock.ExpectCommit()

	session, err := s.repo.CheckIn(7, "01-03-2024", "09:30:00 AM", "office")
	s.Require().NoError(err)
	s.Equal(int64(21), session.ID)
	s.True(session.IsOpen())
	s.Equal("01-03-2024", session.CheckInDate)
}

func (s *AttendanceSuite) TestCheckIn_AfterClosedSession() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "09:30:00 AM", "01-03-2024", "office", "01:00:00 PM", "01-03-2024", "office", "03:30:00"))
	s.mock.ExpectQuery(`INSERT INTO attendances`).
		WithArgs(int64(7), "01-03-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	s.mock.ExpectQuery(`INSERT INTO check_in_outs`).
		WithArgs(int64(11), "02:00:00 PM", "01-03-2024", "office").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
	s.mock.ExpectCommit()

	session, err := s.repo.CheckIn(7, "01-03-2024", "02:00:00 PM", "office")
	s.Require().NoError(err)
	s.Equal(int64(22), session.ID)
}

func (s *AttendanceSuite) TestCheckIn_AlreadyOpen() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "09:30:00 AM", "29-02-2024", "office", nil, nil, nil, nil))
	s.mock.ExpectRollback()

	_, err := s.repo.CheckIn(7, "01-03-2024", "09:35:00 AM", "office")
	s.ErrorIs(err, domain.ErrAlreadyCheckedIn)
}

func (s *AttendanceSuite) TestCheckIn_UnknownUser() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectRollback()

	_, err := s.repo.CheckIn(99, "01-03-2024", "09:30:00 AM", "office")
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *AttendanceSuite) TestCheckOut_ClosesOvernightSession() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "10:00:00 PM", "29-02-2024", "office", nil, nil, nil, nil))
	s.mock.ExpectExec(`UPDATE check_in_outs .* WHERE id = \$5 AND check_out_time IS NULL`).
		WithArgs("06:00:00 AM", "01-03-2024", "office", "08:00:00", int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	session, err := s.repo.CheckOut(7, "06:00:00 AM", "01-03-2024", "office", "08:00:00")
	s.Require().NoError(err)
	s.False(session.IsOpen())
	s.Equal("29-02-2024", session.CheckInDate)
	s.Equal("01-03-2024", *session.CheckOutDate)
	s.Equal("08:00:00", *session.WorkHours)
}

func (s *AttendanceSuite) TestCheckOut_NoSessions() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns))
	s.mock.ExpectRollback()

	_, err := s.repo.CheckOut(7, "06:30:00 PM", "01-03-2024", "office", "09:00:00")
	s.ErrorIs(err, domain.ErrNoOpenSession)
}

func (s *AttendanceSuite) TestCheckOut_AlreadyClosed() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "09:30:00 AM", "01-03-2024", "office", "06:30:00 PM", "01-03-2024", "office", "09:00:00"))
	s.mock.ExpectRollback()

	_, err := s.repo.CheckOut(7, "06:31:00 PM", "01-03-2024", "office", "09:01:00")
	s.ErrorIs(err, domain.ErrNoOpenSession)
}

func (s *AttendanceSuite) TestCheckOut_LostRace() {
	s.mock.ExpectBegin()
	s.expectLock(7)
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "09:30:00 AM", "01-03-2024", "office", nil, nil, nil, nil))
	s.mock.ExpectExec(`UPDATE check_in_outs`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	_, err := s.repo.CheckOut(7, "06:30:00 PM", "01-03-2024", "office", "09:00:00")
	s.ErrorIs(err, domain.ErrNoOpenSession)
}

func (s *AttendanceSuite) TestIsCheckedIn() {
	s.expectLatest(7, sqlmock.NewRows(sessionRowColumns).
		AddRow(20, "09:30:00 AM", "01-03-2024", "office", nil, nil, nil, nil))
	checkedIn, err := s.repo.IsCheckedIn(7)
	s.Require().NoError(err)
	s.True(checkedIn)

	s.expectLatest(8, sqlmock.NewRows(sessionRowColumns))
	checkedIn, err = s.repo.IsCheckedIn(8)
	s.Require().NoError(err)
	s.False(checkedIn)
}

func (s *AttendanceSuite) TestGetOpenSession() {
	s.mock.ExpectQuery(`c.check_out_time IS NULL`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(sessionRowColumns))

	_, err := s.repo.GetOpenSession(7)
	s.ErrorIs(err, domain.ErrNoActiveSession)
}

func (s *AttendanceSuite) TestGetAttendancesByUserID() {
	created := time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)
	columns := append([]string{"id", "date", "created_at"}, sessionRowColumns...)
	rows := sqlmock.NewRows(columns).
		AddRow(2, "01-03-2024", created, 21, "09:30:00 AM", "01-03-2024", "office", "01:00:00 PM", "01-03-2024", "office", "03:30:00").
		AddRow(2, "01-03-2024", created, 22, "02:00:00 PM", "01-03-2024", "office", nil, nil, nil, nil).
		AddRow(1, "29-02-2024", created, nil, nil, nil, nil, nil, nil, nil, nil)

	s.mock.ExpectQuery(`LEFT JOIN check_in_outs c`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	records, err := s.repo.GetAttendancesByUserID(7)
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	s.Equal("01-03-2024", records[0].Date)
	s.Require().Len(records[0].Sessions, 2)
	s.Equal("03:30:00", *records[0].Sessions[0].WorkHours)
	s.True(records[0].LatestSession().IsOpen())

	s.Equal("29-02-2024", records[1].Date)
	s.Empty(records[1].Sessions)
	s.Nil(records[1].LatestSession())
}

func TestAttendanceSuite(t *testing.T) {
	suite.Run(t, new(AttendanceSuite))
}

func TestInsertAttendance(t *testing.T) {
	repo, mock := newMockRepository(t)

	out, date, location, hours := "01:00:00 PM", "01-03-2024", "office", "03:30:00"
	record := &domain.Attendance{
		UserID: 7,
		Date:   "01-03-2024",
		Sessions: []domain.CheckInOut{
			{CheckInTime: "09:30:00 AM", CheckInDate: "01-03-2024", CheckInLocation: "office", CheckOutTime: &out, CheckOutDate: &date, CheckOutLocation: &location, WorkHours: &hours},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO attendances`).
		WithArgs(int64(7), "01-03-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))
	mock.ExpectQuery(`INSERT INTO check_in_outs`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	require.NoError(t, repo.InsertAttendance(record))
	assert.Equal(t, int64(3), record.ID)
	assert.Equal(t, int64(30), record.Sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
