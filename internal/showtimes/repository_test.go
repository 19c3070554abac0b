package showtimes

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestClaimSeatsCommitsWhenAllFlipped(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)
	showtimeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats" SET "status"=.+ WHERE showtime_id = .+ AND label IN .+ AND status = .+`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ClaimSeats(context.Background(), showtimeID, []string{"A1", "A2"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSeatsRollsBackOnPartialClaim(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)
	showtimeID := uuid.New()

	// Only one of two requested seats is still AVAILABLE
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "seats" SET "status"=.+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.ClaimSeats(context.Background(), showtimeID, []string{"A1", "A2"})
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeatsOnlyTouchesBookedRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)
	showtimeID := uuid.New()

	mock.ExpectExec(`UPDATE "seats" SET "status"=.+ WHERE showtime_id = .+ AND label IN .+ AND status = .+`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ReleaseSeats(context.Background(), showtimeID, []string{"B1", "B2"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSeatStatusReportsChangedRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)
	showtimeID := uuid.New()

	mock.ExpectExec(`UPDATE "seats" SET "status"=.+`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	changed, err := repo.SetSeatStatus(context.Background(), showtimeID,
		[]string{"C1", "C2", "C3"}, SeatAvailable, SeatBlocked)
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
