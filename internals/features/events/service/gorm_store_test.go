package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artcc_backend/internals/features/events/model"
)

func mockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return NewGormStore(gdb), mock
}

func TestGormStoreGetEventNotFound(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}))

	event, err := store.GetEvent(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetEvent(t *testing.T) {
	store, mock := mockStore(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"event_id", "event_title", "event_start", "event_end", "event_is_open"}).
		AddRow(7, "Memphis FNO", now, now.Add(3*time.Hour), true)
	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(rows)

	event, err := store.GetEvent(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Memphis FNO", event.EventTitle)
	assert.True(t, event.EventIsOpen)
}

func TestGormStoreHasRegistration(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "event_registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	has, err := store.HasRegistration(context.Background(), 7, 1000000)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGormStoreListRegistrationsByPositionsEmptyInput(t *testing.T) {
	store, _ := mockStore(t)

	// No position IDs means no query at all.
	regs, err := store.ListRegistrationsByPositions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestGormStoreAssignRegistrationIsTransactional(t *testing.T) {
	store, mock := mockStore(t)

	registration := &model.EventRegistrationModel{
		EventRegistrationID:         3,
		EventRegistrationEventID:    7,
		EventRegistrationPositionID: 5,
		EventRegistrationUserCid:    1000000,
		EventRegistrationStatus:     model.RegistrationAssigned,
	}
	position := &model.EventPositionModel{
		EventPositionID:        5,
		EventPositionEventID:   7,
		EventPositionName:      "MEM_TWR",
		EventPositionAvailable: false,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "event_registrations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "event_positions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.AssignRegistration(context.Background(), registration, position)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreAssignRegistrationRollsBackOnFailure(t *testing.T) {
	store, mock := mockStore(t)

	registration := &model.EventRegistrationModel{
		EventRegistrationID:      3,
		EventRegistrationEventID: 7,
		EventRegistrationStatus:  model.RegistrationAssigned,
	}
	position := &model.EventPositionModel{EventPositionID: 5, EventPositionEventID: 7}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "event_registrations"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.AssignRegistration(context.Background(), registration, position)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreReleaseRegistrationIsTransactional(t *testing.T) {
	store, mock := mockStore(t)

	registration := &model.EventRegistrationModel{
		EventRegistrationID:      3,
		EventRegistrationEventID: 7,
	}
	position := &model.EventPositionModel{
		EventPositionID:        5,
		EventPositionEventID:   7,
		EventPositionAvailable: true,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "event_registrations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "event_positions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ReleaseRegistration(context.Background(), registration, position)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
