package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:    "success",
			booking: domain.NewBooking("ev-1", "user@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings \(event_id, email, created_at, updated_at\)`).
					WithArgs("ev-1", "user@example.com", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-uuid-1"))
			},
			wantID: "bk-uuid-1",
		},
		{
			name:    "db error",
			booking: domain.NewBooking("ev-1", "user@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(StaticDB{DB: db})
			err = repo.Create(ctx, tt.booking)
			if tt.wantErr {
				require.Error(t, err)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.booking.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "email", "created_at", "updated_at"}

	tests := []struct {
		name    string
		eventID string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Booking
		wantErr bool
	}{
		{
			name:    "success multiple",
			eventID: "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(cols).
					AddRow("bk-1", "ev-1", "a@example.com", now, now).
					AddRow("bk-2", "ev-1", "b@example.com", now, now)
				mock.ExpectQuery(`SELECT id, event_id, email, created_at, updated_at`).
					WithArgs("ev-1").
					WillReturnRows(rows)
			},
			want: []*domain.Booking{
				{ID: "bk-1", EventID: "ev-1", Email: "a@example.com", CreatedAt: now, UpdatedAt: now},
				{ID: "bk-2", EventID: "ev-1", Email: "b@example.com", CreatedAt: now, UpdatedAt: now},
			},
		},
		{
			name:    "success empty",
			eventID: "ev-none",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, email, created_at, updated_at`).
					WithArgs("ev-none").
					WillReturnRows(sqlmock.NewRows(cols))
			},
			want: []*domain.Booking{},
		},
		{
			name:    "db error",
			eventID: "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, email, created_at, updated_at`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(StaticDB{DB: db})
			got, err := repo.ListByEventID(ctx, tt.eventID)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
