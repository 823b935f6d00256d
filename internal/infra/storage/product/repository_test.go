package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/pkg/dbmetrics"
)

var (
	serviceID  = uuid.MustParse("a1b2c3d4-e5f6-4a5b-8c7d-9e0f1a2b3c4d")
	providerID = uuid.MustParse("0b8d7c6e-5f4a-4b3c-9d2e-1f0a9b8c7d6e")
)

var productColumns = []string{
	"id", "provider_id", "title", "duration_minutes", "price_cents", "currency", "active", "created_at", "updated_at",
}

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestGetByID(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs(serviceID).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(serviceID.String(), providerID.String(), "Consultation", int64(60), int64(5000), "EUR", true, now, now))

		service, err := repo.GetByID(context.Background(), serviceID)
		require.NoError(t, err)

		assert.True(t, service.IsBookable(providerID))
		assert.True(t, service.HasPrice())
		assert.Equal(t, 60, service.Duration(30))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without duration", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`FROM products`).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(serviceID.String(), providerID.String(), "Call", nil, nil, "EUR", false, now, now))

		service, err := repo.GetByID(context.Background(), serviceID)
		require.NoError(t, err)

		assert.Nil(t, service.DurationMinutes)
		assert.Equal(t, 30, service.Duration(30))
		assert.False(t, service.IsBookable(providerID))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`FROM products`).WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := repo.GetByID(context.Background(), serviceID)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`FROM products`).WillReturnError(errors.New("timeout"))

		_, err := repo.GetByID(context.Background(), serviceID)
		assert.ErrorIs(t, err, ErrScanRow)
	})
}
