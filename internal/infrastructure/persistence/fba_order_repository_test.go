package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// newMockFBAOrderRepository creates a GormFBAOrderRepository with a mocked SQL connection
func newMockFBAOrderRepository(t *testing.T) (*GormFBAOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormFBAOrderRepository(gormDB), mock, mockDB
}

func TestGormFBAOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockFBAOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		regionID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "region_id", "product_sku", "product_name", "approximate_quantity", "priority_temp"}).
			AddRow(orderID, regionID, "ABC-123", "Widget", 50, 0)

		mock.ExpectQuery(`SELECT \* FROM "fba_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "ABC-123", order.ProductSKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockFBAOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "fba_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFBAOrderRepository_AwaitingFulfillment(t *testing.T) {
	repo, mock, mockDB := newMockFBAOrderRepository(t)
	defer mockDB.Close()

	prioritised := uuid.New()
	older := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "region_id", "product_sku", "product_name", "priority_temp", "created_at"}).
		AddRow(prioritised, uuid.New(), "ABC-123", "Widget", 3, now).
		AddRow(older, uuid.New(), "DEF-456", "Gadget", 0, now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "fba_orders" WHERE closed_at IS NULL AND on_hold = \$1 AND is_stopped = \$2 ORDER BY priority_temp DESC, created_at ASC`).
		WithArgs(false, false).
		WillReturnRows(rows)

	orders, err := repo.AwaitingFulfillment(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, prioritised, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFBAOrderRepository_MaxPriority(t *testing.T) {
	t.Run("returns the maximum", func(t *testing.T) {
		repo, mock, mockDB := newMockFBAOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT MAX\(priority_temp\) FROM "fba_orders" WHERE closed_at IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))

		max, err := repo.MaxPriority(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty queue yields zero", func(t *testing.T) {
		repo, mock, mockDB := newMockFBAOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT MAX\(priority_temp\) FROM "fba_orders" WHERE closed_at IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		max, err := repo.MaxPriority(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFBAOrderRepository_Delete(t *testing.T) {
	t.Run("missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockFBAOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectExec(`DELETE FROM "fba_orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), orderID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
