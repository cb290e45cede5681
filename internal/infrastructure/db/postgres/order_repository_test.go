package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOrderRepository(t *testing.T) (*OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewOrderRepository(db, trmsql.DefaultCtxGetter, logger.NewWithZap(zap.NewNop()))
	require.NoError(t, err)

	return repo, mock
}

func uniqueViolation() error {
	return &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "orders_number_key",
	}
}

func sampleOrder() *entities.Order {
	return &entities.Order{
		CustomerKind:    entities.KindRetail,
		CustomerName:    "Maria Lopez",
		CustomerPhone:   "555-0101",
		CustomerTaxID:   "XAXX010101000",
		DeliveryAddress: "Av. Central 12",
		LineItems: entities.LineItems{
			{Product: json.RawMessage(`{"name":"tres leches","price":25}`), Quantity: 2},
		},
		DeliveryDate: time.Now().Add(48 * time.Hour),
		Total:        decimal.NewFromInt(50),
		Status:       entities.StatusPending,
		Priority:     entities.DefaultPriority,
	}
}

func TestCreateOrder_RetriesOnNumberCollision(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	// Loser of the unique index race recomputes and tries again.
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(uniqueViolation())
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(
		sqlmock.NewRows([]string{"id", "number", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "000042", time.Now(), time.Now()))

	created, err := repo.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderNumber("000042"), created.Number)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	for i := 0; i < maxCreateAttempts; i++ {
		mock.ExpectQuery("INSERT INTO orders").WillReturnError(uniqueViolation())
	}

	_, err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, errs.ErrDataConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_OtherErrorsDoNotRetry(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(boom)

	_, err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errs.ErrDataConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetOrders_ScansRows(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	rows := sqlmock.NewRows([]string{
		"id", "number", "customer_kind", "customer_name", "customer_phone",
		"customer_tax_id", "institution_name", "store_name", "delivery_address",
		"occasion", "line_items", "delivery_date", "total", "status", "priority",
		"created_at", "updated_at",
	}).AddRow(
		uuid.NewString(), "000002", "retail", "Maria Lopez", "555-0101",
		"XAXX010101000", nil, nil, "Av. Central 12",
		"birthday", []byte(`[{"product":{"price":25},"quantity":2}]`),
		time.Now(), "50", "pending", 2,
		time.Now(), time.Now(),
	).AddRow(
		uuid.NewString(), "000001", "store", "Panaderia Sol", "555-0202",
		"SOL901231ABC", nil, nil, "Calle Norte 4",
		"", []byte(`[{"product":{"price":10},"quantity":1}]`),
		time.Now(), "10", "delivered", 1,
		time.Now(), time.Now(),
	)

	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at DESC").WillReturnRows(rows)

	orders, err := repo.GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, entities.OrderNumber("000002"), orders[0].Number)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entities.StatusPending, orders[0].Status)
	assert.Nil(t, orders[0].InstitutionName)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, float64(2), orders[0].LineItems[0].Quantity)

	assert.Equal(t, entities.OrderNumber("000001"), orders[1].Number)
	assert.Equal(t, entities.StatusDelivered, orders[1].Status)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	repo, mock := newTestOrderRepository(t)

	mock.ExpectQuery("UPDATE orders SET").WillReturnError(sql.ErrNoRows)

	order := sampleOrder()
	order.ID = uuid.New()

	_, err := repo.UpdateOrder(context.Background(), order)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	repo, mock := newTestOrderRepository(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM orders").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteOrder(context.Background(), id))

	mock.ExpectExec("DELETE FROM orders").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteOrder(context.Background(), id), errs.ErrNotFound)
}
