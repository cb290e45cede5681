package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/domain/repositories"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type OrderRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewOrderRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*OrderRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &OrderRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// Attempts to win the unique index on orders.number before giving up.
const maxCreateAttempts = 5

const orderColumns = `id, number, customer_kind, customer_name, customer_phone,
	customer_tax_id, institution_name, store_name, delivery_address, occasion,
	line_items, delivery_date, total, status, priority, created_at, updated_at`

// CreateOrder inserts the order and allocates its number in one statement:
// the candidate number is derived from MAX(number) inside the INSERT itself,
// so the allocation and the row appear atomically. Two concurrent inserts may
// compute the same candidate; the unique index on number rejects the loser,
// which simply recomputes and tries again. A rejected insert leaves nothing
// behind, so the sequence stays gapless. Six digits is a minimum width, not
// a cap: past 999999 the number grows a digit, same as OrderNumber.Next.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	const query = `
		WITH candidate AS (
			SELECT (coalesce(max(number), '000000')::integer + 1)::text AS n
			FROM orders
		)
		INSERT INTO orders (
			number, customer_kind, customer_name, customer_phone,
			customer_tax_id, institution_name, store_name, delivery_address,
			occasion, line_items, delivery_date, total, status, priority
		)
		SELECT lpad(n, greatest(6, length(n)), '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		FROM candidate
		RETURNING id, number, created_at, updated_at;
	`

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
			order.CustomerKind,
			order.CustomerName,
			order.CustomerPhone,
			order.CustomerTaxID,
			order.InstitutionName,
			order.StoreName,
			order.DeliveryAddress,
			order.Occasion,
			order.LineItems,
			order.DeliveryDate,
			order.Total,
			order.Status,
			order.Priority,
		).Scan(&order.ID, &order.Number, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				r.logger.With(ctx, "attempt", attempt+1).
					Debugf("order number collision, retrying")
				continue
			}
			return nil, fmt.Errorf("create order: %w", err)
		}

		return order, nil
	}

	return nil, fmt.Errorf("create order: %w: could not allocate order number after %d attempts",
		errs.ErrDataConflict, maxCreateAttempts)
}

func (r *OrderRepository) GetOrders(ctx context.Context) ([]*entities.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders ORDER BY created_at DESC", orderColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	return r.scanOrders(rows)
}

func (r *OrderRepository) GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]*entities.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM orders WHERE status = $1 ORDER BY created_at DESC", orderColumns)

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	return r.scanOrders(rows)
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	order := new(entities.Order)

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id).Scan(orderFields(order)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	const query = `
		UPDATE orders SET
			customer_kind = $2, customer_name = $3, customer_phone = $4,
			customer_tax_id = $5, institution_name = $6, store_name = $7,
			delivery_address = $8, occasion = $9, line_items = $10,
			delivery_date = $11, total = $12, status = $13, priority = $14,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at;
	`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		order.ID,
		order.CustomerKind,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerTaxID,
		order.InstitutionName,
		order.StoreName,
		order.DeliveryAddress,
		order.Occasion,
		order.LineItems,
		order.DeliveryDate,
		order.Total,
		order.Status,
		order.Priority,
	).Scan(&order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	const query = "DELETE FROM orders WHERE id = $1"

	result, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) scanOrders(rows *sql.Rows) ([]*entities.Order, error) {
	orders := make([]*entities.Order, 0)

	for rows.Next() {
		order := new(entities.Order)
		if err := rows.Scan(orderFields(order)...); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	// Rows.Err will report the last error encountered by Rows.Scan.
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// orderFields lists scan destinations in orderColumns order.
func orderFields(o *entities.Order) []any {
	return []any{
		&o.ID,
		&o.Number,
		&o.CustomerKind,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerTaxID,
		&o.InstitutionName,
		&o.StoreName,
		&o.DeliveryAddress,
		&o.Occasion,
		&o.LineItems,
		&o.DeliveryDate,
		&o.Total,
		&o.Status,
		&o.Priority,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
