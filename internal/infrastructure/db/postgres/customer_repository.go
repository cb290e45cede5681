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
)

type CustomerRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewCustomerRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*CustomerRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &CustomerRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.CustomerRepository = (*CustomerRepository)(nil)

const customerColumns = `id, name, phone, email, tax_id, address, kind,
	created_at, updated_at`

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer *entities.Customer) (*entities.Customer, error) {
	const query = `
		INSERT INTO customers (name, phone, email, tax_id, address, kind)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.TaxID,
		customer.Address,
		customer.Kind,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetCustomers(ctx context.Context) ([]*entities.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers ORDER BY created_at DESC", customerColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	customers := make([]*entities.Customer, 0)

	for rows.Next() {
		customer := new(entities.Customer)
		if err = rows.Scan(customerFields(customer)...); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *CustomerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns)

	customer := new(entities.Customer)

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id).Scan(customerFields(customer)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *CustomerRepository) UpdateCustomer(ctx context.Context, customer *entities.Customer) (*entities.Customer, error) {
	const query = `
		UPDATE customers SET
			name = $2, phone = $3, email = $4, tax_id = $5, address = $6,
			kind = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at;
	`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.TaxID,
		customer.Address,
		customer.Kind,
	).Scan(&customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const query = "DELETE FROM customers WHERE id = $1"

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

// customerFields lists scan destinations in customerColumns order.
func customerFields(c *entities.Customer) []any {
	return []any{
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.TaxID,
		&c.Address,
		&c.Kind,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}
