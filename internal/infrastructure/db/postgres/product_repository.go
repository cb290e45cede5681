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

type ProductRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewProductRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*ProductRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &ProductRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)

const productColumns = `id, name, price, description, code, tax_rate,
	image_url, category, available, created_at, updated_at`

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	const query = `
		INSERT INTO products (name, price, description, code, tax_rate,
			image_url, category, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at;
	`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		product.Name,
		product.Price,
		product.Description,
		product.Code,
		product.TaxRate,
		product.ImageURL,
		product.Category,
		product.Available,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, &errs.AlreadyExistsError{FieldName: "code"}
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY name ASC", productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	products := make([]*entities.Product, 0)

	for rows.Next() {
		product := new(entities.Product)
		if err = rows.Scan(productFields(product)...); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	product := new(entities.Product)

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id).Scan(productFields(product)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	const query = `
		UPDATE products SET
			name = $2, price = $3, description = $4, tax_rate = $5,
			image_url = $6, category = $7, available = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at;
	`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Description,
		product.TaxRate,
		product.ImageURL,
		product.Category,
		product.Available,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const query = "DELETE FROM products WHERE id = $1"

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

// productFields lists scan destinations in productColumns order.
func productFields(p *entities.Product) []any {
	return []any{
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.Code,
		&p.TaxRate,
		&p.ImageURL,
		&p.Category,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
