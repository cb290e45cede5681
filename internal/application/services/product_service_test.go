package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entities.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*entities.Product)}
}

func (m *mockProductRepository) CreateProduct(_ context.Context, product *entities.Product) (*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.Code == product.Code {
			return nil, &errs.AlreadyExistsError{FieldName: "code"}
		}
	}

	created := *product
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.products[created.ID] = &created

	clone := created
	return &clone, nil
}

func (m *mockProductRepository) GetProducts(_ context.Context) ([]*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entities.Product, 0, len(m.products))
	for _, p := range m.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockProductRepository) GetProductByID(_ context.Context, id uuid.UUID) (*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) UpdateProduct(_ context.Context, product *entities.Product) (*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return nil, errs.ErrNotFound
	}

	updated := *product
	updated.UpdatedAt = time.Now()
	m.products[product.ID] = &updated

	clone := updated
	return &clone, nil
}

func (m *mockProductRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func newTestProductService(t *testing.T) (*ProductService, *mockProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	trManager := manager.Must(
		trmsql.NewDefaultFactory(db),
		manager.WithCtxManager(trmcontext.DefaultManager),
	)

	repo := newMockProductRepository()

	service, err := NewProductService(repo, trManager, logger.NewWithZap(zap.NewNop()))
	require.NoError(t, err)

	return service, repo, mock
}

func TestCreateProduct_Defaults(t *testing.T) {
	service, _, _ := newTestProductService(t)

	price := decimal.NewFromInt(25)
	product, err := service.CreateProduct(context.Background(), &params.CreateProduct{
		Name:  "Tres leches",
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultCategory, product.Category)
	assert.True(t, product.TaxRate.Equal(decimal.RequireFromString(entities.DefaultTaxRate)))
	assert.True(t, strings.HasPrefix(product.Code, "PROD-"), "generated code %q", product.Code)
	assert.True(t, product.Available)
	assert.True(t, product.Price.Equal(price))
}

func TestCreateProduct_ExplicitFieldsKept(t *testing.T) {
	service, _, _ := newTestProductService(t)

	price := decimal.NewFromInt(10)
	taxRate := decimal.RequireFromString("0.08")
	product, err := service.CreateProduct(context.Background(), &params.CreateProduct{
		Name:     "Concha",
		Price:    &price,
		TaxRate:  &taxRate,
		Code:     "PAN-001",
		Category: "Pan dulce",
	})
	require.NoError(t, err)

	assert.Equal(t, "PAN-001", product.Code)
	assert.Equal(t, "Pan dulce", product.Category)
	assert.True(t, product.TaxRate.Equal(taxRate))
}

func TestCreateProduct_Validation(t *testing.T) {
	service, repo, _ := newTestProductService(t)
	price := decimal.NewFromInt(10)

	_, err := service.CreateProduct(context.Background(), &params.CreateProduct{Price: &price})
	assert.ErrorIs(t, err, errs.ErrRequiredBodyParam)

	_, err = service.CreateProduct(context.Background(), &params.CreateProduct{Name: "Concha"})
	assert.ErrorIs(t, err, errs.ErrRequiredBodyParam)

	assert.Empty(t, repo.products)
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	service, _, _ := newTestProductService(t)
	price := decimal.NewFromInt(10)

	p := &params.CreateProduct{Name: "Concha", Price: &price, Code: "PAN-001"}

	_, err := service.CreateProduct(context.Background(), p)
	require.NoError(t, err)

	_, err = service.CreateProduct(context.Background(), p)
	assert.ErrorIs(t, err, errs.ErrDataConflict)
}

func TestUpdateProduct_Patch(t *testing.T) {
	service, _, mock := newTestProductService(t)
	ctx := context.Background()

	price := decimal.NewFromInt(10)
	seed, err := service.CreateProduct(ctx, &params.CreateProduct{Name: "Concha", Price: &price})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	newPrice := decimal.NewFromInt(12)
	available := false
	updated, err := service.UpdateProduct(ctx, seed.ID, &params.UpdateProduct{
		Price:     &newPrice,
		Available: &available,
	})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.False(t, updated.Available)
	assert.Equal(t, seed.Name, updated.Name)
	assert.Equal(t, seed.Code, updated.Code, "product code is immutable")
}

func TestUpdateProduct_NotFound(t *testing.T) {
	service, _, mock := newTestProductService(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	name := "Flan"
	_, err := service.UpdateProduct(context.Background(), uuid.New(), &params.UpdateProduct{Name: &name})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	service, _, _ := newTestProductService(t)

	err := service.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
