package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alesweet/order-service/internal/application/interfaces"
	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/domain/repositories"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	repo   repositories.ProductRepository
	trm    *manager.Manager
	logger logger.Logger
}

func NewProductService(
	repo repositories.ProductRepository,
	trm *manager.Manager,
	logger logger.Logger,
) (*ProductService, error) {
	if repo == nil {
		return nil, errors.New("nil dependency: product repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	return &ProductService{
		repo:   repo,
		trm:    trm,
		logger: logger,
	}, nil
}

var _ interfaces.ProductService = (*ProductService)(nil)

// CreateProduct validates the request and fills catalog defaults:
// category "General", tax rate 0.15, a generated code when none is given
// and availability switched on.
func (s *ProductService) CreateProduct(ctx context.Context, p *params.CreateProduct) (*entities.Product, error) {
	if p.Name == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "name"}
	}
	if p.Price == nil {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "price"}
	}

	code := p.Code
	if code == "" {
		code = fmt.Sprintf("PROD-%d", time.Now().UnixMilli())
	}

	category := p.Category
	if category == "" {
		category = entities.DefaultCategory
	}

	taxRate := decimal.RequireFromString(entities.DefaultTaxRate)
	if p.TaxRate != nil {
		taxRate = *p.TaxRate
	}

	product := &entities.Product{
		Name:        p.Name,
		Price:       *p.Price,
		Description: p.Description,
		Code:        code,
		TaxRate:     taxRate,
		ImageURL:    p.ImageURL,
		Category:    category,
		Available:   true,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.With(ctx, "code", created.Code).Infof("product created")

	return created, nil
}

func (s *ProductService) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.repo.GetProducts(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// UpdateProduct applies a partial patch to a catalog record. Historical
// orders are unaffected because they carry their own product snapshots.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, p *params.UpdateProduct) (*entities.Product, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "name"}
	}

	var updated *entities.Product

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetProductByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Name != nil {
			product.Name = *p.Name
		}
		if p.Price != nil {
			product.Price = *p.Price
		}
		if p.Description != nil {
			product.Description = *p.Description
		}
		if p.TaxRate != nil {
			product.TaxRate = *p.TaxRate
		}
		if p.ImageURL != nil {
			product.ImageURL = *p.ImageURL
		}
		if p.Category != nil {
			product.Category = *p.Category
		}
		if p.Available != nil {
			product.Available = *p.Available
		}

		updated, err = s.repo.UpdateProduct(ctx, product)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}
