package services

import (
	"context"
	"errors"

	"github.com/alesweet/order-service/internal/application/interfaces"
	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/domain/repositories"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
)

type CustomerService struct {
	repo   repositories.CustomerRepository
	trm    *manager.Manager
	logger logger.Logger
}

func NewCustomerService(
	repo repositories.CustomerRepository,
	trm *manager.Manager,
	logger logger.Logger,
) (*CustomerService, error) {
	if repo == nil {
		return nil, errors.New("nil dependency: customer repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	return &CustomerService{
		repo:   repo,
		trm:    trm,
		logger: logger,
	}, nil
}

var _ interfaces.CustomerService = (*CustomerService)(nil)

func (s *CustomerService) CreateCustomer(ctx context.Context, p *params.CreateCustomer) (*entities.Customer, error) {
	if p.Name == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "name"}
	}
	if p.Phone == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "phone"}
	}

	kind, err := entities.NewCustomerKind(p.Kind)
	if err != nil {
		return nil, err
	}

	customer := &entities.Customer{
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		TaxID:   p.TaxID,
		Address: p.Address,
		Kind:    kind,
	}

	return s.repo.CreateCustomer(ctx, customer)
}

func (s *CustomerService) GetCustomers(ctx context.Context) ([]*entities.Customer, error) {
	return s.repo.GetCustomers(ctx)
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return s.repo.GetCustomerByID(ctx, id)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, p *params.UpdateCustomer) (*entities.Customer, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "name"}
	}
	if p.Phone != nil && *p.Phone == "" {
		return nil, &errs.RequiredJSONBodyParamError{ParamName: "phone"}
	}

	var updated *entities.Customer

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		customer, err := s.repo.GetCustomerByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Name != nil {
			customer.Name = *p.Name
		}
		if p.Phone != nil {
			customer.Phone = *p.Phone
		}
		if p.Email != nil {
			customer.Email = p.Email
		}
		if p.TaxID != nil {
			customer.TaxID = p.TaxID
		}
		if p.Address != nil {
			customer.Address = p.Address
		}
		if p.Kind != nil {
			kind, err := entities.NewCustomerKind(*p.Kind)
			if err != nil {
				return err
			}
			customer.Kind = kind
		}

		updated, err = s.repo.UpdateCustomer(ctx, customer)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}
