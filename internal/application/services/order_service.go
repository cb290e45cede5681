package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alesweet/order-service/internal/application/interfaces"
	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/domain/repositories"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
)

type OrderService struct {
	repo   repositories.OrderRepository
	trm    *manager.Manager
	logger logger.Logger
}

func NewOrderService(
	repo repositories.OrderRepository,
	trm *manager.Manager,
	logger logger.Logger,
) (*OrderService, error) {
	if repo == nil {
		return nil, errors.New("nil dependency: order repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	return &OrderService{
		repo:   repo,
		trm:    trm,
		logger: logger,
	}, nil
}

var _ interfaces.OrderService = (*OrderService)(nil)

// CreateOrder validates the request, computes the total server-side and
// persists the order. The order number is allocated by the repository
// atomically with the insert, so this call deliberately runs outside any
// ambient transaction: a number collision retry must start from a clean
// statement.
func (s *OrderService) CreateOrder(ctx context.Context, p *params.CreateOrder) (*entities.Order, error) {
	if err := validateCreateOrder(p); err != nil {
		return nil, err
	}

	kind, err := entities.NewCustomerKind(p.CustomerKind)
	if err != nil {
		return nil, err
	}

	status := entities.StatusPending
	if p.Status != "" {
		if status, err = entities.NewOrderStatus(p.Status); err != nil {
			return nil, err
		}
	}

	priority := entities.DefaultPriority
	if p.Priority != nil {
		priority = *p.Priority
	}

	order := &entities.Order{
		CustomerKind:    kind,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		CustomerTaxID:   p.CustomerTaxID,
		InstitutionName: p.InstitutionName,
		StoreName:       p.StoreName,
		DeliveryAddress: p.DeliveryAddress,
		Occasion:        p.Occasion,
		LineItems:       p.LineItems,
		DeliveryDate:    p.DeliveryDate,
		Status:          status,
		Priority:        priority,
	}
	order.ComputeTotal()

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.With(ctx, "number", created.Number, "total", created.Total).
		Infof("order created")

	return created, nil
}

// GetOrders returns every order, newest first.
func (s *OrderService) GetOrders(ctx context.Context) ([]*entities.Order, error) {
	return s.repo.GetOrders(ctx)
}

// GetOrdersByStatus returns orders in the given stage, newest first.
// The status is validated against the enum before hitting the store.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status string) ([]*entities.Order, error) {
	parsed, err := entities.NewOrderStatus(status)
	if err != nil {
		return nil, err
	}

	return s.repo.GetOrdersByStatus(ctx, parsed)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// UpdateOrderStatus moves the order to the given stage. Only the four
// enumerated stages are accepted; everything else fails validation before
// any mutation happens.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entities.Order, error) {
	parsed, err := entities.NewOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var updated *entities.Order

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		order.Status = parsed

		updated, err = s.repo.UpdateOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateOrder applies a partial patch. Every field funnels through the
// same validation as the dedicated operations: a status inside the patch
// is checked against the enum, line item changes recompute the total, and
// the order number is untouchable.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, p *params.UpdateOrder) (*entities.Order, error) {
	if err := validateUpdateOrder(p); err != nil {
		return nil, err
	}

	var updated *entities.Order

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		if err = applyOrderPatch(order, p); err != nil {
			return err
		}

		updated, err = s.repo.UpdateOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.logger.With(ctx, "id", id).Infof("order deleted")

	return nil
}

func validateCreateOrder(p *params.CreateOrder) error {
	switch {
	case p.CustomerName == "":
		return &errs.RequiredJSONBodyParamError{ParamName: "customerName"}
	case p.CustomerPhone == "":
		return &errs.RequiredJSONBodyParamError{ParamName: "customerPhone"}
	case p.CustomerTaxID == "":
		return &errs.RequiredJSONBodyParamError{ParamName: "customerTaxId"}
	case p.DeliveryAddress == "":
		return &errs.RequiredJSONBodyParamError{ParamName: "deliveryAddress"}
	case p.DeliveryDate.IsZero():
		return &errs.RequiredJSONBodyParamError{ParamName: "deliveryDate"}
	case len(p.LineItems) == 0:
		return fmt.Errorf("%w: at least one line item is required", errs.ErrInvalidRequest)
	}

	return nil
}

func validateUpdateOrder(p *params.UpdateOrder) error {
	if p.Status != nil {
		if _, err := entities.NewOrderStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.CustomerKind != nil {
		if _, err := entities.NewCustomerKind(*p.CustomerKind); err != nil {
			return err
		}
	}
	if p.CustomerName != nil && *p.CustomerName == "" {
		return &errs.RequiredJSONBodyParamError{ParamName: "customerName"}
	}
	if p.LineItems != nil && len(*p.LineItems) == 0 {
		return fmt.Errorf("%w: at least one line item is required", errs.ErrInvalidRequest)
	}

	return nil
}

func applyOrderPatch(order *entities.Order, p *params.UpdateOrder) error {
	if p.Status != nil {
		status, err := entities.NewOrderStatus(*p.Status)
		if err != nil {
			return err
		}
		order.Status = status
	}
	if p.CustomerKind != nil {
		kind, err := entities.NewCustomerKind(*p.CustomerKind)
		if err != nil {
			return err
		}
		order.CustomerKind = kind
	}
	if p.CustomerName != nil {
		order.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		order.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerTaxID != nil {
		order.CustomerTaxID = *p.CustomerTaxID
	}
	if p.InstitutionName != nil {
		order.InstitutionName = p.InstitutionName
	}
	if p.StoreName != nil {
		order.StoreName = p.StoreName
	}
	if p.DeliveryAddress != nil {
		order.DeliveryAddress = *p.DeliveryAddress
	}
	if p.Occasion != nil {
		order.Occasion = *p.Occasion
	}
	if p.DeliveryDate != nil {
		order.DeliveryDate = *p.DeliveryDate
	}
	if p.Priority != nil {
		order.Priority = *p.Priority
	}
	if p.LineItems != nil {
		order.LineItems = *p.LineItems
		order.ComputeTotal()
	}

	return nil
}
