package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alesweet/order-service/internal/application/interfaces"
	"github.com/alesweet/order-service/internal/interface/api/rest/header"
	"github.com/alesweet/order-service/internal/interface/api/rest/request"
	"github.com/alesweet/order-service/internal/interface/api/rest/response"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderController struct {
	service interfaces.OrderService
	logger  logger.Logger
}

// NewOrderController registers the order routes with additional options.
func NewOrderController(
	service interfaces.OrderService, logger logger.Logger, options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := OrderController{
		service: service,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/orders", c.GetOrders)
		r.Get(options.BaseURL+"/orders/status/{status}", c.GetOrdersByStatus)
		r.Get(options.BaseURL+"/orders/{id}", c.GetOrder)
		r.Post(options.BaseURL+"/orders", c.CreateOrder)
		r.Put(options.BaseURL+"/orders/{id}/status", c.UpdateOrderStatus)
		r.Put(options.BaseURL+"/orders/{id}", c.UpdateOrder)

		r.Group(func(r chi.Router) {
			for _, middleware := range options.AdminMiddlewares {
				r.Use(middleware)
			}
			r.Delete(options.BaseURL+"/orders/{id}", c.DeleteOrder)
		})
	})
}

// List all orders, newest first (GET /api/orders).
func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.GetOrders(r.Context())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewOrdersFromEntities(orders))
}

// List orders in the given stage (GET /api/orders/status/{status}).
func (c *OrderController) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.GetOrdersByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewOrdersFromEntities(orders))
}

// Fetch a single order (GET /api/orders/{id}).
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	order, err := c.service.GetOrderByID(r.Context(), id)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewOrderFromEntity(order))
}

// Create new order (POST /api/orders).
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var req request.CreateOrder

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	order, err := c.service.CreateOrder(r.Context(), req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusCreated, response.OrderMutation{
		Message: "order created successfully",
		Order:   response.NewOrderFromEntity(order),
	})
}

// Move an order to another stage (PUT /api/orders/{id}/status).
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	var req request.UpdateOrderStatus

	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	order, err := c.service.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.OrderMutation{
		Message: "status updated",
		Order:   response.NewOrderFromEntity(order),
	})
}

// Patch arbitrary order fields (PUT /api/orders/{id}). The patch funnels
// through the same validation as the dedicated status operation.
func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	var req request.UpdateOrder

	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	order, err := c.service.UpdateOrder(r.Context(), id, req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.OrderMutation{
		Message: "order updated",
		Order:   response.NewOrderFromEntity(order),
	})
}

// Delete an order (DELETE /api/orders/{id}).
func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = c.service.DeleteOrder(r.Context(), id); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.Message{
		Message: "order deleted successfully",
	})
}

func (c *OrderController) respond(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.With(r.Context()).Errorf("encode response: %s", err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *OrderController) ErrorHandlerFunc(w http.ResponseWriter, r *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrInvalidRequest),
		errors.Is(err, errs.ErrInvalidOrderStatus),
		errors.Is(err, errs.ErrRequiredBodyParam),
		errors.Is(err, errs.ErrInvalidPayload):
		code = http.StatusBadRequest

	// Status Not Found (404).
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound

	// Status Conflict (409).
	case errors.Is(err, errs.ErrDataConflict):
		code = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	c.logger.With(r.Context()).Errorf("order controller [%d]: %s", code, err)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
