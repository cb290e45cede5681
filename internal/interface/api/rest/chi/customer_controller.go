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

type CustomerController struct {
	service interfaces.CustomerService
	logger  logger.Logger
}

// NewCustomerController registers the customer routes with additional options.
func NewCustomerController(
	service interfaces.CustomerService, logger logger.Logger, options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := CustomerController{
		service: service,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/customers", c.GetCustomers)
		r.Get(options.BaseURL+"/customers/{id}", c.GetCustomer)
		r.Post(options.BaseURL+"/customers", c.CreateCustomer)
		r.Put(options.BaseURL+"/customers/{id}", c.UpdateCustomer)

		r.Group(func(r chi.Router) {
			for _, middleware := range options.AdminMiddlewares {
				r.Use(middleware)
			}
			r.Delete(options.BaseURL+"/customers/{id}", c.DeleteCustomer)
		})
	})
}

// List customers, newest first (GET /api/customers).
func (c *CustomerController) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.service.GetCustomers(r.Context())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewCustomersFromEntities(customers))
}

// Fetch a single customer (GET /api/customers/{id}).
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	customer, err := c.service.GetCustomerByID(r.Context(), id)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewCustomerFromEntity(customer))
}

// Create new customer (POST /api/customers).
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var req request.CreateCustomer

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	customer, err := c.service.CreateCustomer(r.Context(), req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusCreated, response.CustomerMutation{
		Message:  "customer created successfully",
		Customer: response.NewCustomerFromEntity(customer),
	})
}

// Patch customer fields (PUT /api/customers/{id}).
func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	var req request.UpdateCustomer

	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	customer, err := c.service.UpdateCustomer(r.Context(), id, req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.CustomerMutation{
		Message:  "customer updated",
		Customer: response.NewCustomerFromEntity(customer),
	})
}

// Delete a customer (DELETE /api/customers/{id}).
func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = c.service.DeleteCustomer(r.Context(), id); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.Message{
		Message: "customer deleted successfully",
	})
}

func (c *CustomerController) respond(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.With(r.Context()).Errorf("encode response: %s", err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *CustomerController) ErrorHandlerFunc(w http.ResponseWriter, r *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrInvalidRequest),
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

	c.logger.With(r.Context()).Errorf("customer controller [%d]: %s", code, err)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
