package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alesweet/order-service/internal/application/interfaces"
	"github.com/alesweet/order-service/internal/config"
	"github.com/alesweet/order-service/internal/interface/api/rest/header"
	"github.com/alesweet/order-service/internal/interface/api/rest/request"
	"github.com/alesweet/order-service/internal/interface/api/rest/response"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/limiter"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductController struct {
	service interfaces.ProductService
	limiter *limiter.Limiter
	config  *config.Config
	logger  logger.Logger
}

// NewProductController registers the product routes with additional options.
func NewProductController(
	service interfaces.ProductService,
	uploadLimiter *limiter.Limiter,
	cfg *config.Config,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := ProductController{
		service: service,
		limiter: uploadLimiter,
		config:  cfg,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/products", c.GetProducts)
		r.Get(options.BaseURL+"/products/{id}", c.GetProduct)
		r.Post(options.BaseURL+"/products", c.CreateProduct)
		r.Post(options.BaseURL+"/products/upload-image", c.UploadImage)
		r.Put(options.BaseURL+"/products/{id}", c.UpdateProduct)

		r.Group(func(r chi.Router) {
			for _, middleware := range options.AdminMiddlewares {
				r.Use(middleware)
			}
			r.Delete(options.BaseURL+"/products/{id}", c.DeleteProduct)
		})
	})
}

// List the catalog sorted by name (GET /api/products).
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.GetProducts(r.Context())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewProductsFromEntities(products))
}

// Fetch a single product (GET /api/products/{id}).
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	product, err := c.service.GetProductByID(r.Context(), id)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.NewProductFromEntity(product))
}

// Create new product (POST /api/products).
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var req request.CreateProduct

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	product, err := c.service.CreateProduct(r.Context(), req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusCreated, response.ProductMutation{
		Message: "product created successfully",
		Product: response.NewProductFromEntity(product),
	})
}

// Patch product fields (PUT /api/products/{id}).
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	var req request.UpdateProduct

	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}
	defer r.Body.Close()

	product, err := c.service.UpdateProduct(r.Context(), id, req.ToParams())
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.ProductMutation{
		Message: "product updated successfully",
		Product: response.NewProductFromEntity(product),
	})
}

// Delete a product (DELETE /api/products/{id}). Historical orders keep
// their snapshots, so this never rewrites order history.
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = c.service.DeleteProduct(r.Context(), id); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	c.respond(w, r, http.StatusOK, response.Message{
		Message: "product deleted successfully",
	})
}

// allowed image extensions, lowercase
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Store a product image (POST /api/products/upload-image). The file is
// written under a generated name so uploads can never collide or
// traverse outside the uploads directory.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !c.limiter.Allow() {
		c.ErrorHandlerFunc(w, r, errs.ErrRateLimit)
		return
	}

	if !header.IsMultipartFormDataContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.config.Uploads.MaxSizeBytes)

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: image exceeds %d bytes",
				errs.ErrInvalidRequest, c.config.Uploads.MaxSizeBytes))
			return
		}
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: no image received", errs.ErrInvalidRequest))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := imageExtensions[ext]; !ok {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: unsupported image format %q",
			errs.ErrInvalidRequest, ext))
		return
	}

	if err = os.MkdirAll(c.config.Uploads.Dir, 0o755); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("create uploads dir: %w", err))
		return
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(c.config.Uploads.Dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("create image file: %w", err))
		return
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("store image: %w", err))
		return
	}

	c.logger.With(r.Context(), "filename", filename).Infof("image uploaded")

	c.respond(w, r, http.StatusOK, response.Upload{
		Success:  true,
		ImageURL: "/uploads/" + filename,
		Filename: filename,
	})
}

func (c *ProductController) respond(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.With(r.Context()).Errorf("encode response: %s", err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *ProductController) ErrorHandlerFunc(w http.ResponseWriter, r *http.Request, err error) {
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

	// Status Too Many Requests (429).
	case errors.Is(err, errs.ErrRateLimit):
		code = http.StatusTooManyRequests
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	c.logger.With(r.Context()).Errorf("product controller [%d]: %s", code, err)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
