package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/alesweet/order-service/internal/interface/api/rest/header"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/go-chi/chi/v5"
)

// RegisterParams defines parameters for Register.
type RegisterParams struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginParams defines parameters for Login.
type LoginParams struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// BiometricsParams defines parameters for Biometrics.
type BiometricsParams struct {
	Enabled bool `json:"enabled"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Registration (POST /api/auth/register)
	Register(w http.ResponseWriter, r *http.Request, params RegisterParams)
	// Authentication (POST /api/auth/login)
	Login(w http.ResponseWriter, r *http.Request, params LoginParams)
	// Biometrics toggle (PUT /api/auth/biometrics)
	Biometrics(w http.ResponseWriter, r *http.Request, params BiometricsParams)
}

// ServerInterfaceWrapper converts payloads to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
	HandlerMiddlewares []MiddlewareFunc
}

type MiddlewareFunc func(http.Handler) http.Handler

const (
	minLoginLen    = 3
	minPasswordLen = 8
	maxPasswordLen = 50
)

var hasDigit = regexp.MustCompile(`\d`)

// Register operation middleware.
func (siw *ServerInterfaceWrapper) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !header.IsApplicationJSONContentType(r) {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s",
			errs.ErrInvalidContentType, r.Header.Get("Content-Type")))
		return
	}

	// Parameter object where we will unmarshal all parameters from the context.
	var params RegisterParams

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s", errs.ErrInvalidPayload, err))
		return
	}
	defer r.Body.Close()

	// ------------- Required JSON body parameters -------------------

	if params.Name == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "name"})
		return
	}
	if params.Login == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "login"})
		return
	}
	if params.Password == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "password"})
		return
	}
	if params.Role == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "role"})
		return
	}

	// ------------- Field constraints -------------------------------

	if len(params.Login) < minLoginLen {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf(
			"%w: login must be at least %d characters",
			errs.ErrInvalidRequest, minLoginLen))
		return
	}
	if err := validatePassword(params.Password); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if _, err := user.ParseRole(params.Role); err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf(
			"%w: must be admin, production or sales", err))
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Register(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// Login operation middleware.
func (siw *ServerInterfaceWrapper) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !header.IsApplicationJSONContentType(r) {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s",
			errs.ErrInvalidContentType, r.Header.Get("Content-Type")))
		return
	}

	var params LoginParams

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s", errs.ErrInvalidPayload, err))
		return
	}
	defer r.Body.Close()

	if params.Login == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "login"})
		return
	}
	if params.Password == "" {
		siw.ErrorHandlerFunc(w, r,
			&errs.RequiredJSONBodyParamError{ParamName: "password"})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Login(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// Biometrics operation middleware.
func (siw *ServerInterfaceWrapper) Biometrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !header.IsApplicationJSONContentType(r) {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s",
			errs.ErrInvalidContentType, r.Header.Get("Content-Type")))
		return
	}

	var params BiometricsParams

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s", errs.ErrInvalidPayload, err))
		return
	}
	defer r.Body.Close()

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Biometrics(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

func validatePassword(password string) error {
	switch {
	case len(password) < minPasswordLen:
		return &errs.InvalidPasswordError{
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	case len(password) > maxPasswordLen:
		return &errs.InvalidPasswordError{
			Message: fmt.Sprintf("must not exceed %d characters", maxPasswordLen)}
	case !hasDigit.MatchString(password):
		return &errs.InvalidPasswordError{Message: "must contain at least one digit"}
	}

	return nil
}

type ChiServerOptions struct {
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
	BaseRouter       chi.Router
	BaseURL          string
	// AuthMiddlewares protect the routes that require a signed-in user.
	AuthMiddlewares []MiddlewareFunc
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/register", wrapper.Register)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/login", wrapper.Login)
	})
	r.Group(func(r chi.Router) {
		for _, middleware := range options.AuthMiddlewares {
			r.Use(middleware)
		}
		r.Put(options.BaseURL+"/biometrics", wrapper.Biometrics)
	})

	return r
}
