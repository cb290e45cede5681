package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alesweet/order-service/internal/config"
	"github.com/alesweet/order-service/internal/jwt"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/alesweet/order-service/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   Repository
	logger logger.Logger
	config *config.Config
}

func NewService(repo Repository, logger logger.Logger, config *config.Config) (*Service, error) {
	if repo == nil {
		return nil, errors.New("nil dependency: repository")
	}
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	return &Service{repo: repo, logger: logger, config: config}, nil
}

var _ ServerInterface = (*Service)(nil)

// tokenResponse is returned on successful register and login.
type tokenResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    *user.User `json:"user"`
}

// Registration (POST /api/auth/register).
func (s *Service) Register(w http.ResponseWriter, r *http.Request, params RegisterParams) {
	// Create password hash.
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.config.PasswordHashCost)
	if err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	role, err := user.ParseRole(params.Role)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	// Create user.
	u, err := s.repo.CreateUser(r.Context(), params.Name, params.Login, string(hashPassword), role)
	if err != nil {
		if errors.Is(err, errs.ErrDataConflict) {
			ErrorHandlerFunc(w, r, fmt.Errorf("%w: login %q already exists", err, params.Login))
			return
		}
		ErrorHandlerFunc(w, r, fmt.Errorf("create user: %w", err))
		return
	}

	// Build authentication token.
	authToken, err := jwt.BuildString(u, s.config.JWT.SigningKey, s.config.JWT.Expiration)
	if err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("build token: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err = json.NewEncoder(w).Encode(tokenResponse{
		Message: "user created successfully",
		Token:   authToken,
		User:    u,
	}); err != nil {
		s.logger.Errorf("encode register response: %s", err)
	}
}

// Authentication (POST /api/auth/login).
func (s *Service) Login(w http.ResponseWriter, r *http.Request, params LoginParams) {
	// Retrieve user from the database with provided login.
	u, err := s.repo.GetUserByLogin(r.Context(), params.Login)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Same error as a bad password, do not leak which logins exist.
			ErrorHandlerFunc(w, r, errs.ErrInvalidCredentials)
			return
		}
		ErrorHandlerFunc(w, r, fmt.Errorf("get user %q: %w", params.Login, err))
		return
	}

	// Compare stored and provided passwords.
	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(params.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			ErrorHandlerFunc(w, r, errs.ErrInvalidCredentials)
			return
		}
		ErrorHandlerFunc(w, r, fmt.Errorf("compare passwords: %w", err))
		return
	}

	// Build authentication token.
	authToken, err := jwt.BuildString(u, s.config.JWT.SigningKey, s.config.JWT.Expiration)
	if err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("build token: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(tokenResponse{
		Message: "login successful",
		Token:   authToken,
		User:    u,
	}); err != nil {
		s.logger.Errorf("encode login response: %s", err)
	}
}

// Biometrics toggle (PUT /api/auth/biometrics).
func (s *Service) Biometrics(w http.ResponseWriter, r *http.Request, params BiometricsParams) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := s.repo.SetBiometrics(r.Context(), u.ID, params.Enabled); err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("set biometrics: %w", err))
		return
	}

	state := "disabled"
	if params.Enabled {
		state = "enabled"
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("biometrics %s successfully", state),
	}); err != nil {
		s.logger.Errorf("encode biometrics response: %s", err)
	}
}

// Middleware authenticates the request by the bearer token from the
// Authorization header and stores the user in the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			ErrorHandlerFunc(w, r, fmt.Errorf("authorization token: %w", errs.ErrNotFound))
			return
		}

		authClaims, err := jwt.ParseClaims(token, s.config.JWT.SigningKey)
		if err != nil {
			ErrorHandlerFunc(w, r, fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, err))
			return
		}

		u, err := s.repo.GetUserByID(r.Context(), authClaims.UserID)
		if err != nil {
			ErrorHandlerFunc(w, r, fmt.Errorf("get user %d: %w", authClaims.UserID, err))
			return
		}

		r = r.WithContext(user.NewContext(r.Context(), u))

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(f)
}

// RequireRole returns a middleware that allows only the given roles past.
// It must be mounted after Middleware so the user is in the context.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			u, found := user.FromContext(r.Context())
			if !found {
				ErrorHandlerFunc(w, r, fmt.Errorf("authorization token: %w", errs.ErrNotFound))
				return
			}

			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ErrorHandlerFunc(w, r, fmt.Errorf("%w: role %q", errs.ErrForbidden, u.Role))
		}

		return http.HandlerFunc(f)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request.
	case errors.Is(err, errs.ErrRequiredBodyParam) ||
		errors.Is(err, errs.ErrInvalidRequest) ||
		errors.Is(err, errs.ErrInvalidPayload) ||
		errors.Is(err, errs.ErrInvalidContentType) ||
		errors.Is(err, errs.ErrInvalidRole) ||
		errors.Is(err, io.EOF):
		code = http.StatusBadRequest

	// Status Unauthorized.
	case errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrInvalidCredentials):
		code = http.StatusUnauthorized

	// Status Forbidden.
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden

	// Status Conflict.
	case errors.Is(err, errs.ErrDataConflict):
		code = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
