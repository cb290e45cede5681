package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrDataConflict       = errors.New("data conflict")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrRequiredBodyParam  = errors.New("required body parameter is missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRateLimit          = errors.New("rate limit exceeded")
)

// Type just for marshalling purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}

// RequiredJSONBodyParamError lets users know which required
// request parameter is not provided.
type RequiredJSONBodyParamError struct {
	ParamName string
}

func (e *RequiredJSONBodyParamError) Error() string {
	return fmt.Sprintf("JSON body argument %q is required, but not found", e.ParamName)
}

func (e *RequiredJSONBodyParamError) Is(target error) bool {
	return target == ErrRequiredBodyParam
}

// AlreadyExistsError provides details at which field
// unique violation has occurred.
type AlreadyExistsError struct {
	FieldName string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("record with field %q already exists", e.FieldName)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrDataConflict
}

// InvalidPasswordError explains which password rule was broken.
type InvalidPasswordError struct {
	Message string
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("invalid password: %s", e.Message)
}

func (e *InvalidPasswordError) Is(target error) bool {
	return target == ErrInvalidRequest
}
