package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/google/uuid"
)

// checkJSONDecodeError translates decoding failures into client errors.
func checkJSONDecodeError(err error) error {
	var e *json.UnmarshalTypeError
	if errors.As(err, &e) {
		return fmt.Errorf("%w: %s must be of type %s, got %s",
			errs.ErrInvalidRequest, e.Field, e.Type, e.Value)
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty body", errs.ErrInvalidRequest)
	}

	return err
}

// parseID turns the id path parameter into a UUID. A malformed id can
// never match a stored record, so it is reported as not found.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: no record with id %q", errs.ErrNotFound, raw)
	}

	return id, nil
}
