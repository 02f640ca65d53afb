package analysis

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnsupported is returned when the design's backend cannot perform
	// the requested operation.
	ErrUnsupported = errors.New("operation not supported by this design type")

	// ErrNoFace is returned when an object has no face along the requested axis.
	ErrNoFace = errors.New("no face found on axis")

	// ErrUnknownSolutionType is returned for a solution type with no default setup.
	ErrUnknownSolutionType = errors.New("unknown solution type")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
)

var validate = validator.New()

// validateRequest checks struct tags and reports the first failure.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s: field is required", ErrInvalidRequest, e.Field())
	case "oneof":
		return fmt.Errorf("%w: %s: must be one of [%s]", ErrInvalidRequest, e.Field(), e.Param())
	case "gtfield":
		return fmt.Errorf("%w: %s: must be greater than %s", ErrInvalidRequest, e.Field(), e.Param())
	case "gte", "min":
		return fmt.Errorf("%w: %s: must be at least %s", ErrInvalidRequest, e.Field(), e.Param())
	case "max", "lte":
		return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalidRequest, e.Field(), e.Param())
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalidRequest, e.Field(), e.Tag())
	}
}
