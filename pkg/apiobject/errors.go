package apiobject

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundError is returned when an operation requires the remote
// resource to exist but it does not
type NotFoundError struct {
	Kind string
	Name string
}

// compile time check to assert if the structure
// NotFoundError implements the interface error
var _ error = (*NotFoundError)(nil)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// IsNotFound returns true if the provided error is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}
