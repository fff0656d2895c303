package apiclient

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// StatusError represents an unexpected HTTP status returned by the API
// server. It is always fatal i.e. never retried by this library.
type StatusError struct {
	Code int
	Body []byte
}

// compile time check to assert if the structure
// StatusError implements the interface error
var _ error = (*StatusError)(nil)

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected status code %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, string(e.Body))
}

// IsNotFoundStatus returns true if the provided error is a StatusError
// carrying a 404
func IsNotFoundStatus(err error) bool {
	serr, ok := errors.Cause(err).(*StatusError)
	return ok && serr.Code == http.StatusNotFound
}
