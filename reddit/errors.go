package reddit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLimit is returned when the page size is not positive.
	ErrInvalidLimit = errors.New("page limit must be positive")

	// ErrEndpointRequired is returned when the listing URL is empty.
	ErrEndpointRequired = errors.New("listing endpoint required")
)

// HTTPError reports a non-2xx response from the listing endpoint.
// No retry is attempted; the caller decides what to do with it.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// IsHTTPError reports whether err wraps an *HTTPError.
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}
