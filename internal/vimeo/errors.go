package vimeo

import (
	"errors"
	"fmt"
)

// ErrParse is returned when a listing body does not decode into a page.
var ErrParse = errors.New("vimeo: unable to parse response")

// HTTPError is a non-success response from the API or a download link.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.URL)
	}
	return fmt.Sprintf("HTTP %d %s: %s: %s", e.StatusCode, e.Status, e.URL, e.Body)
}

// Is matches another *HTTPError with the same status code.
func (e *HTTPError) Is(target error) bool {
	var httpErr *HTTPError
	if errors.As(target, &httpErr) {
		return e.StatusCode == httpErr.StatusCode
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
