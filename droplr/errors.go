package droplr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConfig reports an unusable client configuration.
	ErrConfig = errors.New("invalid client configuration")
	// ErrDecodeResponse reports a successful response whose body could
	// not be decoded as the expected JSON shape.
	ErrDecodeResponse = errors.New("decoding response body")
	// ErrEmptyContent reports a note or link with no content.
	ErrEmptyContent = errors.New("empty drop content")
	// ErrMissingFilename reports a file upload without a filename.
	ErrMissingFilename = errors.New("missing upload filename")
)

// Headers the Droplr protocol signals errors through. Any response
// carrying HeaderErrorCode is a failure regardless of its HTTP status.
const (
	HeaderErrorCode    = "droplr-errorcode"
	HeaderErrorDetails = "droplr-errordetails"
)

// APIError is a failure reported by the Droplr API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the machine-readable error code from the
	// droplr-errorcode header, e.g. "Authentication.UnknownUser".
	// Empty when the server sent an error status without a code.
	Code string
	// Details is the human-readable droplr-errordetails header value.
	Details string
}

func (e *APIError) Error() string {
	switch {
	case e.Code == "":
		return fmt.Sprintf("droplr: HTTP %d", e.StatusCode)
	case e.Details == "":
		return fmt.Sprintf("droplr: %s (HTTP %d)", e.Code, e.StatusCode)
	default:
		return fmt.Sprintf("droplr: %s: %s (HTTP %d)", e.Code, e.Details, e.StatusCode)
	}
}

// Authentication reports whether the server rejected the request's
// credentials.
func (e *APIError) Authentication() bool {
	return e.StatusCode == http.StatusUnauthorized && e.Code != ""
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
