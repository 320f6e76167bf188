package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyDocumentID  = errors.New("document id cannot be empty")
	ErrEmptyVersionID   = errors.New("version id cannot be empty")
	ErrEmptyTemplateID  = errors.New("template id cannot be empty")
	ErrEmptyStyleName   = errors.New("export template name cannot be empty")
	ErrEmptyFileData    = errors.New("file data cannot be empty")
	ErrEmptySignedURL   = errors.New("signed upload url cannot be empty")
	ErrEmptyDownloadURL = errors.New("download url cannot be empty")
	ErrNilWriter        = errors.New("writer cannot be nil")
	ErrProcessingFailed = errors.New("processing failed")
)

// HTTPError is returned when the server answers with a non-2xx status.
type HTTPError struct {
	Operation  Operation
	StatusCode int
	Status     string
	Body       []byte
	TraceID    string
}

func (e *HTTPError) Error() string {
	traceID := normalizeTraceID(e.TraceID)
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s failed with status %d (trace-id: %s)", e.Operation, e.StatusCode, traceID)
	}
	return fmt.Sprintf("%s failed with status %d: %s (trace-id: %s)", e.Operation, e.StatusCode, truncateBody(e.Body), traceID)
}

// EncodingError is returned when a successful response body is not valid JSON.
type EncodingError struct {
	Operation Operation
	Body      []byte
	Err       error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// TransportError wraps a network-level failure reported by the HTTP transport.
type TransportError struct {
	Operation Operation
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

const maxErrorBody = 512

func truncateBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "..."
}

func normalizeTraceID(traceID string) string {
	if traceID == "" {
		return "unknown"
	}
	return traceID
}
