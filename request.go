package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// newRequest builds a request carrying the static headers. When withJSON is
// set, Content-Type is applied first so a caller-supplied value overrides it.
func (c *client) newRequest(ctx context.Context, withJSON bool) *resty.Request {
	req := c.restyClient.R().SetContext(ctx)
	if withJSON {
		req.SetHeader("Content-Type", ContentTypeJSON)
	}
	if len(c.headers) > 0 {
		req.SetHeaders(c.headers)
	}
	return req
}

// jsonBody encodes body and attaches it to req.
func jsonBody(req *resty.Request, operation Operation, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", operation, err)
	}
	req.SetBody(data)
	return nil
}

// execute sends req and decodes a 2xx JSON body into a new T. Only a body
// that is not valid JSON is an error; a valid body whose shape differs from T
// still returns T with Raw and TraceID set.
func execute[T any, PT interface {
	*T
	metaSetter
}](c *client, req *resty.Request, operation Operation, method, path string) (*T, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debugw("request failed", "operation", string(operation), "method", method, "path", path, "error", err)
		return nil, &TransportError{Operation: operation, Err: err}
	}

	traceID := resp.Header().Get(TraceIDHeader)
	c.logger.Debugw("request completed",
		"operation", string(operation),
		"method", method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
		"trace_id", traceID,
	)

	if !resp.IsSuccess() {
		return nil, &HTTPError{
			Operation:  operation,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
			TraceID:    traceID,
		}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, &EncodingError{Operation: operation, Body: body, Err: invalidJSON(body)}
	}

	// Typed fields are best effort. Raw always carries the body as sent.
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Debugw("response does not match typed fields", "operation", string(operation), "error", err)
	}
	PT(&result).setMeta(traceID, body)

	return &result, nil
}

func get[T any, PT interface {
	*T
	metaSetter
}](c *client, req *resty.Request, operation Operation, path string) (*T, error) {
	return execute[T, PT](c, req, operation, http.MethodGet, path)
}

// send encodes body as JSON onto req and executes it.
func send[T any, PT interface {
	*T
	metaSetter
}](c *client, req *resty.Request, operation Operation, method, path string, body any) (*T, error) {
	if err := jsonBody(req, operation, body); err != nil {
		return nil, err
	}
	return execute[T, PT](c, req, operation, method, path)
}

// invalidJSON reports why body is not valid JSON.
func invalidJSON(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON")
}
