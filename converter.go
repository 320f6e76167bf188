package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Convert exports a processed document to the requested format.
func (c *client) Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	if req.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}

	return send[ConvertResponse](c, c.newRequest(ctx, true), OperationConvert, http.MethodPost, EndpointConvert, req)
}

// ListOutputs lists the artifacts exported for a document, newest first.
func (c *client) ListOutputs(ctx context.Context, documentID string) (*ListOutputsResponse, error) {
	if documentID == "" {
		return nil, ErrEmptyDocumentID
	}

	r := c.newRequest(ctx, false).SetPathParam(paramDocumentID, documentID)
	return get[ListOutputsResponse](c, r, OperationListOutputs, EndpointOutputs)
}

// Preview fetches an HTML rendering of a processed document.
func (c *client) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	if req.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}

	r := c.newRequest(ctx, false).SetPathParam(paramDocumentID, req.DocumentID)
	setOptionalQuery(r, "mode", string(req.Mode))
	setOptionalQuery(r, "template", req.Template)

	return get[PreviewResponse](c, r, OperationPreview, EndpointPreview)
}

func setOptionalQuery(r *resty.Request, key, value string) {
	if value != "" {
		r.SetQueryParam(key, value)
	}
}
