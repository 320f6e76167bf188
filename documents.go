package client

import (
	"context"
	"net/http"
	"strconv"
)

// Upload registers a document and returns its id and a signed upload URL.
func (c *client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	return send[UploadResponse](c, c.newRequest(ctx, true), OperationUpload, http.MethodPost, EndpointUpload, req)
}

// Process runs extraction for a previously uploaded document.
func (c *client) Process(ctx context.Context, req ProcessRequest) (*ProcessingResult, error) {
	if req.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}

	r := c.newRequest(ctx, true).SetPathParam(paramDocumentID, req.DocumentID)
	return send[ProcessingResult](c, r, OperationProcess, http.MethodPost, EndpointProcess, req)
}

// GetDocument fetches document metadata, text and structure.
func (c *client) GetDocument(ctx context.Context, documentID string) (*DocumentResponse, error) {
	if documentID == "" {
		return nil, ErrEmptyDocumentID
	}

	r := c.newRequest(ctx, false).SetPathParam(paramDocumentID, documentID)
	return get[DocumentResponse](c, r, OperationGetDocument, EndpointDocument)
}

// ListDocuments pages through documents, newest first. Only the set fields of
// req are sent as query parameters.
func (c *client) ListDocuments(ctx context.Context, req ListDocumentsRequest) (*ListDocumentsResponse, error) {
	r := c.newRequest(ctx, false)
	if req.Limit != nil {
		r.SetQueryParam("limit", strconv.Itoa(*req.Limit))
	}
	if req.Offset != nil {
		r.SetQueryParam("offset", strconv.Itoa(*req.Offset))
	}

	return get[ListDocumentsResponse](c, r, OperationListDocuments, EndpointDocuments)
}

// UpdateDocument replaces the extracted text and/or structure of a document.
func (c *client) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*UpdateDocumentResponse, error) {
	if req.ID == "" {
		return nil, ErrEmptyDocumentID
	}

	r := c.newRequest(ctx, true).SetPathParam(paramDocumentID, req.ID)
	return send[UpdateDocumentResponse](c, r, OperationUpdateDocument, http.MethodPut, EndpointDocument, req)
}

// Compare diffs two documents and reports character and word error rates.
func (c *client) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	if req.AID == "" || req.BID == "" {
		return nil, ErrEmptyDocumentID
	}

	return send[CompareResponse](c, c.newRequest(ctx, true), OperationCompare, http.MethodPost, EndpointCompare, req)
}

// BatchProcess processes several documents server-side in one call.
func (c *client) BatchProcess(ctx context.Context, req BatchProcessRequest) (*BatchProcessResponse, error) {
	if len(req.DocumentIDs) == 0 {
		return nil, ErrEmptyDocumentID
	}

	return send[BatchProcessResponse](c, c.newRequest(ctx, true), OperationBatchProcess, http.MethodPost, EndpointBatchProcess, req)
}

// GetVersion fetches the structure stored for one version of a document.
func (c *client) GetVersion(ctx context.Context, documentID, versionID string) (*VersionResponse, error) {
	if documentID == "" {
		return nil, ErrEmptyDocumentID
	}
	if versionID == "" {
		return nil, ErrEmptyVersionID
	}

	r := c.newRequest(ctx, false).SetPathParams(map[string]string{
		paramDocumentID: documentID,
		paramVersionID:  versionID,
	})
	return get[VersionResponse](c, r, OperationGetVersion, EndpointVersion)
}
