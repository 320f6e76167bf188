package client

import (
	"context"
	"net/http"
)

// ListTemplates lists document matching templates without their regions.
func (c *client) ListTemplates(ctx context.Context) (*ListTemplatesResponse, error) {
	return get[ListTemplatesResponse](c, c.newRequest(ctx, false), OperationListTemplates, EndpointTemplates)
}

// GetTemplate fetches one matching template including its regions of interest.
func (c *client) GetTemplate(ctx context.Context, templateID string) (*TemplateResponse, error) {
	if templateID == "" {
		return nil, ErrEmptyTemplateID
	}

	r := c.newRequest(ctx, false).SetPathParam(paramTemplateID, templateID)
	return get[TemplateResponse](c, r, OperationGetTemplate, EndpointTemplate)
}

// CreateTemplate stores a matching template with its regions. The server
// requires a name, a fingerprint and at least one region.
func (c *client) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	return send[TemplateResponse](c, c.newRequest(ctx, true), OperationCreateTemplate, http.MethodPost, EndpointTemplates, req)
}

// UpdateTemplate replaces a matching template. Existing regions are dropped
// and replaced by req.ROIs.
func (c *client) UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*TemplateResponse, error) {
	if req.ID == "" {
		return nil, ErrEmptyTemplateID
	}

	r := c.newRequest(ctx, true).SetPathParam(paramTemplateID, req.ID)
	return send[TemplateResponse](c, r, OperationUpdateTemplate, http.MethodPut, EndpointTemplate, req)
}

// DeleteTemplate removes a matching template.
func (c *client) DeleteTemplate(ctx context.Context, templateID string) (*DeleteTemplateResponse, error) {
	if templateID == "" {
		return nil, ErrEmptyTemplateID
	}

	r := c.newRequest(ctx, false).SetPathParam(paramTemplateID, templateID)
	return execute[DeleteTemplateResponse](c, r, OperationDeleteTemplate, http.MethodDelete, EndpointDeleteTemplate)
}

// ListExportStyles lists the template names accepted by Convert and Preview.
func (c *client) ListExportStyles(ctx context.Context) (*ListExportStylesResponse, error) {
	return get[ListExportStylesResponse](c, c.newRequest(ctx, false), OperationListExportStyles, EndpointExportStyles)
}

// UpsertExportStyle creates a custom export template or replaces the data of
// an existing one with the same name.
func (c *client) UpsertExportStyle(ctx context.Context, req UpsertExportStyleRequest) (*ExportStyleResponse, error) {
	if req.Name == "" {
		return nil, ErrEmptyStyleName
	}

	return send[ExportStyleResponse](c, c.newRequest(ctx, true), OperationUpsertExportStyle, http.MethodPost, EndpointExportStyles, req)
}
