package client

import (
	"context"
	"io"
	"time"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
	BaseURL() string
	Headers() map[string]string
}

// Documents handles document lifecycle operations
type Documents interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	Process(ctx context.Context, req ProcessRequest) (*ProcessingResult, error)
	GetDocument(ctx context.Context, documentID string) (*DocumentResponse, error)
	ListDocuments(ctx context.Context, req ListDocumentsRequest) (*ListDocumentsResponse, error)
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*UpdateDocumentResponse, error)
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
	BatchProcess(ctx context.Context, req BatchProcessRequest) (*BatchProcessResponse, error)
	GetVersion(ctx context.Context, documentID, versionID string) (*VersionResponse, error)
	WaitForProcessing(ctx context.Context, documentID string, pollInterval time.Duration) (*DocumentResponse, error)
}

// Converter handles export and rendering operations
type Converter interface {
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error)
	ListOutputs(ctx context.Context, documentID string) (*ListOutputsResponse, error)
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
}

// Transfer moves file bytes to and from signed storage URLs
type Transfer interface {
	UploadToSignedURL(ctx context.Context, url string, fileData []byte) error
	DownloadFile(ctx context.Context, url string) ([]byte, error)
	DownloadFileTo(ctx context.Context, url string, dst io.Writer) error
}

// Templates handles document matching templates and export styles
type Templates interface {
	ListTemplates(ctx context.Context) (*ListTemplatesResponse, error)
	GetTemplate(ctx context.Context, templateID string) (*TemplateResponse, error)
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error)
	UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*TemplateResponse, error)
	DeleteTemplate(ctx context.Context, templateID string) (*DeleteTemplateResponse, error)
	ListExportStyles(ctx context.Context) (*ListExportStylesResponse, error)
	UpsertExportStyle(ctx context.Context, req UpsertExportStyleRequest) (*ExportStyleResponse, error)
}

// Metrics exposes the processing dashboard
type Metrics interface {
	MetricsDashboard(ctx context.Context) (*DashboardResponse, error)
}

// Client combines all document processing operations
type Client interface {
	Info
	Documents
	Converter
	Transfer
	Templates
	Metrics
}
