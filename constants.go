package client

import "time"

const (
	ServiceName         = "docproc"
	APIVersion          = "v1"
	TraceIDHeader       = "trace-id"
	RequestIDHeader     = "X-Request-Id"
	ContentTypeJSON     = "application/json"
	DefaultPollInterval = 2 * time.Second
	ProcessingTimeout   = 10 * time.Minute
)

// Path parameter names used in endpoint templates.
const (
	paramDocumentID = "documentId"
	paramVersionID  = "versionId"
	paramTemplateID = "templateId"
)

// API endpoints
const (
	EndpointUpload         = "/document/upload"
	EndpointProcess        = "/document/{" + paramDocumentID + "}/process"
	EndpointDocument       = "/document/{" + paramDocumentID + "}"
	EndpointDocuments      = "/documents"
	EndpointConvert        = "/document/convert"
	EndpointOutputs        = "/document/{" + paramDocumentID + "}/outputs"
	EndpointPreview        = "/document/{" + paramDocumentID + "}/preview"
	EndpointCompare        = "/document/compare"
	EndpointBatchProcess   = "/documents/batch/process"
	EndpointVersion        = "/documents/{" + paramDocumentID + "}/versions/{" + paramVersionID + "}"
	EndpointTemplates      = "/document-templates"
	EndpointTemplate       = "/document-templates/{" + paramTemplateID + "}"
	EndpointDeleteTemplate = "/templates/{" + paramTemplateID + "}"
	EndpointExportStyles   = "/templates"
	EndpointMetrics        = "/metrics/dashboard"
)
