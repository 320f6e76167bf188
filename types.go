package client

import (
	"encoding/json"
	"time"
)

// ProcessingStatus enumerates document processing states.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// ProcessingMode selects where OCR runs.
type ProcessingMode string

const (
	ProcessingModeAuto  ProcessingMode = "auto"
	ProcessingModeLocal ProcessingMode = "local"
	ProcessingModeCloud ProcessingMode = "cloud"
)

// Quality trades processing speed against accuracy.
type Quality string

const (
	QualityFast Quality = "fast"
	QualityBest Quality = "best"
)

// OutputFormat enumerates supported conversion targets.
type OutputFormat string

const (
	FormatDocx     OutputFormat = "docx"
	FormatPDF      OutputFormat = "pdf"
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
	FormatText     OutputFormat = "txt"
)

// RenderMode controls layout fidelity for conversions and previews.
type RenderMode string

const (
	RenderModeExact    RenderMode = "exact"
	RenderModeEditable RenderMode = "editable"
)

// CompareMode selects what two documents are compared on.
type CompareMode string

const (
	CompareModeText      CompareMode = "text"
	CompareModeStructure CompareMode = "structure"
)

// Operation names a single API call in errors and logs.
type Operation string

const (
	OperationUpload            Operation = "upload"
	OperationProcess           Operation = "process"
	OperationGetDocument       Operation = "get document"
	OperationListDocuments     Operation = "list documents"
	OperationUpdateDocument    Operation = "update document"
	OperationConvert           Operation = "convert"
	OperationListOutputs       Operation = "list outputs"
	OperationPreview           Operation = "preview"
	OperationCompare           Operation = "compare"
	OperationBatchProcess      Operation = "batch process"
	OperationGetVersion        Operation = "get version"
	OperationListTemplates     Operation = "list templates"
	OperationGetTemplate       Operation = "get template"
	OperationCreateTemplate    Operation = "create template"
	OperationUpdateTemplate    Operation = "update template"
	OperationDeleteTemplate    Operation = "delete template"
	OperationListExportStyles  Operation = "list export templates"
	OperationUpsertExportStyle Operation = "upsert export template"
	OperationMetrics           Operation = "metrics dashboard"
	OperationSignedUpload      Operation = "upload to signed URL"
	OperationDownload          Operation = "download file"
	OperationWaitForProcessed  Operation = "processing"
)

// ResponseMeta is attached to every top-level response.
type ResponseMeta struct {
	TraceID string          `json:"-"` // Value of the trace-id response header, if any
	Raw     json.RawMessage `json:"-"` // Verbatim response body
}

func (m *ResponseMeta) setMeta(traceID string, raw []byte) {
	m.TraceID = traceID
	m.Raw = json.RawMessage(raw)
}

// metaSetter is implemented by every response type through ResponseMeta.
type metaSetter interface {
	setMeta(traceID string, raw []byte)
}

// Position is an element's bounding box on the page.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentStyle carries the optional text styling of an element.
type DocumentStyle struct {
	FontFamily      string  `json:"fontFamily,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty"`
	FontStyle       string  `json:"fontStyle,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
	Color           string  `json:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	TextDecoration  string  `json:"textDecoration,omitempty"`
	LineHeight      float64 `json:"lineHeight,omitempty"`
}

type TableCell struct {
	Text    string         `json:"text"`
	ColSpan int            `json:"colSpan,omitempty"`
	RowSpan int            `json:"rowSpan,omitempty"`
	Style   *DocumentStyle `json:"style,omitempty"`
}

type TableData struct {
	Rows         [][]TableCell `json:"rows"`
	ColumnWidths []float64     `json:"columnWidths,omitempty"`
}

// DocumentElement is one heading, paragraph, table, list, image or formula.
type DocumentElement struct {
	Type        string        `json:"type"`
	Content     string        `json:"content"`
	Position    Position      `json:"position"`
	Style       DocumentStyle `json:"style"`
	Level       int           `json:"level,omitempty"`    // Heading or list nesting level
	ImageSrc    string        `json:"imageSrc,omitempty"` // Object storage path or URL
	ImageWidth  float64       `json:"imageWidth,omitempty"`
	ImageHeight float64       `json:"imageHeight,omitempty"`
	Table       *TableData    `json:"table,omitempty"`
}

type StructureMetadata struct {
	PageCount   int    `json:"pageCount"`
	Orientation string `json:"orientation"`
	Dimensions  struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"dimensions"`
	Template   string `json:"template,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
}

// DocumentStructure is the layout extracted during processing.
type DocumentStructure struct {
	Elements []DocumentElement `json:"elements"`
	Metadata StructureMetadata `json:"metadata"`
}

// Document is the server-side record of an uploaded file.
type Document struct {
	ID                string             `json:"id"`
	OriginalFilename  string             `json:"originalFilename"`
	FileSize          int64              `json:"fileSize"`
	MimeType          string             `json:"mimeType"`
	ProcessingStatus  ProcessingStatus   `json:"processingStatus"`
	ExtractedText     string             `json:"extractedText,omitempty"`
	DetectedLanguage  string             `json:"detectedLanguage,omitempty"`
	DocumentStructure *DocumentStructure `json:"documentStructure,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// DocumentOutput is an artifact produced by a conversion.
type DocumentOutput struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"documentId"`
	Format     OutputFormat `json:"format"`
	FilePath   string       `json:"filePath"`
	FileSize   int64        `json:"fileSize"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// UploadRequest registers a new document upload.
type UploadRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// UploadResponse represents the response from the upload registration
type UploadResponse struct {
	ResponseMeta
	DocumentID string `json:"documentId"`
	UploadURL  string `json:"uploadUrl"` // Signed URL the file bytes are PUT to
}

// ProcessRequest triggers OCR and structure extraction.
// Mode and Quality are omitted from the body when empty.
type ProcessRequest struct {
	DocumentID string         `json:"documentId"`
	Mode       ProcessingMode `json:"mode,omitempty"`
	Quality    Quality        `json:"quality,omitempty"`
}

// ProcessingResult represents the response from a processing run
type ProcessingResult struct {
	ResponseMeta
	DocumentID        string             `json:"documentId"`
	Status            ProcessingStatus   `json:"status"`
	ExtractedText     string             `json:"extractedText,omitempty"`
	DetectedLanguage  string             `json:"detectedLanguage,omitempty"`
	DocumentStructure *DocumentStructure `json:"documentStructure,omitempty"`
	Error             string             `json:"error,omitempty"`
}

// DocumentResponse wraps a single fetched document.
type DocumentResponse struct {
	ResponseMeta
	Document
}

// ListDocumentsRequest pages through documents. Nil fields are not sent.
type ListDocumentsRequest struct {
	Limit  *int
	Offset *int
}

type ListDocumentsResponse struct {
	ResponseMeta
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// UpdateDocumentRequest replaces the extracted text and/or structure.
// Updating the structure creates a new document version server-side.
type UpdateDocumentRequest struct {
	ID                string             `json:"-"`
	ExtractedText     string             `json:"extractedText,omitempty"`
	DocumentStructure *DocumentStructure `json:"documentStructure,omitempty"`
}

type UpdateDocumentResponse struct {
	ResponseMeta
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConvertRequest represents a document conversion request
type ConvertRequest struct {
	DocumentID string       `json:"documentId"`
	Format     OutputFormat `json:"format"`               // Target format: "docx", "pdf", "html", "markdown", "txt"
	Mode       RenderMode   `json:"mode"`                 // "exact" or "editable"
	Template   string       `json:"template,omitempty"`   // Export style template (optional)
	FontFamily string       `json:"fontFamily,omitempty"` // Preferred font family (optional)
}

// ConvertResponse represents the document conversion response
type ConvertResponse struct {
	ResponseMeta
	OutputID    string `json:"outputId"`
	DownloadURL string `json:"downloadUrl"`
}

type ListOutputsResponse struct {
	ResponseMeta
	Outputs []DocumentOutput `json:"outputs"`
}

// PreviewRequest fetches an HTML rendering. Empty Mode and Template are not sent.
type PreviewRequest struct {
	DocumentID string
	Mode       RenderMode
	Template   string
}

type PreviewResponse struct {
	ResponseMeta
	HTML string `json:"html"`
}

// CompareRequest diffs two documents.
type CompareRequest struct {
	AID  string      `json:"aId"`
	BID  string      `json:"bId"`
	Mode CompareMode `json:"mode,omitempty"`
}

type CompareResponse struct {
	ResponseMeta
	Summary struct {
		AID   string      `json:"aId"`
		BID   string      `json:"bId"`
		Mode  CompareMode `json:"mode"`
		CER   float64     `json:"cer"` // Character error rate
		WER   float64     `json:"wer"` // Word error rate
		Equal bool        `json:"equal"`
	} `json:"summary"`
	DiffHTML string `json:"diffHtml"`
}

// BatchProcessRequest processes, and optionally converts, several documents.
type BatchProcessRequest struct {
	DocumentIDs    []string       `json:"documentIds"`
	ConvertTo      OutputFormat   `json:"convertTo,omitempty"`
	Mode           RenderMode     `json:"mode,omitempty"`
	ProcessingMode ProcessingMode `json:"processingMode,omitempty"`
	Languages      []string       `json:"languages,omitempty"` // Tesseract codes, e.g. "eng", "deu"
	Template       string         `json:"template,omitempty"`
	FontFamily     string         `json:"fontFamily,omitempty"`
}

type BatchProcessItemResult struct {
	DocumentID string           `json:"documentId"`
	Status     ProcessingStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	Conversion *struct {
		OutputID    string `json:"outputId"`
		DownloadURL string `json:"downloadUrl"`
	} `json:"conversion,omitempty"`
}

type BatchProcessResponse struct {
	ResponseMeta
	Results []BatchProcessItemResult `json:"results"`
}

type VersionResponse struct {
	ResponseMeta
	DocumentID        string            `json:"documentId"`
	VersionID         string            `json:"versionId"`
	DocumentStructure DocumentStructure `json:"documentStructure"`
}

// TemplateROI is a named region of interest inside a matching template.
type TemplateROI struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Template is a document matching template.
type Template struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description,omitempty"`
	MatchFingerprint string        `json:"match_fingerprint,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	ROIs             []TemplateROI `json:"rois,omitempty"`
}

type ListTemplatesResponse struct {
	ResponseMeta
	Templates []Template `json:"templates"`
}

type TemplateResponse struct {
	ResponseMeta
	Template
}

// TemplateROIInput is a region of interest to store with a matching template.
type TemplateROIInput struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CreateTemplateRequest defines a new matching template.
type CreateTemplateRequest struct {
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	MatchFingerprint string             `json:"matchFingerprint"`
	ROIs             []TemplateROIInput `json:"rois"`
}

// UpdateTemplateRequest replaces a matching template and all of its regions.
type UpdateTemplateRequest struct {
	ID               string             `json:"-"` // Path parameter
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	MatchFingerprint string             `json:"matchFingerprint"`
	ROIs             []TemplateROIInput `json:"rois"`
}

type DeleteTemplateResponse struct {
	ResponseMeta
	Status string `json:"status"`
}

// PageStyle sets page margins and background of an export style.
type PageStyle struct {
	MarginTop       float64 `json:"marginTop,omitempty"`
	MarginRight     float64 `json:"marginRight,omitempty"`
	MarginBottom    float64 `json:"marginBottom,omitempty"`
	MarginLeft      float64 `json:"marginLeft,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
}

type FontSet struct {
	FontFamily        string `json:"fontFamily,omitempty"`
	HeadingFontFamily string `json:"headingFontFamily,omitempty"`
	MonoFontFamily    string `json:"monoFontFamily,omitempty"`
}

type HeadingStyles struct {
	H1 *DocumentStyle `json:"h1,omitempty"`
	H2 *DocumentStyle `json:"h2,omitempty"`
	H3 *DocumentStyle `json:"h3,omitempty"`
	H4 *DocumentStyle `json:"h4,omitempty"`
	H5 *DocumentStyle `json:"h5,omitempty"`
	H6 *DocumentStyle `json:"h6,omitempty"`
}

type TableStyle struct {
	BorderColor      string `json:"borderColor,omitempty"`
	HeaderBackground string `json:"headerBackground,omitempty"`
}

// ExportStyle is the styling applied when a document is converted or
// previewed with a named template. "modern", "classic" and "compact" are
// built in; custom styles are stored by name.
type ExportStyle struct {
	Name      string         `json:"name"`
	Page      *PageStyle     `json:"page,omitempty"`
	Fonts     *FontSet       `json:"fonts,omitempty"`
	Headings  *HeadingStyles `json:"headings,omitempty"`
	Paragraph *DocumentStyle `json:"paragraph,omitempty"`
	List      *DocumentStyle `json:"list,omitempty"`
	Table     *TableStyle    `json:"table,omitempty"`
}

type ExportStyleName struct {
	Name string `json:"name"`
}

// ListExportStylesResponse names every template usable with Convert and Preview.
type ListExportStylesResponse struct {
	ResponseMeta
	Templates []ExportStyleName `json:"templates"`
}

// UpsertExportStyleRequest creates the named style or replaces its data.
type UpsertExportStyleRequest struct {
	Name string      `json:"name"`
	Data ExportStyle `json:"data"`
}

type ExportStyleResponse struct {
	ResponseMeta
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Data      ExportStyle `json:"data"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ProcessingRun is one row of the recent runs table on the dashboard.
type ProcessingRun struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"documentId"`
	Status      string    `json:"status"`
	OCRProvider string    `json:"ocrProvider"`
	LLMProvider *string   `json:"llmProvider"`
	Confidence  *float64  `json:"confidence"`
	DurationMs  *float64  `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DashboardResponse represents the aggregated processing metrics
type DashboardResponse struct {
	ResponseMeta
	Totals struct {
		Documents int `json:"documents"`
		Processed int `json:"processed"`
		Failed    int `json:"failed"`
	} `json:"totals"`
	Performance struct {
		AvgConfidence float64 `json:"avgConfidence"`
		AvgDurationMs float64 `json:"avgDurationMs"`
	} `json:"performance"`
	ProviderShare struct {
		OCR map[string]int `json:"ocr"`
		LLM map[string]int `json:"llm"`
	} `json:"providerShare"`
	RecentRuns []ProcessingRun `json:"recentRuns"`
}

// Int returns a pointer to v, for optional integer parameters.
func Int(v int) *int {
	return &v
}
