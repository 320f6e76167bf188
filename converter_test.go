package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"outputId":"o1","downloadUrl":"https://storage/o1.docx"}`)

	c := NewClient(srv.URL)
	resp, err := c.Convert(context.Background(), ConvertRequest{DocumentID: "d1", Format: FormatDocx, Mode: RenderModeEditable})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, EndpointConvert, req.Path)
	assert.JSONEq(t, `{"documentId":"d1","format":"docx","mode":"editable"}`, string(req.Body))
	assert.Equal(t, "o1", resp.OutputID)
	assert.Equal(t, "https://storage/o1.docx", resp.DownloadURL)
}

func TestConvertWithTemplate(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	c := NewClient(srv.URL)
	_, err := c.Convert(context.Background(), ConvertRequest{
		DocumentID: "d1",
		Format:     FormatPDF,
		Mode:       RenderModeExact,
		Template:   "modern",
		FontFamily: "Noto Sans",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"documentId":"d1","format":"pdf","mode":"exact","template":"modern","fontFamily":"Noto Sans"}`, string(rec.last(t).Body))
}

func TestListOutputs(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"outputs":[{"id":"o1","documentId":"d1","format":"markdown","filePath":"d1/o1.md","fileSize":12,"createdAt":"2024-05-01T10:00:00Z"}]}`)

	c := NewClient(srv.URL)
	resp, err := c.ListOutputs(context.Background(), "d1")
	require.NoError(t, err)

	assert.Equal(t, "/document/d1/outputs", rec.last(t).RequestURI)
	require.Len(t, resp.Outputs, 1)
	assert.Equal(t, FormatMarkdown, resp.Outputs[0].Format)
	assert.EqualValues(t, 12, resp.Outputs[0].FileSize)
}

func TestPreviewWithoutModeHasNoQueryString(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"html":"<p>hi</p>"}`)

	c := NewClient(srv.URL)
	resp, err := c.Preview(context.Background(), PreviewRequest{DocumentID: "d1"})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, "/document/d1/preview", req.RequestURI)
	assert.Empty(t, req.RawQuery)
	assert.Equal(t, "<p>hi</p>", resp.HTML)
}

func TestPreviewWithMode(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"html":""}`)

	c := NewClient(srv.URL)
	_, err := c.Preview(context.Background(), PreviewRequest{DocumentID: "d1", Mode: RenderModeExact})
	require.NoError(t, err)
	assert.Equal(t, "/document/d1/preview?mode=exact", rec.last(t).RequestURI)

	_, err = c.Preview(context.Background(), PreviewRequest{DocumentID: "d1", Mode: RenderModeEditable, Template: "classic serif"})
	require.NoError(t, err)
	assert.Equal(t, "mode=editable&template=classic+serif", rec.last(t).RawQuery)
}

func TestMetricsDashboard(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{
		"totals":{"documents":10,"processed":8,"failed":1},
		"performance":{"avgConfidence":0.91,"avgDurationMs":1200},
		"providerShare":{"ocr":{"tesseract":6,"doctr":2},"llm":{"none":8}},
		"recentRuns":[{"id":"r1","documentId":"d1","status":"completed","ocrProvider":"tesseract","llmProvider":null,"confidence":0.9,"durationMs":1100,"createdAt":"2024-05-01T10:00:00Z"}]
	}`)

	c := NewClient(srv.URL)
	resp, err := c.MetricsDashboard(context.Background())
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, EndpointMetrics, req.RequestURI)
	assert.Equal(t, 10, resp.Totals.Documents)
	assert.Equal(t, 6, resp.ProviderShare.OCR["tesseract"])
	require.Len(t, resp.RecentRuns, 1)
	assert.Nil(t, resp.RecentRuns[0].LLMProvider)
	require.NotNil(t, resp.RecentRuns[0].Confidence)
	assert.InDelta(t, 0.9, *resp.RecentRuns[0].Confidence, 1e-9)
}

func TestTemplates(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"templates":[{"id":"t1","name":"invoice","created_at":"2024-05-01T10:00:00Z","updated_at":"2024-05-01T10:00:00Z"}]}`)

	c := NewClient(srv.URL)
	list, err := c.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EndpointTemplates, rec.last(t).RequestURI)
	require.Len(t, list.Templates, 1)
	assert.Equal(t, "invoice", list.Templates[0].Name)

	srv2, rec2 := newTestServer(t, http.StatusOK, `{"id":"t1","name":"invoice","rois":[{"id":"r1","name":"total","x":1,"y":2,"width":3,"height":4}]}`)
	c2 := NewClient(srv2.URL)
	tpl, err := c2.GetTemplate(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "/document-templates/t1", rec2.last(t).RequestURI)
	require.Len(t, tpl.ROIs, 1)
	assert.Equal(t, "total", tpl.ROIs[0].Name)
}
