package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// capturedRequest is what the test server saw.
type capturedRequest struct {
	Method     string
	Path       string
	RequestURI string
	RawQuery   string
	Header     http.Header
	Body       []byte
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) add(req capturedRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests, "server received no request")
	return r.requests[len(r.requests)-1]
}

// newTestServer answers every request with status and body.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rec.add(capturedRequest{
			Method:     r.Method,
			Path:       r.URL.Path,
			RequestURI: r.RequestURI,
			RawQuery:   r.URL.RawQuery,
			Header:     r.Header.Clone(),
			Body:       data,
		})
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(TraceIDHeader, "trace-123")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewClientStripsTrailingSlashes(t *testing.T) {
	c := NewClient("https://api.example.com///")
	assert.Equal(t, "https://api.example.com", c.BaseURL())
	assert.Equal(t, ServiceName, c.Name())
	assert.Equal(t, APIVersion, c.Version())
}

func TestGetDocumentBuildsExactURL(t *testing.T) {
	var gotURL string
	rc := resty.New().SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"id":"xyz"}`)),
			Request:    req,
		}, nil
	}))

	c := NewClient("https://api.example.com/", WithRestyClient(rc))
	doc, err := c.GetDocument(context.Background(), "xyz")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/document/xyz", gotURL)
	assert.Equal(t, "xyz", doc.ID)
}

func TestBaseURLWithTrailingSlashHasNoDoubleSlash(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"id":"xyz"}`)

	c := NewClient(srv.URL + "/")
	_, err := c.GetDocument(context.Background(), "xyz")
	require.NoError(t, err)

	assert.Equal(t, "/document/xyz", rec.last(t).RequestURI)
}

func TestStaticHeadersAreSentOnEveryRequest(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	c := NewClient(srv.URL, WithHeaders(map[string]string{"Authorization": "Bearer abc"}), WithHeader("X-Team", "docs"))

	_, err := c.MetricsDashboard(context.Background())
	require.NoError(t, err)
	get := rec.last(t)
	assert.Equal(t, "Bearer abc", get.Header.Get("Authorization"))
	assert.Equal(t, "docs", get.Header.Get("X-Team"))
	assert.Empty(t, get.Header.Get("Content-Type"), "GET requests carry no Content-Type")

	_, err = c.Upload(context.Background(), UploadRequest{Filename: "a.png", MimeType: "image/png", FileSize: 10})
	require.NoError(t, err)
	post := rec.last(t)
	assert.Equal(t, "Bearer abc", post.Header.Get("Authorization"))
	assert.Equal(t, ContentTypeJSON, post.Header.Get("Content-Type"))
}

func TestCallerContentTypeOverridesJSONDefault(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	c := NewClient(srv.URL, WithHeader("content-type", "application/vnd.docproc+json"))
	_, err := c.Convert(context.Background(), ConvertRequest{DocumentID: "d1", Format: FormatPDF, Mode: RenderModeExact})
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.docproc+json", rec.last(t).Header.Get("Content-Type"))
}

func TestHeadersAreCopiedAtConstruction(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	headers := map[string]string{"X-Key": "one"}
	c := NewClient(srv.URL, WithHeaders(headers))
	headers["X-Key"] = "two"

	copied := c.Headers()
	copied["X-Key"] = "three"

	_, err := c.MetricsDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", rec.last(t).Header.Get("X-Key"))
}

func TestResponseCarriesTraceIDAndRawBody(t *testing.T) {
	body := `{"documentId":"d1","uploadUrl":"https://storage.example.com/put","extra":{"kept":true}}`
	srv, _ := newTestServer(t, http.StatusOK, body)

	c := NewClient(srv.URL)
	resp, err := c.Upload(context.Background(), UploadRequest{Filename: "a.pdf", MimeType: "application/pdf", FileSize: 42})
	require.NoError(t, err)

	assert.Equal(t, "d1", resp.DocumentID)
	assert.Equal(t, "https://storage.example.com/put", resp.UploadURL)
	assert.Equal(t, "trace-123", resp.TraceID)
	assert.JSONEq(t, body, string(resp.Raw))
}

func TestWithRequestIDs(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	c := NewClient(srv.URL, WithRequestIDs())
	_, err := c.MetricsDashboard(context.Background())
	require.NoError(t, err)
	first := rec.last(t).Header.Get(RequestIDHeader)
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	_, err = c.MetricsDashboard(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, rec.last(t).Header.Get(RequestIDHeader))

	fixed := NewClient(srv.URL, WithRequestIDs(), WithHeader(RequestIDHeader, "fixed"))
	_, err = fixed.MetricsDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", rec.last(t).Header.Get(RequestIDHeader))
}

func TestWithTracingRecordsClientSpan(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := NewClient(srv.URL, WithTracing(otelhttp.WithTracerProvider(tp)))
	_, err := c.MetricsDashboard(context.Background())
	require.NoError(t, err)

	assert.Len(t, sr.Ended(), 1)
}

func TestWithLoggerWritesDebugLine(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)

	core, logs := observer.New(zapcore.DebugLevel)
	c := NewClient(srv.URL, WithLogger(zap.New(core).Sugar()))

	_, err := c.ListOutputs(context.Background(), "d1")
	require.NoError(t, err)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, string(OperationListOutputs), fields["operation"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "trace-123", fields["trace_id"])
}

func TestCookiesAreNotCarriedBetweenCalls(t *testing.T) {
	var mu sync.Mutex
	var cookies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		cookies = append(cookies, r.Header.Get("Cookie"))
		mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "sess", Value: "s1", Path: "/"})
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	_, err := c.MetricsDashboard(ctx)
	require.NoError(t, err)
	_, err = c.MetricsDashboard(ctx)
	require.NoError(t, err)
	_, err = c.DownloadFile(ctx, srv.URL+"/o1")
	require.NoError(t, err)
	_, err = c.DownloadFile(ctx, srv.URL+"/o1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "", "", ""}, cookies)
}
