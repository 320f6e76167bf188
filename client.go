package client

import (
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type client struct {
	restyClient       *resty.Client
	transferClient    *resty.Client
	baseURL           string
	headers           map[string]string
	logger            *zap.SugaredLogger
	processingTimeout time.Duration
	timeout           time.Duration
	tracing           bool
	tracingOpts       []otelhttp.Option
	requestIDs        bool
}

var _ Client = (*client)(nil)

type Option func(*client)

// WithHeaders sets static headers sent with every request. On requests with a
// JSON body these are applied after Content-Type, so a caller value wins.
func WithHeaders(headers map[string]string) Option {
	return func(c *client) {
		maps.Copy(c.headers, headers)
	}
}

// WithHeader sets a single static header.
func WithHeader(key, value string) Option {
	return func(c *client) {
		c.headers[key] = value
	}
}

// WithTimeout sets a per-request timeout. Without it the transport defaults apply.
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger routes resty's diagnostics and per-call debug lines to logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithTransferClient overrides the client used for signed upload and download URLs.
func WithTransferClient(transfer *resty.Client) Option {
	return func(c *client) {
		if transfer != nil {
			c.transferClient = transfer
		}
	}
}

// WithProcessingTimeout caps WaitForProcessing when ctx has no deadline.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.processingTimeout = timeout
		}
	}
}

// WithTracing wraps both transports with OpenTelemetry HTTP instrumentation.
// Without options the global tracer provider and propagators are used.
func WithTracing(opts ...otelhttp.Option) Option {
	return func(c *client) {
		c.tracing = true
		c.tracingOpts = append(c.tracingOpts, opts...)
	}
}

// WithRequestIDs stamps each request with a fresh X-Request-Id unless the
// static headers already carry one.
func WithRequestIDs() Option {
	return func(c *client) {
		c.requestIDs = true
	}
}

// NewClient returns a client for the API rooted at baseURL. Trailing slashes
// are stripped from baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &client{
		restyClient:       resty.New(),
		baseURL:           strings.TrimRight(baseURL, "/"),
		headers:           make(map[string]string),
		logger:            zap.NewNop().Sugar(),
		processingTimeout: ProcessingTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = resty.New()
	}

	if c.transferClient == nil {
		c.transferClient = resty.New()
	}

	c.restyClient.SetBaseURL(c.baseURL)

	for _, rc := range []*resty.Client{c.restyClient, c.transferClient} {
		rc.SetLogger(c.logger)
		// Calls are independent; cookies from one response are never replayed.
		rc.SetCookieJar(nil)
		if c.timeout > 0 {
			rc.SetTimeout(c.timeout)
		}
		if c.tracing {
			rc.SetTransport(otelhttp.NewTransport(transportOf(rc), c.tracingOpts...))
		}
	}

	if c.requestIDs {
		c.restyClient.OnBeforeRequest(stampRequestID)
	}

	return c
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *client) Version() string {
	return APIVersion
}

// BaseURL returns the normalized base URL.
func (c *client) BaseURL() string {
	return c.baseURL
}

// Headers returns a copy of the static headers.
func (c *client) Headers() map[string]string {
	return maps.Clone(c.headers)
}

func transportOf(rc *resty.Client) http.RoundTripper {
	if t := rc.GetClient().Transport; t != nil {
		return t
	}
	return http.DefaultTransport
}

func stampRequestID(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}
