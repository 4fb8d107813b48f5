// Package iothub is a typed client for the IoT hub service API. Every
// operation builds one HTTP request, runs it, and either decodes the
// documented success model or returns a typed error. The client never
// retries, caches, or batches on its own.
package iothub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
	"github.com/edgetap/iothub-go/pkg/sas"
)

// APIVersion is the service API version sent with every request.
const APIVersion = "2021-04-12"

const userAgent = "iothub-go/1.0"

const (
	headerContinuation    = "x-ms-continuation"
	headerMaxItemCount    = "x-ms-max-item-count"
	headerClientRequestID = "x-ms-client-request-id"
	headerRequestID       = "x-ms-request-id"
)

type Client struct {
	client *http.Client

	host       string
	apiVersion string

	credential Credential

	logger *slog.Logger

	telemetry bool

	Devices        *DevicesClient
	Modules        *ModulesClient
	Twins          *TwinsClient
	Methods        *MethodsClient
	Configurations *ConfigurationsClient
	Jobs           *JobsClient
	Statistics     *StatisticsClient
}

type Option func(*Client)

// WithClient replaces the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithAPIVersion overrides the service API version.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithLogger replaces the logger. Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTelemetry wraps the HTTP transport with OpenTelemetry
// instrumentation.
func WithTelemetry() Option {
	return func(c *Client) {
		c.telemetry = true
	}
}

// New creates a client for the hub at host, for example
// "example-hub.azure-devices.net". A scheme prefix is tolerated and
// stripped.
func New(host string, credential Credential, options ...Option) (*Client, error) {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	if host == "" {
		return nil, ErrMissingHost
	}

	if credential == nil {
		return nil, ErrMissingCredential
	}

	c := &Client{
		client: http.DefaultClient,

		host:       host,
		apiVersion: APIVersion,

		credential: credential,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(c)
	}

	if c.telemetry {
		transport := c.client.Transport

		if transport == nil {
			transport = http.DefaultTransport
		}

		clone := *c.client
		clone.Transport = otelhttp.NewTransport(transport)

		c.client = &clone
	}

	c.Devices = &DevicesClient{client: c}
	c.Modules = &ModulesClient{client: c}
	c.Twins = &TwinsClient{client: c}
	c.Methods = &MethodsClient{client: c}
	c.Configurations = &ConfigurationsClient{client: c}
	c.Jobs = &JobsClient{client: c}
	c.Statistics = &StatisticsClient{client: c}

	return c, nil
}

// NewFromConnectionString creates a client from a hub-level connection
// string with a shared access policy.
func NewFromConnectionString(connectionString string, options ...Option) (*Client, error) {
	parsed, err := sas.ParseConnectionString(connectionString)

	if err != nil {
		return nil, err
	}

	credential, err := NewSharedAccessCredential(parsed.HostName, parsed.SharedAccessKeyName, parsed.SharedAccessKey)

	if err != nil {
		return nil, err
	}

	return New(parsed.HostName, credential, options...)
}

// Host returns the hub host name the client talks to.
func (c *Client) Host() string {
	return c.host
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	values := url.Values{}

	for key, vals := range query {
		values[key] = vals
	}

	values.Set("api-version", c.apiVersion)

	u := url.URL{
		Scheme: "https",
		Host:   c.host,

		Path:     path,
		RawQuery: values.Encode(),
	}

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)

		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)

	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(headerClientRequestID, uuid.NewString())

	authorization, err := c.credential.Authorization(ctx)

	if err != nil {
		return nil, fmt.Errorf("authorize request: %w", err)
	}

	req.Header.Set("Authorization", authorization)

	return req, nil
}

// do runs one request against the service. A non-nil result receives the
// decoded response body and, when it validates itself, is checked for
// required fields. The returned headers carry paging state for queries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, result any) (http.Header, error) {
	req, err := c.newRequest(ctx, method, path, query, body)

	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	c.logger.DebugContext(ctx, "iothub request", "method", method, "path", path)

	start := time.Now()

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "iothub response", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.Header, newServiceError(resp.StatusCode, resp.Header.Get(headerRequestID), resp.Body)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)

		return resp.Header, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resp.Header, &TransportError{Err: ctxErr}
		}

		return resp.Header, &DecodeError{Err: err}
	}

	if v, ok := result.(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return resp.Header, &DecodeError{Err: err}
		}
	}

	return resp.Header, nil
}

// ifMatch builds an If-Match header. An empty etag matches any version,
// a bare etag is quoted the way the service expects.
func ifMatch(etag string) map[string]string {
	if etag == "" || etag == "*" {
		return map[string]string{"If-Match": "*"}
	}

	if !strings.HasPrefix(etag, `"`) {
		etag = `"` + etag + `"`
	}

	return map[string]string{"If-Match": etag}
}
