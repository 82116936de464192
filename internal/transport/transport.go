package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lodgemusic/lodgectl/internal/logging"
)

// HTTPDoer describes the HTTP client used by the transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configure a Client.
type Options struct {
	HTTP      HTTPDoer
	Logger    *slog.Logger
	UserAgent string
}

// Client issues JSON requests against the lodge backends. It enforces no
// timeout; callers bound latency through the context they pass in.
type Client struct {
	http      HTTPDoer
	logger    *slog.Logger
	userAgent string
}

// Request describes one call. Body is JSON-encoded unless it is already a
// []byte or string.
type Request struct {
	Method  string
	URL     string
	Body    any
	Headers http.Header
}

// Response carries either a JSON or a text body, chosen from the declared
// content type.
type Response struct {
	Status      int
	ContentType string
	JSON        json.RawMessage
	Text        string
}

const (
	defaultUserAgent = "lodgectl/0.1"
	maxResponseBytes = 8 * 1024 * 1024

	// HeaderRequestID carries the per-request correlation identifier.
	HeaderRequestID = "X-Request-ID"
)

// New builds a Client. A nil HTTP doer uses an http.Client without a timeout.
func New(opts Options) *Client {
	doer := opts.HTTP
	if doer == nil {
		doer = &http.Client{}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		http:      doer,
		logger:    logging.NewComponentLogger(opts.Logger, "transport"),
		userAgent: ua,
	}
}

// Do performs the request. Any status outside 200-299 fails with *HTTPError;
// failures before a status is available fail with *NetworkError. Every
// failure is logged with its URL. Nothing is retried.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("transport client is nil")
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()

	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, c.fail(method, r.URL, requestID, fmt.Errorf("encode request body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, c.fail(method, r.URL, requestID, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	for key, values := range r.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(method, r.URL, requestID, &NetworkError{URL: r.URL, Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, c.fail(method, r.URL, requestID, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			URL:        r.URL,
		})
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.fail(method, r.URL, requestID, &NetworkError{URL: r.URL, Err: fmt.Errorf("read body: %w", err)})
	}

	out := &Response{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	if isJSONContentType(out.ContentType) {
		if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
			return nil, c.fail(method, r.URL, requestID, fmt.Errorf("decode response from %s: invalid JSON", r.URL))
		}
		out.JSON = json.RawMessage(raw)
	} else {
		out.Text = string(raw)
	}
	return out, nil
}

// GetJSON issues a GET and decodes the JSON response into dest.
func (c *Client) GetJSON(ctx context.Context, url string, dest any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, URL: url})
	if err != nil {
		return err
	}
	return resp.Decode(dest)
}

// PostJSON posts body and decodes the JSON response into dest when dest is
// non-nil.
func (c *Client) PostJSON(ctx context.Context, url string, body, dest any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, URL: url, Body: body})
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return resp.Decode(dest)
}

// Probe issues a GET and reports only whether the status was 2xx.
func (c *Client) Probe(ctx context.Context, url string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, URL: url})
	return err
}

// IsJSON reports whether the response carried a JSON body.
func (r *Response) IsJSON() bool {
	return r != nil && r.JSON != nil
}

// Decode unmarshals the JSON body into dest. An empty JSON body or a text
// response leaves dest untouched.
func (r *Response) Decode(dest any) error {
	if r == nil || dest == nil || len(bytes.TrimSpace(r.JSON)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.JSON, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) fail(method, url, requestID string, err error) error {
	attrs := []any{
		logging.FieldMethod, method,
		logging.FieldURL, url,
		logging.FieldRequestID, requestID,
		logging.Error(err),
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		attrs = append(attrs, logging.FieldStatus, httpErr.Status)
	}
	c.logger.Error("api request failed", attrs...)
	return err
}

func encodeBody(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		return strings.NewReader(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

func isJSONContentType(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		mediaType = strings.ToLower(value)
	}
	return strings.Contains(mediaType, "application/json") || strings.HasSuffix(mediaType, "+json")
}

func statusText(resp *http.Response) string {
	// resp.Status is "404 Not Found"; keep the reason phrase only.
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
