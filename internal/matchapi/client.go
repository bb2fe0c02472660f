// Package matchapi is the HTTP client for the external job search and resume matching service.
package matchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
	"go.uber.org/zap"
)

// Service endpoints, relative to the base URL.
const (
	SearchPath = "/get-jobs/"
	MatchPath  = "/match-jobs/"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 2 * time.Minute

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "ResumeMatcher/1.0"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Operation names used in errors and logs.
const (
	OpSearch = "search-jobs"
	OpMatch  = "match-jobs"
)

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client calls the external search and matching endpoints.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate URL
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, newError("new-client", baseURL, KindRequest, 0, "invalid base URL", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logging.OrNop(opts.Logger).Named("matchapi"),
	}, nil
}

// SearchJobs issues GET /get-jobs/?query=... and returns the normalized listings.
func (c *Client) SearchJobs(ctx context.Context, query string) ([]types.Listing, error) {
	endpoint := c.endpoint(SearchPath)
	endpoint.RawQuery = "query=" + encodeQueryComponent(query)
	urlStr := endpoint.String()

	if strings.TrimSpace(query) == "" {
		return nil, newError(OpSearch, urlStr, KindRequest, 0, "query is required", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, newError(OpSearch, urlStr, KindRequest, 0, "failed to create request", err)
	}

	var body types.SearchResponse
	if err := c.do(req, OpSearch, schemafiles.SearchResponse, &body); err != nil {
		return nil, err
	}

	listings := types.NormalizeListings(body.Jobs)
	c.logger.Info("search completed", zap.String("query", query), zap.Int("count", len(listings)))
	return listings, nil
}

// MatchJobs issues a multipart POST /match-jobs/ with the resume and query and
// returns the normalized matches.
func (c *Client) MatchJobs(ctx context.Context, query string, resume *types.ResumeFile) ([]types.Match, error) {
	urlStr := c.endpoint(MatchPath).String()

	if strings.TrimSpace(query) == "" {
		return nil, newError(OpMatch, urlStr, KindRequest, 0, "query is required", nil)
	}
	if resume == nil || len(resume.Data) == 0 {
		return nil, newError(OpMatch, urlStr, KindRequest, 0, "resume file is required", nil)
	}

	payload, contentType, err := encodeMatchForm(query, resume)
	if err != nil {
		return nil, newError(OpMatch, urlStr, KindRequest, 0, "failed to encode form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, payload)
	if err != nil {
		return nil, newError(OpMatch, urlStr, KindRequest, 0, "failed to create request", err)
	}
	req.Header.Set("Content-Type", contentType)

	var body types.MatchResponse
	if err := c.do(req, OpMatch, schemafiles.MatchResponse, &body); err != nil {
		return nil, err
	}

	matches := types.NormalizeMatches(body.Matches)
	c.logger.Info("match completed",
		zap.String("query", query),
		zap.String("resume", resume.Name),
		zap.Int("count", len(matches)))
	return matches, nil
}

// do executes req, rejects non-2xx statuses and reported service failures,
// validates the body against schemaName and decodes it into out.
// A non-empty "error" field fails the call whatever the rest of the body holds.
func (c *Client) do(req *http.Request, op, schemaName string, out any) error {
	urlStr := req.URL.String()

	// Set headers
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("calling service", zap.String("op", op), zap.String("url", urlStr))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		msg := "Could not reach the job service. Please try again later."
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			msg = "The job service took too long to respond."
		}
		return newError(op, urlStr, KindTransport, 0, msg, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	c.logger.Debug("service responded",
		zap.String("op", op),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	// Check for non-success status; the body is irrelevant
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		c.logger.Warn("unexpected status code", zap.String("op", op), zap.Int("status_code", resp.StatusCode))
		return newError(op, urlStr, KindStatus, resp.StatusCode,
			fmt.Sprintf("Server responded with %d", resp.StatusCode), nil)
	}

	// Read response body
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return newError(op, urlStr, KindTransport, resp.StatusCode, "failed to read response body", err)
	}

	if msg := serviceError(data); msg != "" {
		c.logger.Warn("service reported error", zap.String("op", op), zap.String("error", msg))
		return newError(op, urlStr, KindService, resp.StatusCode, msg, nil)
	}

	if err := schemas.ValidateResponse(schemaName, data); err != nil {
		c.logger.Warn("response failed schema validation", zap.String("op", op), zap.Error(err))
		msg := "unexpected response from the job service"
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			msg = validationErr.Summary()
		}
		return newError(op, urlStr, KindDecode, resp.StatusCode, msg, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return newError(op, urlStr, KindDecode, resp.StatusCode, "failed to decode response", err)
	}

	return nil
}

// serviceError returns the failure message the body reports, or "" when it
// reports none. Only the "error" field is read.
func serviceError(data []byte) string {
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return envelope.ServiceError()
}

// endpoint returns the absolute URL for path under the base URL.
func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = ""
	u.Fragment = ""
	return &u
}

// encodeQueryComponent escapes s for a query value, encoding spaces as %20.
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMatchForm builds the multipart body with the "file" and "query" fields.
func encodeMatchForm(query string, resume *types.ResumeFile) (io.Reader, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType := resume.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	name := resume.Name
	if name == "" {
		name = "resume.pdf"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(resume.Data); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("query", query); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &body, mw.FormDataContentType(), nil
}
