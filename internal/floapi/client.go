package floapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/config"
	"github.com/flo-mobility/admin-console/internal/observability"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

const maxErrorBody = 4 << 10

type tokenKey struct{}

// WithToken returns a context whose Flo API calls carry the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token attached with WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// APIError describes a non-2xx response from the Flo API.
type APIError struct {
	Operation string
	Status    int
	Message   string
	Body      []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("flo api %s: %d %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("flo api %s: %d", e.Operation, e.Status)
}

// StatusOf returns the upstream HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Envelope is the standard Flo response wrapper.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
}

// Client is a thin JSON client for the Flo REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a client for the configured base URL.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, in, out any) error {
	return c.do(ctx, op, http.MethodPost, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, op, path string, in, out any) error {
	return c.do(ctx, op, http.MethodPut, path, nil, in, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, path, query, in, out)
	c.metrics.RecordUpstream(op, err == nil, time.Since(start))
	if err != nil {
		c.logger.Error("upstream request failed",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", StatusOf(err)),
			zap.Error(err))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s request: %w", op, err))
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("build %s request: %w", op, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError(0, "", fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Operation: op,
			Status:    resp.StatusCode,
			Message:   extractMessage(raw),
			Body:      raw,
		}
		return apperrors.NewUpstreamError(resp.StatusCode, apiErr.Message, apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewUpstreamError(resp.StatusCode, "invalid upstream response", fmt.Errorf("decode %s response: %w", op, err))
	}
	return nil
}

func extractMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Status  *struct {
			Message string `json:"message"`
		} `json:"status"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Status != nil {
		return payload.Status.Message
	}
	return ""
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("size", fmt.Sprint(size))
	return q
}
