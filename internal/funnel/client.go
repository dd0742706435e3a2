package funnel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/exithook/internal/ctxutil"
	hookerrors "github.com/mrz1836/exithook/internal/errors"
)

// Credential fields carried at the top level of funnel data.
// They authenticate the request and are stripped before the body is built.
const (
	keyUserName  = "userName"
	keyAccessKey = "accessKey"
)

// maxErrorBody caps how much of a non-2xx response body is quoted in errors.
const maxErrorBody = 512

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts funnel data to the SDK event endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient HTTPClient
}

// NewClient creates a Client backed by net/http.
// A zero timeout leaves requests unbounded.
func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	return NewClientWithHTTP(endpoint, userAgent, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a Client with a custom HTTP client (for testing).
func NewClientWithHTTP(endpoint, userAgent string, httpClient HTTPClient) *Client {
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Send removes the userName/accessKey credentials from data, then POSTs the
// remaining payload as JSON using those credentials for basic auth.
// Any transport failure or non-2xx status wraps ErrFunnelSendFailed.
func (c *Client) Send(ctx context.Context, data Data) error {
	if err := ctxutil.CanceledBefore(ctx, "funnel send"); err != nil {
		return fmt.Errorf("%w: %w", hookerrors.ErrFunnelSendFailed, err)
	}

	userName, accessKey, hasAuth := extractCredentials(data)

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: encode payload: %w", hookerrors.ErrFunnelSendFailed, err)
	}

	requestID := uuid.NewString()
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("request_id", requestID).
		RawJSON("payload", body).
		Msg("Sending SDK event")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", hookerrors.ErrFunnelSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if hasAuth {
		req.SetBasicAuth(userName, accessKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", hookerrors.ErrFunnelSendFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %w: status %d: %s",
			hookerrors.ErrFunnelSendFailed, hookerrors.ErrUnexpectedStatus, resp.StatusCode, string(snippet))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// extractCredentials deletes the credential fields from data and returns
// their string values. ok is false when neither field was a non-empty string.
func extractCredentials(data Data) (userName, accessKey string, ok bool) {
	userName, _ = data[keyUserName].(string)
	accessKey, _ = data[keyAccessKey].(string)
	delete(data, keyUserName)
	delete(data, keyAccessKey)
	return userName, accessKey, userName != "" || accessKey != ""
}
