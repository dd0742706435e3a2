// Package observability talks to the observability collector about the
// build that tracked the current test run.
package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/exithook/internal/clock"
	"github.com/mrz1836/exithook/internal/constants"
	"github.com/mrz1836/exithook/internal/ctxutil"
	hookerrors "github.com/mrz1836/exithook/internal/errors"
)

// Messages returned when StopBuild cannot make a request.
const (
	MsgBuildNotCompleted = "Build is not completed yet"
	MsgMissingToken      = "Token/buildID is undefined, build creation might have failed"
)

// maxErrorBody caps how much of a non-2xx response body is quoted in errors.
const maxErrorBody = 512

// BuildStopResult is the outcome of a stop-build call.
// An empty Status means the outcome is unknown.
type BuildStopResult struct {
	Status  constants.BuildStatus `json:"status,omitempty"`
	Message string                `json:"message,omitempty"`
}

// Credentials identify the build to stop.
type Credentials struct {
	// Token is the JWT issued at build creation.
	Token string
	// BuildID is the hashed build identifier.
	BuildID string
	// BuildCompleted reports whether build creation finished.
	BuildCompleted bool
}

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client stops observability builds.
type Client struct {
	apiURL     string
	userAgent  string
	creds      Credentials
	httpClient HTTPClient
	clock      clock.Clock
}

// NewClient creates a Client backed by net/http and the system clock.
// A zero timeout leaves requests unbounded.
func NewClient(apiURL, userAgent string, timeout time.Duration, creds Credentials) *Client {
	return NewClientWithDeps(apiURL, userAgent, creds, &http.Client{Timeout: timeout}, clock.RealClock{})
}

// NewClientWithDeps creates a Client with custom dependencies (for testing).
func NewClientWithDeps(apiURL, userAgent string, creds Credentials, httpClient HTTPClient, clk clock.Clock) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		userAgent:  userAgent,
		creds:      creds,
		httpClient: httpClient,
		clock:      clk,
	}
}

// stopRequest is the body of the stop call.
type stopRequest struct {
	StopTime string `json:"stop_time"`
}

// StopBuild marks the build finished.
//
// When build creation never completed, or the token or build id is missing,
// no request is made and a result with status "error" is returned.
// Transport failures and non-2xx responses are returned as errors wrapping
// ErrStopBuildFailed.
func (c *Client) StopBuild(ctx context.Context) (*BuildStopResult, error) {
	logger := zerolog.Ctx(ctx)

	if !c.creds.BuildCompleted {
		return &BuildStopResult{Status: constants.BuildStatusError, Message: MsgBuildNotCompleted}, nil
	}
	if c.creds.Token == "" || c.creds.BuildID == "" {
		logger.Debug().Msg("[STOP_BUILD] Missing Authentication Token/ Build ID")
		return &BuildStopResult{Status: constants.BuildStatusError, Message: MsgMissingToken}, nil
	}

	if err := ctxutil.CanceledBefore(ctx, "stop build"); err != nil {
		return nil, fmt.Errorf("%w: %w", hookerrors.ErrStopBuildFailed, err)
	}

	body, err := json.Marshal(stopRequest{
		StopTime: c.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", hookerrors.ErrStopBuildFailed, err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/builds/%s/stop", c.apiURL, url.PathEscape(c.creds.BuildID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", hookerrors.ErrStopBuildFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("[STOP_BUILD] Failed")
		return nil, fmt.Errorf("%w: %w", hookerrors.ErrStopBuildFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Debug().Int("status_code", resp.StatusCode).Msg("[STOP_BUILD] Failed")
		return nil, fmt.Errorf("%w: %w: status %d: %s",
			hookerrors.ErrStopBuildFailed, hookerrors.ErrUnexpectedStatus, resp.StatusCode, string(snippet))
	}

	respBody, _ := io.ReadAll(resp.Body)
	logger.Debug().Msg("[STOP_BUILD] Success response: " + string(respBody))

	return &BuildStopResult{Status: constants.BuildStatusSuccess}, nil
}
