package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/exithook/internal/constants"
	hookerrors "github.com/mrz1836/exithook/internal/errors"
	"github.com/mrz1836/exithook/internal/funnel"
	"github.com/mrz1836/exithook/internal/observability"
	"github.com/mrz1836/exithook/internal/testutil"
)

const (
	testTokenEnv   = "BS_TESTOPS_JWT"
	testBuildIDEnv = "BS_TESTOPS_BUILD_HASHED_ID"
)

// mockStopper records calls and returns a canned outcome.
type mockStopper struct {
	result *observability.BuildStopResult
	err    error
	calls  int
}

func (m *mockStopper) StopBuild(_ context.Context) (*observability.BuildStopResult, error) {
	m.calls++
	return m.result, m.err
}

// mockSender records what it was asked to send.
type mockSender struct {
	err   error
	calls int
	sent  funnel.Data
}

func (m *mockSender) Send(_ context.Context, data funnel.Data) error {
	m.calls++
	m.sent = data
	return m.err
}

func testSettings() Settings {
	return Settings{
		TokenEnv:   testTokenEnv,
		BuildIDEnv: testBuildIDEnv,
		ReportURL:  constants.DefaultReportURLTemplate,
	}
}

// logContext returns a context carrying a debug logger that writes to the returned buffer.
func logContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background()), buf
}

// writeFunnel saves payload as JSON in a temp dir and returns its path.
func writeFunnel(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funnelData.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

const observabilityPayload = `{
	"userName": "u",
	"event_properties": {
		"productUsage": {
			"testObservability": {
				"events": {"buildEvents": {"started": {"status": "success"}}}
			}
		}
	}
}`

func finishedRecord(t *testing.T, data funnel.Data) map[string]any {
	t.Helper()
	finished, ok := data.BuildFinished()
	require.True(t, ok, "finished record missing")
	return finished
}

func TestRun_NoFlagsDoesNothing(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)

	stopper := &mockStopper{}
	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs(nil),
		Env:      Env{testTokenEnv: "jwt"},
		Settings: testSettings(),
		Stopper:  stopper,
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Zero(t, stopper.calls)
	assert.Zero(t, sender.calls)
}

func TestRun_FunnelOnlySendsPayloadUnchanged(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)
	path := writeFunnel(t, `{"event_properties":{}}`)

	stopper := &mockStopper{}
	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path}),
		Env:      Env{testTokenEnv: "jwt"},
		Settings: testSettings(),
		Stopper:  stopper,
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Zero(t, stopper.calls, "stop build requires --observability")
	require.Equal(t, 1, sender.calls)
	assert.Equal(t, funnel.Data{"event_properties": map[string]any{}}, sender.sent)
	assert.NoFileExists(t, path)
}

func TestRun_ObservabilityOnlyLogsReportURL(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)

	stopper := &mockStopper{result: &observability.BuildStopResult{Status: constants.BuildStatusSuccess}}
	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--observability"}),
		Env:      Env{testTokenEnv: "jwt", testBuildIDEnv: "abc"},
		Settings: testSettings(),
		Stopper:  stopper,
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stopper.calls)
	assert.Zero(t, sender.calls, "nothing to send without funnel data")
	assert.Contains(t, logs.String(),
		"Visit https://observability.browserstack.com/builds/abc to view build report, insights, and many more debugging information all at one place!")
	assert.Contains(t, logs.String(), `"level":"info"`)
}

func TestRun_NoBuildIDSkipsReportLine(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)

	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--observability"}),
		Env:      Env{testTokenEnv: "jwt"},
		Settings: testSettings(),
		Stopper:  &mockStopper{result: &observability.BuildStopResult{Status: constants.BuildStatusSuccess}},
		Sender:   &mockSender{},
	})

	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "Visit ")
}

func TestRun_NoTokenSkipsStopAndLeavesPayload(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)
	path := writeFunnel(t, observabilityPayload)

	stopper := &mockStopper{}
	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--observability", "--funnelData", path}),
		Env:      Env{testTokenEnv: ""},
		Settings: testSettings(),
		Stopper:  stopper,
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Zero(t, stopper.calls)
	require.Equal(t, 1, sender.calls)
	_, ok := sender.sent.BuildFinished()
	assert.False(t, ok, "payload must not be modified")
	assert.NotContains(t, logs.String(), "Executing observability cleanup")
}

func TestRun_RecordsStopOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		result        *observability.BuildStopResult
		err           error
		expectStatus  string
		expectError   string
		expectErrorOK bool
	}{
		{
			name:         "success",
			result:       &observability.BuildStopResult{Status: constants.BuildStatusSuccess},
			expectStatus: "success",
		},
		{
			name:         "success message is not an error",
			result:       &observability.BuildStopResult{Status: constants.BuildStatusSuccess, Message: "ok"},
			expectStatus: "success",
		},
		{
			name:          "failed with message",
			result:        &observability.BuildStopResult{Status: constants.BuildStatusFailed, Message: "boom"},
			expectStatus:  "failed",
			expectError:   "boom",
			expectErrorOK: true,
		},
		{
			name:          "missing status defaults to failed",
			result:        &observability.BuildStopResult{Message: "no status"},
			expectStatus:  "failed",
			expectError:   "no status",
			expectErrorOK: true,
		},
		{
			name:         "nil result defaults to failed",
			result:       nil,
			expectStatus: "failed",
		},
		{
			name:         "precondition error status carries no error text",
			result:       &observability.BuildStopResult{Status: constants.BuildStatusError, Message: observability.MsgBuildNotCompleted},
			expectStatus: "error",
		},
		{
			name:          "stopper failure records cause",
			err:           testutil.ErrMockNetwork,
			expectStatus:  "failed",
			expectError:   testutil.ErrMockNetwork.Error(),
			expectErrorOK: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := logContext(t)
			path := writeFunnel(t, observabilityPayload)

			sender := &mockSender{}
			err := Run(ctx, Input{
				Args:     InspectArgs([]string{"--funnelData", path, "--observability"}),
				Env:      Env{testTokenEnv: "jwt"},
				Settings: testSettings(),
				Stopper:  &mockStopper{result: tc.result, err: tc.err},
				Sender:   sender,
			})

			require.NoError(t, err)
			require.Equal(t, 1, sender.calls)

			finished := finishedRecord(t, sender.sent)
			assert.Equal(t, tc.expectStatus, finished["status"])
			assert.Equal(t, "exitHook", finished["stoppedFrom"])
			errText, hasErr := finished["error"]
			assert.Equal(t, tc.expectErrorOK, hasErr)
			if tc.expectErrorOK {
				assert.Equal(t, tc.expectError, errText)
			}

			started, ok := sender.sent.Lookup("event_properties", "productUsage", "testObservability", "events", "buildEvents", "started")
			assert.True(t, ok, "sibling events are preserved")
			assert.Equal(t, map[string]any{"status": "success"}, started)
		})
	}
}

func TestRun_StopFailureIsLoggedNotReturned(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)

	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--observability"}),
		Env:      Env{testTokenEnv: "jwt", testBuildIDEnv: "abc"},
		Settings: testSettings(),
		Stopper:  &mockStopper{err: testutil.ErrMockTimeout},
		Sender:   &mockSender{},
	})

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Error in stopping Observability build: "+testutil.ErrMockTimeout.Error())
	assert.Equal(t, 1, strings.Count(logs.String(), testutil.ErrMockTimeout.Error()), "error text logged once")
	assert.NotContains(t, logs.String(), "Visit ", "report line is only logged after a returned result")
}

func TestRun_DebugLineRedactsToken(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)

	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--observability"}),
		Env:      Env{testTokenEnv: "plain-session-credential", testBuildIDEnv: "abc"},
		Settings: testSettings(),
		Stopper:  &mockStopper{result: &observability.BuildStopResult{Status: constants.BuildStatusSuccess}},
		Sender:   &mockSender{},
	})

	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"token":"[REDACTED]"`)
	assert.Contains(t, logs.String(), `"build_id":"abc"`)
	assert.NotContains(t, logs.String(), "plain-session-credential")
}

func TestRun_NoObservabilityTreeIsUnchanged(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)
	payload := `{"event_type":"SDKTestSuccessful","event_properties":{"productUsage":{}}}`
	path := writeFunnel(t, payload)

	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path, "--observability"}),
		Env:      Env{testTokenEnv: "jwt"},
		Settings: testSettings(),
		Stopper:  &mockStopper{result: &observability.BuildStopResult{Status: constants.BuildStatusSuccess}},
		Sender:   sender,
	})

	require.NoError(t, err)
	require.Equal(t, 1, sender.calls)

	var expected funnel.Data
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&expected))
	assert.Equal(t, expected, sender.sent)
}

func TestRun_SendFailureIsLoggedNotReturned(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)
	path := writeFunnel(t, `{"event_properties":{}}`)

	sender := &mockSender{err: testutil.ErrMockAPIError}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path}),
		Env:      Env{},
		Settings: testSettings(),
		Stopper:  &mockStopper{},
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls, "no retry")
	assert.Contains(t, logs.String(), "Error in sending funnel data: "+testutil.ErrMockAPIError.Error())
	assert.Equal(t, 1, strings.Count(logs.String(), testutil.ErrMockAPIError.Error()), "error text logged once")
	assert.NotContains(t, logs.String(), "Funnel data sent successfully from cleanup")
}

func TestRun_SendSuccessIsLogged(t *testing.T) {
	t.Parallel()
	ctx, logs := logContext(t)
	path := writeFunnel(t, `{"event_properties":{}}`)

	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path}),
		Env:      Env{},
		Settings: testSettings(),
		Stopper:  &mockStopper{},
		Sender:   &mockSender{},
	})

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Funnel data sent successfully from cleanup")
}

func TestRun_ParseErrorAbortsRemainingSteps(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)
	path := writeFunnel(t, `{not json`)

	stopper := &mockStopper{}
	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path, "--observability"}),
		Env:      Env{testTokenEnv: "jwt"},
		Settings: testSettings(),
		Stopper:  stopper,
		Sender:   sender,
	})

	require.ErrorIs(t, err, hookerrors.ErrFunnelParse)
	assert.Zero(t, stopper.calls)
	assert.Zero(t, sender.calls)
	assert.FileExists(t, path)
}

func TestRun_MissingFileReturnsReadError(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)

	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", filepath.Join(t.TempDir(), "missing.json")}),
		Env:      Env{},
		Settings: testSettings(),
		Stopper:  &mockStopper{},
		Sender:   sender,
	})

	require.ErrorIs(t, err, hookerrors.ErrFunnelRead)
	assert.Zero(t, sender.calls)
}

func TestRun_NullPayloadIsNotSent(t *testing.T) {
	t.Parallel()
	ctx, _ := logContext(t)
	path := writeFunnel(t, `null`)

	sender := &mockSender{}
	err := Run(ctx, Input{
		Args:     InspectArgs([]string{"--funnelData", path}),
		Env:      Env{},
		Settings: testSettings(),
		Stopper:  &mockStopper{},
		Sender:   sender,
	})

	require.NoError(t, err)
	assert.Zero(t, sender.calls)
	assert.NoFileExists(t, path)
}

func TestBuildOutcome(t *testing.T) {
	t.Parallel()

	status, errText := buildOutcome(nil)
	assert.Equal(t, constants.BuildStatusFailed, status)
	assert.Empty(t, errText)

	status, errText = buildOutcome(&observability.BuildStopResult{Status: "unknown", Message: "m"})
	assert.Equal(t, constants.BuildStatus("unknown"), status)
	assert.Empty(t, errText)
}
