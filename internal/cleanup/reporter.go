package cleanup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/exithook/internal/constants"
	"github.com/mrz1836/exithook/internal/funnel"
	"github.com/mrz1836/exithook/internal/logging"
	"github.com/mrz1836/exithook/internal/observability"
)

// reportBuildStop stops the observability build and records the outcome in data.
// It is a no-op when the auth token variable is unset. Errors from the stopper
// are logged and recorded as a failed stop; they never propagate.
func reportBuildStop(ctx context.Context, in Input, data funnel.Data) {
	if !in.Env.Has(in.Settings.TokenEnv) {
		return
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("token_env", in.Settings.TokenEnv).
		Str("token", logging.SafeValue("token", in.Env.Get(in.Settings.TokenEnv))).
		Str("build_id", logging.SafeValue(in.Settings.BuildIDEnv, in.Env.Get(in.Settings.BuildIDEnv))).
		Msg("Executing observability cleanup")

	result, err := in.Stopper.StopBuild(ctx)
	if err != nil {
		logger.Error().Msg("Error in stopping Observability build: " + err.Error())
		data.UpdateBuildFinished(constants.BuildStatusFailed, err.Error())
		return
	}

	if buildID := in.Env.Get(in.Settings.BuildIDEnv); buildID != "" {
		reportURL := fmt.Sprintf(in.Settings.ReportURL, buildID)
		logger.Info().
			Str("report_url", reportURL).
			Msgf("Visit %s to view build report, insights, and many more debugging information all at one place!", reportURL)
	}

	status, errText := buildOutcome(result)
	data.UpdateBuildFinished(status, errText)
}

// buildOutcome derives the recorded status and error from a stop result.
// A nil result or empty status counts as failed. The message is kept as the
// error only when the status is failed.
func buildOutcome(result *observability.BuildStopResult) (constants.BuildStatus, string) {
	status := constants.BuildStatusFailed
	var message string
	if result != nil {
		if result.Status != "" {
			status = result.Status
		}
		message = result.Message
	}

	if !status.IsFailed() {
		return status, ""
	}
	return status, message
}
