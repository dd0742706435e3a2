// Package cleanup runs the exit hook of a test session: it stops the
// observability build, records the outcome in the buffered funnel data and
// flushes that data to the telemetry endpoint.
package cleanup

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/exithook/internal/funnel"
	"github.com/mrz1836/exithook/internal/observability"
)

// BuildStopper stops the observability build of the current run.
type BuildStopper interface {
	StopBuild(ctx context.Context) (*observability.BuildStopResult, error)
}

// FunnelSender transmits funnel data.
type FunnelSender interface {
	Send(ctx context.Context, data funnel.Data) error
}

// Settings name the environment variables and report link the hook uses.
type Settings struct {
	// TokenEnv gates the build-stop step: unset means observability was never enabled.
	TokenEnv string
	// BuildIDEnv feeds the report URL in the success log line.
	BuildIDEnv string
	// ReportURL is a fmt template with one %s for the build id.
	ReportURL string
}

// Input is everything one hook run depends on.
type Input struct {
	Args     Args
	Env      Env
	Settings Settings
	Stopper  BuildStopper
	Sender   FunnelSender
}

// Run executes the hook: load the funnel file, stop the build, send the funnel data.
//
// Each step runs only when requested by Args. The build outcome is written into
// the loaded funnel data before it is sent. Remote failures are logged and
// swallowed; the only error returned is from loading the funnel file, in which
// case nothing else runs. The logger is taken from ctx.
func Run(ctx context.Context, in Input) error {
	logger := zerolog.Ctx(ctx)

	var data funnel.Data
	if in.Args.FunnelData {
		loaded, err := funnel.Load(ctx, in.Args.FunnelPath)
		if err != nil {
			return err
		}
		data = loaded
	}

	if in.Args.Observability {
		reportBuildStop(ctx, in, data)
	}

	if in.Args.FunnelData && data != nil {
		sendFunnelData(ctx, in.Sender, data)
	}

	logger.Debug().
		Bool("funnel_data", in.Args.FunnelData).
		Bool("observability", in.Args.Observability).
		Msg("cleanup finished")
	return nil
}
