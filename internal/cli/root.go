// Package cli provides the command-line interface for exithook.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/exithook/internal/cleanup"
	"github.com/mrz1836/exithook/internal/config"
	"github.com/mrz1836/exithook/internal/errors"
	"github.com/mrz1836/exithook/internal/funnel"
	"github.com/mrz1836/exithook/internal/observability"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// rootOptions lets tests replace process-level inputs.
type rootOptions struct {
	// env is the environment snapshot; nil reads os.Environ.
	env cleanup.Env
	// configPath overrides the global config file; empty uses $EXITHOOK_HOME/config.yaml.
	configPath string
	// logWriter replaces console and file log output when set.
	logWriter io.Writer
}

const usageText = `Usage:
  exithook [--funnelData <path>] [--observability] [-v|--verbose] [-q|--quiet]

Flags:
  --funnelData <path>   send the funnel data saved at <path>, then delete the file
  --observability       stop the observability build and record its outcome
  -v, --verbose         enable debug logging
  -q, --quiet           log warnings and errors only
  -h, --help            show this help
      --version         show version information
`

// newRootCmd creates the root command.
// Flag parsing is disabled: the parent test runner may append arguments the
// hook does not know, so argv goes to cleanup.InspectArgs unchanged.
func newRootCmd(info BuildInfo, opts rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exithook",
		Short: "Test session exit hook",
		Long: `exithook runs when a test session exits. It stops the observability build,
records the build outcome in the saved funnel data and sends that data to the
SDK event endpoint.`,
		Version:            formatVersion(info),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, args, opts)
		},
	}
	cmd.SetUsageTemplate(usageText)

	return cmd
}

// runHook wires configuration, logging and the remote clients, then runs the cleanup.
func runHook(cmd *cobra.Command, argv []string, opts rootOptions) error {
	args := cleanup.InspectArgs(argv)

	// Help and version only apply to a bare invocation: the parent runner's
	// pass-through arguments must never displace a requested cleanup.
	if !args.Any() {
		switch {
		case args.Help:
			_, err := fmt.Fprint(cmd.OutOrStdout(), cmd.Long+"\n\n"+usageText)
			return err
		case args.Version:
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", cmd.Name(), cmd.Version)
			return err
		}
		return nil
	}

	// Config is loaded under a console-only logger; the configured one needs its log settings.
	bootstrapOut := opts.logWriter
	if bootstrapOut == nil {
		bootstrapOut = selectOutput()
	}
	ctx := InitLoggerWithWriter(args.Verbose, args.Quiet, nil, bootstrapOut).WithContext(cmd.Context())

	cfg, err := loadConfig(ctx, opts.configPath)
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
		return err
	}

	var logger zerolog.Logger
	if opts.logWriter != nil {
		logger = InitLoggerWithWriter(args.Verbose, args.Quiet, &cfg.Log, opts.logWriter)
	} else {
		logger = InitLogger(args.Verbose, args.Quiet, &cfg.Log)
		defer CloseLogFile()
	}
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	env := opts.env
	if env == nil {
		env = cleanup.EnvFromOS()
	}

	err = cleanup.Run(ctx, newInput(args, env, cfg))
	if err != nil {
		message, action := errors.Actionable(err)
		logger.Error().Err(err).Str("action", action).Msg(message)
	}
	return err
}

// printError reports an error raised before the logger exists.
func printError(w io.Writer, err error) {
	message, action := errors.Actionable(err)
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)
	if message != err.Error() {
		_, _ = fmt.Fprintf(w, "  %s\n", message)
	}
	if action != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", action)
	}
}

// loadConfig reads the config file at path, or the global one when path is empty.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.Load(ctx)
	}
	return config.LoadFromPath(ctx, path)
}

// newInput builds the cleanup input from configuration and the environment.
func newInput(args cleanup.Args, env cleanup.Env, cfg *config.Config) cleanup.Input {
	obs := cfg.Observability
	creds := observability.Credentials{
		Token:          env.Get(obs.TokenEnv),
		BuildID:        env.Get(obs.BuildIDEnv),
		BuildCompleted: env.Has(obs.BuildCompletedEnv),
	}

	return cleanup.Input{
		Args: args,
		Env:  env,
		Settings: cleanup.Settings{
			TokenEnv:   obs.TokenEnv,
			BuildIDEnv: obs.BuildIDEnv,
			ReportURL:  obs.ReportURL,
		},
		Stopper: observability.NewClient(obs.APIURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout, creds),
		Sender:  funnel.NewClient(cfg.Funnel.Endpoint, cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
	}
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context, build info and arguments.
func Execute(ctx context.Context, info BuildInfo, args []string) error {
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(info, rootOptions{})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
