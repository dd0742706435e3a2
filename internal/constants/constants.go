// Package constants provides centralized constant values used throughout exithook.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory names and paths used by exithook for its own data.
const (
	// ExithookHome is the hidden directory name where exithook stores its logs and config.
	// This directory is created in the user's home directory unless EXITHOOK_HOME is set.
	ExithookHome = ".exithook"

	// HomeEnvVar overrides the location of the exithook home directory.
	HomeEnvVar = "EXITHOOK_HOME"

	// EnvPrefix is the prefix for configuration environment variables (EXITHOOK_LOG_LEVEL, ...).
	EnvPrefix = "EXITHOOK"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 14

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Command-line flags understood by the argument inspector.
const (
	// FlagFunnelData enables the funnel payload load/send; the next argument is the file path.
	FlagFunnelData = "--funnelData"

	// FlagObservability enables build-stop reporting.
	FlagObservability = "--observability"
)

// Funnel payload markers.
const (
	// StoppedFromExitHook marks the exit hook as the origin of a build-finished update.
	StoppedFromExitHook = "exitHook"
)
