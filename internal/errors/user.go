package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) because errors.Is() needs chain traversal for wrapped errors.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrFunnelRead,
		info: ErrorInfo{
			Message: "The saved funnel data file could not be read.",
			Action:  "Check that the path passed to --funnelData exists and is readable.",
		},
	},
	{
		err: ErrFunnelParse,
		info: ErrorInfo{
			Message: "The saved funnel data file is not valid JSON.",
			Action:  "The file was left in place for inspection; remove it once examined.",
		},
	},
	{
		err: ErrStopBuildFailed,
		info: ErrorInfo{
			Message: "Could not stop the observability build.",
			Action:  "Check network access to the observability collector.",
		},
	},
	{
		err: ErrFunnelSendFailed,
		info: ErrorInfo{
			Message: "Could not send funnel data.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration could not be loaded.",
		},
	},
	{
		err: ErrInvalidLogLevel,
		info: ErrorInfo{
			Message: "Invalid log level in configuration.",
			Action:  "Use one of: debug, info, warn, error.",
		},
	},
	{
		err: ErrInvalidEndpoint,
		info: ErrorInfo{
			Message: "An endpoint in the configuration is not a valid http(s) URL.",
			Action:  "Fix the URL in config.yaml or the EXITHOOK_* environment variable.",
		},
	},
	{
		err: ErrInvalidEnvVarName,
		info: ErrorInfo{
			Message: "A configured environment variable name is invalid.",
			Action:  "Use names made of letters, digits and underscores.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error, traversing wrapped chains.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
