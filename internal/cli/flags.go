package cli

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
)

// ExitCodeForError returns ExitSuccess for nil and ExitError otherwise.
// Only an unreadable or unparseable funnel file or a bad configuration reach here;
// remote failures are logged by the cleanup and never returned.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitError
}
