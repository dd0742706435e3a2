package constants

// BuildStatus is the outcome of a stop-build call as recorded in funnel data.
// The set is open: the remote side and the client preconditions may produce
// values beyond the ones below.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the observability build was stopped.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the stop-build call failed or returned no status.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusError is returned by the stop-build client when its
	// preconditions are not met and no request was made.
	BuildStatusError BuildStatus = "error"
)

// String returns the string representation of the BuildStatus.
func (s BuildStatus) String() string {
	return string(s)
}

// IsFailed reports whether the status is exactly "failed".
// Only "failed" carries an error detail into funnel data.
func (s BuildStatus) IsFailed() bool {
	return s == BuildStatusFailed
}
