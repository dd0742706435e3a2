package cleanup

import "github.com/mrz1836/exithook/internal/constants"

// Args is what the hook learned from its start arguments.
type Args struct {
	// FunnelData is true when --funnelData was followed by a non-empty path.
	FunnelData bool
	// FunnelPath is the argument that followed --funnelData.
	FunnelPath string
	// Observability is true when --observability was present.
	Observability bool

	// Verbose and Quiet select the log level (-v/--verbose, -q/--quiet).
	Verbose bool
	Quiet   bool
	// Help and Version request usage or version output instead of a run.
	Help    bool
	Version bool
}

// Any reports whether either cleanup step was requested.
func (a Args) Any() bool {
	return a.FunnelData || a.Observability
}

// InspectArgs scans the argument list (without the program name).
//
// The argument right after --funnelData is taken as the path whatever it looks
// like. A trailing --funnelData, or one followed by an empty string, counts as
// absent. The first occurrence of each flag wins and unknown arguments are
// ignored, since the parent test runner may pass extra arguments through.
func InspectArgs(args []string) Args {
	var a Args
	funnelSeen := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case constants.FlagFunnelData:
			if funnelSeen {
				i++
				continue
			}
			funnelSeen = true
			if i+1 < len(args) && args[i+1] != "" {
				a.FunnelData = true
				a.FunnelPath = args[i+1]
			}
			i++
		case constants.FlagObservability:
			a.Observability = true
		case "-v", "--verbose":
			a.Verbose = true
		case "-q", "--quiet":
			a.Quiet = true
		case "-h", "--help":
			a.Help = true
		case "--version":
			a.Version = true
		}
	}
	return a
}
