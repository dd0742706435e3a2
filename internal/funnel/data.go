// Package funnel handles the buffered analytics payload ("funnel data") that a
// test run leaves on disk for the exit hook: loading it, recording the
// observability build outcome in it, and sending it to the SDK event endpoint.
package funnel

import (
	"github.com/mrz1836/exithook/internal/constants"
)

// Data is one test run's analytics event, decoded from JSON.
// The tree is opaque apart from the build-finished record; numbers are kept
// as json.Number so they round-trip unchanged.
type Data map[string]any

// Keys of the build-finished record.
const (
	keyStatus      = "status"
	keyError       = "error"
	keyStoppedFrom = "stoppedFrom"
)

// testObservabilityPath locates the observability usage sub-tree.
// Nothing below it is written unless it already exists.
var testObservabilityPath = []string{"event_properties", "productUsage", "testObservability"} //nolint:gochecknoglobals // fixed path

// buildFinishedPath is relative to testObservabilityPath.
var buildFinishedPath = []string{"events", "buildEvents", "finished"} //nolint:gochecknoglobals // fixed path

// Lookup walks path through nested objects and returns the value found.
// ok is false when any step is missing or is not an object.
func (d Data) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		obj, isObj := cur.(map[string]any)
		if !isObj {
			return nil, false
		}
		next, found := obj[key]
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// object is Lookup restricted to object values.
func (d Data) object(path ...string) (map[string]any, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// BuildFinished returns the build-finished record, if present.
func (d Data) BuildFinished() (map[string]any, bool) {
	return d.object(append(append([]string{}, testObservabilityPath...), buildFinishedPath...)...)
}

// UpdateBuildFinished merges the stop-build outcome into
// event_properties.productUsage.testObservability.events.buildEvents.finished.
//
// It does nothing and returns false when the testObservability object is absent.
// Missing events/buildEvents objects below it are created; an existing non-object
// value on that path is left alone. Sibling fields already under finished are kept.
// An empty errText removes any previous error.
func (d Data) UpdateBuildFinished(status constants.BuildStatus, errText string) bool {
	if d == nil {
		return false
	}
	parent, ok := d.object(testObservabilityPath...)
	if !ok {
		return false
	}

	for _, key := range buildFinishedPath[:len(buildFinishedPath)-1] {
		child, exists := parent[key]
		if !exists || child == nil {
			created := map[string]any{}
			parent[key] = created
			parent = created
			continue
		}
		obj, isObj := child.(map[string]any)
		if !isObj {
			return false
		}
		parent = obj
	}

	leaf := buildFinishedPath[len(buildFinishedPath)-1]
	finished, _ := parent[leaf].(map[string]any)
	merged := make(map[string]any, len(finished)+3)
	for k, v := range finished {
		merged[k] = v
	}

	merged[keyStatus] = status.String()
	if errText != "" {
		merged[keyError] = errText
	} else {
		delete(merged, keyError)
	}
	merged[keyStoppedFrom] = constants.StoppedFromExitHook

	parent[leaf] = merged
	return true
}
