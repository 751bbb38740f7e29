// Package timing implements high level wall-clock timing for MantleFlow API
// calls, reporting how runtime divides between instrumented routines.
//
// Only instrumented MantleFlow routines are recorded; time spent in external
// numerical libraries below the instrumented surface is invisible to this
// package. The total runtime is reported alongside the per-routine data,
// which gives an indication of how much time was spent outside the
// instrumented API.
//
// Instrumentation is installed once, at registration time, with AddTiming.
// Recording must then be activated with Start. Setting the
// MANTLEFLOW_DISABLE_TIMING environment variable disables the subsystem
// entirely, making every entry point a pass-through.
//
// Only the designated recorder process (rank 0 in a distributed run) ever
// records timing data; all other ranks treat recording as a no-op.
package timing

import "time"

var defaultRecorder = NewRecorder()

// Default returns the process-wide Recorder used by the package-level
// functions.
func Default() *Recorder { return defaultRecorder }

// Start begins recording timing data on the default recorder.
func Start() { defaultRecorder.Start() }

// Stop ends recording on the default recorder and freezes the runtime
// timestamp.
func Stop() { defaultRecorder.Stop() }

// Reset stops recording on the default recorder and clears all aggregated
// data.
func Reset() { defaultRecorder.Reset() }

// LogResult manually accumulates a timing entry on the default recorder,
// keyed by the caller's file and line.
func LogResult(d time.Duration, name string) {
	defaultRecorder.logResult(d, name, 1)
}

// GetData returns the default recorder's aggregated data regrouped by the
// given mode. See Recorder.GetData.
func GetData(groupBy string) (map[string]HitRecord, error) {
	return defaultRecorder.GetData(groupBy)
}

// PrintTable renders the default recorder's aggregated data as a table. See
// Recorder.PrintTable.
func PrintTable(opts TableOptions) error {
	return defaultRecorder.PrintTable(opts)
}

// AddTiming installs timed wrappers throughout the group graph rooted at
// root, recording into the default recorder. See Recorder.AddTiming.
func AddTiming(root *Group) { defaultRecorder.AddTiming(root) }
