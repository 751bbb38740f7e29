package timing

import (
	"os"
	"strconv"
	"time"
)

// DisableEnv is the environment variable that disables the whole timing
// subsystem. When it is set, AddTiming installs nothing and Start never
// enables recording, leaving every entry point a zero-overhead pass-through.
const DisableEnv = "MANTLEFLOW_DISABLE_TIMING"

// rankEnvs are consulted in order to determine the process rank in a
// distributed run. An absent or unparsable value means rank 0.
var rankEnvs = []string{"OMPI_COMM_WORLD_RANK", "PMI_RANK", "SLURM_PROCID"}

// timeNow is swapped out by tests.
var timeNow = time.Now

// Recorder holds all timing state for one logical call stack: the enabled
// flag, depth counters, run timestamps, the aggregated hit table and the
// visited sets used by the instrumentation walk.
//
// Only the designated recorder process (rank 0) ever records; on any other
// rank every entry point is a no-op. A Recorder is not safe for concurrent
// use: wrapped calls are assumed to execute on a single logical call stack.
// Hosts with multiple call stacks should use one Recorder per stack.
type Recorder struct {
	enabled      bool
	currentDepth int
	maxDepth     int
	startTime    time.Time
	endTime      time.Time
	hits         hitTable

	visitedGroups     map[*Group]struct{}
	visitedComponents map[*Component]struct{}

	rank func() int
}

// Option configures a Recorder at construction.
type Option func(*Recorder)

// WithMaxDepth bounds how deep into nested instrumented calls records are
// written. The default of 1 records only the outermost instrumented frame,
// so time already included in an enclosing measurement is never counted
// twice.
func WithMaxDepth(depth int) Option {
	return func(r *Recorder) {
		if depth >= 1 {
			r.maxDepth = depth
		}
	}
}

// WithRank overrides rank detection, for hosts with their own process model
// and for tests.
func WithRank(rank func() int) Option {
	return func(r *Recorder) { r.rank = rank }
}

// NewRecorder returns a Recorder with recording disabled. Call Start to
// begin recording.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		maxDepth:          1,
		hits:              make(hitTable),
		visitedGroups:     make(map[*Group]struct{}),
		visitedComponents: make(map[*Component]struct{}),
		rank:              processRank,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func processRank() int {
	for _, key := range rankEnvs {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

func timingDisabled() bool {
	_, ok := os.LookupEnv(DisableEnv)
	return ok
}

// Start begins recording timing data. Recording only actually enables on the
// designated recorder process and only if DisableEnv is not set. Calling
// Start again simply resets the depth counter and timestamps.
func (r *Recorder) Start() {
	r.currentDepth = 0
	r.enabled = r.rank() == 0 && !timingDisabled()
	r.startTime = timeNow()
	r.endTime = time.Time{}
}

// Stop ends recording and freezes the runtime timestamp. Safe to call when
// already stopped; the timestamp is simply refreshed.
func (r *Recorder) Stop() {
	r.endTime = timeNow()
	r.enabled = false
}

// Reset stops recording and clears all aggregated data. Recording stays
// disabled until Start is called again.
func (r *Recorder) Reset() {
	r.Stop()
	r.hits = make(hitTable)
}

// Enabled reports whether the recorder is currently recording.
func (r *Recorder) Enabled() bool { return r.enabled }

// LogResult manually accumulates a timing entry for callers that cannot be
// auto-wrapped. The entry is keyed by name and the caller's file and line.
func (r *Recorder) LogResult(d time.Duration, name string) {
	r.logResult(d, name, 1)
}

// LogResultAt is LogResult with an explicit call-site token, for callers
// that capture the site themselves (construction-timing shims, generated
// code).
func (r *Recorder) LogResultAt(d time.Duration, name, file string, line int) {
	if !r.enabled || r.currentDepth >= r.maxDepth {
		return
	}
	r.hits.add(HitKey{Name: name, File: file, Line: line}, d.Seconds())
}

func (r *Recorder) logResult(d time.Duration, name string, skip int) {
	if !r.enabled || r.currentDepth >= r.maxDepth {
		return
	}
	file, line := callSite(skip)
	r.hits.add(HitKey{Name: name, File: file, Line: line}, d.Seconds())
}

// IncrementDepth marks entry into instrumented territory without recording
// anything. Compound components record their construction time through an
// outer mechanism and use this to keep the calls nested inside the
// constructor from being recorded separately.
func (r *Recorder) IncrementDepth() {
	if r.enabled {
		r.currentDepth++
	}
}

// DecrementDepth reverses IncrementDepth.
func (r *Recorder) DecrementDepth() {
	if r.enabled {
		r.currentDepth--
	}
}
