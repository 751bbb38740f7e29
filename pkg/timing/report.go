package timing

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Grouping modes for GetData and PrintTable.
const (
	// GroupByLine merges records by calling line of code, across routines.
	GroupByLine = "line"
	// GroupByRoutine merges records by routine, across call sites.
	GroupByRoutine = "routine"
	// GroupByLineRoutine keeps one group per exact (routine, call site)
	// pair. This is the default.
	GroupByLineRoutine = "line_routine"
)

// Sort orders for PrintTable.
const (
	// SortByTotal orders groups by total recorded time.
	SortByTotal = "total"
	// SortByAverage orders groups by total time divided by hit count.
	SortByAverage = "average"
)

const (
	defaultDisplayFraction = 0.95
	defaultFloatFormat     = "%.3f"
)

// GetData returns the aggregated records regrouped by the given mode, with
// counts and times summed for colliding keys. An empty groupBy means
// GroupByLineRoutine. On a non-recorder rank the result is nil. An
// unrecognized groupBy yields an error and leaves the aggregator untouched.
func (r *Recorder) GetData(groupBy string) (map[string]HitRecord, error) {
	keyfn, err := groupKeyFunc(groupBy)
	if err != nil {
		return nil, err
	}
	if r.rank() != 0 {
		return nil, nil
	}
	return groupHits(r.hits, keyfn), nil
}

func groupHits(hits hitTable, keyfn func(HitKey) string) map[string]HitRecord {
	grouped := make(map[string]HitRecord, len(hits))
	for key, rec := range hits {
		agg := grouped[keyfn(key)]
		agg.Count += rec.Count
		agg.Total += rec.Total
		grouped[keyfn(key)] = agg
	}
	return grouped
}

func groupKeyFunc(groupBy string) (func(HitKey) string, error) {
	switch groupBy {
	case GroupByLine:
		return func(k HitKey) string { return formatSite(k.File, k.Line) }, nil
	case GroupByRoutine:
		return func(k HitKey) string { return k.Name }, nil
	case GroupByLineRoutine, "":
		return func(k HitKey) string {
			return formatSite(k.File, k.Line) + "   " + k.Name
		}, nil
	default:
		return nil, fmt.Errorf("group_by must be one of %q, %q or %q, got %q",
			GroupByLine, GroupByRoutine, GroupByLineRoutine, groupBy)
	}
}

// TableOptions controls PrintTable. The zero value groups by line_routine,
// sorts by total time, displays the rows covering 95% of recorded time,
// formats floats with %.3f and writes to standard output through the
// built-in fixed-width renderer.
type TableOptions struct {
	GroupBy         string
	SortBy          string
	DisplayFraction float64
	FloatFormat     string

	// OutputFile, when set, receives the table instead of Output.
	OutputFile string
	// Output receives the table when OutputFile is empty; nil means
	// standard output.
	Output io.Writer

	// Formatter renders the prepared table; nil selects the built-in
	// fixed-width renderer.
	Formatter Formatter
}

type tableRow struct {
	key     string
	count   int
	total   float64
	average float64
}

// PrintTable stops recording, then renders the aggregated data as a sorted,
// cutoff-truncated table with footer rows for the total instrumented time
// and the total wall-clock runtime. On a non-recorder rank it does nothing.
func (r *Recorder) PrintTable(opts TableOptions) error {
	r.Stop()
	keyfn, err := groupKeyFunc(opts.GroupBy)
	if err != nil {
		return err
	}
	if _, err := sortLess(opts.SortBy); err != nil {
		return err
	}
	if r.rank() != 0 {
		return nil
	}
	return renderTable(groupHits(r.hits, keyfn), r.endTime.Sub(r.startTime), opts)
}

func sortLess(sortBy string) (func(a, b tableRow) bool, error) {
	switch sortBy {
	case SortByTotal, "":
		return func(a, b tableRow) bool {
			if a.total != b.total {
				return a.total > b.total
			}
			return a.key < b.key
		}, nil
	case SortByAverage:
		return func(a, b tableRow) bool {
			if a.average != b.average {
				return a.average > b.average
			}
			return a.key < b.key
		}, nil
	default:
		return nil, fmt.Errorf("sort_by must be one of %q or %q, got %q",
			SortByTotal, SortByAverage, sortBy)
	}
}

// renderTable turns grouped records into text and writes it out. Rows are
// sorted descending and truncated to the prefix whose cumulative time share
// reaches the display fraction; rows beyond the cutoff stay in the totals.
func renderTable(grouped map[string]HitRecord, runtime time.Duration, opts TableOptions) error {
	less, err := sortLess(opts.SortBy)
	if err != nil {
		return err
	}

	fraction := opts.DisplayFraction
	if fraction <= 0 {
		fraction = defaultDisplayFraction
	}
	if fraction > 1 {
		fraction = 1
	}
	floatFmt := opts.FloatFormat
	if floatFmt == "" {
		floatFmt = defaultFloatFormat
	}
	groupLabel := opts.GroupBy
	if groupLabel == "" {
		groupLabel = GroupByLineRoutine
	}

	rows := make([]tableRow, 0, len(grouped))
	allTime := 0.0
	for key, rec := range grouped {
		rows = append(rows, tableRow{
			key:     key,
			count:   rec.Count,
			total:   rec.Total,
			average: rec.Total / float64(rec.Count),
		})
		allTime += rec.Total
	}
	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })

	// Cutoff: keep rows up to and including the first whose cumulative
	// share reaches the fraction.
	stop := len(rows)
	if allTime > 0 {
		cumulative := 0.0
		for i, row := range rows {
			cumulative += row.total
			if cumulative/allTime >= fraction {
				stop = i + 1
				break
			}
		}
	}

	header := []string{groupLabel, "hits", "tot_time", "av_time"}
	cells := make([][]string, 0, stop)
	for _, row := range rows[:stop] {
		cells = append(cells, []string{
			row.key,
			fmt.Sprintf("%d", row.count),
			fmt.Sprintf(floatFmt, row.total),
			fmt.Sprintf(floatFmt, row.average),
		})
	}
	footer := [][]string{
		{"Total Time (API)     :", "", fmt.Sprintf(floatFmt, allTime), ""},
		{"Total Time (Runtime) :", "", fmt.Sprintf(floatFmt, runtime.Seconds()), ""},
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = plainFormatter{}
	}
	text, err := formatter.Format(header, cells, footer)
	if err != nil {
		return err
	}

	if opts.OutputFile != "" {
		return os.WriteFile(opts.OutputFile, []byte(text), 0o644)
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	_, err = io.WriteString(out, "\n"+text)
	return err
}
