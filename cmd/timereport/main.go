// Package main provides the timereport tool for inspecting archived timing
// runs.
//
// A model run that records timing data can archive its snapshot; timereport
// then renders the stored data with the same grouping, sorting and cutoff
// rules used for live reports:
//
//	timereport -db timing-data -list
//	timereport -db timing-data -run run-001 -group-by routine -sort-by average
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mantleflow/timing/internal/archive"
	"github.com/mantleflow/timing/pkg/logger"
	"github.com/mantleflow/timing/pkg/timing"
)

func main() {
	dbDir := flag.String("db", "timing-data", "archive database directory")
	list := flag.Bool("list", false, "list archived run ids and exit")
	runID := flag.String("run", "", "run id to render")
	groupBy := flag.String("group-by", timing.GroupByLineRoutine, "grouping: line, routine or line_routine")
	sortBy := flag.String("sort-by", timing.SortByTotal, "row order: total or average")
	fraction := flag.Float64("fraction", 0.95, "cumulative time fraction to display")
	floatFormat := flag.String("float-format", "%.3f", "format verb for time columns")
	grid := flag.Bool("grid", false, "render with the grid formatter")
	output := flag.String("o", "", "write the table to a file instead of stdout")
	flag.Parse()

	logg := logger.New("timereport ")

	if !*list && *runID == "" {
		logg.Fatal("either -list or -run is required")
	}

	store, err := archive.Open(archive.DefaultConfig(*dbDir))
	if err != nil {
		logg.Fatalf("open archive: %v", err)
	}
	defer store.Close()

	if *list {
		if err := listRuns(store, os.Stdout); err != nil {
			logg.Fatalf("list runs: %v", err)
		}
		return
	}

	opts := timing.TableOptions{
		GroupBy:         *groupBy,
		SortBy:          *sortBy,
		DisplayFraction: *fraction,
		FloatFormat:     *floatFormat,
		OutputFile:      *output,
	}
	if *grid {
		opts.Formatter = timing.GridFormatter{}
	}
	if err := renderRun(store, *runID, opts); err != nil {
		logg.Fatalf("render %s: %v", *runID, err)
	}
}

func listRuns(store *archive.Store, w io.Writer) error {
	ids, err := store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "no archived runs")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

func renderRun(store *archive.Store, runID string, opts timing.TableOptions) error {
	snap, err := store.Load(runID)
	if err != nil {
		return err
	}
	return timing.PrintSnapshotTable(snap, opts)
}
