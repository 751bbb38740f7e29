package timing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func seed(rec *Recorder, name, file string, line, count int, total float64) {
	for i := 0; i < count; i++ {
		rec.hits.add(HitKey{Name: name, File: file, Line: line}, total/float64(count))
	}
}

func TestGetDataMergeAdditivity(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 2, 1.5)
	seed(rec, "Mesh.Deform()", "model.go", 20, 3, 2.5)

	data, err := rec.GetData(GroupByRoutine)
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	got := data["Mesh.Deform()"]
	if got.Count != 5 {
		t.Errorf("merged count: got %d, want 5", got.Count)
	}
	if got.Total < 3.999 || got.Total > 4.001 {
		t.Errorf("merged total: got %f, want 4.0", got.Total)
	}

	// Grouping by call site keeps the two lines apart.
	byLine, err := rec.GetData(GroupByLine)
	if err != nil {
		t.Fatalf("GetData by line: %v", err)
	}
	if len(byLine) != 2 {
		t.Errorf("expected 2 line groups, got %v", byLine)
	}
}

func TestGetDataLineRoutineKeepsPairsApart(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 1)
	seed(rec, "Swarm.Advect()", "model.go", 10, 1, 1)

	data, err := rec.GetData(GroupByLineRoutine)
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("line_routine merged distinct routines: %v", data)
	}
}

func TestGetDataInvalidGroupBy(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 1)

	data, err := rec.GetData("bogus")
	if err == nil {
		t.Fatal("expected error for bogus group_by")
	}
	if !strings.Contains(err.Error(), "group_by") {
		t.Errorf("unhelpful error: %v", err)
	}
	if data != nil {
		t.Errorf("partial result returned: %v", data)
	}
	if len(rec.hits) != 1 {
		t.Errorf("aggregator modified by failed GetData: %v", rec.hits)
	}
}

func TestPrintTableInvalidSortBy(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 1)

	err := rec.PrintTable(TableOptions{SortBy: "bogus"})
	if err == nil {
		t.Fatal("expected error for bogus sort_by")
	}
	if !strings.Contains(err.Error(), "sort_by") {
		t.Errorf("unhelpful error: %v", err)
	}
	if len(rec.hits) != 1 {
		t.Errorf("aggregator modified by failed PrintTable: %v", rec.hits)
	}
}

func TestPrintTableCutoff(t *testing.T) {
	rec := testRecorder()
	seed(rec, "alpha", "model.go", 1, 1, 50)
	seed(rec, "beta", "model.go", 2, 1, 30)
	seed(rec, "gamma", "model.go", 3, 1, 15)
	seed(rec, "delta", "model.go", 4, 1, 5)

	var buf bytes.Buffer
	err := rec.PrintTable(TableOptions{
		GroupBy:         GroupByRoutine,
		DisplayFraction: 0.95,
		Output:          &buf,
	})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("row %q missing from table:\n%s", want, out)
		}
	}
	if strings.Contains(out, "delta") {
		t.Errorf("row beyond cutoff included:\n%s", out)
	}
	// The culled row still counts toward the grand total.
	if !strings.Contains(out, "100.000") {
		t.Errorf("grand total does not include culled rows:\n%s", out)
	}
}

func TestPrintTableFullFraction(t *testing.T) {
	rec := testRecorder()
	seed(rec, "alpha", "model.go", 1, 1, 60)
	seed(rec, "beta", "model.go", 2, 1, 40)

	var buf bytes.Buffer
	err := rec.PrintTable(TableOptions{
		GroupBy:         GroupByRoutine,
		DisplayFraction: 1.0,
		Output:          &buf,
	})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	if !strings.Contains(buf.String(), "beta") {
		t.Errorf("display_fraction=1 must include every row:\n%s", buf.String())
	}
}

func TestPrintTableSortByAverage(t *testing.T) {
	rec := testRecorder()
	seed(rec, "busy", "model.go", 1, 10, 50) // avg 5
	seed(rec, "slow", "model.go", 2, 1, 30)  // avg 30

	var buf bytes.Buffer
	err := rec.PrintTable(TableOptions{
		GroupBy:         GroupByRoutine,
		SortBy:          SortByAverage,
		DisplayFraction: 1.0,
		Output:          &buf,
	})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "slow") > strings.Index(out, "busy") {
		t.Errorf("average sort did not rank slow first:\n%s", out)
	}
}

func TestPrintTableRuntimeFooter(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := stubClock(t, base)

	rec := testRecorder()
	rec.Start()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 2)
	*now = base.Add(5 * time.Second)

	var buf bytes.Buffer
	if err := rec.PrintTable(TableOptions{Output: &buf}); err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Total Time (API)") {
		t.Errorf("missing API total footer:\n%s", out)
	}
	if !strings.Contains(out, "Total Time (Runtime)") {
		t.Errorf("missing runtime footer:\n%s", out)
	}
	if !strings.Contains(out, "5.000") {
		t.Errorf("runtime footer not endTime-startTime:\n%s", out)
	}
	if rec.Enabled() {
		t.Error("PrintTable must stop recording")
	}
}

func TestPrintTableToFile(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 2)

	path := filepath.Join(t.TempDir(), "report.txt")
	err := rec.PrintTable(TableOptions{GroupBy: GroupByRoutine, OutputFile: path})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "Mesh.Deform()") {
		t.Errorf("report file missing data:\n%s", data)
	}
}

func TestPrintTableFileErrorPropagates(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 2)

	err := rec.PrintTable(TableOptions{
		OutputFile: filepath.Join(t.TempDir(), "missing", "report.txt"),
	})
	if err == nil {
		t.Fatal("expected write error for missing directory")
	}
}

func TestPrintTableNonRecorderRank(t *testing.T) {
	rec := NewRecorder(WithRank(func() int { return 1 }))
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 2)

	var buf bytes.Buffer
	if err := rec.PrintTable(TableOptions{Output: &buf}); err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("non-recorder rank produced output:\n%s", buf.String())
	}
}

func TestPrintTableFloatFormat(t *testing.T) {
	rec := testRecorder()
	seed(rec, "Mesh.Deform()", "model.go", 10, 1, 1.23456)

	var buf bytes.Buffer
	err := rec.PrintTable(TableOptions{
		GroupBy:     GroupByRoutine,
		FloatFormat: "%.1f",
		Output:      &buf,
	})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	if !strings.Contains(buf.String(), "1.2") {
		t.Errorf("float format not applied:\n%s", buf.String())
	}
}
