package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

func mustLevel(t *testing.T, rows []string) *grid.Level {
	t.Helper()
	lv, err := grid.ParseRows("test", rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	return lv
}

func TestAnalyzeLevel(t *testing.T) {
	lv := mustLevel(t, []string{
		"#######",
		"#P. $ #",
		"#######",
	})

	a := analyzeLevel(lv, 0)

	if a.OpenCells != 5 {
		t.Errorf("OpenCells = %d, want 5", a.OpenCells)
	}
	if a.Start == nil || *a.Start != (grid.Location{X: 1, Y: 1}) {
		t.Fatalf("Start = %v, want (1,1)", a.Start)
	}
	if a.Reachable != 5 {
		t.Errorf("Reachable = %d, want 5", a.Reachable)
	}

	want := []ItemDistance{
		{Location: grid.Location{X: 2, Y: 1}, Kind: grid.Pill, Distance: 1, Reachable: true},
		{Location: grid.Location{X: 4, Y: 1}, Kind: grid.Gold, Distance: 3, Reachable: true},
	}
	if len(a.Items) != len(want) {
		t.Fatalf("Items = %+v, want %+v", a.Items, want)
	}
	for i := range want {
		if a.Items[i] != want[i] {
			t.Errorf("Items[%d] = %+v, want %+v", i, a.Items[i], want[i])
		}
	}

	if len(a.NextGoal) != 1 || a.NextGoal[0] != (grid.Location{X: 2, Y: 1}) {
		t.Errorf("NextGoal = %v, want [(2,1)]", a.NextGoal)
	}
	if len(a.CollectAll) != 3 || !a.CollectAllFound() {
		t.Errorf("CollectAll = %v, want 3 moves", a.CollectAll)
	}
	if len(a.Diagnostics) != 0 {
		t.Errorf("Unexpected diagnostics %v", a.Diagnostics)
	}
}

func TestAnalyzeLevel_TorusShortcut(t *testing.T) {
	// Open left and right edges: the gold is one move away through the wrap.
	lv := mustLevel(t, []string{
		"#####",
		"P . $",
		"#####",
	})

	a := analyzeLevel(lv, 0)
	for _, it := range a.Items {
		if it.Kind == grid.Gold && it.Distance != 1 {
			t.Errorf("Gold distance = %d, want 1 through the wrap edge", it.Distance)
		}
	}
	if a.Items[0].Kind != grid.Gold {
		t.Errorf("Expected nearest item first, got %+v", a.Items)
	}
}

func TestAnalyzeLevel_Unreachable(t *testing.T) {
	lv := mustLevel(t, []string{
		"#######",
		"#P.#.$#",
		"#######",
	})

	a := analyzeLevel(lv, 0)

	if a.Reachable != 2 {
		t.Errorf("Reachable = %d, want 2", a.Reachable)
	}
	last := a.Items[len(a.Items)-1]
	if last.Reachable || last.Distance != -1 {
		t.Errorf("Expected unreachable items last, got %+v", a.Items)
	}
	if a.CollectAllFound() {
		t.Error("Collect all should be impossible")
	}
	if len(a.Diagnostics) != 2 {
		t.Errorf("Expected Gold and Pill diagnostics, got %v", a.Diagnostics)
	}
}

func TestAnalyzeLevel_NoStart(t *testing.T) {
	lv := mustLevel(t, []string{"#####", "#.$.#", "#####"})

	a := analyzeLevel(lv, 0)
	if a.Start != nil {
		t.Errorf("Start = %v, want nil", a.Start)
	}
	if len(a.Items) != 3 {
		t.Fatalf("Items = %v, want 3", a.Items)
	}
	for _, it := range a.Items {
		if it.Reachable {
			t.Errorf("Item %v should be unreachable without a start", it.Location)
		}
	}

	var out bytes.Buffer
	printAnalysis(&out, a)
	if !strings.Contains(out.String(), "Start: none") || !strings.Contains(out.String(), "no start for PacMan") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestPrintAnalysis(t *testing.T) {
	lv := mustLevel(t, []string{
		"#######",
		"#P. $ #",
		"#######",
	})

	var out bytes.Buffer
	printAnalysis(&out, analyzeLevel(lv, 0))

	for _, want := range []string{
		"=== test ===",
		"Size: 7 x 3 (5 open cells)",
		"Reachable cells: 5/5",
		"Pill (2,1) distance 1",
		"Gold (4,1) distance 3",
		"Next goal: (2,1) in 1 moves",
		"Collect all: 3 moves",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	lv := mustLevel(t, []string{"#####", "#P.$#", "#####"})
	f, err := os.Create(filepath.Join(dir, "1_small.xml"))
	if err != nil {
		t.Fatalf("Failed to create level: %v", err)
	}
	grid.EncodeLevel(f, lv)
	f.Close()

	var out bytes.Buffer
	if err := newApp(&out).Run(context.Background(), []string{"analyze", "--json", dir}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var results []Analysis
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, out.String())
	}
	if len(results) != 1 || results[0].Name != "1_small.xml" || len(results[0].CollectAll) != 2 {
		t.Errorf("Unexpected results %+v", results)
	}

	out.Reset()
	if err := newApp(&out).Run(context.Background(), []string{"analyze", filepath.Join(dir, "missing.xml")}); err == nil {
		t.Error("Expected error for missing file")
	}
}
