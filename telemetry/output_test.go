package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/smoothlife/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir: om=%v err=%v", om, err)
	}
	// Methods are nil-safe.
	if err := om.WriteTelemetry([]WindowStats{{}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	rows := []WindowStats{
		{WindowEndTick: 100, Species: 0, Role: "prey", Live: 20},
		{WindowEndTick: 100, Species: 1, Role: "predator", Live: 18},
	}
	if err := om.WriteTelemetry(rows); err != nil {
		t.Fatal(err)
	}
	rows[0].WindowEndTick, rows[1].WindowEndTick = 200, 200
	if err := om.WriteTelemetry(rows); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, 200); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("telemetry.csv has %d lines, want header + 4 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,species,role,live") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(perf), "mark_dead_pct") || !strings.Contains(string(perf), "200,1000") {
		t.Errorf("unexpected perf.csv:\n%s", perf)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
