// Triggerplot renders the telemetry of a run as PNG charts.
//
// Usage: go run ./cmd/triggerplot -input out/telemetry.csv -out out/
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pthm-cable/boxroll/telemetry"
)

func main() {
	input := flag.String("input", "", "telemetry.csv, or a run output directory")
	outDir := flag.String("out", "", "Directory for PNG files (empty = next to input)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *input == "" {
		slog.Error("missing -input")
		os.Exit(2)
	}

	path := *input
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, telemetry.TelemetryFile)
	}

	rows, err := telemetry.ReadTelemetry(path)
	if err != nil {
		slog.Error("failed to read telemetry", "path", path, "error", err)
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}

	files, err := Render(rows, dir)
	if err != nil {
		slog.Error("failed to render plots", "error", err)
		os.Exit(1)
	}
	slog.Info("plots_written", "windows", len(rows), "files", files)
}
