// Path sampler - evaluate a configured camera path at evenly spaced times
// and write the samples as CSV.
//
// Usage: go run ./cmd/pathsample -path intro -steps 100 -out intro.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/game"
	"github.com/pthm-cable/dolly/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	pathName := flag.String("path", "", "Path to sample (empty = all paths)")
	steps := flag.Int("steps", 100, "Intervals per path; steps+1 samples are written")
	out := flag.String("out", "", "Output CSV file (empty = stdout)")
	raw := flag.Bool("raw", false, "Evaluate the curve parameter directly, without easing or arc-length remapping")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *pathName, *steps, *out, *raw); err != nil {
		slog.Error("sampling failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, pathName string, steps int, out string, raw bool) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	g, err := game.NewGame(cfg, game.Options{})
	if err != nil {
		return err
	}
	defer g.Close()

	names := g.PathNames()
	if pathName != "" {
		names = []string{pathName}
	}

	var rows []telemetry.SampleRow
	for _, name := range names {
		r, err := samplePath(g, name, steps, raw)
		if err != nil {
			return err
		}
		rows = append(rows, r...)
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	slog.Info("samples written", "paths", len(names), "rows", len(rows), "out", out)
	return nil
}

// samplePath evaluates one path at steps+1 evenly spaced times. Samples
// whose orientation cannot be resolved keep position and field of view.
func samplePath(g *game.Game, name string, steps int, raw bool) ([]telemetry.SampleRow, error) {
	path := g.Path(name)
	if path == nil {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownPath, name)
	}
	anim := path.Animator

	rows := make([]telemetry.SampleRow, 0, steps+1)
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		var s animator.Sample
		var err error
		if raw {
			s, err = anim.Evaluate(t)
		} else {
			s, err = g.Preview(name, t)
		}
		if err != nil {
			slog.Warn("sample incomplete", "path", name, "t", t, "error", err)
		}
		rows = append(rows, telemetry.NewSampleRow(int32(k), t*anim.Duration, name, anim.State(), t, s))
	}
	return rows, nil
}
