package telemetry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/geom"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	assert.NoError(t, om.WriteEvent(Event{Type: EventPlay}))
	assert.NoError(t, om.WriteSamples([]SampleRow{{Tick: 1}}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Equal(t, "", om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	events := []Event{
		{Tick: 1, Type: EventPlay, Path: "intro"},
		{Tick: 240, Type: EventChain, Path: "intro", Detail: "flyby"},
		{Tick: 563, Type: EventEnter, Path: "reveal", Trigger: "gate"},
	}
	for _, e := range events {
		require.NoError(t, om.WriteEvent(e))
	}
	require.NoError(t, om.WriteSamples([]SampleRow{{Tick: 1, Path: "intro"}, {Tick: 2, Path: "intro"}}))
	require.NoError(t, om.WriteSamples([]SampleRow{{Tick: 3, Path: "intro"}}))
	require.NoError(t, om.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "tick,type"))

	var back []Event
	require.NoError(t, gocsv.UnmarshalBytes(raw, &back))
	assert.Equal(t, events, back)

	var rows []SampleRow
	raw, err = os.ReadFile(filepath.Join(dir, "samples.csv"))
	require.NoError(t, err)
	require.NoError(t, gocsv.UnmarshalBytes(raw, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, int32(3), rows[2].Tick)
}

func TestOutputManagerWritesConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	defer om.Close()

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	back, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, len(cfg.Paths), len(back.Paths))
	assert.Equal(t, dir, om.Dir())
}

func TestNewSampleRow(t *testing.T) {
	s := animator.Sample{
		T:        0.4,
		Position: r3.Vec{X: 1, Y: 2, Z: 3},
		FOV:      55,
		Rotation: geom.Identity,
	}
	row := NewSampleRow(12, 0.2, "intro", animator.Playing, 0.35, s)

	assert.Equal(t, "playing", row.State)
	assert.Equal(t, 0.35, row.T)
	assert.Equal(t, 0.4, row.P)
	assert.Equal(t, 2.0, row.Y)
	assert.Equal(t, 1.0, row.QW)
}

func TestEventLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := Event{Tick: 9, Type: EventRestore, Trigger: "gate"}
	logger.Info("path_event", "event", e)

	out := buf.String()
	assert.Contains(t, out, `"type":"restore"`)
	assert.Contains(t, out, `"trigger":"gate"`)
	assert.NotContains(t, out, `"path"`, "empty fields are omitted")
}
