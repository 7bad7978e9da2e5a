package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"

	"github.com/stretchr/testify/require"
)

func TestWriteExplanation_PerMagazine(t *testing.T) {
	cfg := config.CreateDefaultConfiguration()
	cfg.MinMagazineSize = 20
	cfg.Resize3to2SlotMagazine = true
	s := Summary{
		Config:     cfg,
		ConfigPath: "config/config.jsonc",
		WroteBack:  true,
		Corrections: []config.Correction{
			{Key: config.KeyMaxMagazineSize, Was: 15, Now: config.NoLimit, Reason: "below min.MagazineSize (20)"},
		},
		Report: &catalog.Report{Magazines: 4, SpeedOverrides: 3, PenaltyChanges: 1, Resized: 2},
	}

	var buf bytes.Buffer
	err := WriteExplanation(&buf, s)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Configuration: config/config.jsonc (corrected and rewritten)")
	require.Contains(t, out, "Corrections:\n")
	require.Contains(t, out, "max.MagazineSize: below min.MagazineSize (20) (was 15), reset to -1")
	require.Contains(t, out, "Mode: per-magazine speed")
	require.Contains(t, out, "20 to no limit")
	require.Contains(t, out, "Patched: 4 magazines")
	require.Contains(t, out, "3 unload speed overrides")
	require.Contains(t, out, "2 magazines resized")
	require.NotContains(t, out, "baseLoadTime")
}

func TestWriteExplanation_GlobalSkipped(t *testing.T) {
	cfg := config.CreateDefaultConfiguration()
	cfg.UseGlobalTimes = true
	s := Summary{
		Config:        cfg,
		ConfigCreated: true,
		Report:        &catalog.Report{GlobalTimesSkipped: true},
	}

	out := FormatExplanation(s)

	require.Contains(t, out, "config/config.jsonc (created with defaults)")
	require.Contains(t, out, "Corrections: (none)")
	require.Contains(t, out, "Mode: global reload times")
	require.Contains(t, out, "baseLoadTime:")
	require.Contains(t, out, "settings not found, skipped")
	require.NotContains(t, out, "unload speed overrides")
	require.NotContains(t, out, "magazines resized")
}

func TestWriteExplanation_NoReport(t *testing.T) {
	out := FormatExplanation(Summary{Config: config.CreateDefaultConfiguration()})

	require.Contains(t, out, "10 to no limit")
	require.NotContains(t, out, "Patched:")
}

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct {
	limit  int
	writes int
}

var errClosed = errors.New("pipe closed")

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	if len(p) > f.limit {
		return 0, errClosed
	}
	f.limit -= len(p)
	return len(p), nil
}

func TestWriteExplanation_ReturnsWriteError(t *testing.T) {
	s := Summary{
		Config: config.CreateDefaultConfiguration(),
		Report: &catalog.Report{Magazines: 2},
	}

	w := &failingWriter{limit: 40}
	err := WriteExplanation(w, s)
	require.ErrorIs(t, err, errClosed)

	require.Equal(t, 3, w.writes, "writing stops after the first failure")
}
