package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
)

// WriteExplanation writes a human-readable account of a run to out: where the
// configuration came from, every correction made to it, the effective
// values for the active mode and what was patched.
func WriteExplanation(out io.Writer, s Summary) error {
	w := &errWriter{w: out}
	c := s.Config

	// --- Configuration ---
	source := s.ConfigPath
	if source == "" {
		source = config.DefaultPath
	}
	switch {
	case s.ConfigCreated:
		w.printf("Configuration: %s (created with defaults)\n", source)
	case s.WroteBack:
		w.printf("Configuration: %s (corrected and rewritten)\n", source)
	default:
		w.printf("Configuration: %s\n", source)
	}

	// --- Corrections ---
	w.println()
	if len(s.Corrections) == 0 {
		w.println("Corrections: (none)")
	} else {
		w.println("Corrections:")
		for _, corr := range s.Corrections {
			w.printf("  %s %s\n", arrowPrefix, corr)
		}
	}

	// --- Effective values ---
	w.println()
	if c.UseGlobalTimes {
		w.println("Mode: global reload times")
		w.printf("  %-22s %g\n", "baseLoadTime:", c.BaseLoadTime)
		w.printf("  %-22s %g\n", "baseUnloadTime:", c.BaseUnloadTime)
	} else {
		w.println("Mode: per-magazine speed")
		w.printf("  %-22s %g\n", "ammo.loadspeed:", c.AmmoLoadSpeed)
		w.printf("  %-22s %g\n", "ammo.unloadspeed:", c.AmmoUnloadSpeed)
		w.printf("  %-22s %s\n", "magazine sizes:", sizeWindow(c))
	}
	w.printf("  %-22s %t\n", "disable load penalty:", c.DisableMagazineAmmoLoadPenalty)
	w.printf("  %-22s %t\n", "resize 1x3 to 1x2:", c.Resize3to2SlotMagazine)

	// --- Patches ---
	r := s.Report
	if r == nil {
		return w.err
	}
	w.println()
	w.printf("Patched: %d magazines\n", r.Magazines)
	if c.UseGlobalTimes {
		if r.GlobalTimesSkipped {
			w.printf("  %s global reload-time settings not found, skipped\n", arrowPrefix)
		} else if r.GlobalTimesApplied {
			w.printf("  %s global reload times applied\n", arrowPrefix)
		}
	} else {
		w.printf("  %s %d unload speed overrides\n", arrowPrefix, r.SpeedOverrides)
	}
	w.printf("  %s %d load penalty changes\n", arrowPrefix, r.PenaltyChanges)
	if c.Resize3to2SlotMagazine {
		w.printf("  %s %d magazines resized\n", arrowPrefix, r.Resized)
	}

	return w.err
}

const arrowPrefix = "\u2192"

// FormatExplanation returns the explain output as a string.
func FormatExplanation(s Summary) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, s)
	return sb.String()
}

func sizeWindow(c config.Config) string {
	lower := "no limit"
	if c.MinMagazineSize != config.NoLimit {
		lower = fmt.Sprint(c.MinMagazineSize)
	}
	upper := "no limit"
	if c.MaxMagazineSize != config.NoLimit {
		upper = fmt.Sprint(c.MaxMagazineSize)
	}
	return lower + " to " + upper
}

// errWriter keeps the first write error and skips the writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}
