package catalog

import (
	"math"
	"sort"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/logging"
)

// Report summarizes what Apply changed.
type Report struct {
	// Magazines is the number of ammunition containers found.
	Magazines int `json:"magazines"`
	// SpeedOverrides counts magazines whose override speed was set.
	SpeedOverrides int `json:"speedOverrides"`
	// PenaltyChanges counts magazines whose load/unload modifier changed.
	PenaltyChanges int `json:"penaltyChanges"`
	// Resized counts magazines shrunk from 1x3 to 1x2.
	Resized int `json:"resized"`
	// GlobalTimesApplied is true when the global reload times were written.
	GlobalTimesApplied bool `json:"globalTimesApplied"`
	// GlobalTimesSkipped is true when global mode was selected but the host
	// had no reload-time settings.
	GlobalTimesSkipped bool `json:"globalTimesSkipped"`
}

// Mutator applies the configured patches to a host database.
type Mutator struct {
	cfg config.Config
	log *logging.Logger
}

// NewMutator creates a Mutator for a validated configuration.
func NewMutator(cfg config.Config, log *logging.Logger) *Mutator {
	if log == nil {
		log = logging.Nop()
	}
	return &Mutator{cfg: cfg, log: log}
}

// Apply runs the patch passes over t. Exactly one of the per-magazine speed
// pass and the global reload-time pass runs, selected by UseGlobalTimes.
// The penalty pass always runs; the resize pass runs when enabled. Items are
// only modified, never added or removed.
func (m *Mutator) Apply(t *Tables) Report {
	var r Report
	magazines := magazinesOf(t)
	r.Magazines = len(magazines)

	if m.cfg.UseGlobalTimes {
		m.applyGlobalTimes(t, &r)
	} else {
		m.applySpeedOverrides(magazines, &r)
	}

	m.applyLoadPenalty(magazines, &r)

	if m.cfg.Resize3to2SlotMagazine {
		m.applyResize(magazines, &r)
	}

	return r
}

func (m *Mutator) applySpeedOverrides(magazines []*Item, r *Report) {
	speed := math.Round(m.cfg.AmmoUnloadSpeed * 100)
	for _, item := range magazines {
		capacity := item.Capacity()
		if !m.cfg.CapacityInRange(capacity) {
			continue
		}
		item.Props.CheckOverride = speed
		r.SpeedOverrides++
		m.log.Debug().Str("item", item.ID).Int("capacity", capacity).Float64("checkOverride", speed).Msg("set unload speed override")
	}
	m.log.Info().
		Int("magazines", r.SpeedOverrides).
		Int("min", m.cfg.EffectiveMinMagazineSize()).
		Int("max", m.cfg.MaxMagazineSize).
		Float64("checkOverride", speed).
		Msg("applied per-magazine unload speed")
}

func (m *Mutator) applyGlobalTimes(t *Tables, r *Report) {
	times := t.ReloadTimes()
	if times == nil {
		r.GlobalTimesSkipped = true
		m.log.Error().Msg("global reload-time settings not found, base load/unload times not applied")
		return
	}
	times.BaseLoadTime = m.cfg.BaseLoadTime
	times.BaseUnloadTime = m.cfg.BaseUnloadTime
	r.GlobalTimesApplied = true
	m.log.Info().
		Float64("baseLoadTime", times.BaseLoadTime).
		Float64("baseUnloadTime", times.BaseUnloadTime).
		Msg("applied global reload times")
}

func (m *Mutator) applyLoadPenalty(magazines []*Item, r *Report) {
	want := 1.0
	if m.cfg.DisableMagazineAmmoLoadPenalty {
		want = 0
	}
	for _, item := range magazines {
		if item.Props.LoadUnloadModifier == want {
			continue
		}
		item.Props.LoadUnloadModifier = want
		r.PenaltyChanges++
		m.log.Debug().Str("item", item.ID).Float64("loadUnloadModifier", want).Msg("set load/unload modifier")
	}
	if r.PenaltyChanges > 0 {
		m.log.Info().Int("magazines", r.PenaltyChanges).Float64("loadUnloadModifier", want).Msg("updated load/unload penalty")
	}
}

func (m *Mutator) applyResize(magazines []*Item, r *Report) {
	for _, item := range magazines {
		if item.Props.Height != 3 || item.Props.Width != 1 {
			continue
		}
		item.Props.Height = 2
		r.Resized++
		m.log.Debug().Str("item", item.ID).Msg("resized magazine to 1x2")
	}
	m.log.Info().Int("magazines", r.Resized).Msg("resized 1x3 magazines")
}

// magazinesOf returns every magazine in t, ordered by item ID so logs and
// reports are stable.
func magazinesOf(t *Tables) []*Item {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.Items))
	for id, item := range t.Items {
		if item.IsMagazine() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.Items[id])
	}
	return out
}
