// Package e2e contains end-to-end tests that exercise the full patch
// pipeline against real (temporary) configuration files and databases.
//
// Each test writes a purpose-built config and item database, runs the
// pipeline, saves the result and asserts on what ended up on disk. This
// tests all layers together:
// config loader → validator → writer → database → catalog mutator → output.
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/database"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/logging"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/testutil"
	"github.com/MyCarrier-DevOps/go-magpatch/pkg/magpatch"

	"github.com/stretchr/testify/require"
)

const rifleParent = "5447b5cf4bdc2d65278b4567"

// standardDatabase builds a database with one magazine per size bucket,
// a 1x3 and a 2x3 magazine, and a non-magazine item.
func standardDatabase(t *testing.T) *testutil.TestDatabase {
	t.Helper()
	return testutil.NewTestDatabase(t).
		AddMagazine("pistol_mag", 8, 1, 1, -0.25).
		AddMagazine("rifle_mag", 30, 2, 1, 0.3).
		AddMagazine("drum_mag", 60, 3, 1, 1).
		AddMagazine("box_mag", 100, 3, 2, 0.5).
		AddItem("rifle", rifleParent, 2, 5).
		WithGlobals(0.85, 0.3)
}

// runPipeline runs the full pipeline against configContent and db and
// saves the patched database.
func runPipeline(t *testing.T, configContent string, db *testutil.TestDatabase) *magpatch.Result {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config", "config.jsonc")
	if configContent != "" {
		testutil.WriteConfig(t, dir, configContent)
	}
	return runPipelineAt(t, path, db)
}

func runPipelineAt(t *testing.T, path string, db *testutil.TestDatabase) *magpatch.Result {
	t.Helper()
	dir := database.Open(db.Write())
	result, err := magpatch.Run(context.Background(), magpatch.Options{
		ConfigPath: path,
		Provider:   dir,
		Logger:     logging.Nop(),
		Retry:      catalog.RetryPolicy{Attempts: 2, Delay: time.Millisecond},
	})
	require.NoError(t, err)
	require.NoError(t, dir.Save(result.Tables))
	return result
}

// --- First run: no configuration file ---

func TestE2E_FirstRunCreatesDefaultConfig(t *testing.T) {
	db := standardDatabase(t)
	result := runPipeline(t, "", db)

	require.True(t, result.ConfigCreated)
	require.False(t, result.WroteBack)

	content, err := os.ReadFile(result.ConfigPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "\n  \"ammo.loadspeed\": 1,\n")
	require.Contains(t, string(content), "// ")

	// Defaults: per-magazine mode, sizes 10 and up, speed 1.
	require.Equal(t, 0.0, db.Props("pistol_mag")["CheckOverride"])
	require.Equal(t, 100.0, db.Props("rifle_mag")["CheckOverride"])
	require.Equal(t, 100.0, db.Props("drum_mag")["CheckOverride"])
	require.Equal(t, 100.0, db.Props("box_mag")["CheckOverride"])

	// Penalty reset to neutral everywhere, other items untouched.
	require.Equal(t, 1.0, db.Props("pistol_mag")["LoadUnloadModifier"])
	require.Equal(t, 0.5, db.Props("rifle")["LoadUnloadModifier"])

	// Resize is off by default.
	require.Equal(t, 3.0, db.Props("drum_mag")["Height"])

	// Second run sees a clean file.
	again := runPipelineAt(t, result.ConfigPath, standardDatabase(t))
	require.False(t, again.ConfigCreated)
	require.False(t, again.WroteBack)
	require.Empty(t, again.Corrections)
}

// --- Per-magazine mode ---

func TestE2E_SizeWindow(t *testing.T) {
	tests := []struct {
		name       string
		config     string
		overridden []string
	}{
		{
			name:       "no limits",
			config:     `{"min.MagazineSize": -1, "max.MagazineSize": -1, "ammo.unloadspeed": 0.4}`,
			overridden: []string{"pistol_mag", "rifle_mag", "drum_mag", "box_mag"},
		},
		{
			name:       "bounded",
			config:     `{"min.MagazineSize": 20, "max.MagazineSize": 60, "ammo.unloadspeed": 0.4}`,
			overridden: []string{"rifle_mag", "drum_mag"},
		},
		{
			name:       "max below min falls back to no max",
			config:     `{"min.MagazineSize": 40, "max.MagazineSize": 15, "ammo.unloadspeed": 0.4}`,
			overridden: []string{"drum_mag", "box_mag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := standardDatabase(t)
			runPipeline(t, tt.config, db)

			want := map[string]bool{}
			for _, id := range tt.overridden {
				want[id] = true
			}
			for _, id := range []string{"pistol_mag", "rifle_mag", "drum_mag", "box_mag"} {
				expected := 0.0
				if want[id] {
					expected = 40.0
				}
				require.Equal(t, expected, db.Props(id)["CheckOverride"], id)
			}
		})
	}
}

func TestE2E_CommaDecimalSpeed(t *testing.T) {
	db := standardDatabase(t)
	result := runPipeline(t, `{
  "ammo.unloadspeed": "0,75", // European locale
  "min.MagazineSize": -1
}`, db)

	require.Equal(t, 0.75, result.Config.AmmoUnloadSpeed)
	require.Equal(t, 75.0, db.Props("pistol_mag")["CheckOverride"])
	require.True(t, result.WroteBack)

	loaded, err := config.Load(result.ConfigPath)
	require.NoError(t, err)
	require.Equal(t, 0.75, loaded.Document[config.KeyAmmoUnloadSpeed])
}

func TestE2E_OutOfRangeSpeedFallsBack(t *testing.T) {
	db := standardDatabase(t)
	result := runPipeline(t, `{"ammo.unloadspeed": 4.2}`, db)

	require.Equal(t, 1.0, result.Config.AmmoUnloadSpeed)
	require.Equal(t, 100.0, db.Props("rifle_mag")["CheckOverride"])
}

// --- Global mode ---

func TestE2E_GlobalTimes(t *testing.T) {
	db := standardDatabase(t)
	result := runPipeline(t, `{"useGlobalTimes": true, "baseLoadTime": 0.5, "baseUnloadTime": 0.123}`, db)

	require.True(t, result.Report.GlobalTimesApplied)
	require.Equal(t, 0, result.Report.SpeedOverrides)

	section := db.ReadGlobals()["config"].(map[string]any)
	require.Equal(t, 0.5, section["BaseLoadTime"])
	require.Equal(t, 0.12, section["BaseUnloadTime"])
	require.Equal(t, 0.0, db.Props("rifle_mag")["CheckOverride"])
}

func TestE2E_GlobalTimesWithoutGlobals(t *testing.T) {
	db := testutil.NewTestDatabase(t).
		AddMagazine("drum_mag", 60, 3, 1, 1).
		WithEmptyGlobals()
	result := runPipeline(t, `{"useGlobalTimes": true, "Resize3to2SlotMagazine": true}`, db)

	require.True(t, result.Report.GlobalTimesSkipped)
	require.Equal(t, 1, result.Report.Resized)
	require.Equal(t, 2.0, db.Props("drum_mag")["Height"])
	require.Empty(t, db.ReadGlobals())
}

// --- Penalty and resize ---

func TestE2E_DisablePenaltyAndResize(t *testing.T) {
	db := standardDatabase(t)
	result := runPipeline(t, `{"DisableMagazineAmmoLoadPenalty": true, "Resize3to2SlotMagazine": true}`, db)

	require.Equal(t, 4, result.Report.PenaltyChanges)
	for _, id := range []string{"pistol_mag", "rifle_mag", "drum_mag", "box_mag"} {
		require.Equal(t, 0.0, db.Props(id)["LoadUnloadModifier"], id)
	}
	require.Equal(t, 2.0, db.Props("drum_mag")["Height"])
	require.Equal(t, 3.0, db.Props("box_mag")["Height"])
	require.Equal(t, 2.0, db.Props("rifle")["Height"])
}

// --- Broken configuration ---

func TestE2E_BrokenConfigLeavesEverythingAlone(t *testing.T) {
	db := standardDatabase(t)
	dbPath := db.Write()
	path := testutil.WriteConfig(t, t.TempDir(), `{"ammo.loadspeed": 1]`)

	_, err := magpatch.Run(context.Background(), magpatch.Options{
		ConfigPath: path,
		Provider:   database.Open(dbPath),
		Logger:     logging.Nop(),
		Retry:      catalog.RetryPolicy{Attempts: 1},
	})
	require.ErrorIs(t, err, config.ErrLoad)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"ammo.loadspeed": 1]`, string(content))
	require.Equal(t, 0.0, db.Props("rifle_mag")["CheckOverride"])
}
