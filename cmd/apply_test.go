package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setFlags points the global flags at a test fixture and restores the
// defaults when the test ends.
func setFlags(t *testing.T, configPath, databasePath string) {
	t.Helper()
	flagConfig = configPath
	flagDatabase = databasePath
	flagWaitAttempts = 2
	flagWaitDelay = time.Millisecond
	flagVerbosity = "quiet"
	flagLogFormat = "json"
	t.Cleanup(func() {
		flagConfig = config.DefaultPath
		flagDatabase = "database"
		flagDryRun = false
		flagOutput = ""
		flagShowVariable = ""
		flagShowConfig = false
		flagExplain = false
		flagVerbosity = ""
		flagLogFormat = "console"
		flagWaitAttempts = catalog.DefaultWaitAttempts
		flagWaitDelay = catalog.DefaultWaitDelay
	})
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	return c, &stdout, &stderr
}

func TestApply_PatchesAndSavesDatabase(t *testing.T) {
	db := testutil.NewTestDatabase(t).
		AddMagazine("mag30", 30, 2, 1, 0.4).
		AddMagazine("mag60", 60, 3, 1, 1)
	dbPath := db.Write()
	configPath := testutil.WriteConfig(t, t.TempDir(), `{"ammo.unloadspeed": 0.5, "Resize3to2SlotMagazine": true}`)
	setFlags(t, configPath, dbPath)

	c, stdout, _ := newTestCmd()
	require.NoError(t, applyRunE(c, nil))

	require.Contains(t, stdout.String(), "SpeedOverrides=2\n")
	require.Contains(t, stdout.String(), "Resized=1\n")

	require.Equal(t, 50.0, db.Props("mag30")["CheckOverride"])
	require.Equal(t, 1.0, db.Props("mag30")["LoadUnloadModifier"])
	require.Equal(t, 2.0, db.Props("mag60")["Height"])
}

func TestApply_DryRunLeavesFilesAlone(t *testing.T) {
	db := testutil.NewTestDatabase(t).AddMagazine("mag60", 60, 3, 1, 1)
	dbPath := db.Write()
	configPath := testutil.WriteConfig(t, t.TempDir(), `{"Resize3to2SlotMagazine": true}`)
	setFlags(t, configPath, dbPath)
	flagDryRun = true

	c, _, _ := newTestCmd()
	require.NoError(t, applyRunE(c, nil))

	require.Equal(t, 3.0, db.Props("mag60")["Height"])
	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	require.NotContains(t, loaded.Document, config.KeyDebug)
}

func TestApply_ShowVariable(t *testing.T) {
	db := testutil.NewTestDatabase(t).AddMagazine("mag30", 30, 2, 1, 1)
	setFlags(t, filepath.Join(t.TempDir(), "config.jsonc"), db.Write())
	flagShowVariable = "Magazines"

	c, stdout, _ := newTestCmd()
	require.NoError(t, applyRunE(c, nil))
	require.Equal(t, "1\n", stdout.String())
}

func TestApply_JSONOutput(t *testing.T) {
	db := testutil.NewTestDatabase(t).AddMagazine("mag30", 30, 2, 1, 1)
	setFlags(t, filepath.Join(t.TempDir(), "config.jsonc"), db.Write())
	flagOutput = "json"

	c, stdout, _ := newTestCmd()
	require.NoError(t, applyRunE(c, nil))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &parsed))
	require.Equal(t, true, parsed["configCreated"])
	require.Contains(t, parsed, "report")
}

func TestApply_UnknownOutputFormat(t *testing.T) {
	db := testutil.NewTestDatabase(t).AddMagazine("mag30", 30, 2, 1, 1)
	setFlags(t, filepath.Join(t.TempDir(), "config.jsonc"), db.Write())
	flagOutput = "xml"

	c, _, _ := newTestCmd()
	err := applyRunE(c, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestApply_ExplainGoesToStderr(t *testing.T) {
	db := testutil.NewTestDatabase(t).AddMagazine("mag30", 30, 2, 1, 1)
	setFlags(t, filepath.Join(t.TempDir(), "config.jsonc"), db.Write())
	flagExplain = true

	c, stdout, stderr := newTestCmd()
	require.NoError(t, applyRunE(c, nil))
	require.Contains(t, stderr.String(), "Patched: 1 magazines")
	require.NotContains(t, stdout.String(), "Patched:")
}

func TestApply_MissingDatabase(t *testing.T) {
	setFlags(t, filepath.Join(t.TempDir(), "config.jsonc"), t.TempDir())

	c, _, _ := newTestCmd()
	err := applyRunE(c, nil)
	require.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestApply_ShowConfig(t *testing.T) {
	configPath := testutil.WriteConfig(t, t.TempDir(), `{"min.MagazineSize": 70}`)
	setFlags(t, configPath, t.TempDir())
	flagShowConfig = true

	c, stdout, _ := newTestCmd()
	require.NoError(t, applyRunE(c, nil))

	var cfg config.Config
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &cfg))
	require.Equal(t, 10, cfg.MinMagazineSize)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	require.EqualValues(t, 70, loaded.Document[config.KeyMinMagazineSize], "show-config never writes")
}
