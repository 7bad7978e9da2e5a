// Package testutil provides helpers for creating temporary host databases
// and config directories for end-to-end testing.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// MagazineParentID mirrors catalog.MagazineParentID so fixtures stay
// independent of the package under test.
const MagazineParentID = "5448bc234bdc2d3c308b4569"

// TestDatabase is a builder for a temporary database directory with
// controlled items and global settings.
type TestDatabase struct {
	t       testing.TB
	path    string
	items   map[string]map[string]any
	globals map[string]any
}

// NewTestDatabase creates an empty database builder rooted in a temporary
// directory. Nothing is written until Write is called.
func NewTestDatabase(t testing.TB) *TestDatabase {
	t.Helper()
	return &TestDatabase{
		t:     t,
		path:  t.TempDir(),
		items: map[string]map[string]any{},
	}
}

// Path returns the database directory.
func (d *TestDatabase) Path() string {
	return d.path
}

// AddMagazine adds a magazine item with the given capacity and grid size.
// The item also carries a field magpatch does not model, so tests can check
// it survives a save.
func (d *TestDatabase) AddMagazine(id string, capacity, height, width int, modifier float64) *TestDatabase {
	d.items[id] = map[string]any{
		"_id":     id,
		"_name":   id,
		"_parent": MagazineParentID,
		"_type":   "Item",
		"_props": map[string]any{
			"Cartridges": []any{
				map[string]any{"_name": "cartridges", "_max_count": capacity},
			},
			"CheckOverride":      0,
			"LoadUnloadModifier": modifier,
			"Height":             height,
			"Width":              width,
			"Weight":             0.1,
		},
	}
	return d
}

// AddItem adds a non-magazine item under the given parent.
func (d *TestDatabase) AddItem(id, parent string, height, width int) *TestDatabase {
	d.items[id] = map[string]any{
		"_id":     id,
		"_name":   id,
		"_parent": parent,
		"_props": map[string]any{
			"Height":             height,
			"Width":              width,
			"LoadUnloadModifier": 0.5,
		},
	}
	return d
}

// WithGlobals adds a globals.json holding the given base reload times.
func (d *TestDatabase) WithGlobals(baseLoad, baseUnload float64) *TestDatabase {
	d.globals = map[string]any{
		"config": map[string]any{
			"BaseLoadTime":   baseLoad,
			"BaseUnloadTime": baseUnload,
			"Aiming":         map[string]any{"ProceduralIntensityByPose": 1},
		},
	}
	return d
}

// WithEmptyGlobals adds a globals.json without a reload-time section.
func (d *TestDatabase) WithEmptyGlobals() *TestDatabase {
	d.globals = map[string]any{}
	return d
}

// Write writes the configured files and returns the directory path.
func (d *TestDatabase) Write() string {
	d.t.Helper()
	d.writeJSON("items.json", d.items)
	if d.globals != nil {
		d.writeJSON("globals.json", d.globals)
	}
	return d.path
}

// ReadItems decodes items.json as written on disk.
func (d *TestDatabase) ReadItems() map[string]map[string]any {
	d.t.Helper()
	var out map[string]map[string]any
	d.readJSON("items.json", &out)
	return out
}

// ReadGlobals decodes globals.json as written on disk.
func (d *TestDatabase) ReadGlobals() map[string]any {
	d.t.Helper()
	var out map[string]any
	d.readJSON("globals.json", &out)
	return out
}

// Props returns the _props object of an item read back from disk.
func (d *TestDatabase) Props(id string) map[string]any {
	d.t.Helper()
	item, ok := d.ReadItems()[id]
	if !ok {
		d.t.Fatalf("item %s not found", id)
	}
	props, _ := item["_props"].(map[string]any)
	return props
}

func (d *TestDatabase) writeJSON(name string, v any) {
	d.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		d.t.Fatalf("encoding %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(d.path, name), data, 0o644); err != nil {
		d.t.Fatalf("writing %s: %v", name, err)
	}
}

func (d *TestDatabase) readJSON(name string, v any) {
	d.t.Helper()
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		d.t.Fatalf("reading %s: %v", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		d.t.Fatalf("parsing %s: %v", name, err)
	}
}

// WriteConfig writes content to config/config.jsonc under dir and returns
// the file path.
func WriteConfig(t testing.TB, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config", "config.jsonc")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
