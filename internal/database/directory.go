// Package database provides a file-backed catalog.TablesProvider for
// running magpatch outside the host process.
package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
)

// File names inside a database directory.
const (
	ItemsFile   = "items.json"
	GlobalsFile = "globals.json"
)

// Compile-time check that Directory implements catalog.TablesProvider.
var _ catalog.TablesProvider = (*Directory)(nil)

// Directory serves host tables from a directory holding items.json (an
// object keyed by item ID) and an optional globals.json.
type Directory struct {
	Path string
}

// Open returns a Directory rooted at path.
func Open(path string) *Directory {
	return &Directory{Path: path}
}

// Tables reads the database. A missing items.json reports
// catalog.ErrNotReady; a missing globals.json leaves Globals nil.
func (d *Directory) Tables() (*catalog.Tables, error) {
	var items map[string]*catalog.Item
	if err := readJSON(filepath.Join(d.Path, ItemsFile), &items); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", ItemsFile, catalog.ErrNotReady)
		}
		return nil, err
	}
	if items == nil {
		items = map[string]*catalog.Item{}
	}
	for id, item := range items {
		if item == nil {
			delete(items, id)
			continue
		}
		if item.ID == "" {
			item.ID = id
		}
	}

	tables := &catalog.Tables{Items: items}

	var globals catalog.Globals
	err := readJSON(filepath.Join(d.Path, GlobalsFile), &globals)
	switch {
	case err == nil:
		tables.Globals = &globals
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	return tables, nil
}

// Save writes the patched properties of t back to the directory. Only
// magazines are touched, and a patched key is only added to an item that
// lacks it when its value is non-zero. Fields magpatch does not model are
// carried over from the files on disk.
func (d *Directory) Save(t *catalog.Tables) error {
	itemsPath := filepath.Join(d.Path, ItemsFile)
	var rawItems map[string]map[string]any
	if err := readJSON(itemsPath, &rawItems); err != nil {
		return err
	}
	for id, item := range t.Items {
		raw, ok := rawItems[id]
		if !ok || !item.IsMagazine() {
			continue
		}
		props, _ := raw["_props"].(map[string]any)
		if props == nil {
			continue
		}
		overlay(props, "CheckOverride", item.Props.CheckOverride)
		overlay(props, "LoadUnloadModifier", item.Props.LoadUnloadModifier)
		overlay(props, "Height", float64(item.Props.Height))
		overlay(props, "Width", float64(item.Props.Width))
	}
	if err := writeJSON(itemsPath, rawItems); err != nil {
		return err
	}

	times := t.ReloadTimes()
	if times == nil {
		return nil
	}
	globalsPath := filepath.Join(d.Path, GlobalsFile)
	var rawGlobals map[string]any
	if err := readJSON(globalsPath, &rawGlobals); err != nil {
		return err
	}
	section, _ := rawGlobals["config"].(map[string]any)
	if section == nil {
		return nil
	}
	section["BaseLoadTime"] = times.BaseLoadTime
	section["BaseUnloadTime"] = times.BaseUnloadTime
	return writeJSON(globalsPath, rawGlobals)
}

// overlay stores v under key when the key already exists or v is non-zero,
// so absent properties are not materialized as zeros.
func overlay(props map[string]any, key string, v float64) {
	if _, ok := props[key]; ok || v != 0 {
		props[key] = v
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
