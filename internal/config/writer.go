package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/renameio/v2"
)

// Marshal renders doc as a 2-space indented JSON object followed by
// guidance comment lines. Recognized keys come first in canonical order;
// any unrecognized keys follow, sorted, so user data is not dropped.
func Marshal(doc Document) ([]byte, error) {
	keys := make([]string, 0, len(doc))
	for _, k := range Keys {
		if _, ok := doc[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range doc {
		if !isKnownKey(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshaling key %q: %w", k, err)
		}
		value, err := json.MarshalIndent(doc[k], "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", k, err)
		}
		buf.WriteString("  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	buf.WriteByte('\n')
	for _, line := range guidance {
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Save writes doc to path atomically. The previous file, if any, is only
// replaced once the new content is fully on disk.
func Save(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
