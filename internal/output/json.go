package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
)

// summaryJSON is the machine-readable form of a Summary.
type summaryJSON struct {
	Config        config.Config   `json:"config"`
	Corrections   []string        `json:"corrections"`
	ConfigPath    string          `json:"configPath,omitempty"`
	ConfigCreated bool            `json:"configCreated"`
	WroteBack     bool            `json:"configWrittenBack"`
	Report        *catalog.Report `json:"report,omitempty"`
}

// WriteSummaryJSON writes s as pretty-printed JSON to the writer.
func WriteSummaryJSON(w io.Writer, s Summary) error {
	corrections := make([]string, 0, len(s.Corrections))
	for _, c := range s.Corrections {
		corrections = append(corrections, c.String())
	}
	return writeIndented(w, summaryJSON{
		Config:        s.Config,
		Corrections:   corrections,
		ConfigPath:    s.ConfigPath,
		ConfigCreated: s.ConfigCreated,
		WroteBack:     s.WroteBack,
		Report:        s.Report,
	})
}

// WriteJSON writes all variables as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, variables map[string]string) error {
	return writeIndented(w, variables)
}

func writeIndented(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output to JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteVariable writes a single variable value to the writer.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteAll writes all variables as key=value pairs to the writer, sorted by key.
func WriteAll(w io.Writer, variables map[string]string) error {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, variables[k]); err != nil {
			return err
		}
	}
	return nil
}
