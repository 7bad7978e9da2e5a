// Package output handles rendering and serialization of a magpatch run.
package output

import (
	"strconv"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
)

// Summary is everything a run reports back to the operator.
type Summary struct {
	Config        config.Config
	Corrections   []config.Correction
	ConfigPath    string
	ConfigCreated bool
	WroteBack     bool
	Report        *catalog.Report
}

// GetVariables flattens a summary into name/value pairs. Report values are
// only present when the catalog was patched.
func GetVariables(s Summary) map[string]string {
	c := s.Config
	vars := map[string]string{
		"AmmoLoadSpeed":                  formatFloat(c.AmmoLoadSpeed),
		"AmmoUnloadSpeed":                formatFloat(c.AmmoUnloadSpeed),
		"MinMagazineSize":                strconv.Itoa(c.MinMagazineSize),
		"MaxMagazineSize":                strconv.Itoa(c.MaxMagazineSize),
		"UseGlobalTimes":                 strconv.FormatBool(c.UseGlobalTimes),
		"BaseLoadTime":                   formatFloat(c.BaseLoadTime),
		"BaseUnloadTime":                 formatFloat(c.BaseUnloadTime),
		"DisableMagazineAmmoLoadPenalty": strconv.FormatBool(c.DisableMagazineAmmoLoadPenalty),
		"Resize3to2SlotMagazine":         strconv.FormatBool(c.Resize3to2SlotMagazine),
		"Debug":                          strconv.FormatBool(c.Debug),
		"Corrections":                    strconv.Itoa(len(s.Corrections)),
		"ConfigCreated":                  strconv.FormatBool(s.ConfigCreated),
		"ConfigWrittenBack":              strconv.FormatBool(s.WroteBack),
	}

	if r := s.Report; r != nil {
		vars["Magazines"] = strconv.Itoa(r.Magazines)
		vars["SpeedOverrides"] = strconv.Itoa(r.SpeedOverrides)
		vars["PenaltyChanges"] = strconv.Itoa(r.PenaltyChanges)
		vars["Resized"] = strconv.Itoa(r.Resized)
		vars["GlobalTimesApplied"] = strconv.FormatBool(r.GlobalTimesApplied)
		vars["GlobalTimesSkipped"] = strconv.FormatBool(r.GlobalTimesSkipped)
	}
	return vars
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
