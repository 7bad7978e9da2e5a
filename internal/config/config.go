// Package config provides loading, validation, normalization and write-back
// of the magpatch configuration file.
package config

// Recognized configuration keys, in the order they are written to disk.
const (
	KeyAmmoLoadSpeed                  = "ammo.loadspeed"
	KeyAmmoUnloadSpeed                = "ammo.unloadspeed"
	KeyMinMagazineSize                = "min.MagazineSize"
	KeyMaxMagazineSize                = "max.MagazineSize"
	KeyUseGlobalTimes                 = "useGlobalTimes"
	KeyBaseLoadTime                   = "baseLoadTime"
	KeyBaseUnloadTime                 = "baseUnloadTime"
	KeyDisableMagazineAmmoLoadPenalty = "DisableMagazineAmmoLoadPenalty"
	KeyResize3to2SlotMagazine         = "Resize3to2SlotMagazine"
	KeyDebug                          = "debug"
)

// Keys lists every recognized key in canonical order.
var Keys = []string{
	KeyAmmoLoadSpeed,
	KeyAmmoUnloadSpeed,
	KeyMinMagazineSize,
	KeyMaxMagazineSize,
	KeyUseGlobalTimes,
	KeyBaseLoadTime,
	KeyBaseUnloadTime,
	KeyDisableMagazineAmmoLoadPenalty,
	KeyResize3to2SlotMagazine,
	KeyDebug,
}

// NoLimit is the magazine size sentinel meaning "no bound on this side".
const NoLimit = -1

// Document is the decoded key/value set exactly as read from disk. Values
// keep their decoded scalar type (bool, int, float64, string, nil) so that
// per-field validation can tell a boolean from the string "true".
type Document map[string]any

// Clone returns a shallow copy of the document. Values are scalars, so a
// shallow copy is enough to compare before/after validation.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Config is the typed view of a validated Document consumed by the catalog
// mutator. All fields are guaranteed to hold usable values.
type Config struct {
	AmmoLoadSpeed                  float64 `json:"ammo.loadspeed"`
	AmmoUnloadSpeed                float64 `json:"ammo.unloadspeed"`
	MinMagazineSize                int     `json:"min.MagazineSize"`
	MaxMagazineSize                int     `json:"max.MagazineSize"`
	UseGlobalTimes                 bool    `json:"useGlobalTimes"`
	BaseLoadTime                   float64 `json:"baseLoadTime"`
	BaseUnloadTime                 float64 `json:"baseUnloadTime"`
	DisableMagazineAmmoLoadPenalty bool    `json:"DisableMagazineAmmoLoadPenalty"`
	Resize3to2SlotMagazine         bool    `json:"Resize3to2SlotMagazine"`
	Debug                          bool    `json:"debug"`
}

// EffectiveMinMagazineSize returns the lower capacity bound used when
// selecting magazines. NoLimit is treated as the smallest real magazine, 2.
func (c Config) EffectiveMinMagazineSize() int {
	if c.MinMagazineSize == NoLimit {
		return MinMagazineSizeFloor
	}
	return c.MinMagazineSize
}

// CapacityInRange reports whether a magazine with the given cartridge
// capacity falls inside the configured [min, max] window.
func (c Config) CapacityInRange(capacity int) bool {
	if capacity < c.EffectiveMinMagazineSize() {
		return false
	}
	if c.MaxMagazineSize != NoLimit && capacity > c.MaxMagazineSize {
		return false
	}
	return true
}
