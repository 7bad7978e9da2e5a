// Package catalog models the host's item database and applies the
// magazine patches selected by the configuration.
package catalog

// MagazineParentID is the parent-type marker shared by every ammunition
// container (magazine) item.
const MagazineParentID = "5448bc234bdc2d3c308b4569"

// Item is one catalog entry.
type Item struct {
	ID     string     `json:"_id"`
	Name   string     `json:"_name,omitempty"`
	Parent string     `json:"_parent"`
	Props  *ItemProps `json:"_props,omitempty"`
}

// ItemProps holds the mutable item properties magpatch touches.
type ItemProps struct {
	Cartridges []Cartridge `json:"Cartridges,omitempty"`
	// CheckOverride scales unload duration for this item.
	CheckOverride float64 `json:"CheckOverride"`
	// LoadUnloadModifier is the ammo load penalty multiplier: 0 disables
	// the penalty, 1 is neutral.
	LoadUnloadModifier float64 `json:"LoadUnloadModifier"`
	Height             int     `json:"Height"`
	Width              int     `json:"Width"`
}

// Cartridge is the nested cartridge slot of a magazine.
type Cartridge struct {
	Name     string `json:"_name,omitempty"`
	MaxCount int    `json:"_max_count"`
}

// Globals is the host-wide settings block.
type Globals struct {
	// Config holds the global reload-time settings; nil when the host does
	// not provide them.
	Config *GlobalConfig `json:"config,omitempty"`
}

// GlobalConfig holds the base load/unload durations used when per-item
// overrides are not in effect.
type GlobalConfig struct {
	BaseLoadTime   float64 `json:"BaseLoadTime"`
	BaseUnloadTime float64 `json:"BaseUnloadTime"`
}

// Tables is the host database handed to the mutator.
type Tables struct {
	Items   map[string]*Item
	Globals *Globals
}

// IsMagazine reports whether the item is an ammunition container that
// exposes a cartridge slot.
func (i *Item) IsMagazine() bool {
	return i != nil && i.Parent == MagazineParentID && i.Props != nil && len(i.Props.Cartridges) > 0
}

// Capacity returns the cartridge capacity of a magazine.
func (i *Item) Capacity() int {
	if !i.IsMagazine() {
		return 0
	}
	return i.Props.Cartridges[0].MaxCount
}

// ReloadTimes returns the global reload-time settings, or nil when the
// structure is absent.
func (t *Tables) ReloadTimes() *GlobalConfig {
	if t == nil || t.Globals == nil {
		return nil
	}
	return t.Globals.Config
}
