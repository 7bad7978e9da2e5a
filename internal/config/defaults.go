package config

// Field domains.
const (
	SpeedMin = 0.0
	SpeedMax = 1.0

	BaseTimeMin = 0.01
	BaseTimeMax = 1.0

	MinMagazineSizeFloor   = 2
	MinMagazineSizeCeiling = 60
	MaxMagazineSizeFloor   = 10
	MaxMagazineSizeCeiling = 100
)

// Documented defaults.
const (
	DefaultAmmoLoadSpeed   = 1.0
	DefaultAmmoUnloadSpeed = 1.0
	DefaultMinMagazineSize = 10
	DefaultMaxMagazineSize = NoLimit
	DefaultBaseLoadTime    = 0.85
	DefaultBaseUnloadTime  = 0.3
)

// speedFallback is the value an invalid per-magazine speed is reset to.
const speedFallback = 1.0

// CreateDefaultConfiguration returns a Config with every field at its
// documented default.
func CreateDefaultConfiguration() Config {
	return Config{
		AmmoLoadSpeed:   DefaultAmmoLoadSpeed,
		AmmoUnloadSpeed: DefaultAmmoUnloadSpeed,
		MinMagazineSize: DefaultMinMagazineSize,
		MaxMagazineSize: DefaultMaxMagazineSize,
		BaseLoadTime:    DefaultBaseLoadTime,
		BaseUnloadTime:  DefaultBaseUnloadTime,
	}
}

// DefaultDocument returns the on-disk form of CreateDefaultConfiguration.
func DefaultDocument() Document {
	return CreateDefaultConfiguration().Document()
}

func defaultValue(key string) any {
	switch key {
	case KeyAmmoLoadSpeed:
		return DefaultAmmoLoadSpeed
	case KeyAmmoUnloadSpeed:
		return DefaultAmmoUnloadSpeed
	case KeyMinMagazineSize:
		return DefaultMinMagazineSize
	case KeyMaxMagazineSize:
		return DefaultMaxMagazineSize
	case KeyBaseLoadTime:
		return DefaultBaseLoadTime
	case KeyBaseUnloadTime:
		return DefaultBaseUnloadTime
	default:
		return false
	}
}

// guidance is appended below the JSON object whenever the file is written.
var guidance = []string{
	"ammo.loadspeed / ammo.unloadspeed: 0 to 1, two decimals. Lower is faster.",
	"  ammo.loadspeed is ignored when useGlobalTimes is true.",
	"min.MagazineSize: 2 to 60, or -1 for no minimum.",
	"max.MagazineSize: 10 to 100, or -1 for no maximum. Must not be below min.MagazineSize.",
	"useGlobalTimes: true writes baseLoadTime/baseUnloadTime into the global settings",
	"  instead of overriding each magazine.",
	"baseLoadTime / baseUnloadTime: 0.01 to 1, two decimals. Defaults 0.85 / 0.3.",
	"DisableMagazineAmmoLoadPenalty: true removes the load/unload penalty on magazines.",
	"Resize3to2SlotMagazine: true shrinks 1x3 magazines to 1x2.",
	"debug: true enables detailed logging.",
}
