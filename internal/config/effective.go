package config

// NewConfig builds the typed view of doc. Fields that Validate did not check
// in the active mode are read leniently: anything unusable falls back to the
// documented default rather than failing.
func NewConfig(doc Document) Config {
	cfg := Config{
		AmmoLoadSpeed:                  floatOr(doc[KeyAmmoLoadSpeed], SpeedMin, SpeedMax, DefaultAmmoLoadSpeed),
		AmmoUnloadSpeed:                floatOr(doc[KeyAmmoUnloadSpeed], SpeedMin, SpeedMax, DefaultAmmoUnloadSpeed),
		MinMagazineSize:                intOr(doc[KeyMinMagazineSize], validMinMagazineSize, DefaultMinMagazineSize),
		MaxMagazineSize:                intOr(doc[KeyMaxMagazineSize], validMaxMagazineSize, DefaultMaxMagazineSize),
		UseGlobalTimes:                 boolOr(doc[KeyUseGlobalTimes], false),
		BaseLoadTime:                   floatOr(doc[KeyBaseLoadTime], BaseTimeMin, BaseTimeMax, DefaultBaseLoadTime),
		BaseUnloadTime:                 floatOr(doc[KeyBaseUnloadTime], BaseTimeMin, BaseTimeMax, DefaultBaseUnloadTime),
		DisableMagazineAmmoLoadPenalty: boolOr(doc[KeyDisableMagazineAmmoLoadPenalty], false),
		Resize3to2SlotMagazine:         boolOr(doc[KeyResize3to2SlotMagazine], false),
		Debug:                          boolOr(doc[KeyDebug], false),
	}

	if cfg.MinMagazineSize != NoLimit && cfg.MaxMagazineSize != NoLimit && cfg.MaxMagazineSize < cfg.MinMagazineSize {
		cfg.MaxMagazineSize = NoLimit
	}

	return cfg
}

// Document returns the on-disk form of c.
func (c Config) Document() Document {
	return Document{
		KeyAmmoLoadSpeed:                  c.AmmoLoadSpeed,
		KeyAmmoUnloadSpeed:                c.AmmoUnloadSpeed,
		KeyMinMagazineSize:                c.MinMagazineSize,
		KeyMaxMagazineSize:                c.MaxMagazineSize,
		KeyUseGlobalTimes:                 c.UseGlobalTimes,
		KeyBaseLoadTime:                   c.BaseLoadTime,
		KeyBaseUnloadTime:                 c.BaseUnloadTime,
		KeyDisableMagazineAmmoLoadPenalty: c.DisableMagazineAmmoLoadPenalty,
		KeyResize3to2SlotMagazine:         c.Resize3to2SlotMagazine,
		KeyDebug:                          c.Debug,
	}
}

func floatOr(v any, lo, hi, fallback float64) float64 {
	f, ok := toNumber(v)
	if !ok || !inRange(f, lo, hi) {
		return fallback
	}
	return round2(f)
}

func intOr(v any, valid func(int) bool, fallback int) int {
	n, ok := toInteger(v)
	if !ok || !valid(n) {
		return fallback
	}
	return n
}

func boolOr(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}
