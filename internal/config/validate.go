package config

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Correction describes one field that Validate replaced.
type Correction struct {
	Key    string
	Absent bool
	Was    any
	Now    any
	Reason string
}

func (c Correction) String() string {
	if c.Absent {
		return fmt.Sprintf("%s: %s, set to %v", c.Key, c.Reason, c.Now)
	}
	return fmt.Sprintf("%s: %s (was %#v), reset to %v", c.Key, c.Reason, c.Was, c.Now)
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	// Config is the typed view of the corrected document.
	Config Config
	// Corrections holds one entry per replaced field, in rule order.
	Corrections []Correction
	// Changed is true when any stored value differs from what was loaded,
	// including rounding and string-to-number coercion.
	Changed bool
	// NeedsWriteBack is true when the corrected document should be persisted.
	NeedsWriteBack bool
}

// Validate checks every field of doc, replacing missing, mistyped and
// out-of-range values in place. It never fails; a nil doc is treated as
// an empty one. created must be true when
// doc was just written from defaults; such documents are never written back.
//
// Rules, applied in order:
//  1. a missing key takes its default;
//  2. a non-boolean useGlobalTimes becomes false;
//  3. per-magazine mode validates the two speeds and the magazine size window;
//  4. global mode validates baseLoadTime and baseUnloadTime;
//  5. the remaining booleans must be booleans, else false.
func Validate(doc Document, created bool) *ValidationResult {
	if doc == nil {
		doc = Document{}
	}
	original := doc.Clone()
	v := &validator{doc: doc}

	for _, key := range Keys {
		if _, ok := doc[key]; !ok {
			def := defaultValue(key)
			doc[key] = def
			v.corrections = append(v.corrections, Correction{
				Key:    key,
				Absent: true,
				Now:    def,
				Reason: "missing",
			})
		}
	}

	v.boolean(KeyUseGlobalTimes)
	useGlobalTimes, _ := doc[KeyUseGlobalTimes].(bool)

	if !useGlobalTimes {
		v.float(KeyAmmoLoadSpeed, SpeedMin, SpeedMax, speedFallback)
		v.float(KeyAmmoUnloadSpeed, SpeedMin, SpeedMax, speedFallback)
		v.magazineSizes()
	} else {
		v.float(KeyBaseLoadTime, BaseTimeMin, BaseTimeMax, DefaultBaseLoadTime)
		v.float(KeyBaseUnloadTime, BaseTimeMin, BaseTimeMax, DefaultBaseUnloadTime)
	}

	v.boolean(KeyDisableMagazineAmmoLoadPenalty)
	v.boolean(KeyResize3to2SlotMagazine)
	v.boolean(KeyDebug)

	changed := !cmp.Equal(original, doc, cmpopts.EquateNaNs())

	return &ValidationResult{
		Config:         NewConfig(doc),
		Corrections:    v.corrections,
		Changed:        changed,
		NeedsWriteBack: !created && (len(v.corrections) > 0 || changed),
	}
}

type validator struct {
	doc         Document
	corrections []Correction
}

func (v *validator) reset(key string, now any, reason string) {
	v.corrections = append(v.corrections, Correction{
		Key:    key,
		Was:    v.doc[key],
		Now:    now,
		Reason: reason,
	})
	v.doc[key] = now
}

func (v *validator) boolean(key string) {
	if _, ok := v.doc[key].(bool); !ok {
		v.reset(key, false, "not a boolean")
	}
}

// float validates a number field against [lo, hi]. Valid values are rounded
// to two decimals; the stored value is only replaced if rounding or string
// coercion changed it.
func (v *validator) float(key string, lo, hi, fallback float64) {
	raw := v.doc[key]
	f, ok := toNumber(raw)
	if !ok {
		v.reset(key, fallback, "not a number")
		return
	}
	if !inRange(f, lo, hi) {
		v.reset(key, fallback, fmt.Sprintf("outside [%v, %v]", lo, hi))
		return
	}

	rounded := round2(f)
	if _, isString := raw.(string); isString || f != rounded {
		v.doc[key] = rounded
	}
}

func (v *validator) magazineSizes() {
	minSize, ok := toInteger(v.doc[KeyMinMagazineSize])
	if !ok || !validMinMagazineSize(minSize) {
		v.reset(KeyMinMagazineSize, DefaultMinMagazineSize,
			fmt.Sprintf("must be %d or a whole number in [%d, %d]", NoLimit, MinMagazineSizeFloor, MinMagazineSizeCeiling))
		minSize = DefaultMinMagazineSize
	}

	maxSize, ok := toInteger(v.doc[KeyMaxMagazineSize])
	if !ok || !validMaxMagazineSize(maxSize) {
		v.reset(KeyMaxMagazineSize, NoLimit,
			fmt.Sprintf("must be %d or a whole number in [%d, %d]", NoLimit, MaxMagazineSizeFloor, MaxMagazineSizeCeiling))
		return
	}

	if minSize != NoLimit && maxSize != NoLimit && maxSize < minSize {
		v.reset(KeyMaxMagazineSize, NoLimit, fmt.Sprintf("below %s (%d)", KeyMinMagazineSize, minSize))
	}
}
