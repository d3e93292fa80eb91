package filter

import (
	"fmt"

	"github.com/spf13/cast"
)

// PropType is the type tag governing how a Property's string value is
// parsed and validated (spec §3 FilterProperty).
type PropType int

// The property type tags.
const (
	PropBool PropType = iota
	PropInt
	PropReal
	PropPoint3D
	PropColour
	PropChoice
	PropString
	PropFile
	PropDir
)

// Property is a single named, typed, serialized parameter exposed by a
// filter.
type Property struct {
	Key       string // stable machine key, unique within its group
	Name      string // human-facing label
	Type      PropType
	Value     string // the current value, serialized as a string
	Help      string // non-empty help text (spec §3 invariant)
	Secondary string // e.g. the '|'-separated choice list for PropChoice
	Cosmetic  bool   // spec §4.1: cosmetic properties set needs_update without invalidating cache
}

// ParseBool coerces Value using the same loose rules the state-file and
// UI layers expect ("1"/"true"/"yes" and friends), via spf13/cast.
func (p Property) ParseBool() (bool, error) {
	v, err := cast.ToBoolE(p.Value)
	if err != nil {
		return false, fmt.Errorf("filter: property %s: %w", p.Key, err)
	}
	return v, nil
}

// ParseInt coerces Value to an int.
func (p Property) ParseInt() (int, error) {
	v, err := cast.ToIntE(p.Value)
	if err != nil {
		return 0, fmt.Errorf("filter: property %s: %w", p.Key, err)
	}
	return v, nil
}

// ParseReal coerces Value to a float64.
func (p Property) ParseReal() (float64, error) {
	v, err := cast.ToFloat64E(p.Value)
	if err != nil {
		return 0, fmt.Errorf("filter: property %s: %w", p.Key, err)
	}
	return v, nil
}

// PropGroup is an ordered group of properties under a shared title.
// Keys must be unique within the group and every property must carry
// non-empty help text (spec §3 FilterPropGroup invariant).
type PropGroup struct {
	Title string
	Props []Property
}

// PropGroups is the ordered set of groups a Filter.Properties call
// returns.
type PropGroups []PropGroup

// Validate checks the FilterPropGroup invariants from spec §3: keys
// unique across each group, and every property has help text.
func (gs PropGroups) Validate() error {
	for _, g := range gs {
		seen := make(map[string]bool)
		for _, p := range g.Props {
			if seen[p.Key] {
				return fmt.Errorf("filter: duplicate property key %q in group %q", p.Key, g.Title)
			}
			seen[p.Key] = true
			if p.Help == "" {
				return fmt.Errorf("filter: property %q in group %q has no help text", p.Key, g.Title)
			}
		}
	}
	return nil
}

// Find returns the property with the given key, if present.
func (gs PropGroups) Find(key string) (Property, bool) {
	for _, g := range gs {
		for _, p := range g.Props {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Property{}, false
}
