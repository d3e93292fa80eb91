// Package filters implements the stock Filter kinds: loaders and
// transforms over ion point clouds, plus the voxelization and
// proxigram analysis filters (spec §2, §4.5, §4.6).
package filters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
)

// f64s formats a float64 the way a Property.Value round-trips it.
func f64s(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// i64s formats an int the way a Property.Value round-trips it.
func i64s(v int) string { return strconv.Itoa(v) }

// parseFloat parses a Property.Value as a float64.
func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// parseInt parses a Property.Value as an int.
func parseInt(s string) (int, error) { return strconv.Atoi(s) }

// boolStr formats a bool the way a Property.Value round-trips it.
func boolStr(v bool) string { return strconv.FormatBool(v) }

// parseBool parses a Property.Value as a bool.
func parseBool(s string) (bool, error) { return strconv.ParseBool(s) }

// rgbaStr formats an RGBA the way a PropColour Property.Value
// round-trips it: four comma-separated components.
func rgbaStr(c fstream.RGBA) string {
	return fmt.Sprintf("%s,%s,%s,%s", f64s(c.R), f64s(c.G), f64s(c.B), f64s(c.A))
}

// parseRGBA parses a PropColour Property.Value produced by rgbaStr.
func parseRGBA(s string) (fstream.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fstream.RGBA{}, fmt.Errorf("filters: invalid colour %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := parseFloat(strings.TrimSpace(p))
		if err != nil {
			return fstream.RGBA{}, fmt.Errorf("filters: invalid colour %q: %w", s, err)
		}
		vals[i] = v
	}
	return fstream.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// firstIons returns the first Ions stream among inputs, if any.
func firstIons(inputs []fstream.Stream) (*fstream.Ions, bool) {
	for _, s := range inputs {
		if ions, ok := s.(*fstream.Ions); ok {
			return ions, true
		}
	}
	return nil, false
}

// firstVoxelSparse returns the first VoxelSparse stream among inputs,
// if any.
func firstVoxelSparse(inputs []fstream.Stream) (*fstream.VoxelSparse, bool) {
	for _, s := range inputs {
		if v, ok := s.(*fstream.VoxelSparse); ok {
			return v, true
		}
	}
	return nil, false
}

// firstRange returns the first Range stream among inputs, if any.
func firstRange(inputs []fstream.Stream) (*fstream.Range, bool) {
	for _, s := range inputs {
		if r, ok := s.(*fstream.Range); ok {
			return r, true
		}
	}
	return nil, false
}

// passthroughRange re-emits r unchanged. Most filters that consume a
// Range stream for labeling also forward it downstream untouched, the
// way the teacher's manipulators leave unrelated cell fields alone.
func passthroughRange(r *fstream.Range) fstream.Stream {
	return r
}

// boolProp returns a bool property, defaulting to def if key is absent.
func boolProp(groups filter.PropGroups, key string, def bool) bool {
	p, ok := groups.Find(key)
	if !ok {
		return def
	}
	v, err := p.ParseBool()
	if err != nil {
		return def
	}
	return v
}

// intProp returns an int property, defaulting to def if key is absent.
func intProp(groups filter.PropGroups, key string, def int) int {
	p, ok := groups.Find(key)
	if !ok {
		return def
	}
	v, err := p.ParseInt()
	if err != nil {
		return def
	}
	return v
}

// realProp returns a float64 property, defaulting to def if key is
// absent.
func realProp(groups filter.PropGroups, key string, def float64) float64 {
	p, ok := groups.Find(key)
	if !ok {
		return def
	}
	v, err := p.ParseReal()
	if err != nil {
		return def
	}
	return v
}

// setProp updates groups in place for key, returning the new ok/changed
// pair per the Filter.SetProperty contract. It reports changed=false
// without modifying groups if value is the same string as the current
// one.
func setProp(groups filter.PropGroups, key, value string) (ok, changed bool) {
	for gi := range groups {
		for pi := range groups[gi].Props {
			p := &groups[gi].Props[pi]
			if p.Key != key {
				continue
			}
			if p.Value == value {
				return true, false
			}
			p.Value = value
			return true, true
		}
	}
	return false, false
}
