package engine

import (
	"fmt"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/ftree"
)

// ApplyCosmeticUpdate implements the cosmetic-update bypass from spec
// §4.1/§4.3: if key names a cosmetic property and n's filter supports
// CosmeticSetter, the update is applied directly to the cache and no
// refresh is required. The caller is expected to have already
// validated, via filter.Property.Cosmetic, that key is cosmetic;
// ApplyCosmeticUpdate itself only checks the CosmeticSetter interface
// and that the filter's cache is valid.
func ApplyCosmeticUpdate(n *ftree.Node, key, value string) (bool, error) {
	cs, ok := n.Filter.(filter.CosmeticSetter)
	if !ok {
		return false, fmt.Errorf("engine.ApplyCosmeticUpdate: %s has no cosmetic properties", n.Filter.TypeString())
	}
	if !n.Filter.CacheValid() {
		return false, fmt.Errorf("engine.ApplyCosmeticUpdate: %s has no valid cache to update", n.Filter.TypeString())
	}
	return cs.ApplyCosmetic(key, value), nil
}

// IsCosmeticKey reports whether key is declared cosmetic in f's current
// Properties().
func IsCosmeticKey(f filter.Filter, key string) bool {
	p, ok := f.Properties().Find(key)
	return ok && p.Cosmetic
}
