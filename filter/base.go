package filter

import "github.com/threedepict/tomo/fstream"

// Base is embedded by every concrete filter in package filters to
// supply the label and cache bookkeeping common to all of them, the way
// the teacher's grid manipulators share a handful of fields rather than
// reimplementing them per type. Concrete filters still implement
// TypeID/TypeString/Properties/SetProperty/the mask accessors/Refresh
// themselves; Base only carries state, not behavior specific to a kind.
type Base struct {
	label         string
	cachingOn     bool
	cacheValid    bool
	cachedOutputs []fstream.Stream
	cachedInputs  []fstream.Stream
}

// NewBase returns a Base with caching enabled by default, matching the
// default in spec §3 ("cachingEnabled: bool, default true").
func NewBase() Base {
	return Base{cachingOn: true}
}

// UserLabel returns the filter's persistent user-editable label.
func (b *Base) UserLabel() string { return b.label }

// SetUserLabel sets the filter's persistent user-editable label.
func (b *Base) SetUserLabel(s string) { b.label = s }

// CacheValid reports whether CachedOutputs may be used instead of
// calling Refresh.
func (b *Base) CacheValid() bool { return b.cachingOn && b.cacheValid }

// CachedOutputs returns the filter's cached output streams.
func (b *Base) CachedOutputs() []fstream.Stream { return b.cachedOutputs }

// StoreCache records outputs as the current cache contents, owned by
// the filter, and marks the cache valid. inputs is the effective input
// slice Refresh was called with; the engine compares it against a
// later call's effective input (spec §4.3 step 2: "inputs are
// identity-equal to those at the time of caching") before trusting the
// cache instead of re-running Refresh. Concrete filters call this at
// the end of Refresh when CachingEnabled.
func (b *Base) StoreCache(inputs, outputs []fstream.Stream) {
	for _, s := range outputs {
		s.SetOwnership(fstream.Owned)
	}
	b.cachedOutputs = outputs
	b.cachedInputs = append([]fstream.Stream(nil), inputs...)
	b.cacheValid = true
}

// CachedInputsMatch reports whether inputs is identity-equal, element
// by element, to the input slice that produced the current cache
// (spec §4.3 step 2). A cache stored with an empty input slice matches
// an empty inputs slice, which is how loader filters with no inputs
// reuse their cache.
func (b *Base) CachedInputsMatch(inputs []fstream.Stream) bool {
	if len(inputs) != len(b.cachedInputs) {
		return false
	}
	for i, s := range inputs {
		if s != b.cachedInputs[i] {
			return false
		}
	}
	return true
}

// ClearCache releases every cached stream and invalidates the cache.
// Base keeps no selection devices, so none are released here.
func (b *Base) ClearCache() {
	for _, s := range b.cachedOutputs {
		s.Release()
	}
	b.cachedOutputs = nil
	b.cachedInputs = nil
	b.cacheValid = false
}

// SetCachingEnabled toggles whether Refresh populates the cache.
// Disabling caching also clears any existing cache, since a stale
// cache could otherwise be read back after re-enabling.
func (b *Base) SetCachingEnabled(on bool) {
	if !on {
		b.ClearCache()
	}
	b.cachingOn = on
}

// CachingEnabled reports the current caching setting.
func (b *Base) CachingEnabled() bool { return b.cachingOn }

// IsPureDataSource is the default for filters with at least one input;
// loader filters override this to return true.
func (b *Base) IsPureDataSource() bool { return false }

// CanBeHazardous is the default for filters that run no external
// process; the ExternalScript filter overrides this.
func (b *Base) CanBeHazardous() bool { return false }

// InitFilter is a no-op default; filters that need a data-free pre-pass
// override it.
func (b *Base) InitFilter(inputs []fstream.Stream) {}

// WriteState is a no-op default returning an empty element; filters
// with no structured state beyond Properties don't need to override it.
func (b *Base) WriteState() Element { return Element{} }

// ReadState is a no-op default; filters with no structured state beyond
// Properties don't need to override it.
func (b *Base) ReadState(Element) error { return nil }
