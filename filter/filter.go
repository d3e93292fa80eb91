package filter

import "github.com/threedepict/tomo/fstream"

// TypeID identifies a filter's concrete kind. Spec §9's design note
// flattens the original's deep inheritance hierarchy into one Filter
// interface with a type-tag discriminator, matching how the engine
// already routes on type_id() rather than on dynamic dispatch of
// business logic.
type TypeID int

// The stock filter type IDs (package filters provides one
// implementation per ID; more may be registered by callers).
const (
	TypeUnknown TypeID = iota
	TypeIonLoad
	TypeRangeLoad
	TypeDownsample
	TypeClip
	TypeRangeApply
	TypeTransform
	TypeSpectrum
	TypeCluster
	TypeAnnotation
	TypeVoxelize
	TypeProxigram
	TypeAppearance
	TypeExternalScript
)

// Filter is the single interface every concrete processing node
// implements (spec §4.1).
type Filter interface {
	// TypeID returns the filter's concrete kind.
	TypeID() TypeID
	// TypeString returns a human-readable name, also used as the XML
	// element tag for this filter's state (spec §6).
	TypeString() string

	// CloneUncached returns a fresh filter with the same parameters and
	// an empty cache.
	CloneUncached() Filter

	// UserLabel returns the filter's persistent user-editable label.
	UserLabel() string
	// SetUserLabel sets the filter's persistent user-editable label.
	SetUserLabel(string)

	// Properties returns the filter's current parameters.
	Properties() PropGroups

	// SetProperty parses value according to key's declared type. See
	// spec §4.1 for the ok/needsUpdate contract: a parse failure
	// returns (false,false) and makes no change; a value equal to the
	// current one returns (true,false); any other successful change
	// returns (true,true) and, unless the property is cosmetic,
	// invalidates the filter's cache.
	SetProperty(key, value string) (ok, needsUpdate bool)

	// UseMask, BlockMask and EmitMask describe which stream kinds this
	// filter reads, swallows and produces for its *current* parameter
	// state. They must be constant for a given parameter state and must
	// agree with what Refresh actually does (spec §4.1, tested by
	// spec §8's subset invariant).
	UseMask() fstream.Mask
	BlockMask() fstream.Mask
	EmitMask() fstream.Mask

	// Refresh runs the filter's computation. inputs are read-only
	// borrowed streams; outputs are newly produced streams. Refresh may
	// populate the filter's own cache if caching is enabled, in which
	// case returned streams carry Ownership()==Owned; otherwise they
	// carry Ownership()==Transferred and the caller must Release them.
	Refresh(inputs []fstream.Stream, progress *Progress, abort *AbortFlag) ([]fstream.Stream, ErrCode)

	// InitFilter is a lightweight, data-free pre-pass letting the filter
	// copy references (e.g. the current range table) it needs to
	// present a meaningful UI before the first real refresh.
	InitFilter(inputs []fstream.Stream)

	// CacheValid reports whether the filter's cache may be used instead
	// of calling Refresh.
	CacheValid() bool
	// CachedInputsMatch reports whether inputs is identity-equal to the
	// input slice last used to populate the cache (spec §4.3 step 2);
	// the engine only trusts CacheValid()'s cache when this also holds.
	CachedInputsMatch(inputs []fstream.Stream) bool
	// CachedOutputs returns the filter's cached output streams. Callers
	// must not mutate or release them; they remain owned by the filter.
	CachedOutputs() []fstream.Stream
	// ClearCache invalidates the cache, releasing every cached stream.
	// Selection devices are not released by this call.
	ClearCache()
	// SetCachingEnabled toggles whether Refresh populates the cache.
	SetCachingEnabled(bool)
	// CachingEnabled reports the current caching setting.
	CachingEnabled() bool

	// WriteState serializes the filter's state (beyond its flat
	// Properties) as a state-file Element tree.
	WriteState() Element
	// ReadState restores state previously produced by WriteState. A
	// filter must round-trip through WriteState/ReadState without
	// semantic loss (spec §4.1, tested by spec §8's round-trip
	// invariant).
	ReadState(Element) error

	// IsPureDataSource reports whether this filter produces output with
	// no input, i.e. it is a loader.
	IsPureDataSource() bool
	// CanBeHazardous reports whether this filter executes an external
	// process. The engine may strip such filters when loading state
	// from an untrusted file (spec §4.1, §7).
	CanBeHazardous() bool
}

// CosmeticSetter is implemented by filters that have at least one
// cosmetic property (spec §4.1: "point size, colour... mutate outputs
// that are already live in the cache... without cache invalidation").
// The engine calls ApplyCosmetic directly on a filter's cached outputs
// instead of calling Refresh.
type CosmeticSetter interface {
	// ApplyCosmetic mutates the filter's already-cached outputs in
	// place to reflect key=value, returning whether key was a cosmetic
	// property this filter recognizes.
	ApplyCosmetic(key, value string) bool
}
