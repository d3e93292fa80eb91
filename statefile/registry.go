package statefile

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/filters"
)

// newBlank returns a freshly constructed, empty instance of the filter
// named by TypeString, for ReadState to populate. It covers every
// stock filter in package filters; callers embedding custom filter
// types should extend this with their own registry before loading
// state files that reference them.
func newBlank(typeString string) (filter.Filter, bool) {
	switch typeString {
	case "IonLoad":
		return filters.NewIonLoad(nil), true
	case "RangeLoad":
		return filters.NewRangeLoad(nil), true
	case "Downsample":
		return filters.NewDownsample(), true
	case "Clip":
		return filters.NewClip(), true
	case "RangeApply":
		return filters.NewRangeApply(), true
	case "Transform":
		return filters.NewTransform(), true
	case "Spectrum":
		return filters.NewSpectrum(), true
	case "Cluster":
		return filters.NewCluster(), true
	case "Annotation":
		return filters.NewAnnotation(), true
	case "Voxelize":
		return filters.NewVoxelize(), true
	case "Proxigram":
		return filters.NewProxigram(), true
	case "Appearance":
		return filters.NewAppearance(), true
	case "ExternalScript":
		return filters.NewExternalScript(), true
	default:
		return nil, false
	}
}
