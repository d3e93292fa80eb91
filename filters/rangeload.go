package filters

import (
	"github.com/spf13/afero"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/rangefile"
)

// RangeLoad is a pure data source that reads a range file (spec §6's
// "three text dialects must be accepted") into a Range stream, the way
// IonLoad reads a binary point file into an Ions stream.
type RangeLoad struct {
	filter.Base
	fs   afero.Fs
	path string
}

// NewRangeLoad returns a RangeLoad filter reading through fs, defaulting
// to the OS filesystem when fs is nil.
func NewRangeLoad(fs afero.Fs) *RangeLoad {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &RangeLoad{Base: filter.NewBase(), fs: fs}
}

func (f *RangeLoad) TypeID() filter.TypeID  { return filter.TypeRangeLoad }
func (f *RangeLoad) TypeString() string     { return "RangeLoad" }
func (f *RangeLoad) IsPureDataSource() bool { return true }

func (f *RangeLoad) CloneUncached() filter.Filter {
	return &RangeLoad{Base: filter.NewBase(), fs: f.fs, path: f.path}
}

func (f *RangeLoad) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Source",
		Props: []filter.Property{
			{Key: "path", Name: "File", Type: filter.PropFile, Value: f.path, Help: "Range file to load; simple, CSV, or RRNG dialect are all accepted."},
		},
	}}
}

func (f *RangeLoad) SetProperty(key, value string) (ok, needsUpdate bool) {
	if key != "path" {
		return false, false
	}
	if f.path == value {
		return true, false
	}
	f.path = value
	f.ClearCache()
	return true, true
}

func (f *RangeLoad) UseMask() fstream.Mask   { return fstream.NoKinds }
func (f *RangeLoad) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *RangeLoad) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindRange) }

func (f *RangeLoad) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	if f.path == "" {
		return nil, filter.IOFailure
	}
	fh, err := openWithRetry(f.fs, f.path)
	if err != nil {
		return nil, filter.IOFailure
	}
	defer fh.Close()
	rf, err := rangefile.Read(fh)
	if err != nil {
		return nil, filter.IOFailure
	}
	out := fstream.NewRange(fstream.NoParent, rf)
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
