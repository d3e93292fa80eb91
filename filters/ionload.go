package filters

import (
	"github.com/spf13/afero"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

// IonLoad is a pure data source that reads a binary ion file (spec §6)
// into an Ions stream. It and RangeLoad are the stock filters with
// IsPureDataSource() true.
type IonLoad struct {
	filter.Base
	fs   afero.Fs
	path string
}

// NewIonLoad returns an IonLoad filter reading through fs, defaulting
// to the OS filesystem when fs is nil.
func NewIonLoad(fs afero.Fs) *IonLoad {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &IonLoad{Base: filter.NewBase(), fs: fs}
}

func (f *IonLoad) TypeID() filter.TypeID   { return filter.TypeIonLoad }
func (f *IonLoad) TypeString() string      { return "IonLoad" }
func (f *IonLoad) IsPureDataSource() bool  { return true }

func (f *IonLoad) CloneUncached() filter.Filter {
	return &IonLoad{Base: filter.NewBase(), fs: f.fs, path: f.path}
}

func (f *IonLoad) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Source",
		Props: []filter.Property{
			{Key: "path", Name: "File", Type: filter.PropFile, Value: f.path, Help: "Binary ion hit file to load."},
		},
	}}
}

func (f *IonLoad) SetProperty(key, value string) (ok, needsUpdate bool) {
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

func (f *IonLoad) UseMask() fstream.Mask   { return fstream.NoKinds }
func (f *IonLoad) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *IonLoad) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *IonLoad) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	if f.path == "" {
		return nil, filter.IOFailure
	}
	fh, err := openWithRetry(f.fs, f.path)
	if err != nil {
		return nil, filter.IOFailure
	}
	defer fh.Close()
	hits, err := ion.ReadAll(fh)
	if err != nil {
		return nil, filter.IOFailure
	}
	out := fstream.NewIons(fstream.NoParent, hits)
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
