package statefile

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"

	"github.com/threedepict/tomo/analysis"
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ftree"
	"github.com/threedepict/tomo/geom"
)

// ReadOptions controls how Load treats a document.
type ReadOptions struct {
	// Untrusted, when true, strips any filter with CanBeHazardous true
	// instead of loading it (spec §4.1, §7). Stripped reports how
	// many filters were removed.
	Untrusted bool
	// BaseDir is the directory the state file itself lives in, the
	// primary base for resolving relative external paths (spec §6:
	// "relative resolution starts from the state file's directory").
	// When empty, the document's <userelativepaths origworkdir=/>
	// serves as a fallback base instead.
	BaseDir string
}

// LoadResult carries Load's output plus any warnings that don't block
// loading.
type LoadResult struct {
	State *analysis.AnalysisState
	// StrippedHazardous is the number of filters removed because
	// Untrusted was set and they could execute external code.
	StrippedHazardous int
	// VersionWarning is non-empty if the file declares a writer version
	// newer than Version (spec §6: "produce a warning, not a
	// rejection").
	VersionWarning string
}

// Load parses r into an AnalysisState. Per spec §7, load is
// all-or-nothing: a structural error (missing required element,
// malformed XML, a filter referencing a TypeString Load doesn't
// recognize) returns an error and leaves no partial state behind;
// unrecognized extension elements are ignored.
func Load(r io.Reader, opts ReadOptions) (*LoadResult, error) {
	var doc document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("statefile.Load: malformed state file: %w", err)
	}
	if doc.Writer.Version == "" {
		return nil, fmt.Errorf("statefile.Load: missing required <writer version=/>")
	}
	if len(doc.Cameras.Cameras) == 0 {
		return nil, fmt.Errorf("statefile.Load: <cameras> has no camera elements")
	}

	pctx := pathContext{untrusted: opts.Untrusted}
	if doc.RelPaths != nil {
		pctx.relative = true
		pctx.baseDir = opts.BaseDir
		pctx.origWorkDir = doc.RelPaths.OrigWorkDir
	}

	tree, stripped, err := elementToTree(xmlNodeToElement(doc.Tree), pctx)
	if err != nil {
		return nil, fmt.Errorf("statefile.Load: %w", err)
	}

	as := analysis.New()
	as.SetBackground(fstream.RGBA{R: doc.BackCol.R, G: doc.BackCol.G, B: doc.BackCol.B, A: 1})
	as.SetAxisMode(analysis.AxisMode(doc.ShowAxis.Value))
	if doc.RelPaths != nil {
		as.SetRelativePaths(true)
		as.SetWorkDir(doc.RelPaths.OrigWorkDir)
	}
	as.TreeState().LoadTree(tree)

	cams := make([]analysis.Camera, len(doc.Cameras.Cameras))
	for i, c := range doc.Cameras.Cameras {
		cams[i] = cameraFrom(c)
	}
	if err := as.ReplaceCameras(cams, doc.Cameras.Active.Value); err != nil {
		return nil, fmt.Errorf("statefile.Load: %w", err)
	}

	for _, ep := range doc.Plots.EnablePlots {
		h, ok := handleFromPath(as, ep.Filter)
		if ok {
			as.SetPlotVisible(analysis.PlotVisibilityKey{Filter: h, PlotID: ep.ID}, true)
		}
	}

	if doc.Stashes != nil {
		for _, s := range doc.Stashes.Stashes {
			stashTree, _, err := elementToTree(xmlNodeToElement(s.Tree), pctx)
			if err != nil {
				return nil, fmt.Errorf("statefile.Load: stash %q: %w", s.Name, err)
			}
			as.PutStashTree(s.Name, stashTree)
		}
	}

	as.MarkSaved()

	res := &LoadResult{State: as, StrippedHazardous: stripped}
	if doc.Writer.Version > Version {
		res.VersionWarning = fmt.Sprintf("state file version %s is newer than this reader's %s", doc.Writer.Version, Version)
	}
	return res, nil
}

func cameraFrom(c cameraElem) analysis.Camera {
	return analysis.Camera{
		Name:       c.Name,
		Eye:        geom.Pt(c.EyeX, c.EyeY, c.EyeZ),
		Target:     geom.Pt(c.TargetX, c.TargetY, c.TargetZ),
		Up:         geom.Pt(c.UpX, c.UpY, c.UpZ),
		FovDegrees: c.FovDegrees,
		Near:       c.Near,
		Far:        c.Far,
	}
}

// handleFromPath resolves a textual filter-path written by handlePath
// back to a live Handle within the tree just loaded, via RebuildHandles'
// depth-first numbering: the path produced at save time stays valid
// through the load that immediately follows because handles are
// rebuilt in the same deterministic order.
func handleFromPath(as *analysis.AnalysisState, path string) (analysis.Handle, bool) {
	var n int
	if _, err := fmt.Sscanf(path, "#%d", &n); err != nil {
		return 0, false
	}
	h := analysis.Handle(n)
	_, ok := as.TreeState().Resolve(h)
	return h, ok
}

// pathContext carries the settings elementToNode needs to resolve
// PropFile/PropDir values and to strip hazardous filters.
type pathContext struct {
	untrusted   bool
	relative    bool
	baseDir     string
	origWorkDir string
}

// resolve turns a possibly-relative external path back into one
// usable from the process's own working directory, per spec §6:
// relative paths resolve against the state file's own directory first,
// falling back to the recorded origworkdir when BaseDir was not
// supplied.
func (c pathContext) resolve(p string) string {
	if !c.relative || p == "" || filepath.IsAbs(p) {
		return p
	}
	base := c.baseDir
	if base == "" {
		base = c.origWorkDir
	}
	if base == "" {
		return p
	}
	return filepath.Join(base, p)
}

// elementToTree converts a <filtertree> Element into a live ftree.Tree,
// instantiating each filter via the stock registry, applying its
// saved parameters and userstring, and calling ReadState with any
// remaining structured children. If pctx.untrusted is true, any
// filter with CanBeHazardous true is dropped from the tree (its
// children are dropped with it) and counted in strippedCount.
func elementToTree(root filter.Element, pctx pathContext) (tree *ftree.Tree, strippedCount int, err error) {
	tree = ftree.New()
	for _, child := range root.Children {
		_, count, err := elementToNode(tree, nil, child, pctx)
		if err != nil {
			return nil, 0, err
		}
		strippedCount += count
	}
	return tree, strippedCount, nil
}

func elementToNode(tree *ftree.Tree, parent *ftree.Node, el filter.Element, pctx pathContext) (*ftree.Node, int, error) {
	f, ok := newBlank(el.Tag)
	if !ok {
		return nil, 0, fmt.Errorf("unrecognized filter type %q", el.Tag)
	}
	if pctx.untrusted && f.CanBeHazardous() {
		return nil, 1, nil
	}

	propType := make(map[string]filter.PropType)
	for _, g := range f.Properties() {
		for _, p := range g.Props {
			propType[p.Key] = p.Type
		}
	}

	structured := filter.NewElement(el.Tag, nil)
	var childFilters []filter.Element
	for _, c := range el.Children {
		switch {
		case c.Tag == "userstring":
			f.SetUserLabel(c.Attrs["value"])
		case c.Tag == "param":
			key, value := c.Attrs["key"], c.Attrs["value"]
			if t, known := propType[key]; known && (t == filter.PropFile || t == filter.PropDir) {
				value = pctx.resolve(value)
			}
			if ok, _ := f.SetProperty(key, value); !ok {
				return nil, 0, fmt.Errorf("filter %s: invalid value for parameter %q", el.Tag, key)
			}
		default:
			if _, isFilterChild := newBlank(c.Tag); isFilterChild {
				childFilters = append(childFilters, c)
			} else {
				structured.Children = append(structured.Children, c)
			}
		}
	}
	if err := f.ReadState(structured); err != nil {
		return nil, 0, fmt.Errorf("filter %s: %w", el.Tag, err)
	}

	n := tree.AddChild(parent, f)
	var stripped int
	for _, c := range childFilters {
		_, count, err := elementToNode(tree, n, c, pctx)
		if err != nil {
			return nil, 0, err
		}
		stripped += count
	}
	return n, stripped, nil
}
