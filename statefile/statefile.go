// Package statefile implements the on-disk XML state file format
// (spec §6): serializing and restoring an analysis.AnalysisState,
// including its filter tree, cameras, effects, stashes, and view
// settings. The generic filtertree encoding follows the struct-tag
// driven encoding/xml style the teacher repo's emissions/slca/greet
// reader uses, extended with xmlNode's manual Marshaler/Unmarshaler
// pair to cope with filtertree's data-dependent element tags.
package statefile

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"

	"github.com/threedepict/tomo/analysis"
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/ftree"
)

// Version is the state file schema version this package writes.
const Version = "1.0.0"

// document mirrors the top-level XML shape spec §6 describes.
type document struct {
	XMLName  xml.Name  `xml:"state"`
	Writer   writer    `xml:"writer"`
	BackCol  backcol   `xml:"backcolour"`
	ShowAxis showaxis  `xml:"showaxis"`
	Plots    plotstat  `xml:"plotstatus"`
	RelPaths *relpaths `xml:"userelativepaths,omitempty"`
	Tree     xmlNode   `xml:"filtertree"`
	Cameras  cameras   `xml:"cameras"`
	Stashes  *stashes  `xml:"stashedfilters,omitempty"`
}

type writer struct {
	Version string `xml:"version,attr"`
}

type backcol struct {
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
}

type showaxis struct {
	Value int `xml:"value,attr"`
}

type enableplot struct {
	Filter string `xml:"filter,attr"`
	ID     int    `xml:"id,attr"`
}

type plotstat struct {
	Legend      bool         `xml:"legend,attr"`
	EnablePlots []enableplot `xml:"enableplot"`
}

type relpaths struct {
	OrigWorkDir string `xml:"origworkdir,attr"`
}

type cameraElem struct {
	Name       string  `xml:"name,attr"`
	EyeX       float64 `xml:"eyex,attr"`
	EyeY       float64 `xml:"eyey,attr"`
	EyeZ       float64 `xml:"eyez,attr"`
	TargetX    float64 `xml:"targetx,attr"`
	TargetY    float64 `xml:"targety,attr"`
	TargetZ    float64 `xml:"targetz,attr"`
	UpX        float64 `xml:"upx,attr"`
	UpY        float64 `xml:"upy,attr"`
	UpZ        float64 `xml:"upz,attr"`
	FovDegrees float64 `xml:"fov,attr"`
	Near       float64 `xml:"near,attr"`
	Far        float64 `xml:"far,attr"`
}

type cameras struct {
	Active  activeCam    `xml:"active"`
	Cameras []cameraElem `xml:"persplookat"`
}

type activeCam struct {
	Value int `xml:"value,attr"`
}

type stash struct {
	Name string  `xml:"name,attr"`
	Tree xmlNode `xml:"filtertree"`
}

type stashes struct {
	Stashes []stash `xml:"stash"`
}

// Write serializes as into w. Stashed subtrees and the filter tree are
// stored as whole clones, independent of the live handle map, so
// writing never mutates as.
func Write(w io.Writer, as *analysis.AnalysisState) error {
	doc := document{
		Writer: writer{Version: Version},
		BackCol: backcol{
			R: as.Background().R, G: as.Background().G, B: as.Background().B,
		},
		ShowAxis: showaxis{Value: int(as.AxisMode())},
		Plots:    plotstatusOf(as),
		Tree:     elementToXMLNode(treeToElement(as.TreeState().Tree(), as.WorkDir(), as.RelativePaths())),
		Cameras:  camerasOf(as),
	}
	if as.RelativePaths() {
		doc.RelPaths = &relpaths{OrigWorkDir: as.WorkDir()}
	}
	if names := as.StashNames(); len(names) > 0 {
		st := &stashes{}
		for _, name := range names {
			t, _ := as.StashTree(name)
			st.Stashes = append(st.Stashes, stash{Name: name, Tree: elementToXMLNode(treeToElement(t, as.WorkDir(), as.RelativePaths()))})
		}
		doc.Stashes = st
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("statefile.Write: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("statefile.Write: %w", err)
	}
	return nil
}

func plotstatusOf(as *analysis.AnalysisState) plotstat {
	ps := plotstat{Legend: true}
	// Number nodes the way RebuildHandles does on load, since live
	// handles need not follow depth-first order.
	dfs := make(map[*ftree.Node]analysis.Handle)
	as.TreeState().Tree().Walk(func(n *ftree.Node) { dfs[n] = analysis.Handle(len(dfs) + 1) })
	for _, k := range as.PlotVisibilityKeys() {
		n, ok := as.TreeState().Resolve(k.Filter)
		if !ok {
			continue
		}
		ps.EnablePlots = append(ps.EnablePlots, enableplot{Filter: handlePath(dfs[n]), ID: k.PlotID})
	}
	return ps
}

func camerasOf(as *analysis.AnalysisState) cameras {
	cs := cameras{Active: activeCam{Value: as.ActiveCameraIndex()}}
	for _, c := range as.Cameras() {
		cs.Cameras = append(cs.Cameras, cameraElem{
			Name: c.Name,
			EyeX: c.Eye.X, EyeY: c.Eye.Y, EyeZ: c.Eye.Z,
			TargetX: c.Target.X, TargetY: c.Target.Y, TargetZ: c.Target.Z,
			UpX: c.Up.X, UpY: c.Up.Y, UpZ: c.Up.Z,
			FovDegrees: c.FovDegrees, Near: c.Near, Far: c.Far,
		})
	}
	return cs
}

// handlePath renders a Handle as the textual filter-path spec §6's
// <enableplot filter=/> keys on. Handles are process-local integers;
// a textual path keyed by handle number round-trips within one load
// cycle, which is all plot-visibility restoration needs since handles
// are rebuilt fresh on every load (see ReadOptions, RebuildHandles).
func handlePath(h analysis.Handle) string {
	return fmt.Sprintf("#%d", h)
}

// treeToElement converts a ftree.Tree into the generic Element shape
// WriteState's children attach to, by calling each filter's own
// WriteState and merging in its Properties as element-per-parameter
// children plus a <userstring/> child (spec §6). workDir/relative
// govern how PropFile/PropDir parameters are stored (spec §6: "stored
// either absolute (default) or relative to the state file").
func treeToElement(t *ftree.Tree, workDir string, relative bool) filter.Element {
	root := filter.NewElement("filtertree", nil)
	for _, n := range t.Roots {
		root.Children = append(root.Children, nodeToElement(n, workDir, relative))
	}
	return root
}

func nodeToElement(n *ftree.Node, workDir string, relative bool) filter.Element {
	el := filter.NewElement(n.Filter.TypeString(), nil)
	el.Child("userstring", map[string]string{"value": n.Filter.UserLabel()})
	for _, g := range n.Filter.Properties() {
		for _, p := range g.Props {
			value := p.Value
			if relative && (p.Type == filter.PropFile || p.Type == filter.PropDir) && value != "" {
				value = relPath(workDir, value)
			}
			el.Child("param", map[string]string{"key": p.Key, "value": value})
		}
	}
	extra := n.Filter.WriteState()
	el.Children = append(el.Children, extra.Children...)
	for _, c := range n.Children {
		el.Children = append(el.Children, nodeToElement(c, workDir, relative))
	}
	return el
}

// relPath returns path expressed relative to base, falling back to
// path unchanged if it cannot be made relative (e.g. a different
// drive on Windows, or an empty base).
func relPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
