// Package analysis implements AnalysisState (spec §3): the top-level
// object a saved document represents, wrapping a TreeState with the
// view- and session-level state that sits alongside it — cameras,
// stashed subtrees, effects, background colour, axis visibility, plot
// visibility restores, animation tracks, and the working-directory /
// modification-level bookkeeping the state file format (spec §6)
// needs.
package analysis

import (
	"fmt"

	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ftree"
	"github.com/threedepict/tomo/treestate"
)

// Handle re-exports treestate.Handle so callers of this package need
// not import treestate directly for the common case.
type Handle = treestate.Handle

// AxisMode selects how the world axes are drawn.
type AxisMode int

// The axis visibility modes.
const (
	AxisHidden AxisMode = iota
	AxisOrigin
	AxisCorner
)

// PlotVisibilityKey names one (filter, plot) pair whose visibility
// should be restored across refreshes (spec §3: "a set of (filter
// path, plot id) pairs to restore plot visibility across refreshes").
type PlotVisibilityKey struct {
	Filter Handle
	PlotID int
}

// AnalysisState is the full session/document state: a TreeState plus
// everything a saved state file needs beyond the filter tree itself.
type AnalysisState struct {
	treeState *treestate.TreeState

	stashes     map[string]*ftree.Tree
	cameras     []Camera
	activeCam   int
	effects     []Effect
	background  fstream.RGBA
	axisMode    AxisMode
	plotVisible map[PlotVisibilityKey]bool
	tracks      []*AnimationTrack

	workDir       string
	relativePaths bool

	modLevel ModLevel
}

// New returns an AnalysisState wrapping a fresh, empty TreeState, with
// one default camera active and a black background (spec §3: "≥1
// camera always exists").
func New() *AnalysisState {
	return &AnalysisState{
		treeState:   treestate.New(),
		stashes:     make(map[string]*ftree.Tree),
		cameras:     []Camera{NewCamera("default")},
		activeCam:   0,
		background:  fstream.RGBA{R: 0, G: 0, B: 0, A: 1},
		axisMode:    AxisOrigin,
		plotVisible: make(map[PlotVisibilityKey]bool),
	}
}

// TreeState returns the wrapped filter-tree mutation API.
func (a *AnalysisState) TreeState() *treestate.TreeState { return a.treeState }

// ModLevel returns the highest modification level reached since the
// last save.
func (a *AnalysisState) ModLevel() ModLevel { return a.modLevel }

// MarkModified raises the modification level to at least level; it
// never lowers it (spec §3: "the highest level reached since last
// save wins").
func (a *AnalysisState) MarkModified(level ModLevel) { a.modLevel = a.modLevel.raise(level) }

// MarkSaved resets the modification level to none, called after a
// successful save.
func (a *AnalysisState) MarkSaved() { a.modLevel = ModNone }

// WorkDir and RelativePaths report the directory external file paths
// (ion loads, range files) are resolved against, and whether the state
// file should store those paths relative to it (spec §3, §6).
func (a *AnalysisState) WorkDir() string       { return a.workDir }
func (a *AnalysisState) RelativePaths() bool   { return a.relativePaths }

// SetWorkDir updates the working directory; this is an ancillary
// change (it doesn't touch tree data) but still marks the state
// modified, since it changes how the next save resolves paths.
func (a *AnalysisState) SetWorkDir(dir string) {
	if dir == a.workDir {
		return
	}
	a.workDir = dir
	a.MarkModified(ModAncillary)
}

// SetRelativePaths toggles whether external paths are stored relative
// to WorkDir.
func (a *AnalysisState) SetRelativePaths(rel bool) {
	if rel == a.relativePaths {
		return
	}
	a.relativePaths = rel
	a.MarkModified(ModAncillary)
}

// Background returns the current background colour.
func (a *AnalysisState) Background() fstream.RGBA { return a.background }

// SetBackground sets the background colour, a view-level (non-data)
// change.
func (a *AnalysisState) SetBackground(c fstream.RGBA) {
	if c == a.background {
		return
	}
	a.background = c
	a.MarkModified(ModView)
}

// AxisMode returns the current world-axis visibility mode.
func (a *AnalysisState) AxisMode() AxisMode { return a.axisMode }

// SetAxisMode sets the world-axis visibility mode.
func (a *AnalysisState) SetAxisMode(m AxisMode) {
	if m == a.axisMode {
		return
	}
	a.axisMode = m
	a.MarkModified(ModView)
}

// Cameras returns every camera in the list, in order.
func (a *AnalysisState) Cameras() []Camera { return a.cameras }

// ActiveCamera returns the currently active camera.
func (a *AnalysisState) ActiveCamera() Camera { return a.cameras[a.activeCam] }

// ActiveCameraIndex returns the index of the active camera.
func (a *AnalysisState) ActiveCameraIndex() int { return a.activeCam }

// AddCamera appends c to the camera list and returns its index.
func (a *AnalysisState) AddCamera(c Camera) int {
	a.cameras = append(a.cameras, c)
	a.MarkModified(ModView)
	return len(a.cameras) - 1
}

// RemoveCamera removes the camera at index i. It is rejected if i is
// the only remaining camera, since AnalysisState always keeps at
// least one (spec §3).
func (a *AnalysisState) RemoveCamera(i int) error {
	if len(a.cameras) <= 1 {
		return fmt.Errorf("analysis: cannot remove the last camera")
	}
	if i < 0 || i >= len(a.cameras) {
		return fmt.Errorf("analysis: camera index %d out of range", i)
	}
	a.cameras = append(a.cameras[:i], a.cameras[i+1:]...)
	switch {
	case a.activeCam == i:
		a.activeCam = 0
	case a.activeCam > i:
		a.activeCam--
	}
	a.MarkModified(ModView)
	return nil
}

// SetActiveCamera selects the active camera by index.
func (a *AnalysisState) SetActiveCamera(i int) error {
	if i < 0 || i >= len(a.cameras) {
		return fmt.Errorf("analysis: camera index %d out of range", i)
	}
	a.activeCam = i
	a.MarkModified(ModView)
	return nil
}

// ReplaceCameras installs cs wholesale with active selected by index,
// used by statefile.Load to restore the camera list a document
// describes. It is rejected if cs is empty, since AnalysisState always
// keeps at least one camera (spec §3).
func (a *AnalysisState) ReplaceCameras(cs []Camera, active int) error {
	if len(cs) == 0 {
		return fmt.Errorf("analysis: camera list must not be empty")
	}
	if active < 0 || active >= len(cs) {
		return fmt.Errorf("analysis: camera index %d out of range", active)
	}
	a.cameras = cs
	a.activeCam = active
	a.MarkModified(ModView)
	return nil
}

// Effects returns the post-processing effect list, in apply order.
func (a *AnalysisState) Effects() []Effect { return a.effects }

// AddEffect appends e to the effect chain.
func (a *AnalysisState) AddEffect(e Effect) {
	a.effects = append(a.effects, e)
	a.MarkModified(ModAncillary)
}

// RemoveEffect removes the effect at index i.
func (a *AnalysisState) RemoveEffect(i int) error {
	if i < 0 || i >= len(a.effects) {
		return fmt.Errorf("analysis: effect index %d out of range", i)
	}
	a.effects = append(a.effects[:i], a.effects[i+1:]...)
	a.MarkModified(ModAncillary)
	return nil
}

// SetPlotVisible records whether the plot named by key should be shown,
// surviving across refreshes that rebuild the underlying Plot1D/Plot2D
// streams (spec §3).
func (a *AnalysisState) SetPlotVisible(key PlotVisibilityKey, visible bool) {
	if visible {
		a.plotVisible[key] = true
	} else {
		delete(a.plotVisible, key)
	}
	a.MarkModified(ModView)
}

// PlotVisible reports whether key was last marked visible.
func (a *AnalysisState) PlotVisible(key PlotVisibilityKey) bool {
	return a.plotVisible[key]
}

// PlotVisibilityKeys returns every key currently marked visible, for
// state-file serialization.
func (a *AnalysisState) PlotVisibilityKeys() []PlotVisibilityKey {
	keys := make([]PlotVisibilityKey, 0, len(a.plotVisible))
	for k := range a.plotVisible {
		keys = append(keys, k)
	}
	return keys
}

// AnimationTracks returns every animation track.
func (a *AnalysisState) AnimationTracks() []*AnimationTrack { return a.tracks }

// AddAnimationTrack appends a new, empty track for path and returns it.
func (a *AnalysisState) AddAnimationTrack(path PropertyPath) *AnimationTrack {
	tr := &AnimationTrack{Path: path}
	a.tracks = append(a.tracks, tr)
	a.MarkModified(ModAncillary)
	return tr
}

// Stash stores a deep copy of the subtree rooted at id under name
// (spec §3: "named 'stashed' subtrees (unique names within the
// state)"). It fails if name is already used.
func (a *AnalysisState) Stash(name string, id Handle) error {
	if _, exists := a.stashes[name]; exists {
		return fmt.Errorf("analysis: stash name %q already in use", name)
	}
	n, ok := a.treeState.Resolve(id)
	if !ok {
		return fmt.Errorf("analysis: unknown handle %d", id)
	}
	tmp := ftree.New()
	tmp.CopySubtree(n, nil)
	a.stashes[name] = tmp
	a.MarkModified(ModData)
	return nil
}

// Unstash copies the subtree stored under name back into the live
// tree as a child of dstParent (or a root if the zero Handle), and
// returns its new handle. The stash is left intact so it can be
// reused.
func (a *AnalysisState) Unstash(name string, dstParent Handle) (Handle, error) {
	stashed, ok := a.stashes[name]
	if !ok || len(stashed.Roots) == 0 {
		return 0, fmt.Errorf("analysis: no stash named %q", name)
	}
	var dstNode *ftree.Node
	if dstParent != 0 {
		dstNode, ok = a.treeState.Resolve(dstParent)
		if !ok {
			return 0, fmt.Errorf("analysis: unknown handle %d", dstParent)
		}
	}
	clone := a.treeState.Tree()
	attached := clone.CopySubtree(stashed.Roots[0], dstNode)
	a.treeState.RebuildHandles()
	a.MarkModified(ModData)
	h, _ := a.treeState.HandleOf(attached)
	return h, nil
}

// RemoveStash deletes the named stash.
func (a *AnalysisState) RemoveStash(name string) error {
	if _, ok := a.stashes[name]; !ok {
		return fmt.Errorf("analysis: no stash named %q", name)
	}
	delete(a.stashes, name)
	a.MarkModified(ModData)
	return nil
}

// StashNames returns every stash name, for state-file serialization.
func (a *AnalysisState) StashNames() []string {
	names := make([]string, 0, len(a.stashes))
	for n := range a.stashes {
		names = append(names, n)
	}
	return names
}

// StashTree returns the stashed tree for name, for state-file
// serialization.
func (a *AnalysisState) StashTree(name string) (*ftree.Tree, bool) {
	t, ok := a.stashes[name]
	return t, ok
}

// PutStashTree installs tree directly under name, used by the
// state-file loader to repopulate stashes without going through
// TreeState handles.
func (a *AnalysisState) PutStashTree(name string, tree *ftree.Tree) {
	a.stashes[name] = tree
}
