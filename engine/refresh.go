// Package engine implements the refresh engine (spec §4.3): the
// depth-first walk that propagates streams through a filter tree,
// honoring per-filter caches and cooperative cancellation.
package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ftree"
)

// Result is the outcome of a tree-wide refresh: each root filter's own
// outputs (one slice per root, in root order) plus the final progress
// snapshot. Outputs of descendant filters are not collected here.
type Result struct {
	RootOutputs [][]fstream.Stream
	Progress    filter.ProgressData
}

// Engine walks a ftree.Tree, calling each filter's Refresh and
// assembling effective inputs per spec §4.3. Engine holds no tree state
// of its own; TreeState.Tree() is passed in per call so the same Engine
// can service multiple analyses.
type Engine struct {
	Log *logrus.Entry
}

// New returns an Engine with a package-default logger field.
func New() *Engine {
	return &Engine{Log: logrus.WithField("component", "engine")}
}

// filterError pairs a filter's identity with the code it returned, per
// spec §7 ("the engine attaches the filter's identity and forwards to
// the caller").
type filterError struct {
	FilterType string
	Code       filter.ErrCode
}

func (e *filterError) Error() string {
	return fmt.Sprintf("engine: filter %s: %s", e.FilterType, e.Code)
}

// Refresh walks tree depth-first, running every filter whose cache is
// not valid for its current effective input, and returns the outputs at
// every root. abort is checked by the engine between filters in
// addition to each filter's own internal checks; progress is shared
// across the whole walk.
func (e *Engine) Refresh(tree *ftree.Tree, progress *filter.Progress, abort *filter.AbortFlag) (*Result, error) {
	abort.Clear()
	total := countNodes(tree)
	counter := 0

	res := &Result{}
	for _, root := range tree.Roots {
		out, err := e.refreshNode(root, nil, progress, abort, &counter, total)
		if err != nil {
			return nil, err
		}
		res.RootOutputs = append(res.RootOutputs, out)
	}
	res.Progress = progress.Snapshot()
	return res, nil
}

func countNodes(tree *ftree.Tree) int {
	n := 0
	tree.Walk(func(*ftree.Node) { n++ })
	return n
}

// refreshNode computes n's effective input from parentOutputs, runs n
// (or reuses its cache), appends unblocked pass-throughs, and recurses
// into n's children with n's outputs as their input.
func (e *Engine) refreshNode(n *ftree.Node, parentOutputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag, counter *int, total int) ([]fstream.Stream, error) {
	if abort.IsSet() {
		return nil, &filterError{FilterType: n.Filter.TypeString(), Code: filter.Aborted}
	}

	*counter++
	progress.Update(filter.ProgressData{
		CurrentFilter: n.Filter.TypeString(),
		TotalFilters:  total,
		TotalPercent:  100 * float64(*counter) / float64(total),
	})
	e.Log.WithField("filter", n.Filter.TypeString()).Debug("refreshing")

	effectiveInput := effectiveInputOf(n.Filter, parentOutputs)

	var outputs []fstream.Stream
	if n.Filter.CacheValid() && n.Filter.CachedInputsMatch(effectiveInput) {
		outputs = n.Filter.CachedOutputs()
	} else {
		out, code := n.Filter.Refresh(effectiveInput, progress, abort)
		if code == filter.Aborted {
			releaseTransferred(out)
			return nil, &filterError{FilterType: n.Filter.TypeString(), Code: filter.Aborted}
		}
		if code != filter.OK {
			e.Log.WithFields(logrus.Fields{"filter": n.Filter.TypeString(), "code": code}).Warn("refresh failed")
			return nil, &filterError{FilterType: n.Filter.TypeString(), Code: code}
		}
		outputs = out
	}

	outputs = appendUnblockedPassthrough(n.Filter, effectiveInput, outputs)

	for _, child := range n.Children {
		if _, err := e.refreshNode(child, outputs, progress, abort, counter, total); err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// effectiveInputOf applies F's block mask inversion to parentOutputs:
// everything not blocked propagates by default (spec §4.3 step 1).
func effectiveInputOf(f filter.Filter, parentOutputs []fstream.Stream) []fstream.Stream {
	block := f.BlockMask()
	var in []fstream.Stream
	for _, s := range parentOutputs {
		if !block.Has(s.Kind()) {
			in = append(in, s)
		}
	}
	return in
}

// appendUnblockedPassthrough appends every stream from effectiveInput
// whose kind F does not block, unless F already emitted a stream of
// that kind (spec §4.3 step 3).
func appendUnblockedPassthrough(f filter.Filter, effectiveInput, outputs []fstream.Stream) []fstream.Stream {
	block := f.BlockMask()
	have := make(map[fstream.Kind]bool)
	for _, s := range outputs {
		have[s.Kind()] = true
	}
	for _, s := range effectiveInput {
		if block.Has(s.Kind()) || have[s.Kind()] {
			continue
		}
		outputs = append(outputs, s)
	}
	return outputs
}

// releaseTransferred releases every stream in outputs that carries
// Transferred ownership, per spec §5's "no partial outputs are kept" on
// abort.
func releaseTransferred(outputs []fstream.Stream) {
	for _, s := range outputs {
		if s.Ownership() == fstream.Transferred {
			s.Release()
		}
	}
}
