package filter

import "sync/atomic"

// ProgressData is a snapshot of refresh progress, updated by whichever
// filter is currently running and readable by observers without
// blocking the refresh (spec §4.3).
type ProgressData struct {
	CurrentFilter string
	FilterPercent float64
	Step          int
	MaxStep       int
	StepName      string
	TotalFilters  int
	TotalPercent  float64
}

// Progress is a shared, concurrency-safe progress monitor. A single
// instance is created per refresh and handed to every filter in turn.
type Progress struct {
	data atomic.Pointer[ProgressData]
}

// NewProgress returns a zeroed Progress monitor.
func NewProgress() *Progress {
	p := &Progress{}
	p.data.Store(&ProgressData{})
	return p
}

// Snapshot returns the current progress data. Safe to call concurrently
// with Update.
func (p *Progress) Snapshot() ProgressData {
	return *p.data.Load()
}

// Update replaces the progress data wholesale. Filters call this (or
// the narrower Step helper) at coarse intervals during Refresh.
func (p *Progress) Update(d ProgressData) {
	p.data.Store(&d)
}

// Step updates only the step/of-max/name fields, preserving the rest of
// the current snapshot.
func (p *Progress) Step(step, maxStep int, name string) {
	d := p.Snapshot()
	d.Step, d.MaxStep, d.StepName = step, maxStep, name
	if maxStep > 0 {
		d.FilterPercent = 100 * float64(step) / float64(maxStep)
	}
	p.Update(d)
}

// AbortFlag is the process-wide, sticky-for-one-refresh cancellation
// flag described in spec §5. It is installed by the engine before a
// refresh and cleared at the start of the next one; a filter must check
// it at bounded intervals (spec §5's suspension points).
type AbortFlag struct {
	flag atomic.Bool
}

// Set requests cancellation of the in-progress refresh.
func (a *AbortFlag) Set() { a.flag.Store(true) }

// Clear resets the flag, done by the engine at the start of a refresh.
func (a *AbortFlag) Clear() { a.flag.Store(false) }

// IsSet reports whether cancellation has been requested.
func (a *AbortFlag) IsSet() bool { return a.flag.Load() }

// CheckInterval is how many loop iterations a filter should process
// between AbortFlag checks in a tight accumulation loop (spec §5:
// "inside long loops (every >= 1000 items)").
const CheckInterval = 1000
