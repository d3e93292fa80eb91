package filters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

// ExternalScript runs an external command, piping each ion's scalar
// value to its stdin (one per line) and reading back a replacement
// value per line from stdout. It is the one stock filter that executes
// external code, so CanBeHazardous reports true and a state file
// loaded from an untrusted source has this filter stripped before
// refresh (spec §4.1, §7).
type ExternalScript struct {
	filter.Base
	command string
	timeout time.Duration
}

// NewExternalScript returns an ExternalScript with no command set and a
// 30 second timeout.
func NewExternalScript() *ExternalScript {
	return &ExternalScript{Base: filter.NewBase(), timeout: 30 * time.Second}
}

func (f *ExternalScript) TypeID() filter.TypeID  { return filter.TypeExternalScript }
func (f *ExternalScript) TypeString() string     { return "ExternalScript" }
func (f *ExternalScript) CanBeHazardous() bool   { return true }

func (f *ExternalScript) CloneUncached() filter.Filter {
	return &ExternalScript{Base: filter.NewBase(), command: f.command, timeout: f.timeout}
}

func (f *ExternalScript) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Script",
		Props: []filter.Property{
			{Key: "command", Name: "Command", Type: filter.PropString, Value: f.command,
				Help: "Shell command run once per refresh; receives one value per line on stdin, must write one replacement value per line to stdout."},
			{Key: "timeout-seconds", Name: "Timeout (s)", Type: filter.PropReal, Value: f64s(f.timeout.Seconds()),
				Help: "Maximum time to wait for the command before treating it as a failure."},
		},
	}}
}

func (f *ExternalScript) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "command":
		if f.command == value {
			return true, false
		}
		f.command = value
		f.ClearCache()
		return true, true
	case "timeout-seconds":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		d := time.Duration(v * float64(time.Second))
		if d == f.timeout {
			return true, false
		}
		f.timeout = d
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *ExternalScript) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *ExternalScript) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *ExternalScript) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *ExternalScript) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	if f.command == "" {
		return nil, filter.InvalidGeometry
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	var stdin bytes.Buffer
	for _, h := range in.Hits {
		fmt.Fprintf(&stdin, "%g\n", h.Value)
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", f.command)
	cmd.Stdin = &stdin
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, filter.IOFailure
	}

	values, err := scanFloatLines(stdout.String())
	if err != nil || len(values) != len(in.Hits) {
		return nil, filter.InvalidGeometry
	}

	hits := make([]ion.Hit, len(in.Hits))
	for i, h := range in.Hits {
		hits[i] = ion.Hit{Pos: h.Pos, Value: values[i]}
	}
	out := fstream.NewIons(fstream.NoParent, hits)
	out.ValueName = in.ValueName
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

// scanFloatLines parses one float64 per non-empty line of s.
func scanFloatLines(s string) ([]float64, error) {
	var values []float64
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := parseFloat(line)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
