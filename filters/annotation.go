package filters

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

// annotationFuncs are the scalar functions available to an Annotation
// expression beyond govaluate's built-in arithmetic, the same
// exp/log/log10 set the teacher's formula outputter exposes (plus sqrt
// and abs, which point-cloud distance formulas need constantly).
var annotationFuncs = map[string]govaluate.ExpressionFunction{
	"sqrt": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("filters: got %d arguments for function 'sqrt', want 1", len(arg))
		}
		return math.Sqrt(arg[0].(float64)), nil
	},
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("filters: got %d arguments for function 'exp', want 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
	"log": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("filters: got %d arguments for function 'log', want 1", len(arg))
		}
		return math.Log(arg[0].(float64)), nil
	},
	"log10": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("filters: got %d arguments for function 'log10', want 1", len(arg))
		}
		return math.Log10(arg[0].(float64)), nil
	},
	"abs": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("filters: got %d arguments for function 'abs', want 1", len(arg))
		}
		return math.Abs(arg[0].(float64)), nil
	},
}

// Annotation recomputes each ion's scalar value from a user-supplied
// expression over x, y, z and the existing value (spec §2's "annotation/
// formula" stock filter). Expressions are evaluated with govaluate
// rather than a hand-rolled parser.
type Annotation struct {
	filter.Base
	expr       string
	compiled   *govaluate.EvaluableExpression
	outputName string
}

// NewAnnotation returns an Annotation filter that passes the existing
// value through unchanged.
func NewAnnotation() *Annotation {
	a := &Annotation{Base: filter.NewBase(), expr: "value", outputName: "annotated"}
	a.compiled, _ = govaluate.NewEvaluableExpressionWithFunctions(a.expr, annotationFuncs)
	return a
}

func (f *Annotation) TypeID() filter.TypeID { return filter.TypeAnnotation }
func (f *Annotation) TypeString() string    { return "Annotation" }

func (f *Annotation) CloneUncached() filter.Filter {
	c := &Annotation{Base: filter.NewBase(), expr: f.expr, outputName: f.outputName}
	c.compiled, _ = govaluate.NewEvaluableExpressionWithFunctions(c.expr, annotationFuncs)
	return c
}

func (f *Annotation) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Annotation",
		Props: []filter.Property{
			{Key: "expr", Name: "Expression", Type: filter.PropString, Value: f.expr,
				Help: "Scalar expression over x, y, z and value, e.g. \"sqrt(x*x+y*y)\"."},
			{Key: "output-name", Name: "Output name", Type: filter.PropString, Value: f.outputName,
				Help: "Label attached to the recomputed scalar value."},
		},
	}}
}

func (f *Annotation) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "expr":
		compiled, err := govaluate.NewEvaluableExpressionWithFunctions(value, annotationFuncs)
		if err != nil {
			return false, false
		}
		if value == f.expr {
			return true, false
		}
		f.expr, f.compiled = value, compiled
		f.ClearCache()
		return true, true
	case "output-name":
		if value == f.outputName {
			return true, false
		}
		f.outputName = value
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Annotation) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Annotation) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Annotation) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *Annotation) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	if f.compiled == nil {
		return nil, filter.IOFailure
	}
	out := make([]ion.Hit, len(in.Hits))
	params := make(map[string]interface{}, 4)
	for i, h := range in.Hits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(in.Hits), "annotating")
		}
		params["x"], params["y"], params["z"], params["value"] = h.Pos.X, h.Pos.Y, h.Pos.Z, h.Value
		result, err := f.compiled.Evaluate(params)
		if err != nil {
			return nil, filter.InvalidGeometry
		}
		v, ok := result.(float64)
		if !ok {
			return nil, filter.InvalidGeometry
		}
		out[i] = ion.Hit{Pos: h.Pos, Value: v}
	}
	res := fstream.NewIons(fstream.NoParent, out)
	res.Colour, res.PointSize, res.ValueName = in.Colour, in.PointSize, f.outputName
	outputs := []fstream.Stream{res}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
