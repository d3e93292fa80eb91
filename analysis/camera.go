package analysis

import "github.com/threedepict/tomo/geom"

// Camera is one viewpoint onto an AnalysisState's rendered output (spec
// §3: "a list of cameras with an active index"). The eye/target/up
// layout follows the viewport/transform split the retrieval pack's 2D
// scene-graph camera uses (Viewport + view matrix), generalized here to
// a free 3D look-at camera since APT reconstructions are volumetric.
type Camera struct {
	Name        string
	Eye, Target geom.Point3D
	Up          geom.Point3D
	FovDegrees  float64
	Near, Far   float64
}

// NewCamera returns a default camera looking at the origin from
// (0,0,10) with a 45 degree field of view.
func NewCamera(name string) Camera {
	return Camera{
		Name:       name,
		Eye:        geom.Pt(0, 0, 10),
		Target:     geom.Pt(0, 0, 0),
		Up:         geom.Pt(0, 1, 0),
		FovDegrees: 45,
		Near:       0.01,
		Far:        1000,
	}
}
