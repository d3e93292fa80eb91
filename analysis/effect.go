package analysis

// Effect is a named post-processing pass applied to the rendered scene
// after the filter tree's outputs are drawn (spec §3: "a list of
// post-processing effects"). Parameters follow the same flat
// string-keyed shape as filter.Property so effects can be persisted
// and edited the same way filters are.
type Effect struct {
	Name    string
	Enabled bool
	Params  map[string]string
}

// NewEffect returns an enabled Effect with an empty parameter set.
func NewEffect(name string) Effect {
	return Effect{Name: name, Enabled: true, Params: make(map[string]string)}
}
