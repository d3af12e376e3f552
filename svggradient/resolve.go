package svggradient

import (
	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// maxChainDepth bounds the length of href chains.
const maxChainDepth = 32

// Resolver resolves the gradients of one registry.
// Each id is resolved at most once, and the result is then shared.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	registry Registry
	viewport *svgunit.Viewport

	memo map[string]*Resolved // nil entries mean no paint
}

// NewResolver returns a resolver for `registry`. `vp`, which may be nil,
// is used by userSpaceOnUse percentages.
func NewResolver(registry Registry, vp *svgunit.Viewport) *Resolver {
	return &Resolver{registry: registry, viewport: vp, memo: make(map[string]*Resolved)}
}

// Resolve returns the gradient `id`, or false if it resolves to no paint.
func (r *Resolver) Resolve(id string) (*Resolved, bool) {
	if res, done := r.memo[id]; done {
		return res, res != nil
	}
	res := r.resolve(id)
	r.memo[id] = res
	return res, res != nil
}

// merge fills the fields of `spec` not set locally with the ones of `base`.
func (spec *Spec) merge(base *Spec) {
	if spec.Stops == nil {
		spec.Stops = base.Stops
	}
	if spec.Transform == nil {
		spec.Transform = base.Transform
	}
	if spec.Spread == nil {
		spec.Spread = base.Spread
	}
	if spec.Units == nil {
		spec.Units = base.Units
	}
	// coordinates only make sense between gradients of the same kind
	if base.Kind != spec.Kind {
		return
	}
	for name, v := range base.Coords {
		if _, has := spec.Coords[name]; has {
			continue
		}
		if spec.Coords == nil {
			spec.Coords = make(map[string]string)
		}
		spec.Coords[name] = v
	}
}

// flatten applies the href chain of `id`. A chain looping back to `id`
// is discarded, so that the gradient uses its local data only. A loop
// further down the chain stops the walk.
func (r *Resolver) flatten(id string) (Spec, bool) {
	spec, ok := r.registry[id]
	if !ok {
		return Spec{}, false
	}
	out := *spec
	out.Coords = make(map[string]string, len(spec.Coords))
	for k, v := range spec.Coords {
		out.Coords[k] = v
	}

	var chain []*Spec
	visited := map[string]bool{id: true}
	for current, depth := spec, 0; current.Href != ""; depth++ {
		ref := current.Href
		if ref == id {
			logx.Logger().Debug("svggradient: cyclic href, using local data", "id", id)
			return out, true
		}
		if visited[ref] {
			logx.Logger().Debug("svggradient: cyclic href", "id", id, "href", ref)
			break
		}
		if depth >= maxChainDepth {
			logx.Logger().Debug("svggradient: href chain too long", "id", id)
			break
		}
		base, ok := r.registry[ref]
		if !ok {
			logx.Logger().Debug("svggradient: unknown href", "id", id, "href", ref)
			break
		}
		visited[ref] = true
		chain = append(chain, base)
		current = base
	}
	for _, base := range chain {
		out.merge(base)
	}
	return out, true
}

func (r *Resolver) resolve(id string) *Resolved {
	spec, ok := r.flatten(id)
	if !ok {
		logx.Logger().Debug("svggradient: unknown gradient", "id", id)
		return nil
	}
	if len(spec.Stops) == 0 {
		logx.Logger().Debug("svggradient: gradient without stops", "id", id)
		return nil
	}
	out := &Resolved{
		ID:    id,
		Kind:  spec.Kind,
		Stops: spec.Stops,
	}
	if spec.Transform != nil {
		out.Transform = *spec.Transform
	}
	if spec.Spread != nil {
		out.Spread = *spec.Spread
	}
	if spec.Units != nil {
		out.Units = *spec.Units
	}
	out.Points = r.points(spec.Kind, spec.Coords, out.Units)
	return out
}

// unitBox maps bounding box fractions to themselves
var unitBox = svgunit.Bounds{W: 1, H: 1}

func (r *Resolver) coord(coords map[string]string, name, def string, axis svgunit.Axis, units Units) float64 {
	text, ok := coords[name]
	if !ok {
		text = def
	}
	if units == UserSpaceOnUse {
		return svgunit.Resolve(text, axis, r.viewport, nil)
	}
	return svgunit.Resolve(text, axis, nil, &unitBox)
}

func (r *Resolver) points(kind Kind, coords map[string]string, units Units) (out [5]float64) {
	if kind == Linear {
		out[0] = r.coord(coords, "x1", "0%", svgunit.Width, units)
		out[1] = r.coord(coords, "y1", "0%", svgunit.Height, units)
		out[2] = r.coord(coords, "x2", "100%", svgunit.Width, units)
		out[3] = r.coord(coords, "y2", "0%", svgunit.Height, units)
		return out
	}
	cx, cy := "50%", "50%"
	if v, ok := coords["cx"]; ok {
		cx = v
	}
	if v, ok := coords["cy"]; ok {
		cy = v
	}
	out[0] = r.coord(coords, "cx", cx, svgunit.Width, units)
	out[1] = r.coord(coords, "cy", cy, svgunit.Height, units)
	// the focus defaults to the center
	out[2] = r.coord(coords, "fx", cx, svgunit.Width, units)
	out[3] = r.coord(coords, "fy", cy, svgunit.Height, units)
	out[4] = r.coord(coords, "r", "50%", svgunit.Diagonal, units)
	return out
}
