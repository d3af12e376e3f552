package svgfilter

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgunit"
)

var (
	errEmptyMerge       = errors.New("merge without input")
	errUnboundInputs    = errors.New("composite without any bound input")
	errUnknownPrimitive = errors.New("unsupported primitive parameters")
)

// GraphError reports filter wiring which can't be reduced to a chain
// of binary operations.
type GraphError struct {
	Filter string // id of the filter
	Effect int    // index of the faulty effect
	Err    error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("svgfilter: filter %q, effect %d: %s", e.Filter, e.Effect, e.Err)
}

func (e *GraphError) Unwrap() error { return e.Err }

// BindingKind is the source an input is bound to.
type BindingKind uint8

const (
	// BindNone is the previous result of the first effect : there is none,
	// and drivers use the filtered element.
	BindNone BindingKind = iota
	BindEffect
	BindSourceGraphic
	BindSourceAlpha
	BindBlend
)

func (k BindingKind) String() string {
	switch k {
	case BindNone:
		return "none"
	case BindEffect:
		return "effect"
	case BindSourceGraphic:
		return "SourceGraphic"
	case BindSourceAlpha:
		return "SourceAlpha"
	case BindBlend:
		return "blend"
	default:
		return "<unknown BindingKind>"
	}
}

// Binding is a resolved input.
type Binding struct {
	Kind BindingKind
	// Index is the index of the effect in Chain.Effects for BindEffect,
	// or of the blend in Chain.Blends for BindBlend.
	Index int
}

func (b Binding) String() string {
	switch b.Kind {
	case BindEffect:
		return fmt.Sprintf("effect[%d]", b.Index)
	case BindBlend:
		return fmt.Sprintf("blend[%d]", b.Index)
	default:
		return b.Kind.String()
	}
}

// Blend paints Top over Bottom.
type Blend struct {
	Bottom, Top Binding
}

// ResolvedEffect is an effect with its inputs bound.
type ResolvedEffect struct {
	Effect
	In Binding
	// In2 is the second input of Composite effects.
	In2 Binding
}

// Chain is a filter with its effects ordered and wired.
type Chain struct {
	ID      string
	Region  svgunit.Bounds
	Units   Units
	Effects []ResolvedEffect
	// Blends are the binary blends used by Merge effects.
	Blends []Blend
	// Output is the result of the last effect, or BindNone.
	Output Binding
}

// chainBuilder tracks the results available to the
// effect being resolved.
type chainBuilder struct {
	chain    Chain
	previous Binding
	named    map[string]Binding
}

// bind resolves `in`. Named results not produced earlier in the filter
// fall back to the previous result.
func (cb *chainBuilder) bind(in Input) Binding {
	switch in.Kind {
	case SourceGraphic:
		return Binding{Kind: BindSourceGraphic}
	case SourceAlpha:
		return Binding{Kind: BindSourceAlpha}
	case NamedResult:
		if b, ok := cb.named[in.Name]; ok {
			return b
		}
		logx.Logger().Debug("svgfilter: unknown or forward result, using previous", "filter", cb.chain.ID, "in", in.Name)
	}
	return cb.previous
}

// reduceMerge folds the inputs into left associative blends :
// ((i0, i1), i2), ...
func (cb *chainBuilder) reduceMerge(inputs []Input) Binding {
	acc := cb.bind(inputs[0])
	for _, in := range inputs[1:] {
		cb.chain.Blends = append(cb.chain.Blends, Blend{Bottom: acc, Top: cb.bind(in)})
		acc = Binding{Kind: BindBlend, Index: len(cb.chain.Blends) - 1}
	}
	return acc
}

// Resolve wires the effects of `spec`, in document order.
// It returns a *GraphError for Merge effects without inputs and for
// Composite effects with no bound input at all.
func Resolve(spec *Spec) (*Chain, error) {
	cb := chainBuilder{
		chain:    Chain{ID: spec.ID, Region: spec.Region, Units: spec.Units},
		previous: Binding{Kind: BindNone},
		named:    make(map[string]Binding),
	}
	for i, eff := range spec.Effects {
		re := ResolvedEffect{Effect: eff}
		switch params := eff.Params.(type) {
		case Merge:
			if len(params.Inputs) == 0 {
				return nil, &GraphError{Filter: spec.ID, Effect: i, Err: errEmptyMerge}
			}
			re.In = cb.reduceMerge(params.Inputs)
		case Composite:
			re.In = cb.bind(eff.In)
			re.In2 = cb.bind(params.In2)
			if re.In.Kind == BindNone && re.In2.Kind == BindNone {
				return nil, &GraphError{Filter: spec.ID, Effect: i, Err: errUnboundInputs}
			}
		case GaussianBlur, DropShadow, Flood, Offset, SpecularLighting, DiffuseLighting:
			re.In = cb.bind(eff.In)
		default:
			return nil, &GraphError{Filter: spec.ID, Effect: i, Err: errUnknownPrimitive}
		}
		cb.chain.Effects = append(cb.chain.Effects, re)
		out := Binding{Kind: BindEffect, Index: i}
		if eff.Result != "" {
			cb.named[eff.Result] = out
		}
		cb.previous = out
	}
	cb.chain.Output = cb.previous
	return &cb.chain, nil
}

type resolved struct {
	chain *Chain
	err   error
}

// Resolver resolves the filters of one registry. Each id is
// resolved at most once, and the result (or error) is then shared.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	registry Registry
	memo     map[string]resolved
}

func NewResolver(registry Registry) *Resolver {
	return &Resolver{registry: registry, memo: make(map[string]resolved)}
}

// Resolve returns the chain of the filter `id`. An unknown id
// returns nil and no error : the element is not filtered.
func (r *Resolver) Resolve(id string) (*Chain, error) {
	if res, done := r.memo[id]; done {
		return res.chain, res.err
	}
	var res resolved
	if spec, ok := r.registry[id]; ok {
		res.chain, res.err = Resolve(spec)
	} else {
		logx.Logger().Debug("svgfilter: unknown filter", "id", id)
	}
	r.memo[id] = res
	return res.chain, res.err
}
