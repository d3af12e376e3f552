package svgstyle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/srwiley/rasterx"
)

// TransformKind identifies an item of a transform list.
type TransformKind uint8

const (
	Matrix TransformKind = iota
	Translate
	Scale
	Rotate
	SkewX
	SkewY
)

var transformNames = [...]string{
	Matrix:    "matrix",
	Translate: "translate",
	Scale:     "scale",
	Rotate:    "rotate",
	SkewX:     "skewX",
	SkewY:     "skewY",
}

func (k TransformKind) String() string {
	if int(k) < len(transformNames) {
		return transformNames[k]
	}
	return "<unknown TransformKind>"
}

// TransformOp is one item of a transform list, with its arguments
// as declared (angles are in degrees).
type TransformOp struct {
	Kind TransformKind
	Args []float64
}

// Transform is an ordered list of transformations,
// applied in declaration order.
type Transform []TransformOp

func (Transform) isValue() {}

// checkArity returns an error if the number of arguments is not valid for `kind`
func checkArity(kind TransformKind, ln int) error {
	ok := false
	switch kind {
	case Rotate:
		ok = ln == 1 || ln == 3
	case Translate, Scale:
		ok = ln == 1 || ln == 2
	case SkewX, SkewY:
		ok = ln == 1
	case Matrix:
		ok = ln == 6
	}
	if !ok {
		return fmt.Errorf("%w: %d argument(s) for %s", errParamMismatch, ln, kind)
	}
	return nil
}

// ParseTransform reads a transform list, such as
// "translate(10 20) rotate(45)".
func ParseTransform(v string) (Transform, error) {
	var out Transform
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(strings.TrimLeft(t, ", \t\n"))
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(strings.TrimSpace(d[1])) < 1 {
			return out, fmt.Errorf("%w: badly formed transformation %q", errParamMismatch, t)
		}
		var (
			kind  TransformKind
			found bool
		)
		name := strings.ToLower(strings.TrimSpace(d[0]))
		for k, n := range transformNames {
			if strings.ToLower(n) == name {
				kind, found = TransformKind(k), true
				break
			}
		}
		if !found {
			return out, fmt.Errorf("%w: unknown transformation %q", errParamMismatch, d[0])
		}
		args, err := svgunit.ParseList(d[1])
		if err != nil {
			return out, err
		}
		if err := checkArity(kind, len(args)); err != nil {
			return out, err
		}
		out = append(out, TransformOp{Kind: kind, Args: args})
	}
	return out, nil
}

// Matrix returns the composed matrix of the list.
func (t Transform) Matrix() rasterx.Matrix2D {
	m1 := rasterx.Identity
	for _, op := range t {
		a := op.Args
		switch op.Kind {
		case Rotate:
			if len(a) == 3 {
				m1 = m1.Translate(a[1], a[2]).
					Rotate(a[0]*math.Pi/180).
					Translate(-a[1], -a[2])
			} else {
				m1 = m1.Rotate(a[0] * math.Pi / 180)
			}
		case Translate:
			if len(a) == 2 {
				m1 = m1.Translate(a[0], a[1])
			} else {
				m1 = m1.Translate(a[0], 0)
			}
		case Scale:
			if len(a) == 2 {
				m1 = m1.Scale(a[0], a[1])
			} else {
				m1 = m1.Scale(a[0], a[0])
			}
		case SkewX:
			m1 = m1.SkewX(a[0] * math.Pi / 180)
		case SkewY:
			m1 = m1.SkewY(a[0] * math.Pi / 180)
		case Matrix:
			m1 = m1.Mult(rasterx.Matrix2D{
				A: a[0],
				B: a[1],
				C: a[2],
				D: a[3],
				E: a[4],
				F: a[5]})
		}
	}
	return m1
}

// Then returns the list made of `t` followed by `other`.
func (t Transform) Then(other Transform) Transform {
	out := make(Transform, 0, len(t)+len(other))
	out = append(out, t...)
	return append(out, other...)
}

// String returns the list in SVG syntax.
func (t Transform) String() string {
	chunks := make([]string, len(t))
	for i, op := range t {
		args := make([]string, len(op.Args))
		for j, a := range op.Args {
			args[j] = strconv.FormatFloat(a, 'g', -1, 64)
		}
		chunks[i] = op.Kind.String() + "(" + strings.Join(args, " ") + ")"
	}
	return strings.Join(chunks, " ")
}
