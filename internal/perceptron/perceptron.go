package perceptron

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/yyyoichi/pointlearn/internal/geom"
)

var (
	ErrDegenerate = errors.New("boundary has a zero-length normal vector")
	ErrNotFinite  = errors.New("boundary coefficient is not finite")
)

// Class is one of the two labels a Boundary separates.
type Class int

const (
	// ClassA lies on the positive side of a boundary.
	ClassA Class = iota + 1
	// ClassB lies on the negative side of a boundary.
	ClassB
)

func (c Class) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Boundary is the line A*x + B*y + C = 0.
type Boundary struct {
	A, B, C float64
}

// Validate reports whether the boundary describes a line.
func (b Boundary) Validate() error {
	for _, v := range [3]float64{b.A, b.B, b.C} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotFinite
		}
	}
	if b.A == 0 && b.B == 0 {
		return ErrDegenerate
	}
	return nil
}

// Eval returns A*x + B*y + C.
func (b Boundary) Eval(p geom.Point) float64 {
	return b.A*p.X + b.B*p.Y + b.C
}

// Correct reports whether p of class c lies strictly on its class side.
func (b Boundary) Correct(p geom.Point, c Class) bool {
	v := b.Eval(p)
	switch c {
	case ClassA:
		return v > 0
	case ClassB:
		return v < 0
	}
	return false
}

// String renders the line equation with two decimals, e.g.
// "2.00X - 1.50Y + 4.00 = 0".
func (b Boundary) String() string {
	return b.Equation(2)
}

// Equation renders the line equation with the given number of decimals.
// Coefficients that round to zero print without a minus sign.
func (b Boundary) Equation(decimals int) string {
	var sb strings.Builder
	if abs, neg := rounded(b.A, decimals); neg {
		fmt.Fprintf(&sb, "-%sX", abs)
	} else {
		fmt.Fprintf(&sb, "%sX", abs)
	}
	for _, term := range []struct {
		v    float64
		name string
	}{{b.B, "Y"}, {b.C, ""}} {
		abs, neg := rounded(term.v, decimals)
		sign := "+"
		if neg {
			sign = "-"
		}
		fmt.Fprintf(&sb, " %s %s%s", sign, abs, term.name)
	}
	sb.WriteString(" = 0")
	return sb.String()
}

// rounded formats |v| and reports whether v is still negative once rounded.
func rounded(v float64, decimals int) (string, bool) {
	abs := fmt.Sprintf("%.*f", decimals, math.Abs(v))
	return abs, v < 0 && strings.Trim(abs, "0.") != ""
}

// Segment returns the end points of the boundary clipped to the square
// [-span, span] on both axes. The line is walked along the axis it is least
// steep against so the division is by the larger coefficient.
func (b Boundary) Segment(span float64) (from, to geom.Point, err error) {
	if err := b.Validate(); err != nil {
		return from, to, err
	}
	if math.Abs(b.B) >= math.Abs(b.A) {
		y := func(x float64) float64 { return -(b.A*x + b.C) / b.B }
		return geom.Point{X: -span, Y: y(-span)}, geom.Point{X: span, Y: y(span)}, nil
	}
	x := func(y float64) float64 { return -(b.B*y + b.C) / b.A }
	return geom.Point{X: x(-span), Y: -span}, geom.Point{X: x(span), Y: span}, nil
}

// Learner applies the online update law to a Boundary.
type Learner struct {
	Rate  float64
	Scale float64
}

// Update moves b toward classifying p as c. It does nothing when p is already
// correct and reports whether b changed. An update that would leave a
// zero-length normal vector is refused with ErrDegenerate and b is untouched.
func (l Learner) Update(b *Boundary, p geom.Point, c Class) (bool, error) {
	if b.Correct(p, c) {
		return false, nil
	}
	next := *b
	switch c {
	case ClassA:
		next.A += l.Rate * p.X / l.Scale
		next.B += l.Rate * p.Y / l.Scale
		next.C += l.Rate
	case ClassB:
		next.A -= l.Rate * p.X / l.Scale
		next.B -= l.Rate * p.Y / l.Scale
		next.C -= l.Rate
	default:
		return false, fmt.Errorf("unknown class %v", c)
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	*b = next
	return true, nil
}

// Misclassified counts the points that b puts on the wrong side.
func Misclassified(b Boundary, points []geom.Point, classes []Class) int {
	n := 0
	for i, p := range points {
		if !b.Correct(p, classes[i]) {
			n++
		}
	}
	return n
}
