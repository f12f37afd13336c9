package interp

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// ErrOutOfRange is returned for queries outside [x[0], x[n-1]].
var ErrOutOfRange = errors.New("interp: query outside the data range")

// Kind is the spline degree.
type Kind int

const (
	// Linear joins neighbouring knots with straight segments.
	Linear Kind = 1
	// Quadratic fits a C1 piecewise quadratic through the knots.
	Quadratic Kind = 2
	// Cubic fits a not-a-knot C2 cubic spline.
	Cubic Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "linear", "slinear", "quadratic" and "cubic".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "linear", "slinear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	case "cubic":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("interp: %w: unknown kind %q", core.ErrInvalidParameter, s)
	}
}

// Basis is the B-spline basis over fixed, strictly increasing abscissae.
type Basis struct {
	x     []float64
	knots []float64
	k     int
	lu    mat.LU
}

// NewBasis builds the knot vector for x and factors the collocation matrix.
func NewBasis(x []float64, kind Kind) (*Basis, error) {
	k := int(kind)
	if k < 1 || k > 3 {
		return nil, fmt.Errorf("interp: %w: unsupported kind %v", core.ErrInvalidParameter, kind)
	}
	n := len(x)
	if n < k+1 {
		return nil, fmt.Errorf("interp: %w: %v spline needs at least %d points, got %d",
			core.ErrShapeMismatch, kind, k+1, n)
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("interp: %w: abscissae must be strictly increasing at index %d",
				core.ErrInvalidParameter, i)
		}
	}

	b := &Basis{
		x:     append([]float64(nil), x...),
		knots: knotVector(x, k),
		k:     k,
	}

	coll := mat.NewDense(n, n, nil)
	nb := make([]float64, k+1)
	for i, xi := range x {
		l := b.span(xi)
		b.basisFuncs(l, xi, nb)
		for r, v := range nb {
			coll.Set(i, l-k+r, v)
		}
	}
	b.lu.Factorize(coll)

	return b, nil
}

func knotVector(x []float64, k int) []float64 {
	n := len(x)
	t := make([]float64, 0, n+k+1)
	for range k + 1 {
		t = append(t, x[0])
	}

	switch k {
	case 1:
		t = append(t, x[1:n-1]...)
	case 2:
		for i := 2; i < n-1; i++ {
			t = append(t, (x[i-1]+x[i])/2)
		}
	case 3:
		t = append(t, x[2:n-2]...)
	}

	for range k + 1 {
		t = append(t, x[n-1])
	}

	return t
}

// span returns l with knots[l] <= q < knots[l+1], clamped to the last
// non-empty interval so that q == x[n-1] is included.
func (b *Basis) span(q float64) int {
	n := len(b.x)
	k := b.k
	l := sort.Search(n-k, func(i int) bool { return b.knots[k+i+1] > q }) + k
	return min(l, n-1)
}

// basisFuncs writes the k+1 non-zero basis functions at q into nb;
// nb[r] belongs to coefficient l-k+r.
func (b *Basis) basisFuncs(l int, q float64, nb []float64) {
	k := b.k
	var left, right [4]float64
	nb[0] = 1
	for j := 1; j <= k; j++ {
		left[j] = q - b.knots[l+1-j]
		right[j] = b.knots[l+j] - q
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := nb[r] / (right[r+1] + left[j-r])
			nb[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		nb[j] = saved
	}
}

// Fit returns the spline through (x, y).
func (b *Basis) Fit(y []float64) (*Spline, error) {
	if len(y) != len(b.x) {
		return nil, fmt.Errorf("interp: %w: %d values for %d abscissae", core.ErrShapeMismatch, len(y), len(b.x))
	}

	var c mat.VecDense
	if err := b.lu.SolveVecTo(&c, false, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return nil, fmt.Errorf("interp: %w: collocation system: %v", core.ErrInvalidParameter, err)
	}

	coef := make([]float64, len(y))
	for i := range coef {
		coef[i] = c.AtVec(i)
	}

	return &Spline{basis: b, coef: coef}, nil
}

// Spline is a fitted interpolating B-spline.
type Spline struct {
	basis *Basis
	coef  []float64
}

// NewSpline fits a spline of the given kind through (x, y).
func NewSpline(x, y []float64, kind Kind) (*Spline, error) {
	b, err := NewBasis(x, kind)
	if err != nil {
		return nil, err
	}

	return b.Fit(y)
}

// At evaluates the spline at q.
func (s *Spline) At(q float64) (float64, error) {
	b := s.basis
	if q < b.x[0] || q > b.x[len(b.x)-1] {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, q, b.x[0], b.x[len(b.x)-1])
	}

	var buf [4]float64
	nb := buf[:b.k+1]
	l := b.span(q)
	b.basisFuncs(l, q, nb)

	sum := 0.0
	for r, v := range nb {
		sum += v * s.coef[l-b.k+r]
	}

	return sum, nil
}

// Eval evaluates the spline at every query point.
func (s *Spline) Eval(qs []float64) ([]float64, error) {
	out := make([]float64, len(qs))
	for i, q := range qs {
		v, err := s.At(q)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
