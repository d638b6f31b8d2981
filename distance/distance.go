// Package distance provides the NND distance kernel catalog (spec §6, C1):
// dense and sparse-CSR vector metrics, bit-packed Hamming, and the
// preprocessing passes (Normalize, MeanCenter, NormalizeCenter) that let a
// caller fold a metric's usual vector transform into a one-time pass instead
// of repeating it on every distance evaluation.
//
// Every kernel is generic over the Float constraint the rest of the module
// shares, so a caller can run the whole pipeline in float32 (the default,
// matching spec §6's "Out f32 unless f64 requested") or float64.
package distance

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Float is the constraint shared with internal/heap: the two precisions the
// spec allows for distance output.
type Float interface {
	~float32 | ~float64
}

// Metric names one of the catalog's dense vector kernels.
type Metric int

const (
	L2Sqr Metric = iota
	Euclidean
	Manhattan
	Cosine
	AlternativeCosine
	Correlation
	InnerProduct
)

func (m Metric) String() string {
	switch m {
	case L2Sqr:
		return "l2sqr"
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Cosine:
		return "cosine"
	case AlternativeCosine:
		return "alternative_cosine"
	case Correlation:
		return "correlation"
	case InnerProduct:
		return "inner_product"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ErrUnknownMetric is returned by Provider for an unrecognized Metric value.
var ErrUnknownMetric = errors.New("distance: unknown metric")

// Func computes the distance between two equal-length dense vectors.
// Callers are responsible for matching lengths; kernels assume it.
type Func[Out Float] func(a, b []Out) Out

// Provider returns the dense kernel for m, or ErrUnknownMetric for an
// unrecognized metric (spec §7.1: unknown metric is a validation error,
// checked before any work starts).
func Provider[Out Float](m Metric) (Func[Out], error) {
	switch m {
	case L2Sqr:
		return L2SqrDense[Out], nil
	case Euclidean:
		return EuclideanDense[Out], nil
	case Manhattan:
		return ManhattanDense[Out], nil
	case Cosine:
		return CosineDense[Out], nil
	case AlternativeCosine:
		return AlternativeCosineDense[Out], nil
	case Correlation:
		return CorrelationDense[Out], nil
	case InnerProduct:
		return InnerProductDense[Out], nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, int(m))
	}
}

// L2SqrDense returns the squared Euclidean distance, the catalog's cheapest
// kernel and NND's default (avoids the sqrt on every candidate evaluation).
func L2SqrDense[Out Float](a, b []Out) Out {
	var sum Out
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// EuclideanDense returns the (unsquared) Euclidean distance.
func EuclideanDense[Out Float](a, b []Out) Out {
	return Out(math.Sqrt(float64(L2SqrDense(a, b))))
}

// ManhattanDense returns the L1 (taxicab) distance.
func ManhattanDense[Out Float](a, b []Out) Out {
	var sum Out
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// InnerProductDense returns 1 - <a, b>, matching the rest of the catalog's
// "0 is identical" convention instead of returning the raw dot product.
func InnerProductDense[Out Float](a, b []Out) Out {
	var dot Out
	for i := range a {
		dot += a[i] * b[i]
	}
	return 1 - dot
}

// CosineDense returns 1 - cosine similarity. Degenerates to 1 (maximally
// dissimilar) when either vector has zero norm, rather than dividing by
// zero.
func CosineDense[Out Float](a, b []Out) Out {
	var dot, na, nb Out
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/Out(math.Sqrt(float64(na)*float64(nb)))
}

// AlternativeCosineDense is the log-domain cosine variant the original NND
// catalog ships alongside plain cosine: it returns -log2 of the cosine
// similarity. When either vector has zero norm, or the similarity is not
// positive, it returns the sentinel math.MaxFloat32 (unlike CosineDense,
// which returns 1 for a zero-norm input).
func AlternativeCosineDense[Out Float](a, b []Out) Out {
	var dot, na, nb Out
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return Out(math.MaxFloat32)
	}
	sim := float64(dot) / math.Sqrt(float64(na)*float64(nb))
	if sim <= 0 {
		return Out(math.MaxFloat32)
	}
	return Out(-math.Log2(sim))
}

// CorrelationDense returns 1 minus the Pearson correlation coefficient
// between a and b: cosine distance after mean-centering both vectors.
func CorrelationDense[Out Float](a, b []Out) Out {
	n := Out(len(a))
	if n == 0 {
		return 1
	}
	var sa, sb Out
	for i := range a {
		sa += a[i]
		sb += b[i]
	}
	ma, mb := sa/n, sb/n

	var dot, na, nb Out
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		dot += da * db
		na += da * da
		nb += db * db
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/Out(math.Sqrt(float64(na)*float64(nb)))
}

// HammingDense returns the count of differing entries between two
// dense integer-coded vectors — the un-packed form of the metric, as
// opposed to the bit-packed form in hamming_bits.go.
func HammingDense[Out Float](a, b []Out) Out {
	var c Out
	for i := range a {
		if a[i] != b[i] {
			c++
		}
	}
	return c
}

// Normalize L2-normalizes v in place and returns it. A zero vector is left
// unchanged (normalizing it would divide by zero).
func Normalize[Out Float](v []Out) []Out {
	var norm2 Out
	for _, x := range v {
		norm2 += x * x
	}
	if norm2 == 0 {
		return v
	}
	inv := Out(1 / math.Sqrt(float64(norm2)))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// MeanCenter subtracts the mean of v's entries from every entry, in place.
func MeanCenter[Out Float](v []Out) []Out {
	if len(v) == 0 {
		return v
	}
	var sum Out
	for _, x := range v {
		sum += x
	}
	mean := sum / Out(len(v))
	for i := range v {
		v[i] -= mean
	}
	return v
}

// NormalizeCenter mean-centers then L2-normalizes v in place: the
// preprocessing pass that lets a correlation metric be computed with the
// cheaper cosine kernel on already-centered data.
func NormalizeCenter[Out Float](v []Out) []Out {
	return Normalize(MeanCenter(v))
}

// NormalizeF64 is the float64 specialization of Normalize, built on
// gonum/floats for the dense reduction instead of a hand-rolled loop — the
// one case in this catalog where the input precision matches gonum's
// float64-only API closely enough to be worth reaching for it.
func NormalizeF64(v []float64) []float64 {
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return v
	}
	floats.Scale(1/norm, v)
	return v
}

// MeanCenterF64 is the float64 specialization of MeanCenter via gonum/floats.
func MeanCenterF64(v []float64) []float64 {
	if len(v) == 0 {
		return v
	}
	mean := floats.Sum(v) / float64(len(v))
	floats.AddConst(-mean, v)
	return v
}
