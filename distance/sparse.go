package distance

import "math"

// Sparse is one row of a CSR-encoded vector: parallel Idx/Val slices, Idx
// strictly ascending, giving the nonzero dimensions and their values. This
// mirrors the row slices of graph.SparseNNGraph's storage convention so a
// caller can reuse the same CSR rows for both the dataset and its graph.
type Sparse[Out Float] struct {
	Idx []uint32
	Val []Out
}

// SparseFunc computes the distance between two sparse rows.
type SparseFunc[Out Float] func(a, b Sparse[Out]) Out

// SparseProvider returns the sparse kernel for m. Only the metrics that
// have a meaningful sparse form are supported; AlternativeCosine and
// Correlation are dense-only (spec §6 does not define a sparse Hamming or
// correlation kernel, and the log-domain cosine variant is not used in a
// sparse setting in original_source/).
func SparseProvider[Out Float](m Metric) (SparseFunc[Out], error) {
	switch m {
	case L2Sqr:
		return SparseL2Sqr[Out], nil
	case Euclidean:
		return SparseEuclidean[Out], nil
	case Manhattan:
		return SparseManhattan[Out], nil
	case Cosine:
		return SparseCosine[Out], nil
	case InnerProduct:
		return SparseInnerProduct[Out], nil
	default:
		return nil, ErrUnknownMetric
	}
}

// sparseJoin walks two ascending-index sparse rows in merge order, invoking
// visit for every dimension present in at least one row (zero supplied for
// the other's missing value).
func sparseJoin[Out Float](a, b Sparse[Out], visit func(av, bv Out)) {
	i, j := 0, 0
	for i < len(a.Idx) && j < len(b.Idx) {
		switch {
		case a.Idx[i] == b.Idx[j]:
			visit(a.Val[i], b.Val[j])
			i++
			j++
		case a.Idx[i] < b.Idx[j]:
			visit(a.Val[i], 0)
			i++
		default:
			visit(0, b.Val[j])
			j++
		}
	}
	for ; i < len(a.Idx); i++ {
		visit(a.Val[i], 0)
	}
	for ; j < len(b.Idx); j++ {
		visit(0, b.Val[j])
	}
}

// SparseL2Sqr is the CSR form of L2SqrDense.
func SparseL2Sqr[Out Float](a, b Sparse[Out]) Out {
	var sum Out
	sparseJoin(a, b, func(av, bv Out) {
		d := av - bv
		sum += d * d
	})
	return sum
}

// SparseEuclidean is the CSR form of EuclideanDense.
func SparseEuclidean[Out Float](a, b Sparse[Out]) Out {
	return Out(math.Sqrt(float64(SparseL2Sqr(a, b))))
}

// SparseManhattan is the CSR form of ManhattanDense.
func SparseManhattan[Out Float](a, b Sparse[Out]) Out {
	var sum Out
	sparseJoin(a, b, func(av, bv Out) {
		d := av - bv
		if d < 0 {
			d = -d
		}
		sum += d
	})
	return sum
}

// SparseInnerProduct is the CSR form of InnerProductDense: only matched
// dimensions contribute, since the product with an absent (zero) dimension
// is always zero.
func SparseInnerProduct[Out Float](a, b Sparse[Out]) Out {
	var dot Out
	sparseJoin(a, b, func(av, bv Out) {
		dot += av * bv
	})
	return 1 - dot
}

// SparseCosine is the CSR form of CosineDense.
func SparseCosine[Out Float](a, b Sparse[Out]) Out {
	var dot, na, nb Out
	sparseJoin(a, b, func(av, bv Out) {
		dot += av * bv
		na += av * av
		nb += bv * bv
	})
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/Out(math.Sqrt(float64(na)*float64(nb)))
}
