package nndescent

import "github.com/hupe1980/nndescent/graph"

// validateBuild checks Build's inputs before any work starts (spec §7.1).
func validateBuild(data [][]float32, cfg config) error {
	if len(data) == 0 {
		return ErrEmptyDataset
	}
	if cfg.k <= 0 || cfg.k >= len(data) {
		return ErrInvalidK
	}
	if err := checkUniformDims(data); err != nil {
		return err
	}
	return checkRunParams(cfg)
}

// validateQuery checks Query's inputs before any work starts (spec §7.1).
func validateQuery(queries, reference [][]float32, ref *graph.NNGraph[float32], cfg config) error {
	if len(queries) == 0 || len(reference) == 0 {
		return ErrEmptyDataset
	}
	if cfg.k <= 0 || cfg.k > len(reference) {
		return ErrInvalidK
	}
	if ref == nil || ref.N != len(reference) {
		return &ErrDimensionMismatch{Expected: len(reference), Actual: refN(ref)}
	}
	if err := checkUniformDims(reference); err != nil {
		return err
	}
	if err := checkUniformDims(queries); err != nil {
		return err
	}
	if len(queries[0]) != len(reference[0]) {
		return &ErrDimensionMismatch{Expected: len(reference[0]), Actual: len(queries[0])}
	}
	return checkRunParams(cfg)
}

func refN(ref *graph.NNGraph[float32]) int {
	if ref == nil {
		return 0
	}
	return ref.N
}

// checkUniformDims verifies every row of vecs shares the first row's
// dimensionality.
func checkUniformDims(vecs [][]float32) error {
	if len(vecs) == 0 {
		return nil
	}
	dim := len(vecs[0])
	for _, v := range vecs {
		if len(v) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
	}
	return nil
}

// checkRunParams rejects negative or otherwise nonsensical tunables (spec
// §7.1: max_candidates, n_iters, delta, rho, n_threads).
func checkRunParams(cfg config) error {
	if cfg.maxCandidates < 0 {
		return &ErrInvalidParameter{Name: "max_candidates", Value: float64(cfg.maxCandidates)}
	}
	if cfg.nIters < 0 {
		return &ErrInvalidParameter{Name: "n_iters", Value: float64(cfg.nIters)}
	}
	if cfg.delta < 0 {
		return &ErrInvalidParameter{Name: "delta", Value: cfg.delta}
	}
	if cfg.rho <= 0 || cfg.rho > 1 {
		return &ErrInvalidParameter{Name: "rho", Value: cfg.rho}
	}
	if cfg.nThreads < 0 {
		return &ErrInvalidParameter{Name: "n_threads", Value: float64(cfg.nThreads)}
	}
	return nil
}
