// Package distance provides the dense and sparse vector distance kernels
// NND refines graphs against.
//
// # Supported Metrics
//
//   - L2Sqr: squared Euclidean distance (default)
//   - Euclidean: unsquared Euclidean distance
//   - Manhattan: L1 distance
//   - Cosine: 1 - cosine similarity
//   - AlternativeCosine: log-domain cosine variant
//   - Correlation: 1 - Pearson correlation
//   - InnerProduct: 1 - dot product
//   - HammingBits: bit-packed Hamming distance (separate entry point; it
//     operates on []uint64, not the dense []Out vectors the rest of the
//     catalog shares)
//
// # Usage
//
//	f, err := distance.Provider[float32](distance.L2Sqr)
//	d := f(a, b)
//
//	sf, err := distance.SparseProvider[float32](distance.Cosine)
//	d = sf(rowA, rowB)
package distance
