package distance

import "math/bits"

// HammingBits returns the Hamming distance between two bit-packed vectors
// (spec §6's packed Hamming form): each uint64 word holds 64 dimensions,
// and the distance is the popcount of the XOR of corresponding words. a and
// b must have the same length; the caller is responsible for zeroing any
// unused high bits in the final word of each vector, since this function
// has no notion of "true" bit-length beyond whole words.
func HammingBits[Out Float](a, b []uint64) Out {
	var c Out
	for i := range a {
		c += Out(bits.OnesCount64(a[i] ^ b[i]))
	}
	return c
}

// PackBits converts a dense boolean vector into the word-packed form
// HammingBits consumes, padding the final word with zero bits.
func PackBits(v []bool) []uint64 {
	words := (len(v) + 63) / 64
	out := make([]uint64, words)
	for i, b := range v {
		if b {
			out[i/64] |= 1 << uint(i%64)
		}
	}
	return out
}
