package heap

import "sync"

// DefaultStripes is the default number of mutexes in a RowLocks bank.
// Spec §3 Ownership: "M=10 by convention is adequate; implementations may
// choose".
const DefaultStripes = 10

// RowLocks shards row-level writes across a fixed bank of mutexes, keyed by
// row index modulo the bank size. It serializes concurrent CheckedPush /
// CheckedPushPair calls that target the same row while letting writers to
// distinct rows proceed concurrently (spec §3 Ownership, §5).
type RowLocks struct {
	mus []sync.Mutex
}

// NewRowLocks allocates a bank of n mutexes. n <= 0 defaults to
// DefaultStripes.
func NewRowLocks(n int) *RowLocks {
	if n <= 0 {
		n = DefaultStripes
	}
	return &RowLocks{mus: make([]sync.Mutex, n)}
}

// Lock acquires the stripe guarding row i.
func (l *RowLocks) Lock(i int) { l.mus[i%len(l.mus)].Lock() }

// Unlock releases the stripe guarding row i.
func (l *RowLocks) Unlock(i int) { l.mus[i%len(l.mus)].Unlock() }

// LockPair acquires both stripes guarding rows i and j (i may equal j),
// always in ascending stripe-index order to avoid deadlocks between two
// goroutines locking the same pair of stripes in opposite order.
func (l *RowLocks) LockPair(i int, j uint32) {
	a, b := i%len(l.mus), int(j)%len(l.mus)
	if a == b {
		l.mus[a].Lock()
		return
	}
	if a > b {
		a, b = b, a
	}
	l.mus[a].Lock()
	l.mus[b].Lock()
}

// UnlockPair releases both stripes guarding rows i and j, in the same order
// LockPair acquired them.
func (l *RowLocks) UnlockPair(i int, j uint32) {
	a, b := i%len(l.mus), int(j)%len(l.mus)
	if a == b {
		l.mus[a].Unlock()
		return
	}
	if a > b {
		a, b = b, a
	}
	l.mus[a].Unlock()
	l.mus[b].Unlock()
}
