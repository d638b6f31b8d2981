package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopNeverInterrupts(t *testing.T) {
	var p Noop
	p.IterFinished(1, 10, 3)
	p.Converged(5, 1, 0.001)
	assert.False(t, p.CheckInterrupt())
}

func TestAtomicTracksCountersAndConvergence(t *testing.T) {
	p := NewAtomic()
	assert.EqualValues(t, -1, p.ConvergedAt.Load())

	p.IterFinished(1, 10, 4)
	p.IterFinished(2, 10, 2)
	assert.EqualValues(t, 2, p.Iterations.Load())
	assert.EqualValues(t, 6, p.TotalUpdates.Load())

	p.Converged(3, 1, 0.001)
	assert.EqualValues(t, 3, p.ConvergedAt.Load())
	assert.EqualValues(t, 7, p.TotalUpdates.Load())
}

func TestAtomicInterrupt(t *testing.T) {
	p := NewAtomic()
	assert.False(t, p.CheckInterrupt())
	p.Interrupt()
	assert.True(t, p.CheckInterrupt())
}
