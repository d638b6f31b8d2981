package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityQueuePopsClosestFirst(t *testing.T) {
	pq := &PriorityQueue{}
	Push(pq, 1, 5.0)
	Push(pq, 2, 1.0)
	Push(pq, 3, 3.0)

	assert.Equal(t, uint32(2), Pop(pq).Node)
	assert.Equal(t, uint32(3), Pop(pq).Node)
	assert.Equal(t, uint32(1), Pop(pq).Node)
	assert.Equal(t, 0, pq.Len())
}
