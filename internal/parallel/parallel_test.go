package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 1 << 16
	var hits [n]int32
	ParallelFor(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	for i, h := range hits {
		assert.Equalf(t, int32(1), h, "index %d visited %d times", i, h)
	}
}

func TestParallelForSmallRangeRunsInline(t *testing.T) {
	sum := 0
	ParallelFor(4, func(i int) { sum += i })
	assert.Equal(t, 6, sum)
}

func TestParallelForZeroIsNoop(t *testing.T) {
	called := false
	ParallelFor(0, func(i int) { called = true })
	assert.False(t, called)
}
