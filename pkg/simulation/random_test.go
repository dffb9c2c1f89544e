package simulation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomProcess_NextInterval_NonNegativeWithExpectedMean(t *testing.T) {
	// GIVEN a seeded process and the original service mean
	rp := NewRandomProcess(1)
	mean := 600000 * time.Millisecond

	// WHEN many intervals are drawn
	const n = 50000
	var sum float64
	for i := 0; i < n; i++ {
		d := rp.NextInterval(mean)
		if d < 0 {
			t.Fatalf("draw %d negative: %v", i, d)
		}
		sum += float64(d)
	}

	// THEN the sample mean is close to the requested mean
	assert.InEpsilon(t, float64(mean), sum/n, 0.03)
}

func TestRandomProcess_SameSeedSameSequence(t *testing.T) {
	a, b := NewRandomProcess(99), NewRandomProcess(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextInterval(time.Minute), b.NextInterval(time.Minute))
		assert.Equal(t, a.Intn(5), b.Intn(5))
		assert.Equal(t, a.Bernoulli(0.2), b.Bernoulli(0.2))
	}
}

func TestRandomProcess_BernoulliExtremes(t *testing.T) {
	rp := NewRandomProcess(3)
	for i := 0; i < 1000; i++ {
		assert.False(t, rp.Bernoulli(0))
		assert.True(t, rp.Bernoulli(1))
	}
}

func TestRandomProcess_ConcurrentUse(t *testing.T) {
	rp := NewRandomProcess(5)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = rp.NextInterval(180000 * time.Millisecond)
				_ = rp.Intn(5)
			}
		}()
	}
	wg.Wait()
}
