package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/harvest/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://www.indiehackers.com/post/idea-1"))

	f.Add("https://www.indiehackers.com/post/idea-1")

	assert.True(t, f.Test("https://www.indiehackers.com/post/idea-1"))

	assert.False(t, f.Test("https://www.indiehackers.com/post/idea-2"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	url := "https://www.indiehackers.com/post/idea-1"

	f.Add(url)
	f.Add(url)
	f.Add(url)

	assert.True(t, f.Test(url))
	assert.False(t, f.Test("https://www.indiehackers.com/post/idea-2"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	// Add 10k URLs
	for i := range numItems {
		f.Add(fmt.Sprintf("https://www.indiehackers.com/post/added-%d", i))
	}

	// Test with 10k URLs that were NOT added
	falsePositives := 0
	for i := range testProbes {
		url := fmt.Sprintf("https://www.indiehackers.com/post/notadded-%d", i)
		if f.Test(url) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				url := fmt.Sprintf("https://www.indiehackers.com/post/%d-%d", i, j)
				f.Add(url)
				assert.True(t, f.Test(url))
			}
		}()
	}
	wg.Wait()
}
