package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/NakaSato/datadog-scraper/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_TryReserve(t *testing.T) {
	t.Parallel()

	t.Run("first reservation wins", func(t *testing.T) {
		t.Parallel()

		tr := crawl.NewTracker(100, 0.01)
		assert.True(t, tr.TryReserve("https://docs.example.com/api"))
		assert.False(t, tr.TryReserve("https://docs.example.com/api"))
		assert.False(t, tr.TryReserve("https://docs.example.com/api"))
	})

	t.Run("distinct URLs are independent", func(t *testing.T) {
		t.Parallel()

		tr := crawl.NewTracker(100, 0.01)
		assert.True(t, tr.TryReserve("https://docs.example.com/a"))
		assert.True(t, tr.TryReserve("https://docs.example.com/b"))
		assert.Equal(t, 2, tr.Count())
	})

	t.Run("reserved reflects membership", func(t *testing.T) {
		t.Parallel()

		tr := crawl.NewTracker(100, 0.01)
		assert.False(t, tr.Reserved("https://docs.example.com/a"))
		tr.TryReserve("https://docs.example.com/a")
		assert.True(t, tr.Reserved("https://docs.example.com/a"))
		assert.False(t, tr.Reserved("https://docs.example.com/b"))
	})

	t.Run("exact under filter saturation", func(t *testing.T) {
		t.Parallel()

		// Deliberately undersized filter: false positives in the negative
		// cache must not cause false rejections.
		tr := crawl.NewTracker(2, 0.01)
		for i := 0; i < 500; i++ {
			url := fmt.Sprintf("https://docs.example.com/page/%d", i)
			require.True(t, tr.TryReserve(url), "first reservation of %s rejected", url)
			require.False(t, tr.TryReserve(url), "second reservation of %s accepted", url)
		}
		assert.Equal(t, 500, tr.Count())
	})

	t.Run("exactly one winner under concurrency", func(t *testing.T) {
		t.Parallel()

		tr := crawl.NewTracker(100, 0.01)
		const workers = 50

		var wg sync.WaitGroup
		wins := make(chan struct{}, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if tr.TryReserve("https://docs.example.com/contended") {
					wins <- struct{}{}
				}
			}()
		}
		wg.Wait()
		close(wins)

		count := 0
		for range wins {
			count++
		}
		assert.Equal(t, 1, count)
	})
}
