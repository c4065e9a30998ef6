package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLockReturnsSameMutexPerKey(t *testing.T) {
	lm := NewLockManager()

	a := lm.GetLock("session-1")
	b := lm.GetLock("session-1")
	c := lm.GetLock("session-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestWithLockSerializesAccess(t *testing.T) {
	lm := NewLockManager()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lm.WithLock("session-1", func() error {
				counter++
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
