package exam

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocksSerializeSameID(t *testing.T) {
	locks := newUserLocks()

	// A plain int would race without mutual exclusion; run with -race.
	counter := 0
	var wg sync.WaitGroup
	for worker := 0; worker < 50; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.acquire("u1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestUserLocksIndependentIDs(t *testing.T) {
	locks := newUserLocks()

	releaseA := locks.acquire("a")
	defer releaseA()

	// A different id must not block behind "a".
	done := make(chan struct{})
	go func() {
		release := locks.acquire("b")
		release()
		close(done)
	}()
	<-done
}

func TestUserLocksCleanUpAfterRelease(t *testing.T) {
	locks := newUserLocks()

	release := locks.acquire("u1")
	locks.mu.Lock()
	assert.Len(t, locks.entries, 1)
	locks.mu.Unlock()

	release()
	locks.mu.Lock()
	assert.Empty(t, locks.entries, "last release drops the entry")
	locks.mu.Unlock()
}
