package app

import (
	"errors"
	"sync"
	"testing"
)

func TestAuthWatcher_LatchesFirstError(t *testing.T) {
	w := &authWatcher{}
	if w.Err() != nil {
		t.Fatal("fresh watcher reports an error")
	}

	first := errors.New("rejected")
	w.set(first)
	w.set(errors.New("later"))

	if got := w.Err(); !errors.Is(got, first) {
		t.Fatalf("Err() = %v, want the first error latched", got)
	}
}

func TestAuthWatcher_ConcurrentSet(t *testing.T) {
	w := &authWatcher{}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.set(errors.New("rejected"))
		}()
	}
	wg.Wait()
	if w.Err() == nil {
		t.Fatal("no error latched after concurrent sets")
	}
}
