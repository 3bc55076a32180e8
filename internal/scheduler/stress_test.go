package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Many goroutines re-arming a small set of ids must leave one pending timer
// per id, and only the ids that survive a cancel may fire.
func TestEngineConcurrentRearmAndCancel(t *testing.T) {
	engine := NewEngine(64)
	engine.Start()
	defer engine.Stop()

	const (
		ids     = 10
		workers = 8
		rounds  = 250
	)
	kinds := []Kind{KindPopupDismiss, KindReflectionPrompt, KindWalletConnect, KindMintComplete}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				id := fmt.Sprintf("timer-%d", (w+i)%ids)
				if err := engine.After(id, kinds[i%len(kinds)], 300*time.Millisecond); err != nil {
					t.Errorf("after %s: %v", id, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := engine.Pending(); got != ids {
		t.Fatalf("expected %d pending timers after re-arming, got %d", ids, got)
	}
	for i := 0; i < ids; i += 2 {
		if !engine.Cancel(fmt.Sprintf("timer-%d", i)) {
			t.Fatalf("expected timer-%d to be pending", i)
		}
	}

	want := ids / 2
	fired := make(map[string]int)
	deadline := time.After(3 * time.Second)
	for len(fired) < want {
		select {
		case tm := <-engine.C():
			fired[tm.ID]++
		case <-deadline:
			t.Fatalf("timeout: fired=%v dropped=%d", fired, engine.Dropped())
		}
	}
	select {
	case tm := <-engine.C():
		t.Fatalf("unexpected extra timer %+v", tm)
	case <-time.After(100 * time.Millisecond):
	}

	for id, n := range fired {
		var idx int
		if _, err := fmt.Sscanf(id, "timer-%d", &idx); err != nil || idx%2 == 0 {
			t.Fatalf("cancelled or unknown timer fired: %s", id)
		}
		if n != 1 {
			t.Fatalf("timer %s fired %d times", id, n)
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops, got %d", engine.Dropped())
	}
}
