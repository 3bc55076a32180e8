package scheduler

import (
	"testing"
	"time"
)

func TestEngineFiresInOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Timer{ID: "later", Kind: KindMintComplete, FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Timer{ID: "sooner", Kind: KindPopupDismiss, FireAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitTimer(t, engine.C(), time.Second)
	second := waitTimer(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if first.Kind != KindPopupDismiss {
		t.Fatalf("kind not carried through: %s", first.Kind)
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	if err := engine.After("popup", KindPopupDismiss, 30*time.Millisecond); err != nil {
		t.Fatalf("after: %v", err)
	}
	if err := engine.After("prompt", KindReflectionPrompt, 60*time.Millisecond); err != nil {
		t.Fatalf("after: %v", err)
	}
	if !engine.Cancel("popup") {
		t.Fatal("expected popup to be pending")
	}
	if engine.Cancel("popup") {
		t.Fatal("second cancel should report nothing pending")
	}

	got := waitTimer(t, engine.C(), time.Second)
	if got.ID != "prompt" {
		t.Fatalf("cancelled timer fired: %+v", got)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestScheduleReplacesSameID(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	_ = engine.After("popup", KindPopupDismiss, time.Hour)
	_ = engine.After("popup", KindPopupDismiss, 10*time.Millisecond)
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", engine.Pending())
	}
	waitTimer(t, engine.C(), time.Second)
}

func TestStopCancelsPendingAndClosesChannel(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	_ = engine.After("wallet", KindWalletConnect, 20*time.Millisecond)
	engine.Stop()

	select {
	case tm, ok := <-engine.C():
		if ok {
			t.Fatalf("timer fired after stop: %+v", tm)
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after stop")
	}
	if err := engine.After("late", KindMintComplete, time.Millisecond); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	engine.Stop()
}

func TestStopWithoutStartClosesChannel(t *testing.T) {
	engine := NewEngine(1)
	engine.Stop()
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel")
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Timer{Kind: KindPopupDismiss, FireAt: at}); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped timers > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Timer{ID: "bad"}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func waitTimer(t *testing.T, ch <-chan Timer, timeout time.Duration) Timer {
	t.Helper()
	select {
	case tm := <-ch:
		return tm
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for timer")
		return Timer{}
	}
}
