package jobs

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDayRolloverRunsCallback(t *testing.T) {
	var runs int32
	fired := make(chan struct{}, 4)
	r, err := NewDayRollover("@every 1s", quietLogger(), func() error {
		atomic.AddInt32(&runs, 1)
		fired <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("new rollover: %v", err)
	}
	r.Start()
	defer r.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("rollover callback never ran")
	}
	if atomic.LoadInt32(&runs) < 1 {
		t.Fatalf("expected at least one run, got %d", runs)
	}
}

func TestDayRolloverSurvivesCallbackError(t *testing.T) {
	fired := make(chan struct{}, 4)
	r, err := NewDayRollover("@every 1s", quietLogger(), func() error {
		fired <- struct{}{}
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("new rollover: %v", err)
	}
	r.Start()
	defer r.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("rollover callback never ran")
	}
}

func TestDayRolloverRejectsBadSpec(t *testing.T) {
	if _, err := NewDayRollover("every other tuesday", quietLogger(), func() error { return nil }); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}
