package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aamirkhan2478/elite-market-backend/pkg/queue"
)

// ─── Job types ────────────────────────────────────────────────────────────────

var (
	echoCalls atomic.Int32
	failCalls atomic.Int32
)

type echoJob struct {
	Val string `json:"val"`
}

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	failCalls.Add(1)
	return errors.New("always fails")
}

func init() {
	ctx := context.Background()
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoCalls.Load() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if echoCalls.Load() == before {
		t.Fatal("job was never processed")
	}
}

func TestFailedJobExhaustsRetries(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	beforeCalls := failCalls.Load()
	beforeFailed := len(queue.FailedJobs())

	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for len(queue.FailedJobs()) == beforeFailed && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	if failCalls.Load() == beforeCalls {
		t.Fatal("job was never attempted")
	}
	if len(queue.FailedJobs()) == beforeFailed {
		t.Fatal("expected the failure to be recorded")
	}
}

func TestDispatchAfter(t *testing.T) {
	before := echoCalls.Load()
	queue.DispatchAfter(&echoJob{Val: "later"}, 50*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if echoCalls.Load() != before {
		t.Error("job ran before its delay elapsed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoCalls.Load() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if echoCalls.Load() == before {
		t.Fatal("delayed job was never processed")
	}
}
