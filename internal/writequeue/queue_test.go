package writequeue

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTasksRunInSubmissionOrder(t *testing.T) {
	q := New(100)
	defer q.Close()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		q.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	q.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 50 {
		t.Fatalf("ran %d tasks, want 50", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestSaturatedQueueRunsOnCaller(t *testing.T) {
	q := New(1)
	defer q.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	q.Submit(func() {
		close(started)
		<-release
	})
	<-started

	// Consumer is busy, so this fills the single buffer slot.
	q.Submit(func() {})

	// Release the busy task only once the overflow submit has gone inline.
	go func() {
		for q.CallerRuns() == 0 {
			time.Sleep(time.Millisecond)
		}
		close(release)
	}()

	ranInline := false
	q.Submit(func() { ranInline = true })
	q.Flush()

	if !ranInline {
		t.Error("saturated submit should have executed the task")
	}
	if q.CallerRuns() != 1 {
		t.Errorf("CallerRuns() = %d, want 1", q.CallerRuns())
	}
}

func TestCloseDrainsPendingTasks(t *testing.T) {
	q := New(10)

	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		q.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 10 {
		t.Errorf("count = %d after Close, want 10", count)
	}
}

func TestSubmitAfterCloseRunsInline(t *testing.T) {
	q := New(1)
	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	ran := false
	q.Submit(func() { ran = true })
	if !ran {
		t.Error("submit after close should run synchronously")
	}
}

func TestPanickingTaskDoesNotKillConsumer(t *testing.T) {
	q := New(4)
	defer q.Close()

	q.Submit(func() { panic("boom") })
	ran := false
	q.Submit(func() { ran = true })
	q.Flush()

	if !ran {
		t.Error("task after a panic should still run")
	}
}
