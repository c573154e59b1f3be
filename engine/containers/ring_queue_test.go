package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](4)
	for i := 1; i <= 3; i++ {
		rq.Enqueue(i)
	}
	for want := 1; want <= 3; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: unexpected error %v", err)
		}
		if got != want {
			t.Errorf("Dequeue = %d, want %d", got, want)
		}
	}
	if !rq.IsEmpty() {
		t.Errorf("queue should be empty, has %d elements", rq.Len())
	}
}

func TestRingQueueGrowsPreservingOrder(t *testing.T) {
	rq := NewRingQueue[int](2)

	// Move the read index off zero so growth has to unwrap the buffer.
	rq.Enqueue(0)
	if _, err := rq.Dequeue(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 9; i++ {
		rq.Enqueue(i)
	}
	if rq.Len() != 9 {
		t.Fatalf("Len = %d, want 9", rq.Len())
	}
	if rq.Cap() < 9 {
		t.Fatalf("Cap = %d, want >= 9", rq.Cap())
	}
	for want := 1; want <= 9; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("Dequeue = %d, want %d", got, want)
		}
	}
}

func TestRingQueueEmptyErrors(t *testing.T) {
	rq := NewRingQueue[string](0)
	if rq.Cap() != 1 {
		t.Errorf("Cap = %d, want 1 for non-positive size", rq.Cap())
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Dequeue on empty queue: got %v, want ErrQueueEmpty", err)
	}
	if _, err := rq.Peek(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Peek on empty queue: got %v, want ErrQueueEmpty", err)
	}

	rq.Enqueue("a")
	if v, err := rq.Peek(); err != nil || v != "a" {
		t.Errorf("Peek = %q, %v; want \"a\", nil", v, err)
	}
	if rq.Len() != 1 {
		t.Errorf("Peek must not remove the element")
	}
}
