package core

import "testing"

func TestEventQueueDrainsInOrder(t *testing.T) {
	q := NewEventQueue(2)
	q.Push(Event{Type: EventKeyPressed, Key: KEY_W})
	q.Push(Event{Type: EventMouseMoved, X: 10, Y: 20})
	q.Push(Event{Type: EventKeyReleased, Key: KEY_W})

	var got []EventType
	n := q.Drain(func(e Event) {
		got = append(got, e.Type)
	})
	if n != 3 {
		t.Fatalf("Drain consumed %d events, want 3", n)
	}
	want := []EventType{EventKeyPressed, EventMouseMoved, EventKeyReleased}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after Drain: %d", q.Len())
	}
}

func TestEventQueueDrainIncludesEventsPushedWhileDraining(t *testing.T) {
	q := NewEventQueue(4)
	q.Push(Event{Type: EventKeyPressed, Key: KEY_ESCAPE})

	var got []EventType
	q.Drain(func(e Event) {
		got = append(got, e.Type)
		if e.Type == EventKeyPressed {
			q.Push(Event{Type: EventQuit})
		}
	})
	if len(got) != 2 || got[1] != EventQuit {
		t.Fatalf("got %v, want [key_pressed quit]", got)
	}
}

func TestEventBusStopsAtFirstHandler(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	if _, err := bus.Register(EventQuit, func(Event) bool {
		calls = append(calls, "first")
		return true
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := bus.Register(EventQuit, func(Event) bool {
		calls = append(calls, "second")
		return false
	}); err != nil {
		t.Fatal(err)
	}

	if !bus.Fire(Event{Type: EventQuit}) {
		t.Error("Fire should report the event as handled")
	}
	if len(calls) != 1 || calls[0] != "first" {
		t.Errorf("calls = %v, want [first]", calls)
	}
}

func TestEventBusUnregister(t *testing.T) {
	bus := NewEventBus()
	fired := 0
	id, err := bus.Register(EventMouseMoved, func(Event) bool {
		fired++
		return false
	})
	if err != nil {
		t.Fatal(err)
	}

	bus.Fire(Event{Type: EventMouseMoved})
	if !bus.Unregister(EventMouseMoved, id) {
		t.Fatal("Unregister should find the listener")
	}
	if bus.Unregister(EventMouseMoved, id) {
		t.Error("second Unregister should report false")
	}
	bus.Fire(Event{Type: EventMouseMoved})

	if fired != 1 {
		t.Errorf("listener fired %d times, want 1", fired)
	}
}

func TestEventBusRejectsBadRegistrations(t *testing.T) {
	bus := NewEventBus()
	if _, err := bus.Register(0, func(Event) bool { return false }); err == nil {
		t.Error("expected an error for the zero event type")
	}
	if _, err := bus.Register(EventQuit, nil); err == nil {
		t.Error("expected an error for a nil callback")
	}
	if bus.Fire(Event{}) {
		t.Error("zero event must not be handled")
	}
}
