package core

import (
	"fmt"

	"github.com/spaghettifunk/topdown/engine/containers"
)

type EventType uint16

const (
	// Shuts the application down at the top of the next frame.
	EventQuit EventType = iota + 1

	// Keyboard key pressed. Context: Key.
	EventKeyPressed

	// Keyboard key released. Context: Key.
	EventKeyReleased

	// Mouse button pressed. Context: Button, X, Y.
	EventButtonPressed

	// Mouse button released. Context: Button, X, Y.
	EventButtonReleased

	// Mouse moved. Context: X, Y in window pixels.
	EventMouseMoved

	// Mouse wheel. Context: Delta.
	EventMouseWheel

	// Resized/resolution changed from the OS. Context: X = width, Y = height.
	EventResized

	maxEventType
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventKeyPressed:
		return "key_pressed"
	case EventKeyReleased:
		return "key_released"
	case EventButtonPressed:
		return "button_pressed"
	case EventButtonReleased:
		return "button_released"
	case EventMouseMoved:
		return "mouse_moved"
	case EventMouseWheel:
		return "mouse_wheel"
	case EventResized:
		return "resized"
	}
	return fmt.Sprintf("event(%d)", uint16(t))
}

type Event struct {
	Type   EventType
	Key    KeyCode
	Button Button
	X      int32
	Y      int32
	Delta  int8
}

// EventQueue buffers platform events between two frames. It is owned by the
// loop thread: platform callbacks push while messages are pumped and the
// engine drains right after.
type EventQueue struct {
	queue *containers.RingQueue[Event]
}

func NewEventQueue(size int) *EventQueue {
	return &EventQueue{queue: containers.NewRingQueue[Event](size)}
}

func (q *EventQueue) Push(e Event) {
	q.queue.Enqueue(e)
}

func (q *EventQueue) Len() int {
	return q.queue.Len()
}

// Drain hands every pending event to fn in arrival order, including events
// pushed by fn itself, and returns how many were consumed.
func (q *EventQueue) Drain(fn func(Event)) int {
	n := 0
	for !q.queue.IsEmpty() {
		e, err := q.queue.Dequeue()
		if err != nil {
			break
		}
		fn(e)
		n++
	}
	return n
}

// Should return true if handled.
type FnOnEvent func(e Event) bool

type ListenerID uint32

type registeredEvent struct {
	id       ListenerID
	callback FnOnEvent
}

// EventBus routes events to listeners registered per event type.
type EventBus struct {
	registered [maxEventType][]registeredEvent
	nextID     ListenerID
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Register a listener for the given event type. Listeners run in
// registration order.
func (b *EventBus) Register(t EventType, onEvent FnOnEvent) (ListenerID, error) {
	if t == 0 || t >= maxEventType {
		return 0, fmt.Errorf("register: unknown event type %d", t)
	}
	if onEvent == nil {
		return 0, fmt.Errorf("register: nil callback for %s", t)
	}
	b.nextID++
	b.registered[t] = append(b.registered[t], registeredEvent{id: b.nextID, callback: onEvent})
	return b.nextID, nil
}

// Unregister removes a listener; it returns false when nothing matched.
func (b *EventBus) Unregister(t EventType, id ListenerID) bool {
	if t == 0 || t >= maxEventType {
		return false
	}
	events := b.registered[t]
	for i := range events {
		if events[i].id == id {
			b.registered[t] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fire passes the event to listeners of its type. If a listener returns
// true the event is considered handled and is not passed on any further.
func (b *EventBus) Fire(e Event) bool {
	if e.Type == 0 || e.Type >= maxEventType {
		return false
	}
	for _, r := range b.registered[e.Type] {
		if r.callback(e) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() {
	for i := range b.registered {
		b.registered[i] = nil
	}
}
