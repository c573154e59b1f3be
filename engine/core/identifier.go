package core

import (
	"fmt"
	"sync"
)

// Identifiers hands out small integer handles and remembers their owners.
// Released slots are reused before the table grows, and whatever is still
// live at shutdown is a leaked handle.
type Identifiers struct {
	mu     sync.Mutex
	owners []interface{}
	live   int
}

func NewIdentifiers() *Identifiers {
	return &Identifiers{owners: make([]interface{}, 0, 16)}
}

func (ids *Identifiers) Acquire(owner interface{}) uint32 {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	ids.live++
	for i := range ids.owners {
		// Existing free spot. Take it.
		if ids.owners[i] == nil {
			ids.owners[i] = owner
			return uint32(i)
		}
	}

	// No free slot, push a new one. The id is the previous length.
	ids.owners = append(ids.owners, owner)
	return uint32(len(ids.owners) - 1)
}

func (ids *Identifiers) Release(id uint32) error {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	if int(id) >= len(ids.owners) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d)", id, len(ids.owners))
	}
	if ids.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use", id)
	}
	ids.owners[id] = nil
	ids.live--
	return nil
}

func (ids *Identifiers) Owner(id uint32) interface{} {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	if int(id) >= len(ids.owners) {
		return nil
	}
	return ids.owners[id]
}

// Live returns how many identifiers are currently acquired.
func (ids *Identifiers) Live() int {
	ids.mu.Lock()
	defer ids.mu.Unlock()
	return ids.live
}
