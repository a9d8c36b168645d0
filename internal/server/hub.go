package server

import "sync"

// subscriberBuffer is how many unread results a slow subscriber may queue
// before further results for it are dropped
const subscriberBuffer = 16

// hub fans command results out to the subscribers of each table
type hub struct {
	mu     sync.Mutex
	tables map[string]map[chan *CommandResult]struct{}
}

func newHub() *hub {
	return &hub{tables: make(map[string]map[chan *CommandResult]struct{})}
}

func (h *hub) subscribe(id string) (<-chan *CommandResult, func()) {
	ch := make(chan *CommandResult, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.tables[id]
	if !ok {
		subs = make(map[chan *CommandResult]struct{})
		h.tables[id] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(id, ch) })
	}
}

func (h *hub) unsubscribe(id string, ch chan *CommandResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.tables[id]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(h.tables, id)
	}
}

// publish never blocks; a full subscriber misses the result
func (h *hub) publish(id string, res *CommandResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.tables[id] {
		select {
		case ch <- res:
		default:
		}
	}
}

// close ends every subscription to a table
func (h *hub) close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.tables[id] {
		close(ch)
	}
	delete(h.tables, id)
}

func (h *hub) count(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tables[id])
}
