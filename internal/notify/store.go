package notify

import "sync"

// Store accumulates delivered notifications. The dispatcher appends in
// call order; tests and the delivery API read and reset explicitly, so
// no state hides at package level.
type Store interface {
	Append(res SendResult)
	Delivered() []SendResult
	Reset()
}

// MemoryStore is the in-process Store. Appends and reads are mutex
// guarded so the dispatcher can be shared across request handlers.
type MemoryStore struct {
	mu        sync.Mutex
	delivered []SendResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(res SendResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, res)
}

// Delivered returns a copy; callers cannot mutate the log through it.
func (s *MemoryStore) Delivered() []SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SendResult, len(s.delivered))
	copy(out, s.delivered)
	return out
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = s.delivered[:0]
}
