package bridge

import "sync"

// Shell keeps calls alive while their result is pending.
type Shell interface {
	// SaveCall retains call until it is released.
	SaveCall(call *Call)

	// ReleaseCall drops a previously saved call.
	ReleaseCall(call *Call)
}

// CallStore is an in-memory Shell.
type CallStore struct {
	mu    sync.Mutex
	calls map[string]*Call
}

// NewCallStore creates an empty CallStore.
func NewCallStore() *CallStore {
	return &CallStore{calls: make(map[string]*Call)}
}

// SaveCall implements Shell.
func (s *CallStore) SaveCall(call *Call) {
	s.mu.Lock()
	s.calls[call.ID] = call
	s.mu.Unlock()
}

// ReleaseCall implements Shell.
func (s *CallStore) ReleaseCall(call *Call) {
	s.mu.Lock()
	delete(s.calls, call.ID)
	s.mu.Unlock()
}

// Get returns a saved call by id.
func (s *CallStore) Get(id string) (*Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.calls[id]
	return c, ok
}

// Len returns the number of saved calls.
func (s *CallStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var _ Shell = (*CallStore)(nil)
