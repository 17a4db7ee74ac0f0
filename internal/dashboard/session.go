package dashboard

import "sync"

// Session holds per-viewer UI state: which rows have their chart expanded.
// Each session gets its own; nothing here is shared between viewers.
type Session struct {
	mu       sync.Mutex
	expanded map[string]bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{expanded: make(map[string]bool)}
}

// RowID is the stable identifier for an instrument row.
func RowID(group, symbol string) string {
	return group + "/" + symbol
}

// Toggle flips a row and returns its new state.
func (s *Session) Toggle(rowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[rowID] = !s.expanded[rowID]
	return s.expanded[rowID]
}

// Expanded reports whether a row is open.
func (s *Session) Expanded(rowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[rowID]
}

// Reset collapses every row.
func (s *Session) Reset() {
	s.mu.Lock()
	s.expanded = make(map[string]bool)
	s.mu.Unlock()
}
