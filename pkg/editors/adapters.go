package editors

import (
	"strings"
	"sync"
)

// Func builds an adapter from two closures. A nil DetectFn never detects and
// a nil DirtyFn reports dirty.
type Func struct {
	ID       string
	DetectFn func(id string) (Handle, bool)
	DirtyFn  func(handle Handle) bool
}

func (f Func) Name() string {
	return f.ID
}

func (f Func) Detect(id string) (Handle, bool) {
	if f.DetectFn == nil {
		return nil, false
	}
	return f.DetectFn(id)
}

func (f Func) IsDirty(handle Handle) bool {
	if f.DirtyFn == nil {
		return true
	}
	return f.DirtyFn(handle)
}

// Static answers from a fixed table of element ids to modification flags.
// Hosts that already know editor state (or tests) can feed it directly.
type Static struct {
	name string
	mu   sync.RWMutex
	ids  map[string]bool
}

// NewStatic constructs an empty static adapter.
func NewStatic(name string) *Static {
	return &Static{name: strings.TrimSpace(name), ids: make(map[string]bool)}
}

// Set records the modification flag reported for an element id.
func (s *Static) Set(id string, dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[strings.TrimSpace(id)] = dirty
}

// Forget removes an element id, so it is no longer detected.
func (s *Static) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, strings.TrimSpace(id))
}

func (s *Static) Name() string {
	return s.name
}

func (s *Static) Detect(id string) (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.ids[id]; !ok {
		return nil, false
	}
	return id, true
}

func (s *Static) IsDirty(handle Handle) bool {
	id, _ := handle.(string)
	s.mu.RLock()
	defer s.mu.RUnlock()
	dirty, ok := s.ids[id]
	return !ok || dirty
}
