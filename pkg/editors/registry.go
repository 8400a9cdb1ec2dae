package editors

import (
	"strings"
	"sync"
)

// Built-in adapter names understood by hosts and configuration files.
const (
	TinyMCE  = "tinymce"
	CKEditor = "ckeditor"
)

// Handle is an adapter specific reference to a detected editor instance.
type Handle any

// Adapter integrates one third-party rich-text editor. Detect looks up the
// editor attached to a DOM element id; IsDirty asks that editor whether its
// content was modified. An adapter whose library is not loaded must report
// "not detected" instead of failing.
type Adapter interface {
	Name() string
	Detect(id string) (Handle, bool)
	IsDirty(handle Handle) bool
}

// Registry keeps adapters in priority order: the first registered adapter
// that detects an element wins. An empty registry never detects anything.
type Registry struct {
	mu       sync.RWMutex
	adapters []Adapter
}

// NewRegistry constructs a registry holding the supplied adapters in order.
func NewRegistry(adapters ...Adapter) *Registry {
	reg := &Registry{}
	for _, adapter := range adapters {
		reg.Register(adapter)
	}
	return reg
}

// Register appends an adapter. Registering a name twice replaces the earlier
// adapter in place, keeping its priority slot.
func (r *Registry) Register(adapter Adapter) {
	if r == nil || adapter == nil {
		return
	}
	name := strings.TrimSpace(adapter.Name())
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, existing := range r.adapters {
		if strings.TrimSpace(existing.Name()) == name {
			r.adapters[idx] = adapter
			return
		}
	}
	r.adapters = append(r.adapters, adapter)
}

// Names lists adapter names in priority order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		names = append(names, adapter.Name())
	}
	return names
}

// Resolve returns the first adapter that recognises the element id.
func (r *Registry) Resolve(id string) (Adapter, Handle, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return nil, nil, false
	}
	r.mu.RLock()
	adapters := append([]Adapter(nil), r.adapters...)
	r.mu.RUnlock()

	for _, adapter := range adapters {
		if handle, ok := detect(adapter, id); ok {
			return adapter, handle, true
		}
	}
	return nil, nil, false
}

// Check resolves the element and reports the editor's own modification flag.
// recognised is false when no adapter claims the element.
func (r *Registry) Check(id string) (dirty, recognised bool) {
	adapter, handle, ok := r.Resolve(id)
	if !ok {
		return false, false
	}
	return isDirty(adapter, handle), true
}

func detect(adapter Adapter, id string) (handle Handle, ok bool) {
	defer func() {
		if recover() != nil {
			handle, ok = nil, false
		}
	}()
	return adapter.Detect(id)
}

// isDirty treats a panicking adapter as dirty so raw comparison stands.
func isDirty(adapter Adapter, handle Handle) (dirty bool) {
	defer func() {
		if recover() != nil {
			dirty = true
		}
	}()
	return adapter.IsDirty(handle)
}
