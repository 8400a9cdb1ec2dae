package rodhost

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdirty/pkg/editors"
)

// scriptAdapter asks an editor library loaded in the page. Evaluation errors
// count as "not detected" for Detect and "dirty" for IsDirty, leaving the raw
// value comparison in charge.
type scriptAdapter struct {
	name   string
	page   *Page
	detect string
	dirty  string
}

// TinyMCE returns an adapter for TinyMCE editors (tinymce.get(id).isDirty()).
func TinyMCE(p *Page) editors.Adapter {
	return scriptAdapter{name: editors.TinyMCE, page: p, detect: tinyMCEDetectScript, dirty: tinyMCEDirtyScript}
}

// CKEditor returns an adapter for CKEditor 4 instances
// (CKEDITOR.instances[id].checkDirty()).
func CKEditor(p *Page) editors.Adapter {
	return scriptAdapter{name: editors.CKEditor, page: p, detect: ckeditorDetectScript, dirty: ckeditorDirtyScript}
}

func (a scriptAdapter) Name() string {
	return a.name
}

func (a scriptAdapter) Detect(id string) (editors.Handle, bool) {
	found, err := a.page.evalBool(a.page.ctx, a.detect, id)
	if err != nil {
		a.page.logger.Debug("rodhost: editor detect failed", "editor", a.name, "id", id, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return id, true
}

func (a scriptAdapter) IsDirty(handle editors.Handle) bool {
	id, ok := handle.(string)
	if !ok {
		return true
	}
	dirty, err := a.page.evalBool(a.page.ctx, a.dirty, id)
	if err != nil {
		a.page.logger.Debug("rodhost: editor dirty check failed", "editor", a.name, "id", id, "error", err)
		return true
	}
	return dirty
}

var builtins = map[string]func(*Page) editors.Adapter{
	editors.TinyMCE:  TinyMCE,
	editors.CKEditor: CKEditor,
}

// Registry builds an editor registry for the page with adapters in the
// order named. With no names both built-ins are registered, TinyMCE first.
func Registry(p *Page, names ...string) (*editors.Registry, error) {
	if len(names) == 0 {
		names = []string{editors.TinyMCE, editors.CKEditor}
	}
	reg := editors.NewRegistry()
	for _, name := range names {
		build, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("rodhost: unknown editor %q", name)
		}
		reg.Register(build(p))
	}
	return reg, nil
}
