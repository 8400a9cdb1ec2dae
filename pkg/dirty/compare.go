package dirty

import "strings"

// ChangeKind classifies a difference between the snapshot and the live page.
type ChangeKind string

const (
	FormAdded    ChangeKind = "form-added"
	FormRemoved  ChangeKind = "form-removed"
	FieldAdded   ChangeKind = "field-added"
	FieldRemoved ChangeKind = "field-removed"
	FieldChanged ChangeKind = "field-changed"
)

// Change describes one difference. Field is empty for form level changes.
type Change struct {
	Kind   ChangeKind
	Form   string
	Field  string
	Before *string
	After  *string
}

// String renders the change for logs and reports.
func (c Change) String() string {
	var b strings.Builder
	b.WriteString(string(c.Kind))
	b.WriteString(" ")
	b.WriteString(c.Form)
	if c.Field != "" {
		b.WriteString(".")
		b.WriteString(c.Field)
	}
	if c.Kind == FieldChanged {
		b.WriteString(": ")
		b.WriteString(display(c.Before))
		b.WriteString(" -> ")
		b.WriteString(display(c.After))
	}
	return b.String()
}

func display(value *string) string {
	if value == nil {
		return "<unset>"
	}
	return "\"" + *value + "\""
}

// IsDirty reports whether the live document differs from the snapshot: a form
// or field was added or removed, or a field value changed. Rich-text editors
// that report themselves unmodified override a raw value mismatch on their
// backing field.
func (t *Tracker) IsDirty() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isDirty()
}

// Changes lists every difference between the snapshot and the live document,
// ordered by form and field identifier.
func (t *Tracker) Changes() []Change {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var changes []Change
	t.walk(func(change Change) bool {
		changes = append(changes, change)
		return true
	})
	return changes
}

func (t *Tracker) isDirty() bool {
	dirty := false
	t.walk(func(change Change) bool {
		t.logger.Debug("dirty: change detected", "kind", change.Kind, "form", change.Form, "field", change.Field)
		dirty = true
		return false
	})
	return dirty
}

// walk feeds each difference to visit until visit returns false.
func (t *Tracker) walk(visit func(Change) bool) {
	live := t.captureForms(t.doc)

	for _, id := range sortedKeys(live) {
		if _, tracked := t.forms[id]; !tracked {
			if !visit(Change{Kind: FormAdded, Form: id}) {
				return
			}
		}
	}
	for _, id := range sortedKeys(t.forms) {
		if _, present := live[id]; !present {
			if !visit(Change{Kind: FormRemoved, Form: id}) {
				return
			}
		}
	}

	for _, id := range sortedKeys(t.forms) {
		form, present := live[id]
		if !present {
			continue
		}
		if !t.compareFields(t.forms[id], t.captureFields(id, form), visit) {
			return
		}
	}
}

// compareFields returns false once visit asked to stop.
func (t *Tracker) compareFields(saved, current FormSnapshot, visit func(Change) bool) bool {
	for _, key := range sortedKeys(saved.Fields) {
		before := saved.Fields[key]
		after, present := current.Fields[key]
		if !present {
			if !visit(Change{Kind: FieldRemoved, Form: saved.ID, Field: key, Before: before.Value}) {
				return false
			}
			continue
		}
		if before.Equal(after) || t.editorClean(after) {
			continue
		}
		if !visit(Change{Kind: FieldChanged, Form: saved.ID, Field: key, Before: before.Value, After: after.Value}) {
			return false
		}
	}
	for _, key := range sortedKeys(current.Fields) {
		if _, known := saved.Fields[key]; known {
			continue
		}
		if !visit(Change{Kind: FieldAdded, Form: saved.ID, Field: key, After: current.Fields[key].Value}) {
			return false
		}
	}
	return true
}

// editorClean reports whether a rich-text editor backs the field and says it
// has not been modified.
func (t *Tracker) editorClean(field FieldSnapshot) bool {
	if t.editors == nil {
		return false
	}
	switch field.Type {
	case "textarea", "hidden":
	default:
		return false
	}
	id := strings.TrimSpace(field.ElementID)
	if id == "" {
		id = field.ID
	}
	dirty, recognised := t.editors.Check(id)
	if !recognised {
		return false
	}
	return !dirty
}
