package dirty

import "strings"

// Field is the read side of a form control as exposed by the host DOM layer.
// Type reports the lower-case control type (text, checkbox, radio, textarea,
// select-one, hidden, ...).
type Field interface {
	ID() string
	Name() string
	Type() string
	Classes() []string
	Value() string
	Checked() bool
}

// Form is a live form element.
type Form interface {
	ID() string
	Name() string
	Classes() []string
	Fields() []Field
}

// Scope enumerates the forms of a document or of a subtree of it.
type Scope interface {
	Forms() []Form
}

// SubmitHandler runs when a form submits. Returning false cancels the submit.
type SubmitHandler func() bool

// Submittable is implemented by forms whose submit handler can be replaced.
// The tracker wraps the existing handler while a form is tracked and restores
// it on Clear.
type Submittable interface {
	SubmitHandler() SubmitHandler
	SetSubmitHandler(SubmitHandler)
}

// Keyed is implemented by forms that can name the live element they wrap.
// Wrappers of the same element return equal, comparable keys, which lets the
// tracker tell a re-rendered form from the one it already hooked.
type Keyed interface {
	Key() any
}

// Field types that never take part in dirty checking.
var excludedTypes = map[string]struct{}{
	"submit": {},
	"button": {},
	"reset":  {},
	"image":  {},
	"file":   {},
}

// FieldSnapshot records a field value at snapshot time. Value is nil for an
// unchecked checkbox or a radio group without a selection. ElementID keeps
// the DOM id used to look up rich-text editors.
type FieldSnapshot struct {
	ID        string
	ElementID string
	Type      string
	Value     *string
}

// FormSnapshot maps field identifiers to their captured state.
type FormSnapshot struct {
	ID     string
	Fields map[string]FieldSnapshot
}

// Equal reports whether both snapshots hold the same value.
func (f FieldSnapshot) Equal(other FieldSnapshot) bool {
	return equalValue(f.Value, other.Value)
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func valueOf(s string) *string {
	return &s
}

func formID(form Form) string {
	if form == nil {
		return ""
	}
	if id := strings.TrimSpace(form.ID()); id != "" {
		return id
	}
	return strings.TrimSpace(form.Name())
}

func fieldID(field Field) string {
	if field == nil {
		return ""
	}
	if name := strings.TrimSpace(field.Name()); name != "" {
		return name
	}
	return strings.TrimSpace(field.ID())
}

func fieldType(field Field) string {
	return strings.ToLower(strings.TrimSpace(field.Type()))
}

func cloneSnapshot(src FormSnapshot) FormSnapshot {
	out := FormSnapshot{
		ID:     src.ID,
		Fields: make(map[string]FieldSnapshot, len(src.Fields)),
	}
	for key, field := range src.Fields {
		if field.Value != nil {
			field.Value = valueOf(*field.Value)
		}
		out.Fields[key] = field
	}
	return out
}
