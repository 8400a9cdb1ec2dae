package dirty

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formdirty/pkg/editors"
)

// Tracker owns the snapshot of one page. Create one per page load with New,
// call Snapshot once the document is ready, and ask UnloadWarning before the
// host navigates away.
type Tracker struct {
	mu sync.Mutex

	doc           Scope
	logger        *slog.Logger
	exclude       map[string]struct{}
	editors       *editors.Registry
	warning       string
	resetOnCancel bool

	forms     map[string]FormSnapshot
	hooks     map[string]submitHook
	submitted bool
}

type submitHook struct {
	form     Submittable
	key      any
	original SubmitHandler
}

// stale reports whether live is no longer the element the hook wrapped: the
// observer was dropped, or a keyed host reports a different element.
func (h submitHook) stale(live Submittable) bool {
	if live.SubmitHandler() == nil {
		return true
	}
	key := formKey(live)
	return key != nil && key != h.key
}

// New constructs a tracker bound to the supplied document. The tracker starts
// empty; nothing is captured until Snapshot runs.
func New(doc Scope, options ...Option) *Tracker {
	t := &Tracker{
		doc:           doc,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		exclude:       map[string]struct{}{DefaultExcludeClass: {}},
		warning:       DefaultWarning,
		resetOnCancel: true,
		forms:         make(map[string]FormSnapshot),
		hooks:         make(map[string]submitHook),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Snapshot captures every trackable form in scope, replacing earlier
// snapshots for the same identifiers. A nil scope means the whole document.
// Submittable forms get a submit observer that raises the submitted flag. A
// form re-attached under a known identifier is hooked again.
func (t *Tracker) Snapshot(scope Scope) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	forms := t.captureForms(t.resolve(scope))
	for id, form := range forms {
		t.forms[id] = t.captureFields(id, form)
		sub, ok := form.(Submittable)
		if !ok {
			continue
		}
		if hook, hooked := t.hooks[id]; hooked {
			if !hook.stale(sub) {
				continue
			}
			t.logger.Debug("dirty: form re-attached, hooking submit again", "form", id)
			t.unhook(id)
		}
		original := sub.SubmitHandler()
		t.hooks[id] = submitHook{form: sub, key: formKey(sub), original: original}
		sub.SetSubmitHandler(t.observer(original))
	}
	t.logger.Debug("dirty: snapshot taken", "forms", len(forms), "tracked", len(t.forms))
}

// Clear stops tracking the forms in scope, restoring their original submit
// handlers, and then drops every remaining snapshot. A nil scope means the
// whole document.
func (t *Tracker) Clear(scope Scope) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.captureForms(t.resolve(scope)) {
		if _, tracked := t.forms[id]; !tracked {
			continue
		}
		t.unhook(id)
		delete(t.forms, id)
	}
	for id := range t.hooks {
		t.unhook(id)
	}
	t.forms = make(map[string]FormSnapshot)
	t.logger.Debug("dirty: snapshot cleared")
}

// Tracked returns the sorted identifiers of the forms currently tracked.
func (t *Tracker) Tracked() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedKeys(t.forms)
}

// Saved returns a copy of the snapshot stored for a form.
func (t *Tracker) Saved(id string) (FormSnapshot, bool) {
	if t == nil {
		return FormSnapshot{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	snap, ok := t.forms[id]
	if !ok {
		return FormSnapshot{}, false
	}
	return cloneSnapshot(snap), true
}

// UnloadWarning reports the message a host should show before navigating
// away. It returns false when the page was submitted or nothing changed.
func (t *Tracker) UnloadWarning() (string, bool) {
	if t == nil {
		return "", false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted {
		return "", false
	}
	if !t.isDirty() {
		return "", false
	}
	return t.warning, true
}

// MarkSubmitted raises the submitted flag for hosts that observe submission
// themselves.
func (t *Tracker) MarkSubmitted() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.submitted = true
	t.mu.Unlock()
}

// ResetSubmitted lowers the submitted flag so later navigation is checked
// again, e.g. after a failed asynchronous submit.
func (t *Tracker) ResetSubmitted() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.submitted = false
	t.mu.Unlock()
}

// Submitted reports whether a submit was observed.
func (t *Tracker) Submitted() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitted
}

func (t *Tracker) resolve(scope Scope) Scope {
	if scope == nil {
		return t.doc
	}
	return scope
}

func (t *Tracker) observer(original SubmitHandler) SubmitHandler {
	return func() bool {
		t.mu.Lock()
		previous := t.submitted
		t.submitted = true
		t.mu.Unlock()

		if original == nil {
			return true
		}
		if original() {
			return true
		}
		if t.resetOnCancel {
			t.mu.Lock()
			t.submitted = previous
			t.mu.Unlock()
		}
		return false
	}
}

func (t *Tracker) unhook(id string) {
	hook, ok := t.hooks[id]
	if !ok {
		return
	}
	hook.form.SetSubmitHandler(hook.original)
	delete(t.hooks, id)
}

// captureForms maps form identifiers to live forms, skipping forms without an
// identifier or carrying an exclusion class. The first form wins when two
// share an identifier.
func (t *Tracker) captureForms(scope Scope) map[string]Form {
	out := make(map[string]Form)
	if scope == nil {
		return out
	}
	for _, form := range scope.Forms() {
		id := formID(form)
		if id == "" || t.excluded(form.Classes()) {
			continue
		}
		if _, exists := out[id]; exists {
			t.logger.Debug("dirty: duplicate form identifier", "form", id)
			continue
		}
		out[id] = form
	}
	return out
}

// captureFields records the current value of every trackable field. Fields
// sharing an identifier collapse into one entry.
func (t *Tracker) captureFields(id string, form Form) FormSnapshot {
	snap := FormSnapshot{ID: id, Fields: make(map[string]FieldSnapshot)}
	if form == nil {
		return snap
	}
	var fields []Field
	for _, field := range form.Fields() {
		if t.trackable(field) {
			fields = append(fields, field)
		}
	}
	for _, field := range fields {
		key := fieldID(field)
		if _, seen := snap.Fields[key]; seen {
			continue
		}
		snap.Fields[key] = FieldSnapshot{
			ID:        key,
			ElementID: field.ID(),
			Type:      fieldType(field),
			Value:     readValue(field, fields),
		}
	}
	return snap
}

func (t *Tracker) trackable(field Field) bool {
	if field == nil || fieldID(field) == "" {
		return false
	}
	if _, skip := excludedTypes[fieldType(field)]; skip {
		return false
	}
	return !t.excluded(field.Classes())
}

func (t *Tracker) excluded(classes []string) bool {
	if len(t.exclude) == 0 {
		return false
	}
	for _, class := range classes {
		if _, ok := t.exclude[class]; ok {
			return true
		}
	}
	return false
}

// formKey returns the element key of a keyed host form, nil otherwise.
func formKey(form any) any {
	if keyed, ok := form.(Keyed); ok {
		return keyed.Key()
	}
	return nil
}

// readValue returns the comparable value of a field. siblings holds the
// trackable fields of the same form. Radio groups resolve to the checked
// member sharing the field's name. Checkbox groups join the values of their
// checked members in document order with ",". Groups with nothing checked
// yield nil.
func readValue(field Field, siblings []Field) *string {
	kind := fieldType(field)
	name := fieldID(field)
	switch kind {
	case "checkbox", "radio":
		var checked []string
		for _, candidate := range siblings {
			if fieldType(candidate) != kind || fieldID(candidate) != name || !candidate.Checked() {
				continue
			}
			checked = append(checked, candidate.Value())
			if kind == "radio" {
				break
			}
		}
		if len(checked) == 0 {
			return nil
		}
		return valueOf(strings.Join(checked, ","))
	default:
		return valueOf(field.Value())
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
