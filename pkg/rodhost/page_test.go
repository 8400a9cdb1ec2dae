package rodhost

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdirty/pkg/dirty"
	"github.com/goliatone/go-formdirty/pkg/editors"
)

type staticScope []dirty.Form

func (s staticScope) Forms() []dirty.Form { return s }

func TestDecodeForms(t *testing.T) {
	raw := `[{"id":"profile","name":"","classes":["edit"],"fields":[
		{"id":"t","name":"title","type":"text","classes":[],"value":"a","checked":false},
		{"id":"","name":"agree","type":"checkbox","classes":[],"value":"yes","checked":true}
	]}]`

	forms, err := decodeForms([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected 1 form, got %d", len(forms))
	}
	form := forms[0]
	if form.ID() != "profile" {
		t.Fatalf("form id = %q", form.ID())
	}
	if diff := cmp.Diff([]string{"edit"}, form.Classes()); diff != "" {
		t.Fatalf("classes (-want +got):\n%s", diff)
	}

	fields := form.Fields()
	if len(fields) != 2 || fields[0].Name() != "title" || !fields[1].Checked() {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDecodeForms_Invalid(t *testing.T) {
	if _, err := decodeForms([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodedFormsDriveTracker(t *testing.T) {
	before, err := decodeForms([]byte(`[{"id":"f","fields":[{"name":"a","type":"text","value":"1"}]}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	after, err := decodeForms([]byte(`[{"id":"f","fields":[{"name":"a","type":"text","value":"2"}]}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	scope := staticScope(before)
	tracker := dirty.New(&scope)
	tracker.Snapshot(nil)
	if tracker.IsDirty() {
		t.Fatalf("fresh snapshot must be clean")
	}
	scope = staticScope(after)
	if !tracker.IsDirty() {
		t.Fatalf("value change must be dirty")
	}
}

func TestRegistry(t *testing.T) {
	p := New(nil)

	reg, err := Registry(p)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{editors.TinyMCE, editors.CKEditor}, reg.Names()); diff != "" {
		t.Fatalf("default order (-want +got):\n%s", diff)
	}

	reg, err = Registry(p, " CKEditor ", "tinymce")
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{editors.CKEditor, editors.TinyMCE}, reg.Names()); diff != "" {
		t.Fatalf("custom order (-want +got):\n%s", diff)
	}

	if _, err := Registry(p, "quill"); err == nil {
		t.Fatalf("expected unknown editor error")
	}
}

func TestAdaptersDegradeWithoutPage(t *testing.T) {
	p := New(nil)
	adapter := TinyMCE(p)
	if _, ok := adapter.Detect("body"); ok {
		t.Fatalf("detect without a page must fail closed")
	}
	if !adapter.IsDirty("body") {
		t.Fatalf("dirty check without a page must keep the raw result")
	}
	if got := p.Forms(); got != nil {
		t.Fatalf("forms without a page = %v, want nil", got)
	}
}
