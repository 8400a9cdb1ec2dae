package formdirty_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formdirty "github.com/goliatone/go-formdirty"
	"github.com/goliatone/go-formdirty/pkg/dirty"
)

func TestCompare(t *testing.T) {
	baseline := `<form id="order"><input name="qty" value="1"><input type="checkbox" name="gift" value="y"></form>`
	current := `<form id="order"><input name="qty" value="3"><input type="checkbox" name="gift" value="y"></form>`

	changes, err := formdirty.Compare(strings.NewReader(baseline), strings.NewReader(current))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	one, three := "1", "3"
	want := []formdirty.Change{{Kind: dirty.FieldChanged, Form: "order", Field: "qty", Before: &one, After: &three}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes (-want +got):\n%s", diff)
	}
}

func TestCompare_IdenticalPagesAreClean(t *testing.T) {
	page := `<form id="a"><textarea name="t">x</textarea></form>`
	changes, err := formdirty.Compare(strings.NewReader(page), strings.NewReader(page), dirty.WithExcludeClasses())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}
}

func TestNewTracker(t *testing.T) {
	doc, err := formdirty.ParseHTML(strings.NewReader(`<form id="a"><input name="x"></form>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tracker := formdirty.NewTracker(doc)
	tracker.Snapshot(nil)
	if tracker.IsDirty() {
		t.Fatalf("fresh snapshot must be clean")
	}
}
