// Package formdirty warns about unsaved form changes. It snapshots form field
// values when a page loads and compares them with the live values before the
// user navigates away. The root package re-exports the most common entry
// points; see pkg/dirty for the tracker and pkg/htmldoc / pkg/rodhost for
// the DOM hosts.
package formdirty

import (
	"fmt"
	"io"

	"github.com/goliatone/go-formdirty/pkg/dirty"
	"github.com/goliatone/go-formdirty/pkg/htmldoc"
)

// Tracker aliases dirty.Tracker.
type Tracker = dirty.Tracker

// Change aliases dirty.Change.
type Change = dirty.Change

// Option aliases dirty.Option.
type Option = dirty.Option

// NewTracker constructs a tracker bound to doc. Call Snapshot once the page
// is ready.
func NewTracker(doc dirty.Scope, options ...Option) *Tracker {
	return dirty.New(doc, options...)
}

// ParseHTML parses a page into a mutable document usable as tracker scope.
func ParseHTML(r io.Reader) (*htmldoc.Document, error) {
	return htmldoc.Parse(r)
}

// Compare snapshots the forms of baseline, swaps in current, and returns every
// difference the tracker reports. It is the offline version of the unload
// check: feed it the page as served and the page as the user left it.
func Compare(baseline, current io.Reader, options ...Option) ([]Change, error) {
	doc, err := htmldoc.Parse(baseline)
	if err != nil {
		return nil, fmt.Errorf("formdirty: baseline: %w", err)
	}
	tracker := dirty.New(doc, options...)
	tracker.Snapshot(nil)
	if err := doc.Replace(current); err != nil {
		return nil, fmt.Errorf("formdirty: current: %w", err)
	}
	return tracker.Changes(), nil
}
