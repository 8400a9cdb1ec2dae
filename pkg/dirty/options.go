package dirty

import (
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formdirty/pkg/editors"
)

// DefaultExcludeClass marks forms and fields that should never be tracked.
const DefaultExcludeClass = "dirtyignore"

// DefaultWarning is returned by UnloadWarning when the page holds unsaved
// changes and no custom message was configured.
const DefaultWarning = "You have unsaved changes."

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for diagnostics. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithExcludeClasses replaces the exclusion classes. Blank names are dropped;
// passing none disables class based exclusion.
func WithExcludeClasses(classes ...string) Option {
	return func(t *Tracker) {
		set := make(map[string]struct{}, len(classes))
		for _, class := range classes {
			if trimmed := strings.TrimSpace(class); trimmed != "" {
				set[trimmed] = struct{}{}
			}
		}
		t.exclude = set
	}
}

// WithEditors registers the rich-text editor adapters consulted when a
// text-area-like field differs from its snapshot.
func WithEditors(registry *editors.Registry) Option {
	return func(t *Tracker) {
		t.editors = registry
	}
}

// WithWarning overrides the unload warning. Markup is stripped so hosts can
// show the message verbatim.
func WithWarning(message string) Option {
	return func(t *Tracker) {
		clean := strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(message)))
		if clean != "" {
			t.warning = clean
		}
	}
}

// WithResetOnCancel controls whether a submit cancelled by the form's own
// handler restores the submitted flag to its previous value. Enabled by
// default.
func WithResetOnCancel(enabled bool) Option {
	return func(t *Tracker) {
		t.resetOnCancel = enabled
	}
}
