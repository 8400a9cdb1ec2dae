package rodhost

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// WatchSubmit installs the submit listener on the current document and on
// every document the page navigates to. The returned function removes the
// new-document hook.
func (p *Page) WatchSubmit(ctx context.Context) (func() error, error) {
	if p == nil || p.page == nil {
		return nil, fmt.Errorf("rodhost: page is nil")
	}
	remove, err := p.page.EvalOnNewDocument(fmt.Sprintf("(%s)()", submitWatchScript))
	if err != nil {
		return nil, fmt.Errorf("rodhost: install submit hook: %w", err)
	}
	if _, err := p.eval(ctx, submitWatchScript); err != nil {
		_ = remove()
		return nil, fmt.Errorf("rodhost: watch submit: %w", err)
	}
	return remove, nil
}

// Sync copies the page's submitted flag into the tracker and clears it on
// the page, so each observed submit is reported once.
func (p *Page) Sync(ctx context.Context, tracker *dirty.Tracker) error {
	submitted, err := p.evalBool(ctx, submittedScript)
	if err != nil {
		return fmt.Errorf("rodhost: read submit flag: %w", err)
	}
	if !submitted {
		return nil
	}
	tracker.MarkSubmitted()
	if _, err := p.eval(ctx, resetSubmittedScript); err != nil {
		return fmt.Errorf("rodhost: reset submit flag: %w", err)
	}
	return nil
}

// Guard syncs the submit flag and returns the tracker's unload warning.
func (p *Page) Guard(ctx context.Context, tracker *dirty.Tracker) (string, bool, error) {
	if err := p.Sync(ctx, tracker); err != nil {
		return "", false, err
	}
	msg, warn := tracker.UnloadWarning()
	return msg, warn, nil
}
