// Package prompt is the terminal counterpart of a browser's "leave page?"
// dialog: it asks the tracker for an unload warning and, when there is one,
// lets the user decide whether to leave.
package prompt

import (
	"context"
	"errors"

	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// Warner is the tracker side of the page lifecycle hook.
type Warner interface {
	UnloadWarning() (string, bool)
}

// Guard asks before leaving a page with unsaved changes.
type Guard struct {
	driver Driver
	help   string
	reason func(context.Context) []string
}

// Option configures a Guard.
type Option func(*Guard)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(g *Guard) {
		if driver != nil {
			g.driver = driver
		}
	}
}

// WithHelp sets the help text shown with "?".
func WithHelp(help string) Option {
	return func(g *Guard) {
		g.help = help
	}
}

// WithChanges prints the tracker's change list before asking.
func WithChanges(tracker *dirty.Tracker) Option {
	return func(g *Guard) {
		if tracker == nil {
			return
		}
		g.reason = func(context.Context) []string {
			changes := tracker.Changes()
			lines := make([]string, 0, len(changes))
			for _, change := range changes {
				lines = append(lines, "  "+change.String())
			}
			return lines
		}
	}
}

// New constructs a guard using the survey driver unless overridden.
func New(options ...Option) *Guard {
	g := &Guard{
		driver: NewSurveyDriver(nil),
		help:   "Answer yes to discard your changes.",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// ConfirmLeave reports whether navigation may proceed. Without a warning it
// returns true immediately; otherwise the user is asked, defaulting to stay.
// An aborted prompt counts as staying and returns ErrAborted.
func (g *Guard) ConfirmLeave(ctx context.Context, warner Warner) (bool, error) {
	if warner == nil {
		return false, ErrNoTracker
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	message, warn := warner.UnloadWarning()
	if !warn {
		return true, nil
	}

	if g.reason != nil {
		for _, line := range g.reason(ctx) {
			if err := g.driver.Info(ctx, line); err != nil {
				return false, err
			}
		}
	}

	leave, err := g.driver.Confirm(ctx, ConfirmConfig{
		Message: message + " Leave anyway?",
		Default: false,
		Help:    g.help,
	})
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return false, ErrAborted
		}
		return false, err
	}
	return leave, nil
}
