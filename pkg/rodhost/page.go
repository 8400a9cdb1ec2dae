// Package rodhost reads form state from a live browser page driven by
// go-rod. Each read serialises the page's forms (with live .value and
// .checked properties) through a single Eval, so the dirty tracker sees
// exactly what the user typed.
package rodhost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// DefaultTimeout bounds every script evaluation.
const DefaultTimeout = 5 * time.Second

// Page adapts a rod page to dirty.Scope.
type Page struct {
	page    *rod.Page
	ctx     context.Context
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.Mutex
	last []dirty.Form
}

// Option configures a Page.
type Option func(*Page)

// WithContext sets the parent context for evaluations.
func WithContext(ctx context.Context) Option {
	return func(p *Page) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Page) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithLogger sets the logger used to report evaluation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New wraps a rod page.
func New(page *rod.Page, options ...Option) *Page {
	p := &Page{
		page:    page,
		ctx:     context.Background(),
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Forms implements dirty.Scope for the whole page. When the page cannot be
// read the last successful result is returned so a transient failure does
// not look like every form vanished.
func (p *Page) Forms() []dirty.Form {
	forms, err := p.ReadForms(p.ctx, "")
	if err != nil {
		p.logger.Warn("rodhost: read forms failed", "error", err)
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.last
	}
	p.mu.Lock()
	p.last = forms
	p.mu.Unlock()
	return forms
}

// Within returns a scope limited to elements matching a CSS selector.
func (p *Page) Within(selector string) dirty.Scope {
	return scope{page: p, selector: selector}
}

// ReadForms evaluates the form serialiser. An empty selector reads the whole
// document.
func (p *Page) ReadForms(ctx context.Context, selector string) ([]dirty.Form, error) {
	raw, err := p.evalString(ctx, formsScript, selector)
	if err != nil {
		return nil, fmt.Errorf("rodhost: read forms: %w", err)
	}
	return decodeForms([]byte(raw))
}

func (p *Page) evalString(ctx context.Context, script string, args ...any) (string, error) {
	res, err := p.eval(ctx, script, args...)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *Page) evalBool(ctx context.Context, script string, args ...any) (bool, error) {
	res, err := p.eval(ctx, script, args...)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *Page) eval(ctx context.Context, script string, args ...any) (*proto.RuntimeRemoteObject, error) {
	if p == nil || p.page == nil {
		return nil, fmt.Errorf("rodhost: page is nil")
	}
	if ctx == nil {
		ctx = p.ctx
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.page.Context(ctx).Eval(script, args...)
}

type scope struct {
	page     *Page
	selector string
}

func (s scope) Forms() []dirty.Form {
	forms, err := s.page.ReadForms(s.page.ctx, s.selector)
	if err != nil {
		s.page.logger.Warn("rodhost: read scoped forms failed", "selector", s.selector, "error", err)
		return nil
	}
	return forms
}

// formState and fieldState are the JSON shapes produced by formsScript.
type formState struct {
	FormID    string       `json:"id"`
	FormName  string       `json:"name"`
	ClassList []string     `json:"classes"`
	Controls  []fieldState `json:"fields"`
}

type fieldState struct {
	FieldID    string   `json:"id"`
	FieldName  string   `json:"name"`
	FieldType  string   `json:"type"`
	ClassList  []string `json:"classes"`
	FieldValue string   `json:"value"`
	IsChecked  bool     `json:"checked"`
}

func (f formState) ID() string        { return f.FormID }
func (f formState) Name() string      { return f.FormName }
func (f formState) Classes() []string { return f.ClassList }

func (f formState) Fields() []dirty.Field {
	out := make([]dirty.Field, 0, len(f.Controls))
	for _, control := range f.Controls {
		out = append(out, control)
	}
	return out
}

func (f fieldState) ID() string        { return f.FieldID }
func (f fieldState) Name() string      { return f.FieldName }
func (f fieldState) Type() string      { return f.FieldType }
func (f fieldState) Classes() []string { return f.ClassList }
func (f fieldState) Value() string     { return f.FieldValue }
func (f fieldState) Checked() bool     { return f.IsChecked }

func decodeForms(data []byte) ([]dirty.Form, error) {
	var states []formState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("rodhost: decode forms: %w", err)
	}
	out := make([]dirty.Form, 0, len(states))
	for _, state := range states {
		out = append(out, state)
	}
	return out, nil
}
