package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdirty/pkg/dirty"
	"github.com/goliatone/go-formdirty/pkg/htmldoc"
)

type fakeDriver struct {
	answer   bool
	err      error
	asked    []ConfirmConfig
	infoLogs []string
}

func (f *fakeDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	f.asked = append(f.asked, cfg)
	return f.answer, f.err
}

func (f *fakeDriver) Info(_ context.Context, msg string) error {
	f.infoLogs = append(f.infoLogs, msg)
	return nil
}

type staticWarner struct {
	msg  string
	warn bool
}

func (s staticWarner) UnloadWarning() (string, bool) {
	return s.msg, s.warn
}

func TestConfirmLeave_NoWarningSkipsPrompt(t *testing.T) {
	driver := &fakeDriver{}
	guard := New(WithDriver(driver))

	leave, err := guard.ConfirmLeave(context.Background(), staticWarner{})
	if err != nil || !leave {
		t.Fatalf("expected leave without prompt, got leave=%v err=%v", leave, err)
	}
	if len(driver.asked) != 0 {
		t.Fatalf("driver should not be asked")
	}
}

func TestConfirmLeave_AsksUser(t *testing.T) {
	cases := []struct {
		name   string
		answer bool
	}{
		{name: "leave", answer: true},
		{name: "stay", answer: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			driver := &fakeDriver{answer: tc.answer}
			guard := New(WithDriver(driver), WithHelp("help"))

			leave, err := guard.ConfirmLeave(context.Background(), staticWarner{msg: "Unsaved.", warn: true})
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if leave != tc.answer {
				t.Fatalf("leave = %v, want %v", leave, tc.answer)
			}
			want := []ConfirmConfig{{Message: "Unsaved. Leave anyway?", Help: "help"}}
			if diff := cmp.Diff(want, driver.asked); diff != "" {
				t.Fatalf("prompt config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfirmLeave_Errors(t *testing.T) {
	guard := New(WithDriver(&fakeDriver{err: ErrAborted}))
	if _, err := guard.ConfirmLeave(context.Background(), staticWarner{warn: true}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := guard.ConfirmLeave(context.Background(), nil); !errors.Is(err, ErrNoTracker) {
		t.Fatalf("expected ErrNoTracker, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := guard.ConfirmLeave(ctx, staticWarner{warn: true}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfirmLeave_PrintsChanges(t *testing.T) {
	doc, err := htmldoc.ParseString(`<form id="f"><input name="a" value="1"></form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tracker := dirty.New(doc)
	tracker.Snapshot(nil)
	form, _ := doc.Form("f")
	a, _ := form.Field("a")
	a.SetValue("2")

	driver := &fakeDriver{answer: true}
	guard := New(WithDriver(driver), WithChanges(tracker))
	if _, err := guard.ConfirmLeave(context.Background(), tracker); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	want := []string{`  field-changed f.a: "1" -> "2"`}
	if diff := cmp.Diff(want, driver.infoLogs); diff != "" {
		t.Fatalf("info lines (-want +got):\n%s", diff)
	}
}
