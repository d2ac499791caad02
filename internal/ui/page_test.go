package ui

import (
	"errors"
	"testing"
)

func TestNavigateUnboundIsNoop(t *testing.T) {
	env := newTestEnv()
	p := newTestPage(env, map[string]string{"left": "none", "right": ""})

	for _, dir := range []string{"left", "right", "up"} {
		if err := p.Dispatch(dir); err != nil {
			t.Fatalf("%s: got %v, want nil", dir, err)
		}
		if act, _ := p.Pending(); act != nil {
			t.Fatalf("%s: expected no pending action", dir)
		}
	}
}

func TestNavigateUnknownActionFails(t *testing.T) {
	env := newTestEnv()
	p := newTestPage(env, map[string]string{"select": "does_not_exist"})

	err := p.Dispatch("select")
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("got %v, want *BindingError", err)
	}
	if be.Direction != "select" || be.Action != "does_not_exist" || be.Screen != "test_page" {
		t.Fatalf("got %+v", be)
	}
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
	if err := p.CheckBindings(); err == nil {
		t.Fatal("CheckBindings: expected error")
	}
}

func TestNavigateResolvesWithoutRunning(t *testing.T) {
	env := newTestEnv()
	p := newTestPage(env, map[string]string{"up": "bump"})
	runs := 0
	p.Register(Actions{"bump": Call(func() error { runs++; return nil })})

	if err := p.Navigate("up"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	act, name := p.Pending()
	if act == nil || name != "bump" {
		t.Fatalf("got pending %q, want bump", name)
	}
	if runs != 0 {
		t.Fatalf("got %d runs after Navigate, want 0", runs)
	}
	if err := p.Dispatch("up"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if runs != 1 {
		t.Fatalf("got %d runs after Dispatch, want 1", runs)
	}
}

func TestLookupOrder(t *testing.T) {
	env := newTestEnv()
	var got string
	env.Callbacks.Keys["go_back"] = Call(func() error { got = "manager"; return nil })
	env.Callbacks.Pages["battery_page"] = SwitchTo("battery_page", func(k string) error { got = k; return nil })
	p := newTestPage(env, map[string]string{"back": "go_back", "select": "battery_page"})

	if err := p.Dispatch("back"); err != nil || got != "manager" {
		t.Fatalf("got %q, %v, want manager", got, err)
	}
	p.Register(Actions{"go_back": Call(func() error { got = "own"; return nil })})
	if err := p.Dispatch("back"); err != nil || got != "own" {
		t.Fatalf("got %q, %v, want own", got, err)
	}
	if err := p.Dispatch("select"); err != nil || got != "battery_page" {
		t.Fatalf("got %q, %v, want battery_page", got, err)
	}
	if err := p.CheckBindings(); err != nil {
		t.Fatalf("CheckBindings: %v", err)
	}
}

func TestDisplayPresentsFrame(t *testing.T) {
	env := newTestEnv()
	p := newTestPage(env, nil)
	drawn := false
	p.SetDraw(func(c *Canvas) { drawn = true })

	if err := p.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if !drawn {
		t.Fatal("body not drawn")
	}
	if got := env.Surface.Frames(); got != 1 {
		t.Fatalf("got %d frames, want 1", got)
	}
	p.SetStatus("Saved")
	if got := p.StatusText(); got != "Saved" {
		t.Fatalf("got %q, want Saved", got)
	}
	p.SetStatus("")
	if got := p.StatusText(); got != "Test" {
		t.Fatalf("got %q, want Test", got)
	}
}
