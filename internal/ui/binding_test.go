package ui

import (
	"errors"
	"testing"
)

func TestResolveEveryKind(t *testing.T) {
	var got string
	mark := func(s string) Action { return func() error { got = s; return nil } }

	mode := "parameter"
	index := 0
	var shown string
	show := func(key string) error { shown = key; return nil }

	cases := []struct {
		name string
		b    Binding
		want string
	}{
		{"call", Call(mark("call")), "call"},
		{"indexed", Indexed(func() int { return index }, mark("first"), mark("second")), "first"},
		{"modal", Modal(func() string { return mode }, map[string]Action{
			"parameter": mark("parameter"),
			"button":    mark("button"),
		}), "parameter"},
	}
	for _, c := range cases {
		act, err := c.b.Resolve()
		if err != nil {
			t.Fatalf("%s: Resolve: %v", c.name, err)
		}
		if err := act(); err != nil {
			t.Fatalf("%s: run: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, got, c.want)
		}
	}

	index, mode = 1, "button"
	for _, c := range cases[1:] {
		act, err := c.b.Resolve()
		if err != nil {
			t.Fatalf("%s: Resolve: %v", c.name, err)
		}
		_ = act()
	}
	if got != "button" {
		t.Fatalf("got %q, want button", got)
	}

	act, err := SwitchTo("battery_page", show).Resolve()
	if err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	_ = act()
	if shown != "battery_page" {
		t.Fatalf("got %q, want battery_page", shown)
	}
}

func TestResolveFailures(t *testing.T) {
	bad := []Binding{
		{},
		Call(nil),
		SwitchTo("", func(string) error { return nil }),
		Indexed(func() int { return 2 }, func() error { return nil }),
		Modal(func() string { return "nope" }, map[string]Action{}),
	}
	for i, b := range bad {
		if _, err := b.Resolve(); err == nil {
			t.Fatalf("binding %d (%v): expected error", i, b.Kind)
		}
	}

	_, err := Indexed(func() int { return -1 }).Resolve()
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("got %v, want ErrUnresolved", err)
	}
}
