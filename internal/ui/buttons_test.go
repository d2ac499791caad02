package ui

import (
	"testing"

	"astrotimer/internal/config"
)

func TestButtonSelectPrefersPageSwitch(t *testing.T) {
	env := newTestEnv()
	var got []string
	env.Callbacks.Pages["main_menu_page"] = SwitchTo("main_menu_page", func(k string) error { got = append(got, k); return nil })
	env.Callbacks.Keys["go_back"] = Call(func() error { got = append(got, "go_back"); return nil })

	page := newTestPage(env, nil)
	page.Register(Actions{"main_menu_page": Call(func() error { got = append(got, "own"); return nil })})
	b := NewButtonBar(page, []config.ButtonOption{
		{Name: "Home", Action: "main_menu_page"},
		{Name: "No", Action: "go_back"},
		{Name: "Nothing", Action: "unknown"},
		{Name: "Off", Action: "none"},
	}, DefaultButtonStyle)

	for i := 0; i < b.Len(); i++ {
		b.SetCurrent(i)
		if err := b.Select(); err != nil {
			t.Fatalf("button %d: %v", i, err)
		}
	}
	if len(got) != 2 || got[0] != "main_menu_page" || got[1] != "go_back" {
		t.Fatalf("got %v, want [main_menu_page go_back]", got)
	}
}

func TestButtonRotation(t *testing.T) {
	b := NewButtonBar(newTestPage(newTestEnv(), nil), []config.ButtonOption{{Name: "Yes"}, {Name: "No"}}, DefaultButtonStyle)
	_ = b.Up()
	if b.Current() != 1 {
		t.Fatalf("got %d, want 1", b.Current())
	}
	_ = b.Down()
	_ = b.Down()
	if b.Current() != 1 {
		t.Fatalf("got %d, want 1", b.Current())
	}
}
