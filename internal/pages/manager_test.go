package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

func TestStartShowsStartScreen(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	r.wantScreen(t, "main_menu_page")
}

func TestBackOnEmptyStack(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	for i := 0; i < 3; i++ {
		if err := r.m.GoBack(); err != nil {
			t.Fatalf("GoBack: %v", err)
		}
	}
	r.wantScreen(t, "main_menu_page")
}

func TestForwardThenBack(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	for _, key := range []string{"setting_page", "coming_soon_page", "wifi_page"} {
		before, stack := r.current(), r.m.StackKeys()
		if err := r.m.ShowPage(key); err != nil {
			t.Fatalf("ShowPage(%s): %v", key, err)
		}
		if err := r.m.GoBack(); err != nil {
			t.Fatalf("GoBack: %v", err)
		}
		r.wantScreen(t, before, stack...)
		if err := r.m.ShowPage(key); err != nil {
			t.Fatalf("ShowPage(%s): %v", key, err)
		}
	}
	r.wantScreen(t, "wifi_page", "main_menu_page", "setting_page", "coming_soon_page")
}

func TestShowStackedScreenUnwinds(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	r.dispatch(t, "down", "down", "select") // Settings
	r.wantScreen(t, "setting_page", "main_menu_page")
	r.dispatch(t, "down", "select") // Display
	r.wantScreen(t, "coming_soon_page", "main_menu_page", "setting_page")

	if err := r.m.ShowPage("coming_soon_page"); err != nil {
		t.Fatal(err)
	}
	r.wantScreen(t, "coming_soon_page", "main_menu_page", "setting_page")

	if err := r.m.ShowPage("main_menu_page"); err != nil {
		t.Fatal(err)
	}
	r.wantScreen(t, "main_menu_page")
}

func TestUnboundDirectionIsNoop(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	r.dispatch(t, "back", "nonsense")
	r.wantScreen(t, "main_menu_page")
}

func TestMainMenuLeftOpensShutdown(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	r.dispatch(t, "left")
	r.wantScreen(t, "shutdown_page", "main_menu_page")

	r.dispatch(t, "down", "select") // No
	r.wantScreen(t, "main_menu_page")
	if r.m.Quit() {
		t.Fatal("quit after No")
	}

	r.dispatch(t, "left", "up", "select") // Yes
	if !r.m.Quit() {
		t.Fatal("no quit after Yes")
	}
	r.dispatch(t, "down")
	r.wantScreen(t, "shutdown_page", "main_menu_page")
}

func TestNewRejectsUnknownAction(t *testing.T) {
	cfg := testConfig(t)
	sc := cfg.Screens["coming_soon_page"]
	sc.Keys = map[string]string{"select": "warp_drive"}
	cfg.Screens["coming_soon_page"] = sc

	env := &ui.Env{Assets: ui.NewAssets("", nil), Fonts: ui.DefaultFonts()}
	_, err := New(cfg, env, Hardware{}, nil)
	if !errors.Is(err, ui.ErrUnknownAction) {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
	var be *ui.BindingError
	if !errors.As(err, &be) || be.Screen != "coming_soon_page" || be.Action != "warp_drive" {
		t.Fatalf("got %v, want a binding error naming the screen and action", err)
	}
}

func TestNewRejectsUnknownMenuTarget(t *testing.T) {
	cfg := testConfig(t)
	sc := cfg.Screens["setting_page"]
	sc.Menus = append(sc.Menus, config.MenuOption{Name: "Ghost", Action: "ghost_page"})
	cfg.Screens["setting_page"] = sc

	env := &ui.Env{Assets: ui.NewAssets("", nil), Fonts: ui.DefaultFonts()}
	if _, err := New(cfg, env, Hardware{}, nil); !errors.Is(err, ui.ErrUnknownAction) {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
}

func TestNewRejectsUnknownClass(t *testing.T) {
	cfg := testConfig(t)
	sc := cfg.Screens["coming_soon_page"]
	sc.Class = "HologramPage"
	cfg.Screens["coming_soon_page"] = sc

	env := &ui.Env{Assets: ui.NewAssets("", nil), Fonts: ui.DefaultFonts()}
	_, err := New(cfg, env, Hardware{}, nil)
	if err == nil || !strings.Contains(err.Error(), "HologramPage") {
		t.Fatalf("got %v, want unknown class error", err)
	}
}

func TestEveryClassIsBuilt(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	seen := map[string]bool{}
	for _, key := range r.m.Keys() {
		s, _ := r.m.Screen(key)
		seen[s.Class()] = true
	}
	for _, c := range Classes() {
		if !seen[c] {
			t.Errorf("class %s not in the default registry", c)
		}
	}
}

func TestPumpRunsPostsInOrder(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	var got []int
	boom := errors.New("boom")
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		r.m.Post(ctx, func() error {
			got = append(got, i)
			if i == 1 {
				return boom
			}
			return nil
		})
	}
	if err := r.m.Pump(); !errors.Is(err, boom) {
		t.Fatalf("Pump: got %v, want boom", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("got %v, want [0 1 2]", got)
	}
	if err := r.m.Pump(); err != nil {
		t.Fatalf("empty Pump: %v", err)
	}
}

func TestPostGivesUpOnCancel(t *testing.T) {
	r := newRig(t, testConfig(t), hal.Sensors{})
	ctx, cancel := context.WithCancel(context.Background())
	for r.m.Post(ctx, func() error { return nil }) {
		if len(r.m.posts) == cap(r.m.posts) {
			break
		}
	}
	cancel()
	if r.m.Post(ctx, func() error { return nil }) {
		t.Fatal("Post on a full queue with a cancelled context succeeded")
	}
}

func TestMainMenuMaxRows(t *testing.T) {
	zero := 0
	cases := []struct {
		name    string
		maxRows *int
		want    int
	}{
		{"layout", nil, 3},
		{"every row", &zero, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig(t)
			sc := cfg.Screens["main_menu_page"]
			sc.MaxRows = c.maxRows
			cfg.Screens["main_menu_page"] = sc
			r := newRig(t, cfg, hal.Sensors{})

			s, _ := r.m.Screen("main_menu_page")
			menu := s.(*menuScreen).Menu()
			want := c.want
			if want < 0 {
				want = menu.Len()
			}
			if got := len(menu.VisibleRows()); got != want {
				t.Fatalf("visible rows: got %d, want %d", got, want)
			}
		})
	}
}
