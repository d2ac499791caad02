package ui

import (
	"testing"

	"astrotimer/internal/config"
)

func testParams() []config.ParameterOption {
	return []config.ParameterOption{
		{Name: "Interval", Unit: "s", Value: 5, Step: 0.1, Order: 2},
		{Name: "Exposure", Unit: "s", Value: 30, Step: 1, Order: 0},
		{Name: "Shots", Value: 10, Step: 1, Order: 1},
		{Name: "Label", Type: "text", Order: 3},
	}
}

func TestNumpadOrdersAndSkipsText(t *testing.T) {
	n := NewNumpad(newTestPage(newTestEnv(), nil), testParams(), DefaultNumpadLayout)
	var names []string
	for _, p := range n.Params() {
		names = append(names, p.Name)
	}
	if len(names) != 3 || names[0] != "Exposure" || names[1] != "Shots" || names[2] != "Interval" {
		t.Fatalf("got %v, want [Exposure Shots Interval]", names)
	}
}

func TestNumpadIncrementDecrementReversible(t *testing.T) {
	n := NewNumpad(newTestPage(newTestEnv(), nil), testParams(), DefaultNumpadLayout)
	n.SetCurrent(2) // Interval, step 0.1
	n.SetArmed(true)

	for i := 0; i < 37; i++ {
		n.Increment()
	}
	for i := 0; i < 37; i++ {
		n.Decrement()
	}
	if p, _ := n.Value("Interval"); p.Value != 5 {
		t.Fatalf("got %v, want 5", p.Value)
	}
}

func TestNumpadClampsAtZero(t *testing.T) {
	n := NewNumpad(newTestPage(newTestEnv(), nil), testParams(), DefaultNumpadLayout)
	n.SetCurrent(1) // Shots = 10
	for i := 0; i < 25; i++ {
		n.Decrement()
	}
	if p, _ := n.Value("Shots"); p.Value != 0 {
		t.Fatalf("got %v, want 0", p.Value)
	}
}

func TestNumpadDirectionsDependOnArmed(t *testing.T) {
	env := newTestEnv()
	page := newTestPage(env, map[string]string{
		"up":     "parameter_up",
		"down":   "parameter_down",
		"select": "parameter_select",
	})
	n := NewNumpad(page, testParams(), DefaultNumpadLayout)

	if err := page.Dispatch("down"); err != nil {
		t.Fatalf("down: %v", err)
	}
	if n.Current() != 1 {
		t.Fatalf("got current %d, want 1", n.Current())
	}
	if err := page.Dispatch("select"); err != nil || !n.Armed() {
		t.Fatalf("select: armed=%v err=%v, want armed", n.Armed(), err)
	}
	_ = page.Dispatch("up")
	_ = page.Dispatch("up")
	if p, _ := n.Value("Shots"); p.Value != 12 {
		t.Fatalf("got %v, want 12", p.Value)
	}
	if n.Current() != 1 {
		t.Fatalf("armed up moved the selection to %d", n.Current())
	}
	_ = page.Dispatch("select")
	_ = page.Dispatch("up")
	if n.Current() != 0 {
		t.Fatalf("got current %d, want 0", n.Current())
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{30: "30", 0.5: "0.5", 2.25: "2.25", 0: "0"}
	for v, want := range cases {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%v): got %q, want %q", v, got, want)
		}
	}
}
