package hal

import "testing"

func TestDecodeTerminal(t *testing.T) {
	in := []byte("\x1b[A\x1b[D\r\x1bq\x7f")
	want := []string{"up", "left", "select", "back", "back", "back"}

	evs := decodeTerminal(in)
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d", len(evs), len(want))
	}
	for i, ev := range evs {
		if got := ev.Direction(); got != want[i] {
			t.Fatalf("event %d: got %q, want %q", i, got, want[i])
		}
	}
}
