package trigger

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "run", "progress.json"))
	if _, err := s.Load(); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("Load before Store: got %v, want ErrNoProgress", err)
	}
	for _, p := range []Progress{{0, 3}, {1, 2}} {
		if err := s.Store(p); err != nil {
			t.Fatalf("Store: %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != p {
			t.Fatalf("got %v, want %v", got, p)
		}
	}
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestMemStoreSeq(t *testing.T) {
	var s MemStore
	if _, err := s.Load(); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("empty Load: got %v", err)
	}
	_ = s.Store(Progress{Taken: 1, Remaining: 4})
	_ = s.Store(Progress{Taken: 2, Remaining: 3})
	if s.Seq() != 2 {
		t.Fatalf("Seq: got %d, want 2", s.Seq())
	}
	got, _ := s.Load()
	if got.Taken != 2 || got.Remaining != 3 {
		t.Fatalf("Load: got %v", got)
	}
}

func TestHandoffLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.json")
	if _, err := ReadHandoff(path); !errors.Is(err, ErrNoHandoff) {
		t.Fatalf("missing: got %v, want ErrNoHandoff", err)
	}

	start := time.Unix(1700000000, 0)
	p := params(30, 10, 5, 0.3)
	h, err := NewHandoff(p, start)
	if err != nil {
		t.Fatalf("NewHandoff: %v", err)
	}
	if err := WriteHandoff(path, h); err != nil {
		t.Fatalf("WriteHandoff: %v", err)
	}
	got, err := ReadHandoff(path)
	if err != nil {
		t.Fatalf("ReadHandoff: %v", err)
	}
	if got.Parameters != p {
		t.Fatalf("parameters: got %+v, want %+v", got.Parameters, p)
	}
	if !got.StartTime().Equal(start) {
		t.Fatalf("start: got %v, want %v", got.StartTime(), start)
	}
	// 10*(0.3+30) + 9*5 + 2*0.3 + 0.1 slack
	wantEnd := 303 + 45 + 0.6 + 0.1
	if d := got.Time.End - got.Time.Start; math.Abs(d-wantEnd) > 1e-3 {
		t.Fatalf("end-start: got %v, want %v", d, wantEnd)
	}

	if err := RemoveHandoff(path); err != nil {
		t.Fatalf("RemoveHandoff: %v", err)
	}
	if err := RemoveHandoff(path); err != nil {
		t.Fatalf("second RemoveHandoff: %v", err)
	}
}

func TestReadHandoffRejectsBadUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.json")
	data := `{"sequence_parameters":{"exposure":{"value":1,"unit":"h"},"shots":{"value":1,"unit":""},` +
		`"interval":{"value":1,"unit":"s"},"offset":{"value":0,"unit":"s"}},"sequence_time":{"start":0,"end":0}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadHandoff(path); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("got %v, want ErrInvalidParameters", err)
	}
}

func TestQuantityDuration(t *testing.T) {
	cases := []struct {
		q    Quantity
		want time.Duration
	}{
		{Quantity{1.5, UnitSecond}, 1500 * time.Millisecond},
		{Quantity{300, UnitMillisecond}, 300 * time.Millisecond},
		{Quantity{250, UnitMicrosecond}, 250 * time.Microsecond},
	}
	for _, c := range cases {
		got, err := c.q.Duration()
		if err != nil {
			t.Fatalf("%v: %v", c.q, err)
		}
		if got != c.want {
			t.Fatalf("%v: got %v, want %v", c.q, got, c.want)
		}
	}
	if _, err := (Quantity{1, "min"}).Duration(); err == nil {
		t.Fatalf("unknown unit accepted")
	}
}

func TestValidateRanges(t *testing.T) {
	withShots := func(v float64) Parameters {
		p := params(1, 0, 0, 0)
		p.Shots.Value = v
		return p
	}
	cases := []struct {
		name string
		p    Parameters
		ok   bool
	}{
		{"negative", params(-1, -2, 0, 0), false},
		{"infinite exposure", params(math.Inf(1), 1, 0, 0), false},
		{"infinite interval", params(1, 1, math.Inf(1), 0), false},
		{"exposure beyond duration range", params(1e10, 1, 0, 0), false},
		{"infinite shots", withShots(math.Inf(1)), false},
		{"shots beyond int range", withShots(1e19), false},
		{"too many shots", withShots(MaxShots + 1), false},
		{"most shots", withShots(MaxShots), true},
		{"long exposure", params(3600, 1, 0, 0), true},
	}
	for _, c := range cases {
		err := c.p.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: got %v, want nil", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: got %v, want ErrInvalidParameters", c.name, err)
		}
	}
}
