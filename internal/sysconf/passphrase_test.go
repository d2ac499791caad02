package sysconf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckPassphrase(t *testing.T) {
	for _, tc := range []struct {
		in string
		ok bool
	}{
		{"1234567", false},
		{"12345678", true},
		{strings.Repeat("a", 63), true},
		{strings.Repeat("a", 64), false},
		{"tab\there!", false},
		{"dark sky;night", true},
	} {
		err := CheckPassphrase(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("CheckPassphrase(%q): got %v, want ok=%v", tc.in, err, tc.ok)
		}
		if err != nil && !errors.Is(err, ErrPassphrase) {
			t.Errorf("CheckPassphrase(%q): got %v, want ErrPassphrase", tc.in, err)
		}
	}
}

func TestWritePassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostapd.conf")
	conf := "interface=wlan0\nssid=AstroTimer\nwpa=2\nwpa_passphrase=oldsecret\n"
	if err := os.WriteFile(path, []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WritePassphrase(path, "new;secret"); err != nil {
		t.Fatalf("WritePassphrase: %v", err)
	}
	w, err := ReadWifi(path)
	if err != nil {
		t.Fatalf("ReadWifi: %v", err)
	}
	if w.Passphrase != "new;secret" || w.SSID != "AstroTimer" {
		t.Fatalf("got %+v", w)
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "wpa_passphrase="); n != 1 {
		t.Fatalf("got %d passphrase lines, want 1", n)
	}
}

func TestWritePassphraseCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "hostapd.conf")
	if err := WritePassphrase(path, "short"); !errors.Is(err, ErrPassphrase) {
		t.Fatalf("got %v, want ErrPassphrase", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("rejected passphrase created %s", path)
	}
	if err := WritePassphrase(path, "starlight"); err != nil {
		t.Fatalf("WritePassphrase: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "wpa_passphrase=starlight\n" {
		t.Fatalf("got %q", got)
	}
}
