// Package sysconf reads the live network configuration shown as QR codes.
package sysconf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Fallback values used when a source file is absent.
const (
	FallbackSSID       = "WifiHelloWorld"
	FallbackPassphrase = "HelloWorld!"
	FallbackSecurity   = "WPA2"
	FallbackIP         = "255.255.255.255"
	FallbackPort       = 65535
)

// Wifi is the access point advertised by hostapd.
type Wifi struct {
	SSID       string
	Passphrase string
	Security   string
	Hidden     bool
}

// FallbackWifi is used when hostapd is not configured.
func FallbackWifi() Wifi {
	return Wifi{SSID: FallbackSSID, Passphrase: FallbackPassphrase, Security: FallbackSecurity, Hidden: true}
}

// Payload encodes w in the Wi-Fi QR format understood by phone cameras.
func (w Wifi) Payload() string {
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;;",
		escape(w.Security), escape(w.SSID), escape(w.Passphrase), w.Hidden)
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

func escape(s string) string { return wifiEscaper.Replace(s) }

// ReadWifi parses a hostapd configuration file. A missing file yields
// FallbackWifi and no error.
func ReadWifi(path string) (Wifi, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FallbackWifi(), nil
	}
	if err != nil {
		return Wifi{}, fmt.Errorf("read hostapd config: %w", err)
	}
	return ParseHostapd(data), nil
}

// ParseHostapd extracts the access point settings from hostapd key=value
// lines.
func ParseHostapd(data []byte) Wifi {
	kv := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	w := Wifi{
		SSID:       kv["ssid"],
		Passphrase: kv["wpa_passphrase"],
		Security:   "nopass",
	}
	switch {
	case kv["wpa_key_mgmt"] == "SAE":
		w.Security = "SAE"
	case kv["wpa"] != "" && kv["wpa"] != "0":
		w.Security = "WPA"
	case w.Passphrase != "":
		w.Security = "WPA"
	}
	if h := kv["ignore_broadcast_ssid"]; h != "" && h != "0" {
		w.Hidden = true
	}
	return w
}

// Website is the address of the on-board web interface.
type Website struct {
	IP   string
	Port int
}

// URL returns the address as an http URL.
func (w Website) URL() string {
	return fmt.Sprintf("http://%s:%d", w.IP, w.Port)
}

// ReadWebsite reads the static address from a dhcpcd configuration. The
// address comes from the first "static ip_address=" line following the
// "#static IP" marker, or from the first such line when there is no
// marker. A missing file or address yields the fallback address.
func ReadWebsite(path string, port int) (Website, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Website{IP: FallbackIP, Port: FallbackPort}, nil
	}
	if err != nil {
		return Website{}, fmt.Errorf("read dhcpcd config: %w", err)
	}
	ip, ok := ParseStaticIP(data)
	if !ok {
		return Website{IP: FallbackIP, Port: FallbackPort}, nil
	}
	return Website{IP: ip, Port: port}, nil
}

// ParseStaticIP extracts the static IPv4 address without its prefix length.
func ParseStaticIP(data []byte) (string, bool) {
	text := string(data)
	if i := strings.Index(text, "#static IP"); i >= 0 {
		text = text[i:]
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, "static ip_address=")
		if !ok {
			continue
		}
		ip, _, _ := strings.Cut(strings.TrimSpace(rest), "/")
		if ip != "" {
			return ip, true
		}
	}
	return "", false
}
