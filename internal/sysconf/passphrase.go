package sysconf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Passphrase length limits for WPA-PSK.
const (
	MinPassphrase = 8
	MaxPassphrase = 63
)

// ErrPassphrase is returned for a passphrase hostapd would reject.
var ErrPassphrase = errors.New("sysconf: invalid passphrase")

// CheckPassphrase reports whether p is 8 to 63 printable ASCII characters.
func CheckPassphrase(p string) error {
	if n := len(p); n < MinPassphrase || n > MaxPassphrase {
		return fmt.Errorf("%w: length %d not in [%d, %d]", ErrPassphrase, n, MinPassphrase, MaxPassphrase)
	}
	for i := 0; i < len(p); i++ {
		if p[i] < 0x20 || p[i] > 0x7e {
			return fmt.Errorf("%w: character %d is not printable ASCII", ErrPassphrase, i)
		}
	}
	return nil
}

// WritePassphrase sets wpa_passphrase in the hostapd configuration at path,
// replacing the first existing line or appending one. A missing file is
// created. The file is replaced atomically.
func WritePassphrase(path, passphrase string) error {
	if err := CheckPassphrase(passphrase); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read hostapd config: %w", err)
	}
	return replaceFile(path, SetPassphrase(data, passphrase))
}

// SetPassphrase returns data with its wpa_passphrase line set to p.
func SetPassphrase(data []byte, p string) []byte {
	var out bytes.Buffer
	done := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		k, _, ok := strings.Cut(strings.TrimSpace(line), "=")
		if ok && !done && strings.TrimSpace(k) == "wpa_passphrase" {
			line = "wpa_passphrase=" + p
			done = true
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if !done {
		out.WriteString("wpa_passphrase=" + p + "\n")
	}
	return out.Bytes()
}

func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(name, 0o600); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
