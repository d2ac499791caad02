package pages

import (
	"errors"
	"fmt"

	"astrotimer/internal/config"
	"astrotimer/internal/sysconf"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

// passwordScreen edits the access point passphrase on the on-screen
// keyboard.
type passwordScreen struct {
	*ui.Page
	m        *Manager
	keyboard *ui.Keyboard
	path     string
}

func newWifiPassword(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	s := &passwordScreen{Page: p, m: m, path: m.cfg.Paths.Wifi}
	s.keyboard = ui.NewKeyboard(p, sysconf.MaxPassphrase, s.submit)
	p.SetDraw(s.keyboard.Draw)
	return s, nil
}

func (s *passwordScreen) Keyboard() *ui.Keyboard { return s.keyboard }

func (s *passwordScreen) Enter() error {
	s.keyboard.Reset()
	s.SetStatus("")
	return s.Display()
}

func (s *passwordScreen) submit(text string) error {
	err := sysconf.WritePassphrase(s.path, text)
	switch {
	case errors.Is(err, sysconf.ErrPassphrase):
		s.Log().Info("passphrase rejected", zap.Int("len", len(text)))
		s.SetStatus(fmt.Sprintf("%d to %d chars", sysconf.MinPassphrase, sysconf.MaxPassphrase))
		return s.Display()
	case err != nil:
		s.Log().Error("store passphrase", zap.Error(err))
		s.SetStatus("Write failed")
		return s.Display()
	}
	s.Log().Info("passphrase stored", zap.String("path", s.path))
	s.SetStatus("Password saved")
	return s.m.GoBack()
}
