package pages

import (
	"astrotimer/internal/config"
	"astrotimer/internal/sysconf"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

// qrScreen shows a QR code whose payload is read again every time the
// screen is entered.
type qrScreen struct {
	*ui.Page
	picture *ui.Picture
	payload func() (string, error)
}

func newQRScreen(m *Manager, key string, sc config.Screen, payload func() (string, error)) *qrScreen {
	p := ui.NewPage(key, sc, m.env)
	s := &qrScreen{Page: p, picture: ui.NewPicture(p, sc.Picture, m.cfg.QR), payload: payload}
	p.SetDraw(s.picture.Draw)
	return s
}

func (s *qrScreen) Picture() *ui.Picture { return s.picture }

func (s *qrScreen) Enter() error {
	text, err := s.payload()
	if err != nil {
		s.Log().Warn("qr payload", zap.Error(err))
		s.SetStatus("Config unreadable")
	} else {
		s.SetStatus("")
		if err := s.picture.SetQR(text); err != nil {
			return err
		}
	}
	return s.Display()
}

// newWifi encodes the access point credentials.
func newWifi(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	path := m.cfg.Paths.Wifi
	return newQRScreen(m, key, sc, func() (string, error) {
		w, err := sysconf.ReadWifi(path)
		if err != nil {
			return "", err
		}
		return w.Payload(), nil
	}), nil
}

// newSmartphone encodes the address of the web interface.
func newSmartphone(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	path, port := m.cfg.Paths.Website, m.cfg.Paths.WebsitePort
	return newQRScreen(m, key, sc, func() (string, error) {
		w, err := sysconf.ReadWebsite(path, port)
		if err != nil {
			return "", err
		}
		return w.URL(), nil
	}), nil
}
