package pages

import (
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

// Screen classes of the registry.
const (
	ClassMainMenu     = "MainMenuPage"
	ClassShutdown     = "ShutdownPage"
	ClassParameters   = "SequenceParameterPage"
	ClassRunning      = "SequenceRunningPage"
	ClassSettings     = "SettingPage"
	ClassWifi         = "WifiPage"
	ClassSmartphone   = "SmartphonePage"
	ClassBattery      = "BatteryPage"
	ClassWifiPassword = "WifiPasswordPage"
	ClassComingSoon   = "ComingSoonPage"
)

type builder func(m *Manager, key string, sc config.Screen) (ui.Screen, error)

var classes = map[string]builder{
	ClassMainMenu:     newMainMenu,
	ClassShutdown:     newShutdown,
	ClassParameters:   newParameters,
	ClassRunning:      newRunning,
	ClassSettings:     newSettings,
	ClassWifi:         newWifi,
	ClassSmartphone:   newSmartphone,
	ClassBattery:      newBattery,
	ClassWifiPassword: newWifiPassword,
	ClassComingSoon:   newComingSoon,
}

// Classes lists the screen classes the registry may use.
func Classes() []string {
	return []string{
		ClassMainMenu, ClassShutdown, ClassParameters, ClassRunning, ClassSettings,
		ClassWifi, ClassSmartphone, ClassBattery, ClassWifiPassword, ClassComingSoon,
	}
}
