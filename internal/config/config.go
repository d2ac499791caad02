// Package config holds the typed device configuration: general settings
// plus the screen registry the page manager is built from.
package config

// Config is the whole device configuration.
type Config struct {
	StartScreen string            `yaml:"start_screen" toml:"start_screen"`
	Paths       Paths             `yaml:"paths" toml:"paths"`
	Display     Display           `yaml:"display" toml:"display"`
	Pins        Pins              `yaml:"pins" toml:"pins"`
	Switch      Switch            `yaml:"switch" toml:"switch"`
	Sensors     Sensors           `yaml:"sensors" toml:"sensors"`
	Refresh     Refresh           `yaml:"refresh" toml:"refresh"`
	Sequence    Sequence          `yaml:"sequence" toml:"sequence"`
	QR          QR                `yaml:"qr" toml:"qr"`
	Battery     Battery           `yaml:"battery" toml:"battery"`
	Screens     map[string]Screen `yaml:"screens" toml:"screens"`
}

// Paths locates files the firmware reads or writes.
type Paths struct {
	// Assets is an optional directory of PNG icons overriding the
	// embedded SVG set.
	Assets   string `yaml:"assets" toml:"assets"`
	Handoff  string `yaml:"handoff" toml:"handoff"`
	Progress string `yaml:"progress" toml:"progress"`
	// Wifi is the hostapd configuration shown as a QR code.
	Wifi string `yaml:"wifi" toml:"wifi"`
	// Website is the dhcpcd configuration holding the static address.
	Website     string `yaml:"website" toml:"website"`
	WebsitePort int    `yaml:"website_port" toml:"website_port"`
}

// Display describes the LCD panel and its SPI link.
type Display struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	SPIPort   string `yaml:"spi_port" toml:"spi_port"`
	SPIHz     int64  `yaml:"spi_hz" toml:"spi_hz"`
	Reset     string `yaml:"reset" toml:"reset"`
	DC        string `yaml:"dc" toml:"dc"`
	Backlight string `yaml:"backlight" toml:"backlight"`
	// Scale is the host window zoom factor.
	Scale int `yaml:"scale" toml:"scale"`
}

// Pins names the camera trigger lines.
type Pins struct {
	Shutter string `yaml:"shutter" toml:"shutter"`
	Focus   string `yaml:"focus" toml:"focus"`
}

// Switch names the 5-way switch lines. Lines are pulled up and active low.
type Switch struct {
	Select   string   `yaml:"select" toml:"select"`
	Up       string   `yaml:"up" toml:"up"`
	Down     string   `yaml:"down" toml:"down"`
	Left     string   `yaml:"left" toml:"left"`
	Right    string   `yaml:"right" toml:"right"`
	Debounce Duration `yaml:"debounce" toml:"debounce"`
}

// Sensors describes the I2C power sensors.
type Sensors struct {
	Bus        string `yaml:"bus" toml:"bus"`
	FuelGauge  uint16 `yaml:"fuel_gauge" toml:"fuel_gauge"`
	PowerMeter uint16 `yaml:"power_meter" toml:"power_meter"`
	// PowerMeterChip is "ina219" or "ina226".
	PowerMeterChip string  `yaml:"power_meter_chip" toml:"power_meter_chip"`
	ShuntOhms      float64 `yaml:"shunt_ohms" toml:"shunt_ohms"`
	MaxAmps        float64 `yaml:"max_amps" toml:"max_amps"`
	// MaxFailures is the number of consecutive read errors after which the
	// SoC monitor gives up.
	MaxFailures int `yaml:"max_failures" toml:"max_failures"`
}

// Refresh holds the redraw and polling cadences.
type Refresh struct {
	SequenceRunning Duration `yaml:"sequence_running" toml:"sequence_running"`
	BatteryInfos    Duration `yaml:"battery_infos" toml:"battery_infos"`
	BatterySoC      Duration `yaml:"battery_soc" toml:"battery_soc"`
	ThreadScan      Duration `yaml:"thread_scan" toml:"thread_scan"`
}

// Sequence holds the trigger engine settings.
type Sequence struct {
	// Offset is the camera wake offset added around every shot.
	Offset       Duration `yaml:"offset" toml:"offset"`
	ReleasePulse Duration `yaml:"release_pulse" toml:"release_pulse"`
}

// QR controls the module size of generated codes.
type QR struct {
	// Threshold is the longest payload still drawn with LargeModule pixels
	// per module.
	Threshold   int `yaml:"threshold" toml:"threshold"`
	LargeModule int `yaml:"large_module" toml:"large_module"`
	SmallModule int `yaml:"small_module" toml:"small_module"`
	Border      int `yaml:"border" toml:"border"`
}

// Battery maps charge levels to status bar icons.
type Battery struct {
	Levels     []BatteryLevel `yaml:"levels" toml:"levels"`
	LowestIcon string         `yaml:"lowest_icon" toml:"lowest_icon"`
}

// BatteryLevel selects Icon for charges at or above Threshold percent.
type BatteryLevel struct {
	Threshold float64 `yaml:"threshold" toml:"threshold"`
	Icon      string  `yaml:"icon" toml:"icon"`
}

// Screen is one entry of the screen registry.
type Screen struct {
	Class string `yaml:"class" toml:"class"`
	Title string `yaml:"title" toml:"title"`
	// Keys binds a direction (up, down, left, right, select, back) to an
	// action name. An empty name or "none" leaves the direction unbound.
	Keys       map[string]string `yaml:"keys" toml:"keys"`
	Icon       string            `yaml:"icon,omitempty" toml:"icon,omitempty"`
	Menus      []MenuOption      `yaml:"menus,omitempty" toml:"menus,omitempty"`
	Buttons    []ButtonOption    `yaml:"buttons,omitempty" toml:"buttons,omitempty"`
	Parameters []ParameterOption `yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	Picture    *PictureOption    `yaml:"picture,omitempty" toml:"picture,omitempty"`
	// MaxRows caps the visible menu rows; zero or less shows every row.
	// Unset keeps the layout of the screen class.
	MaxRows *int `yaml:"max_rows,omitempty" toml:"max_rows,omitempty"`
}

// MenuOption is one row of a menu.
type MenuOption struct {
	Name   string `yaml:"name" toml:"name"`
	Icon   string `yaml:"icon,omitempty" toml:"icon,omitempty"`
	Action string `yaml:"action,omitempty" toml:"action,omitempty"`
}

// ButtonOption is one chip of a button bar, centered on Position.
type ButtonOption struct {
	Name     string `yaml:"name" toml:"name"`
	Action   string `yaml:"action" toml:"action"`
	Position Point  `yaml:"position" toml:"position"`
}

// ParameterOption is one editable value.
type ParameterOption struct {
	Name string `yaml:"name" toml:"name"`
	// Type is "number"; "text" is reserved for keyboard entry.
	Type  string  `yaml:"type" toml:"type"`
	Unit  string  `yaml:"unit" toml:"unit"`
	Value float64 `yaml:"value" toml:"value"`
	Step  float64 `yaml:"step" toml:"step"`
	// Order sorts the parameters on screen.
	Order int `yaml:"order" toml:"order"`
}

// PictureOption is the image of a picture screen. A nil Position centers
// it.
type PictureOption struct {
	Image    string `yaml:"image,omitempty" toml:"image,omitempty"`
	Position *Point `yaml:"position,omitempty" toml:"position,omitempty"`
}

// Point is a screen position in pixels.
type Point struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}
