//go:build rpi

package hal

import (
	"fmt"
	"sync"
	"time"

	"astrotimer/internal/config"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Panel geometry of the 1.47" ST7789: 172 columns starting at column 34.
const (
	panelWidth   = 172
	panelHeight  = 320
	panelXOffset = 34
	spiChunk     = 4096
)

// st7789 keeps a landscape RGB565 frame and pushes it rotated a quarter
// turn clockwise onto the portrait panel.
type st7789 struct {
	mu     sync.Mutex
	port   spi.PortCloser
	conn   spi.Conn
	rst    gpio.PinOut
	dc     gpio.PinOut
	bl     gpio.PinOut
	width  int
	height int
	buf    []byte
	wire   []byte
}

func openST7789(cfg config.Display) (*st7789, error) {
	if cfg.Width != panelHeight || cfg.Height != panelWidth {
		return nil, fmt.Errorf("lcd: frame %dx%d does not fit the %dx%d panel", cfg.Width, cfg.Height, panelWidth, panelHeight)
	}
	rst, err := openPin(cfg.Reset)
	if err != nil {
		return nil, err
	}
	dc, err := openPin(cfg.DC)
	if err != nil {
		return nil, err
	}
	bl, err := openPin(cfg.Backlight)
	if err != nil {
		return nil, err
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("lcd: spi %s: %w", cfg.SPIPort, err)
	}
	conn, err := port.Connect(physic.Frequency(cfg.SPIHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("lcd: spi connect: %w", err)
	}

	d := &st7789{
		port:   port,
		conn:   conn,
		rst:    rst.p,
		dc:     dc.p,
		bl:     bl.p,
		width:  cfg.Width,
		height: cfg.Height,
		buf:    make([]byte, cfg.Width*cfg.Height*2),
		wire:   make([]byte, panelWidth*panelHeight*2),
	}
	if err := d.init(); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

var st7789Init = []struct {
	cmd  byte
	data []byte
}{
	{0x36, []byte{0x00}},
	{0x3A, []byte{0x05}},
	{0xB2, []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}},
	{0xB7, []byte{0x35}},
	{0xBB, []byte{0x35}},
	{0xC0, []byte{0x2C}},
	{0xC2, []byte{0x01}},
	{0xC3, []byte{0x13}},
	{0xC4, []byte{0x20}},
	{0xC6, []byte{0x0F}},
	{0xD0, []byte{0xA4, 0xA1}},
	{0xE0, []byte{0xF0, 0xF0, 0x00, 0x04, 0x04, 0x04, 0x05, 0x29, 0x33, 0x3E, 0x38, 0x12, 0x12, 0x28, 0x30}},
	{0xE1, []byte{0xF0, 0x07, 0x0A, 0x0D, 0x0B, 0x07, 0x28, 0x33, 0x3E, 0x36, 0x14, 0x14, 0x29, 0x32}},
	{0x21, nil},
	{0x11, nil},
	{0x29, nil},
}

func (d *st7789) init() error {
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return fmt.Errorf("lcd: reset: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	for _, c := range st7789Init {
		if err := d.command(c.cmd, c.data...); err != nil {
			return err
		}
	}
	return d.bl.Out(gpio.High)
}

func (d *st7789) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("lcd: command %#02x: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	return d.data(data)
}

func (d *st7789) data(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(b) > 0 {
		n := min(len(b), spiChunk)
		if err := d.conn.Tx(b[:n], nil); err != nil {
			return fmt.Errorf("lcd: data: %w", err)
		}
		b = b[n:]
	}
	return nil
}

func (d *st7789) Width() int          { return d.width }
func (d *st7789) Height() int         { return d.height }
func (d *st7789) Format() PixelFormat { return PixelFormatRGB565 }
func (d *st7789) StrideBytes() int    { return d.width * 2 }
func (d *st7789) Buffer() []byte      { return d.buf }

// Present rotates the frame onto the panel and sends it.
func (d *st7789) Present() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rotateToPanel(d.wire, d.buf, d.width, d.height)
	x0, x1 := panelXOffset, panelXOffset+panelWidth-1
	y1 := panelHeight - 1
	if err := d.command(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.command(0x2B, 0, 0, byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	if err := d.command(0x2C); err != nil {
		return err
	}
	return d.data(d.wire)
}

// Close blanks the panel and turns the backlight off.
func (d *st7789) Close() error {
	fillRGB565(d.buf, 0, 0, 0)
	err := d.Present()
	_ = d.bl.Out(gpio.Low)
	if cerr := d.port.Close(); err == nil {
		err = cerr
	}
	return err
}
