package ui

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Size selects a font size.
type Size uint8

const (
	SizeM Size = iota
	SizeL
)

// Fonts is the font table shared by every page.
type Fonts struct {
	Regular   [2]tinyfont.Fonter
	Bold      [2]tinyfont.Fonter
	Status    tinyfont.Fonter
	Small     tinyfont.Fonter
	LineStep  [2]int
	AscentCap [2]int
}

// DefaultFonts returns the built-in font table.
func DefaultFonts() *Fonts {
	return &Fonts{
		Regular:   [2]tinyfont.Fonter{&freesans.Regular9pt7b, &freesans.Regular12pt7b},
		Bold:      [2]tinyfont.Fonter{&freesans.Bold9pt7b, &freesans.Bold12pt7b},
		Status:    &freemono.Bold9pt7b,
		Small:     &proggy.TinySZ8pt7b,
		LineStep:  [2]int{22, 29},
		AscentCap: [2]int{13, 17},
	}
}

// Font returns the regular or bold face at size s.
func (f *Fonts) Font(s Size, bold bool) tinyfont.Fonter {
	if bold {
		return f.Bold[s]
	}
	return f.Regular[s]
}

// Middle returns the baseline that vertically centers text of size s on y.
func (f *Fonts) Middle(s Size, y int) int {
	return y + f.AscentCap[s]/2
}
