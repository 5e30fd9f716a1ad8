package lightsheet

import "github.com/lukaszgryglicki/lightsheet/internal/optics"

var (
	PNG  = false // set to true to also save 16-bit PNG slice sequences
	RAW  = false // set to true to save float64 RAW volumes
	GIF  = false // set to true to save an animated GIF of the effective PSF
	Plot = true  // set to false to skip the MTF profile plot
	// Compile time checks
	_ Diffraction = optics.Debye{}
	_ Progress    = (*TerminalProgress)(nil)
	_ Progress    = ProgressFunc(nil)
)
