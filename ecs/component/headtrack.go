package component

// Headtrack tunes the look-target scanning and angle smoothing for a
// character's head aim. Offsets are the smoothed output angles in degrees.
type Headtrack struct {
	Radius       float64
	MaxAngleDeg  float64
	ExtendMult   float64
	SmoothRate   float64
	ScanInterval float64

	ScanTimer   float64
	YawOffset   float64
	PitchOffset float64
}

var HeadtrackComponent = NewComponent[Headtrack]()
