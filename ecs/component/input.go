package component

// Input stores the per-tick input snapshot for a controllable entity.
// Level fields report the button held this tick; Pressed fields report a
// fresh down edge and are valid for exactly one tick.
type Input struct {
	MoveX float64
	MoveY float64
	LookX float64
	LookY float64

	Aim    bool
	Sprint bool
	Crouch bool
	Fire   bool

	SprintPressed bool
	CrouchPressed bool
	FirePressed   bool
	CannedPressed bool
}

// MoveMagSq returns the squared magnitude of the movement axes.
func (in *Input) MoveMagSq() float64 {
	return in.MoveX*in.MoveX + in.MoveY*in.MoveY
}

var InputComponent = NewComponent[Input]()
