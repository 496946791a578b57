package component

import "github.com/TomRobson01/PDP-3CsExperiments/common"

// CameraProfileID names one tuning bundle in the rig's profile table.
type CameraProfileID int

const (
	CameraProfileResting CameraProfileID = iota
	CameraProfileWalking
	CameraProfileRunning
	CameraProfileCrouched
	CameraProfileCombat
	CameraProfileAiming
	CameraProfileCanned
)

func (id CameraProfileID) String() string {
	switch id {
	case CameraProfileResting:
		return "resting"
	case CameraProfileWalking:
		return "walking"
	case CameraProfileRunning:
		return "running"
	case CameraProfileCrouched:
		return "crouched"
	case CameraProfileCombat:
		return "combat"
	case CameraProfileAiming:
		return "aiming"
	case CameraProfileCanned:
		return "canned"
	default:
		return "unknown"
	}
}

// CameraProfile is one named bundle of camera tuning. Offsets are expressed
// in the camera's yaw frame and rotated into world space per tick.
type CameraProfile struct {
	Offset         common.Vec3
	ChaseRate      float64
	CorrectionRate float64
	FovDeg         float64
}

// CameraRig is the third-person chase camera state. It derives its active
// profile from the player state every tick and keeps no transition
// hysteresis of its own, only smoothing.
type CameraRig struct {
	Profiles map[CameraProfileID]CameraProfile

	Yaw   float64
	Pitch float64

	YawSpeed   float64
	PitchSpeed float64
	PitchMin   float64
	PitchMax   float64

	RateBlend  float64
	CannedRate float64

	ActiveProfile CameraProfileID
	SmoothedChase float64
	OffsetDist    float64

	Focus    common.Vec3
	Position common.Vec3
	FovDeg   float64

	PreCannedPos   common.Vec3
	PreCannedYaw   float64
	PreCannedPitch float64

	CannedEntered bool
	ExitRequested bool
}

// Profile returns the tuning bundle for id, or a zero profile when the table
// has no entry for it.
func (r *CameraRig) Profile(id CameraProfileID) CameraProfile {
	if r.Profiles == nil {
		return CameraProfile{}
	}
	return r.Profiles[id]
}

// ClampPitch applies the hard pitch limits after any rotation change.
func (r *CameraRig) ClampPitch() {
	r.Pitch = common.Clamp(r.Pitch, r.PitchMin, r.PitchMax)
}

var CameraRigComponent = NewComponent[CameraRig]()
