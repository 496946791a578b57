package component

// MoveProfile tunes locomotion for one player state.
type MoveProfile struct {
	Speed     float64
	AccelRate float64
	TurnRate  float64
}

// PlayerRig carries the movement tuning and the runtime scratch shared by
// the player states. Thresholds gate the walk and run tiers; the run
// threshold doubles as the fall-back bound so the walk/run boundary does
// not flicker.
type PlayerRig struct {
	Profiles map[StateKind]MoveProfile

	MoveThreshold float64
	RunThreshold  float64

	FlavorMinWait float64
	FlavorMaxWait float64

	CannedSequence string

	SmoothedSpeed  float64
	FlavorWait     float64
	FlavorArmed    bool
	CannedFinished bool
}

// Profile returns the tuning for the given state, or a zero profile when the
// state has none configured.
func (r *PlayerRig) Profile(kind StateKind) MoveProfile {
	if r.Profiles == nil {
		return MoveProfile{}
	}
	return r.Profiles[kind]
}

var PlayerRigComponent = NewComponent[PlayerRig]()
