package component

// StateKind enumerates the player movement states. Exactly one is active at
// any tick. Hot-path consumers switch on the kind, never on state names.
type StateKind int

const (
	StateIdle StateKind = iota
	StateWalking
	StateRunning
	StateCrouched
	StateAiming
	StateCannedAnim
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateRunning:
		return "running"
	case StateCrouched:
		return "crouched"
	case StateAiming:
		return "aiming"
	case StateCannedAnim:
		return "canned"
	default:
		return "unknown"
	}
}

// PlayerState defines the interface for player state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Kind() StateKind
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to input, locomotion, and
// the animation bridge for a state. It intentionally uses callbacks to avoid
// tight coupling to the ECS package.
type PlayerStateContext struct {
	DT    float64
	Input *Input
	Rig   *PlayerRig

	CameraYaw         func() float64
	SetPlanarVelocity func(vx, vz float64)
	Face              func(targetYaw, turnRate float64)
	ChangeState       func(state PlayerState)
	RollFlavorWait    func() float64
	PlayFlavor        func()
	StartCanned       func(sequence string)
	NotifyCannedEntry func()
}

// PlayerStateMachine stores the active and pending states for the player.
// Pending is committed by the controller after exit and enter hooks ran.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}

// CurrentKind reports the active state kind, defaulting to Idle before the
// machine is primed.
func (m *PlayerStateMachine) CurrentKind() StateKind {
	if m == nil || m.State == nil {
		return StateIdle
	}
	return m.State.Kind()
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
