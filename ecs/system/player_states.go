package system

import (
	"math"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// Player state singletons (avoid allocations on transitions).
var (
	playerStateIdle   component.PlayerState = &playerIdleState{}
	playerStateWalk   component.PlayerState = &playerWalkState{}
	playerStateRun    component.PlayerState = &playerRunState{}
	playerStateCrouch component.PlayerState = &playerCrouchState{}
	playerStateAim    component.PlayerState = &playerAimState{}
	playerStateCanned component.PlayerState = &playerCannedState{}
)

type playerIdleState struct{}

type playerWalkState struct{}

type playerRunState struct{}

type playerCrouchState struct{}

type playerAimState struct{}

type playerCannedState struct{}

func moveMag(ctx *component.PlayerStateContext) float64 {
	return math.Sqrt(ctx.Input.MoveMagSq())
}

// checkCanned and checkAim are the transitions shared by every grounded
// state. Aim is a level, canned a press edge; both leave the movement tier
// resolution to the state that follows.
func checkCanned(ctx *component.PlayerStateContext) bool {
	if ctx.Input.CannedPressed {
		ctx.ChangeState(playerStateCanned)
		return true
	}
	return false
}

func checkAim(ctx *component.PlayerStateContext) bool {
	if ctx.Input.Aim {
		ctx.ChangeState(playerStateAim)
		return true
	}
	return false
}

// applyLocomotion blends the smoothed speed toward the state profile and
// issues the camera-relative planar velocity command. Facing turns toward
// the camera heading unless the crouch freeze applies.
func applyLocomotion(ctx *component.PlayerStateContext, kind component.StateKind) {
	if ctx == nil || ctx.Rig == nil || ctx.Input == nil || ctx.SetPlanarVelocity == nil || ctx.CameraYaw == nil {
		return
	}

	prof := ctx.Rig.Profile(kind)
	ctx.Rig.SmoothedSpeed = common.Damp(ctx.Rig.SmoothedSpeed, prof.Speed, prof.AccelRate, ctx.DT)

	camYaw := ctx.CameraYaw()
	fwd := common.YawDirection(camYaw)
	right := common.YawRight(camYaw)

	mx := ctx.Input.MoveX
	my := ctx.Input.MoveY
	if magSq := mx*mx + my*my; magSq > 1 {
		inv := 1 / math.Sqrt(magSq)
		mx *= inv
		my *= inv
	}

	vx := (right.X*mx + fwd.X*my) * ctx.Rig.SmoothedSpeed
	vz := (right.Z*mx + fwd.Z*my) * ctx.Rig.SmoothedSpeed
	ctx.SetPlanarVelocity(vx, vz)

	if ctx.Face != nil {
		frozen := kind == component.StateCrouched && ctx.Input.MoveMagSq() <= 0.1
		if !frozen {
			ctx.Face(camYaw, prof.TurnRate)
		}
	}
}

func (playerIdleState) Kind() component.StateKind { return component.StateIdle }
func (playerIdleState) Name() string              { return "idle" }
func (playerIdleState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil || ctx.RollFlavorWait == nil {
		return
	}
	ctx.Rig.FlavorArmed = true
	ctx.Rig.FlavorWait = ctx.RollFlavorWait()
}
func (playerIdleState) Exit(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil {
		return
	}
	ctx.Rig.FlavorArmed = false
	ctx.Rig.FlavorWait = 0
}
func (playerIdleState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil || ctx.Rig == nil {
		return
	}
	if checkCanned(ctx) || checkAim(ctx) {
		return
	}
	mag := moveMag(ctx)
	if ctx.Input.SprintPressed && mag >= ctx.Rig.RunThreshold {
		ctx.ChangeState(playerStateRun)
		return
	}
	if ctx.Input.CrouchPressed {
		ctx.ChangeState(playerStateCrouch)
		return
	}
	if mag > ctx.Rig.MoveThreshold {
		ctx.ChangeState(playerStateWalk)
	}
}
func (playerIdleState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil {
		return
	}

	// No velocity command here; residual momentum decays in the integrator.
	prof := ctx.Rig.Profile(component.StateIdle)
	ctx.Rig.SmoothedSpeed = common.Damp(ctx.Rig.SmoothedSpeed, prof.Speed, prof.AccelRate, ctx.DT)
	if ctx.Face != nil && ctx.CameraYaw != nil {
		ctx.Face(ctx.CameraYaw(), prof.TurnRate)
	}

	if ctx.Rig.FlavorArmed {
		ctx.Rig.FlavorWait -= ctx.DT
		if ctx.Rig.FlavorWait <= 0 {
			if ctx.PlayFlavor != nil {
				ctx.PlayFlavor()
			}
			if ctx.RollFlavorWait != nil {
				ctx.Rig.FlavorWait = ctx.RollFlavorWait()
			}
		}
	}
}

func (playerWalkState) Kind() component.StateKind               { return component.StateWalking }
func (playerWalkState) Name() string                            { return "walking" }
func (playerWalkState) Enter(ctx *component.PlayerStateContext) {}
func (playerWalkState) Exit(ctx *component.PlayerStateContext)  {}
func (playerWalkState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil || ctx.Rig == nil {
		return
	}
	if checkCanned(ctx) || checkAim(ctx) {
		return
	}
	mag := moveMag(ctx)
	if ctx.Input.SprintPressed && mag >= ctx.Rig.RunThreshold {
		ctx.ChangeState(playerStateRun)
		return
	}
	if ctx.Input.CrouchPressed {
		ctx.ChangeState(playerStateCrouch)
		return
	}
	if mag <= ctx.Rig.MoveThreshold {
		ctx.ChangeState(playerStateIdle)
	}
}
func (playerWalkState) Update(ctx *component.PlayerStateContext) {
	applyLocomotion(ctx, component.StateWalking)
}

func (playerRunState) Kind() component.StateKind               { return component.StateRunning }
func (playerRunState) Name() string                            { return "running" }
func (playerRunState) Enter(ctx *component.PlayerStateContext) {}
func (playerRunState) Exit(ctx *component.PlayerStateContext)  {}
func (playerRunState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil || ctx.Rig == nil {
		return
	}
	if checkCanned(ctx) || checkAim(ctx) {
		return
	}

	// Sprint outranks crouch while its conditions hold, so the crouch edge
	// only matters once the stick drops below the run threshold. Running
	// falls back through Walking, never straight to Idle.
	if moveMag(ctx) >= ctx.Rig.RunThreshold {
		return
	}
	if ctx.Input.CrouchPressed {
		ctx.ChangeState(playerStateCrouch)
		return
	}
	ctx.ChangeState(playerStateWalk)
}
func (playerRunState) Update(ctx *component.PlayerStateContext) {
	applyLocomotion(ctx, component.StateRunning)
}

func (playerCrouchState) Kind() component.StateKind               { return component.StateCrouched }
func (playerCrouchState) Name() string                            { return "crouched" }
func (playerCrouchState) Enter(ctx *component.PlayerStateContext) {}
func (playerCrouchState) Exit(ctx *component.PlayerStateContext)  {}
func (playerCrouchState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if checkCanned(ctx) || checkAim(ctx) {
		return
	}

	// A fresh press toggles back out; holding the button or moving the
	// stick never leaves crouch on its own.
	if ctx.Input.CrouchPressed {
		ctx.ChangeState(playerStateIdle)
	}
}
func (playerCrouchState) Update(ctx *component.PlayerStateContext) {
	applyLocomotion(ctx, component.StateCrouched)
}

func (playerAimState) Kind() component.StateKind { return component.StateAiming }
func (playerAimState) Name() string              { return "aiming" }
func (playerAimState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil {
		return
	}

	// Aim transitions snap; the walk/run blend would make the weapon feel
	// floaty.
	ctx.Rig.SmoothedSpeed = ctx.Rig.Profile(component.StateAiming).Speed
}
func (playerAimState) Exit(ctx *component.PlayerStateContext) {}
func (playerAimState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil || ctx.Rig == nil {
		return
	}
	if ctx.Input.Aim {
		return
	}

	mag := moveMag(ctx)
	if ctx.Input.SprintPressed && mag >= ctx.Rig.RunThreshold {
		ctx.ChangeState(playerStateRun)
		return
	}
	if ctx.Input.CrouchPressed {
		ctx.ChangeState(playerStateCrouch)
		return
	}
	if mag > ctx.Rig.MoveThreshold {
		ctx.ChangeState(playerStateWalk)
		return
	}
	ctx.ChangeState(playerStateIdle)
}
func (playerAimState) Update(ctx *component.PlayerStateContext) {
	applyLocomotion(ctx, component.StateAiming)
}

func (playerCannedState) Kind() component.StateKind { return component.StateCannedAnim }
func (playerCannedState) Name() string              { return "canned" }
func (playerCannedState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil {
		return
	}

	// Camera handshake happens on this tick, before the machine commits.
	if ctx.NotifyCannedEntry != nil {
		ctx.NotifyCannedEntry()
	}
	ctx.Rig.CannedFinished = false
	ctx.Rig.SmoothedSpeed = 0
	if ctx.SetPlanarVelocity != nil {
		ctx.SetPlanarVelocity(0, 0)
	}
	if ctx.StartCanned != nil {
		ctx.StartCanned(ctx.Rig.CannedSequence)
	}
}
func (playerCannedState) Exit(ctx *component.PlayerStateContext) {}
func (playerCannedState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Rig == nil || ctx.ChangeState == nil {
		return
	}

	// Sticky until the timeline raises the finished signal. Every other
	// input is ignored while it plays.
	if ctx.Rig.CannedFinished {
		ctx.ChangeState(playerStateIdle)
	}
}
func (playerCannedState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.SetPlanarVelocity == nil {
		return
	}
	ctx.SetPlanarVelocity(0, 0)
}
