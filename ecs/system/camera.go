package system

import (
	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

const cameraEyeHeight = 1.55

// CameraSystem drives the third-person rig. It recomputes the active
// profile from the player state every tick and holds no hysteresis of its
// own; everything it outputs is smoothed toward a derived target.
//
// It also implements the canned-animation observer half of the handshake:
// the player controller calls PreCannedAnimNotify on the tick the canned
// state is entered, and the sequence timeline calls CannedAnimExitNotify
// when the blend back to live control should begin.
type CameraSystem struct {
	raycaster Raycaster

	// Last occlusion ray, kept for the debug overlay.
	RayFrom common.Vec3
	RayTo   common.Vec3
	RayHit  bool
}

func NewCameraSystem(raycaster Raycaster) *CameraSystem {
	return &CameraSystem{raycaster: raycaster}
}

// PreCannedAnimNotify snapshots the rig pose before any canned-driven
// rotation happens. Called before the state machine commits CannedAnim.
func (cs *CameraSystem) PreCannedAnimNotify(w *ecs.World) {
	rig, ok := cameraRig(w)
	if !ok {
		return
	}
	rig.PreCannedPos = rig.Position
	rig.PreCannedYaw = rig.Yaw
	rig.PreCannedPitch = rig.Pitch
	rig.CannedEntered = true
	rig.ExitRequested = false
}

// CannedAnimExitNotify flags the blend back toward the pre-canned pose. The
// next tick's rotation and offset logic consume it.
func (cs *CameraSystem) CannedAnimExitNotify(w *ecs.World) {
	rig, ok := cameraRig(w)
	if !ok {
		return
	}
	rig.ExitRequested = true
}

func cameraRig(w *ecs.World) (*component.CameraRig, bool) {
	if w == nil {
		return nil, false
	}
	cam, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, cam, component.CameraRigComponent.Kind())
}

// selectCameraProfile resolves the per-tick profile. Aiming is the single
// highest-priority framing in both modes; Combat promotes only the
// Resting-family states; a canned exit request falls back to Resting so the
// blend-out frames the player again.
func selectCameraProfile(kind component.StateKind, combat, exitRequested bool) component.CameraProfileID {
	switch kind {
	case component.StateAiming:
		return component.CameraProfileAiming
	case component.StateCannedAnim:
		if exitRequested {
			return component.CameraProfileResting
		}
		return component.CameraProfileCanned
	case component.StateCrouched:
		return component.CameraProfileCrouched
	case component.StateRunning:
		if combat {
			return component.CameraProfileCombat
		}
		return component.CameraProfileRunning
	case component.StateWalking:
		if combat {
			return component.CameraProfileCombat
		}
		return component.CameraProfileWalking
	default:
		if combat {
			return component.CameraProfileCombat
		}
		return component.CameraProfileResting
	}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	rig, ok := cameraRig(w)
	if !ok {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	machine, _ := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind())
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())

	kind := machine.CurrentKind()
	canned := kind == component.StateCannedAnim

	// The handshake flags clear once the machine is observed back in live
	// control.
	if !canned && rig.CannedEntered {
		rig.CannedEntered = false
		rig.ExitRequested = false
	}

	combatActive := false
	if combatEnt, ok := ecs.First(w, component.CombatComponent.Kind()); ok {
		if combat, ok := ecs.Get(w, combatEnt, component.CombatComponent.Kind()); ok {
			combatActive = combat.Active
		}
	}

	dt := w.DT()

	selected := selectCameraProfile(kind, combatActive, rig.ExitRequested)
	prof := rig.Profile(selected)
	if selected != rig.ActiveProfile {
		// Stale distance is tolerated only while the offset is unchanged.
		rig.OffsetDist = prof.Offset.Mag()
		rig.ActiveProfile = selected
	}

	cs.rotate(w, rig, input, canned, dt)

	// Chase rate is shared between the focus chase and the offset blend, so
	// framing and position tighten together.
	rig.SmoothedChase = common.Damp(rig.SmoothedChase, prof.ChaseRate, rig.RateBlend, dt)

	focusTarget := playerTransform.Position.Add(common.Vec3{Y: cameraEyeHeight})
	if canned && !rig.ExitRequested {
		if anchor, ok := cannedAnchorPose(w); ok {
			focusTarget = anchor.Position
		}
	}
	rig.Focus = common.Damp3(rig.Focus, focusTarget, rig.SmoothedChase, dt)

	cs.position(rig, prof, dt)

	rig.FovDeg = common.Damp(rig.FovDeg, prof.FovDeg, rig.RateBlend, dt)
}

func cannedAnchorPose(w *ecs.World) (*component.Transform, bool) {
	anchor, ok := ecs.First(w, component.CannedAnchorTagComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, anchor, component.TransformComponent.Kind())
}

func (cs *CameraSystem) rotate(w *ecs.World, rig *component.CameraRig, input *component.Input, canned bool, dt float64) {
	if !canned {
		if input != nil {
			rig.Yaw = common.NormalizeAngle(rig.Yaw + input.LookX*rig.YawSpeed*dt)
			rig.Pitch += input.LookY * rig.PitchSpeed * dt
			rig.ClampPitch()
		}
		return
	}

	if rig.ExitRequested {
		// Blend home to the snapshot so leaving the sequence never snaps.
		rig.Yaw = common.DampAngle(rig.Yaw, rig.PreCannedYaw, rig.CannedRate, dt)
		rig.Pitch = common.Damp(rig.Pitch, rig.PreCannedPitch, rig.CannedRate, dt)
		rig.ClampPitch()
		return
	}

	if anchor, ok := cannedAnchorPose(w); ok {
		rig.Yaw = common.DampAngle(rig.Yaw, anchor.Yaw, rig.CannedRate, dt)
		rig.Pitch = common.Damp(rig.Pitch, 0, rig.CannedRate, dt)
		rig.ClampPitch()
	}
}

// position resolves the rig position from the focus, the selected offset,
// and the wall-occlusion ray.
func (cs *CameraSystem) position(rig *component.CameraRig, prof component.CameraProfile, dt float64) {
	if rig.OffsetDist == 0 {
		// Zero offset means the rig locks to its focus (canned framing).
		rig.Position = common.Damp3(rig.Position, rig.Focus, rig.SmoothedChase, dt)
		cs.RayHit = false
		return
	}

	right := common.YawRight(rig.Yaw)
	fwd := common.YawDirection(rig.Yaw)
	worldOffset := right.Scale(prof.Offset.X).
		Add(common.Vec3{Y: prof.Offset.Y}).
		Add(fwd.Scale(prof.Offset.Z))
	nominal := rig.Focus.Add(worldOffset)

	cs.RayFrom = rig.Focus
	cs.RayTo = nominal
	cs.RayHit = false

	target := nominal
	if cs.raycaster != nil {
		if hit, ok := cs.raycaster.RaycastFirst(rig.Focus, nominal, component.CategoryOccluder); ok {
			cs.RayHit = true
			dir := nominal.Sub(rig.Focus).Normalized()
			target = rig.Focus.Add(dir.Scale(rig.OffsetDist * hit.Fraction))
			rig.Position = common.Damp3(rig.Position, target, prof.CorrectionRate, dt)
			return
		}
	}

	rig.Position = common.Damp3(rig.Position, target, rig.SmoothedChase, dt)
}
