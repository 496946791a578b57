package system

import (
	"math/rand/v2"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// PlayerControllerSystem pumps the player state machine once per tick. The
// active state's HandleInput proposes at most one transition; the commit
// runs the old state's Exit and the new state's Enter before the swap, and
// the committed state's Update then issues its per-tick commands.
type PlayerControllerSystem struct {
	startCanned       func(name string)
	notifyCannedEntry func()
	playFlavor        func()
	rollWait          func(min, max float64) float64
}

func NewPlayerControllerSystem(startCanned func(name string), notifyCannedEntry func(), playFlavor func()) *PlayerControllerSystem {
	return &PlayerControllerSystem{
		startCanned:       startCanned,
		notifyCannedEntry: notifyCannedEntry,
		playFlavor:        playFlavor,
		rollWait:          rollUniformWait,
	}
}

func rollUniformWait(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rand.Float64()*(max-min)
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	rig, ok := ecs.Get(w, player, component.PlayerRigComponent.Kind())
	if !ok {
		return
	}
	machine, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	ctx := &component.PlayerStateContext{
		DT:    w.DT(),
		Input: input,
		Rig:   rig,
		CameraYaw: func() float64 {
			if cam, ok := ecs.First(w, component.CameraRigComponent.Kind()); ok {
				if camRig, ok := ecs.Get(w, cam, component.CameraRigComponent.Kind()); ok {
					return camRig.Yaw
				}
			}
			return transform.Yaw
		},
		SetPlanarVelocity: func(vx, vz float64) {
			body.CommandX = vx
			body.CommandZ = vz
			body.HasCommand = true
		},
		Face: func(targetYaw, turnRate float64) {
			transform.Yaw = common.DampAngle(transform.Yaw, targetYaw, turnRate, w.DT())
		},
		ChangeState: func(next component.PlayerState) {
			machine.Pending = next
		},
		RollFlavorWait: func() float64 {
			return p.rollWait(rig.FlavorMinWait, rig.FlavorMaxWait)
		},
		PlayFlavor:        p.playFlavor,
		StartCanned:       p.startCanned,
		NotifyCannedEntry: p.notifyCannedEntry,
	}

	if machine.State == nil {
		machine.State = playerStateIdle
		machine.State.Enter(ctx)
	}

	machine.Pending = nil
	machine.State.HandleInput(ctx)

	if machine.Pending != nil && machine.Pending != machine.State {
		machine.State.Exit(ctx)
		machine.Pending.Enter(ctx)
		machine.State = machine.Pending
	}
	machine.Pending = nil

	machine.State.Update(ctx)
}
