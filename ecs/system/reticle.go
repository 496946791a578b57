package system

import (
	"math"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// ReticleSystem relays the aim flag and input magnitude into the HUD
// reticle each tick. Pure engine glue: it consumes controller outputs and
// never feeds anything back.
type ReticleSystem struct{}

func NewReticleSystem() *ReticleSystem {
	return &ReticleSystem{}
}

func (r *ReticleSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	reticle, ok := ecs.Get(w, player, component.ReticleComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	machine, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return
	}

	reticle.Visible = machine.CurrentKind() == component.StateAiming

	mag := math.Min(math.Sqrt(input.MoveMagSq()), 1)
	target := reticle.MinSpread + (reticle.MaxSpread-reticle.MinSpread)*mag
	reticle.Spread = common.Damp(reticle.Spread, target, reticle.SpreadRate, w.DT())
}
