package system

import (
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// CombatSystem maintains the global combat flag the camera's profile
// selection reads. Aiming or firing raises it and re-arms the calm timer;
// the flag drops once the timer drains.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

func (c *CombatSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}

	combatEnt, ok := ecs.First(w, component.CombatComponent.Kind())
	if !ok {
		return
	}
	combat, ok := ecs.Get(w, combatEnt, component.CombatComponent.Kind())
	if !ok {
		return
	}

	hostile := false
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if input, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
			hostile = input.Aim || input.FirePressed
		}
	}

	if hostile {
		combat.Active = true
		combat.Calm = combat.CalmDelay
		return
	}

	if !combat.Active {
		return
	}
	combat.Calm -= w.DT()
	if combat.Calm <= 0 {
		combat.Active = false
		combat.Calm = 0
	}
}
