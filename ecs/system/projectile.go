package system

import (
	"github.com/rs/zerolog"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
	"github.com/TomRobson01/PDP-3CsExperiments/prefabs"
)

const (
	muzzleHeight  = 1.4
	aimRange      = 80.0
	fireClip      = "fire"
	projectileTTL = 3.0
)

// ProjectileSystem spawns projectile bodies on the fire edge and applies
// the contact policy to the contacts the physics step collected. A
// projectile is Flying until its first contact, then terminally Penetrated
// or Destroyed; the TTL ceiling destroys survivors regardless.
type ProjectileSystem struct {
	logger  zerolog.Logger
	physics *PhysicsSystem
	bridge  *AnimatorBridgeSystem

	specs       map[string]prefabs.ProjectileSpec
	defaultName string
}

func NewProjectileSystem(logger zerolog.Logger, physics *PhysicsSystem, bridge *AnimatorBridgeSystem, specs *prefabs.ProjectilesSpec) *ProjectileSystem {
	ps := &ProjectileSystem{
		logger:  logger,
		physics: physics,
		bridge:  bridge,
		specs:   make(map[string]prefabs.ProjectileSpec),
	}
	if specs != nil {
		for name, spec := range specs.Types {
			ps.specs[name] = spec
		}
		ps.defaultName = specs.Default
	}
	return ps
}

func (ps *ProjectileSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.resolveContacts(w)
	ps.handleFire(w)
}

func (ps *ProjectileSystem) handleFire(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.FirePressed {
		return
	}
	machine, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind())
	if !ok || machine.CurrentKind() != component.StateAiming {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	spec, ok := ps.specs[ps.defaultName]
	if !ok {
		ps.logger.Warn().Str("name", ps.defaultName).Msg("projectile: no descriptor configured")
		return
	}

	muzzle := transform.Position.Add(common.Vec3{Y: muzzleHeight})
	dir := ps.aimDirection(w, muzzle, transform.Yaw)

	SpawnProjectile(w, spec, muzzle, dir)

	// Firing is a combat act.
	if combatEnt, ok := ecs.First(w, component.CombatComponent.Kind()); ok {
		if combat, ok := ecs.Get(w, combatEnt, component.CombatComponent.Kind()); ok {
			combat.Active = true
			combat.Calm = combat.CalmDelay
		}
	}

	if ps.bridge != nil {
		ps.bridge.PlayOneShot(w, fireClip)
	}
}

// aimDirection resolves where the shot should go. With a camera rig it
// raycasts through the viewport center and re-bases the hit onto the
// muzzle, which keeps the visual aim point honest regardless of the muzzle
// offset. Without a camera, or on a miss, the shooter's facing wins.
func (ps *ProjectileSystem) aimDirection(w *ecs.World, muzzle common.Vec3, shooterYaw float64) common.Vec3 {
	rig, ok := cameraRig(w)
	if !ok || ps.physics == nil {
		return common.YawDirection(shooterYaw)
	}

	camDir := common.DirectionFromYawPitch(rig.Yaw, rig.Pitch)
	rayEnd := rig.Position.Add(camDir.Scale(aimRange))

	mask := component.CategoryObstacle | component.CategoryOccluder | component.CategoryTarget
	if hit, ok := ps.physics.RaycastFirst(rig.Position, rayEnd, mask); ok {
		return hit.Point.Sub(muzzle).Normalized()
	}
	return common.YawDirection(shooterYaw)
}

// SpawnProjectile is the stateless factory: one immutable descriptor, one
// origin, one launch direction, one transient body.
func SpawnProjectile(w *ecs.World, spec prefabs.ProjectileSpec, origin, dir common.Vec3) ecs.Entity {
	if w == nil {
		return 0
	}

	ttl := spec.TTL
	if ttl <= 0 {
		ttl = projectileTTL
	}

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: origin,
		Yaw:      common.YawFromDirection(dir),
	})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Name:       spec.Name,
		Speed:      spec.Speed,
		Penetrates: spec.Penetrates,
		State:      component.ProjectileFlying,
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		CollisionType: component.CollisionProjectile,
		Category:      component.CategoryProjectile,
		Mask:          component.CategoryObstacle | component.CategoryTarget,
		CommandX:      dir.X * spec.Speed,
		CommandZ:      dir.Z * spec.Speed,
		HasCommand:    true,
		VerticalVel:   dir.Y * spec.Speed,
	})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: ttl})
	return e
}

// resolveContacts applies the first-contact policy. Penetration strips the
// physics capability and leaves the visual to rest until the TTL ceiling;
// otherwise the whole body goes immediately. Both outcomes are terminal.
func (ps *ProjectileSystem) resolveContacts(w *ecs.World) {
	if ps.physics == nil {
		return
	}
	for _, e := range ps.physics.DrainProjectileContacts() {
		if !ecs.IsAlive(w, e) {
			continue
		}
		proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
		if !ok || proj.State != component.ProjectileFlying {
			continue
		}
		if proj.Penetrates {
			proj.State = component.ProjectilePenetrated
			ps.physics.RemoveBody(w, e)
			continue
		}
		proj.State = component.ProjectileDestroyed
		ecs.DestroyEntity(w, e)
	}
}
