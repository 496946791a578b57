package system

import (
	"math"
	"testing"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
	"github.com/TomRobson01/PDP-3CsExperiments/prefabs"
)

func addDynamicBody(t *testing.T, w *ecs.World, pos common.Vec3) (ecs.Entity, *component.PhysicsBody, *component.Transform) {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := &component.PhysicsBody{
		Radius:        0.4,
		Mass:          70,
		CollisionType: component.CollisionPlayer,
		Category:      component.CategoryPlayer,
		Mask:          component.CategoryObstacle,
		GravityScale:  1,
	}
	transform := &component.Transform{Position: pos}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e, body, transform
}

func addStaticBox(t *testing.T, w *ecs.World, pos common.Vec3, width, depth float64, category uint) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := &component.PhysicsBody{
		Width:         width,
		Depth:         depth,
		Static:        true,
		CollisionType: component.CollisionObstacle,
		Category:      category,
		Mask:          ^uint(0),
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func TestVelocityCommandMovesBody(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)
	sys := NewPhysicsSystem()

	_, body, transform := addDynamicBody(t, w, common.Vec3{})
	body.CommandX = 0
	body.CommandZ = 3
	body.HasCommand = true

	sys.Update(w)

	if transform.Position.Z <= 0 {
		t.Fatalf("expected forward movement, got z=%v", transform.Position.Z)
	}
	if body.HasCommand {
		t.Fatal("expected the command consumed")
	}
}

func TestVerticalChannelFallsAndGrounds(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 30.0)
	sys := NewPhysicsSystem()

	_, body, transform := addDynamicBody(t, w, common.Vec3{Y: 1.5})

	sys.Update(w)
	if !(transform.Position.Y < 1.5 && transform.Position.Y > 0) {
		t.Fatalf("expected the body falling, got y=%v", transform.Position.Y)
	}
	if body.Grounded {
		t.Fatal("expected airborne mid-fall")
	}

	for i := 0; i < 60; i++ {
		sys.Update(w)
	}
	if transform.Position.Y != 0 || !body.Grounded {
		t.Fatalf("expected rest on the ground, got y=%v grounded=%v", transform.Position.Y, body.Grounded)
	}
	if body.VerticalVel != 0 {
		t.Fatalf("expected vertical velocity cleared at rest, got %v", body.VerticalVel)
	}
}

func TestRaycastFirstAgainstOccluder(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)
	sys := NewPhysicsSystem()

	wall := addStaticBox(t, w, common.Vec3{Z: 5}, 4, 1, component.CategoryObstacle|component.CategoryOccluder)
	sys.Update(w)

	hit, ok := sys.RaycastFirst(common.Vec3{Y: 1.55}, common.Vec3{Y: 1.55, Z: 10}, component.CategoryOccluder)
	if !ok {
		t.Fatal("expected a hit on the wall")
	}
	if hit.Entity != wall {
		t.Fatalf("expected the wall entity, got %v", hit.Entity)
	}
	// The box near face sits at z=4.5, so the fraction along the 10-unit ray
	// is 0.45 and the hit keeps the cast height.
	if math.Abs(hit.Fraction-0.45) > 0.01 {
		t.Fatalf("expected fraction near 0.45, got %v", hit.Fraction)
	}
	if math.Abs(hit.Point.Y-1.55) > 1e-9 {
		t.Fatalf("expected the hit lifted to the cast height, got y=%v", hit.Point.Y)
	}

	// A mask that excludes the wall's categories sees nothing.
	if _, ok := sys.RaycastFirst(common.Vec3{}, common.Vec3{Z: 10}, component.CategoryTarget); ok {
		t.Fatal("expected no hit through the category filter")
	}
}

func TestRemoveBodyStripsPhysicsOnly(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)
	sys := NewPhysicsSystem()

	e, body, transform := addDynamicBody(t, w, common.Vec3{Z: 1})
	sys.Update(w)
	if body.Body == nil || body.Shape == nil {
		t.Fatal("expected a materialized body")
	}

	sys.RemoveBody(w, e)
	if body.Body != nil || body.Shape != nil {
		t.Fatal("expected the chipmunk handles cleared")
	}
	if !ecs.IsAlive(w, e) {
		t.Fatal("expected the entity itself kept")
	}

	// The body must not come back on the next sync.
	before := *transform
	sys.Update(w)
	if body.Body != nil {
		t.Fatal("expected no respawned body")
	}
	if transform.Position.X != before.Position.X || transform.Position.Z != before.Position.Z {
		t.Fatal("expected the transform left where it was")
	}
}

func TestProjectileContactQueuedByHandler(t *testing.T) {
	spec := prefabs.ProjectileSpec{Name: "bolt", Speed: 42, Radius: 0.08, Mass: 0.2, TTL: 3}

	cases := []struct {
		name     string
		obstacle func(t *testing.T, w *ecs.World)
	}{
		{"obstacle wall", func(t *testing.T, w *ecs.World) {
			addStaticBox(t, w, common.Vec3{Z: 2}, 4, 1, component.CategoryObstacle)
		}},
		{"target circle", func(t *testing.T, w *ecs.World) {
			e := ecs.CreateEntity(w)
			body := &component.PhysicsBody{
				Radius:        0.3,
				Static:        true,
				CollisionType: component.CollisionTarget,
				Category:      component.CategoryTarget,
				Mask:          component.CategoryProjectile,
			}
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
				t.Fatalf("add body: %v", err)
			}
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{Z: 2}}); err != nil {
				t.Fatalf("add transform: %v", err)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDT(1.0 / 60.0)
			sys := NewPhysicsSystem()

			tc.obstacle(t, w)
			bolt := SpawnProjectile(w, spec, common.Vec3{Y: 1.5}, common.Vec3{Z: 1})

			hit := false
			for i := 0; i < 30 && !hit; i++ {
				sys.Update(w)
				for _, c := range sys.DrainProjectileContacts() {
					if c == bolt {
						hit = true
					}
				}
			}
			if !hit {
				t.Fatal("expected the contact handler to queue the projectile")
			}
		})
	}
}

func TestProjectileVelocityExemptFromDamping(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)
	sys := NewPhysicsSystem()

	spec := prefabs.ProjectileSpec{Name: "bolt", Speed: 42, Radius: 0.08, Mass: 0.2, TTL: 3}
	bolt := SpawnProjectile(w, spec, common.Vec3{Y: 1.5}, common.Vec3{Z: 1})

	for i := 0; i < 60; i++ {
		sys.Update(w)
	}

	body, ok := ecs.Get(w, bolt, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		t.Fatal("expected a live projectile body")
	}
	if speed := body.Body.Velocity().Length(); math.Abs(speed-spec.Speed) > 0.01 {
		t.Fatalf("expected launch speed held over a full second, got %v", speed)
	}

	transform, _ := ecs.Get(w, bolt, component.TransformComponent.Kind())
	if transform.Position.Z < 41 {
		t.Fatalf("expected roughly a second of travel, got z=%v", transform.Position.Z)
	}

	// Ordinary movers still bleed momentum through the space damping.
	walker := ecs.NewWorld()
	walker.SetDT(1.0 / 60.0)
	wsys := NewPhysicsSystem()
	_, wbody, _ := addDynamicBody(t, walker, common.Vec3{})
	wbody.CommandX = 0
	wbody.CommandZ = 3
	wbody.HasCommand = true
	for i := 0; i < 60; i++ {
		wsys.Update(walker)
	}
	if speed := wbody.Body.Velocity().Length(); speed > 1 {
		t.Fatalf("expected the undamped exemption scoped to projectiles, walker still at %v", speed)
	}
}

func TestDestroyedEntityDetachesFromSpace(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)
	sys := NewPhysicsSystem()

	e, body, _ := addDynamicBody(t, w, common.Vec3{})
	sys.Update(w)

	ecs.DestroyEntity(w, e)
	if body.Body != nil || body.Shape != nil {
		t.Fatal("expected the destroy hook to tear the body down")
	}

	// The space keeps stepping cleanly afterwards.
	sys.Update(w)
}
