package system

import (
	"github.com/jakecoffman/cp"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

const (
	gravity       = 22.0
	groundY       = 0.0
	planarDamping = 0.08
	spaceSteps    = 20
)

// Hit is the result of a planar raycast lifted back into world space.
type Hit struct {
	Point    common.Vec3
	Fraction float64
	Entity   ecs.Entity
}

// Raycaster is the query surface the camera and projectile systems use.
// PhysicsSystem implements it; tests substitute fakes.
type Raycaster interface {
	RaycastFirst(from, to common.Vec3, mask uint) (Hit, bool)
}

// PhysicsSystem owns the chipmunk space. The space lives on the ground
// plane: world X maps to cp X and world Z to cp Y. The vertical channel is
// integrated here directly so bodies can fall and rest on the arena floor.
type PhysicsSystem struct {
	space *cp.Space

	entities map[ecs.Entity]*cp.Body
	hooked   bool

	projectileContacts []ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = spaceSteps
	space.SetDamping(planarDamping)

	ps := &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*cp.Body),
	}

	handler := space.NewWildcardCollisionHandler(component.CollisionProjectile)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		// Wildcard dispatch orders the arbiter so the projectile shape
		// is always first.
		shapeA, _ := arb.Shapes()
		if e, ok := entityOfShape(shapeA); ok {
			sys.projectileContacts = append(sys.projectileContacts, e)
		}
		return true
	}

	return ps
}

func entityOfShape(shape *cp.Shape) (ecs.Entity, bool) {
	if shape == nil {
		return 0, false
	}
	e, ok := shape.UserData.(ecs.Entity)
	return e, ok
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// DrainProjectileContacts hands the contacts collected during the last step
// to the projectile system and clears the queue.
func (ps *PhysicsSystem) DrainProjectileContacts() []ecs.Entity {
	if ps == nil || len(ps.projectileContacts) == 0 {
		return nil
	}
	out := ps.projectileContacts
	ps.projectileContacts = nil
	return out
}

// RaycastFirst casts on the ground plane and lifts the hit fraction back
// into 3D along the original segment.
func (ps *PhysicsSystem) RaycastFirst(from, to common.Vec3, mask uint) (Hit, bool) {
	if ps == nil || ps.space == nil {
		return Hit{}, false
	}

	start := cp.Vector{X: from.X, Y: from.Z}
	end := cp.Vector{X: to.X, Y: to.Z}
	if start.Distance(end) == 0 {
		return Hit{}, false
	}

	filter := cp.NewShapeFilter(cp.NO_GROUP, ^uint(0), mask)
	info := ps.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return Hit{}, false
	}

	hit := Hit{
		Point:    common.Lerp3(from, to, info.Alpha),
		Fraction: info.Alpha,
	}
	if e, ok := entityOfShape(info.Shape); ok {
		hit.Entity = e
	}
	return hit, true
}

// RemoveBody strips the chipmunk body and shape from an entity, leaving the
// transform and visuals behind. The projectile penetration policy uses it.
func (ps *PhysicsSystem) RemoveBody(w *ecs.World, e ecs.Entity) {
	if ps == nil || w == nil {
		return
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	ps.teardown(body)
	// Keep the entry as a tombstone so the next sync does not rebuild the
	// body; the destroy hook clears it for real.
	ps.entities[e] = nil
	body.Body = nil
	body.Shape = nil
	body.VerticalVel = 0
	body.HasCommand = false
}

func (ps *PhysicsSystem) teardown(body *component.PhysicsBody) {
	if body == nil || ps.space == nil {
		return
	}
	if body.Shape != nil {
		ps.space.RemoveShape(body.Shape)
	}
	if body.Body != nil && body.Body != ps.space.StaticBody {
		ps.space.RemoveBody(body.Body)
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	if !ps.hooked {
		w.OnDestroy(func(hw *ecs.World, e ecs.Entity) {
			if body, ok := ecs.Get(hw, e, component.PhysicsBodyComponent.Kind()); ok {
				ps.teardown(body)
				body.Body = nil
				body.Shape = nil
			}
			delete(ps.entities, e)
		})
		ps.hooked = true
	}

	dt := w.DT()

	ps.syncEntities(w)
	ps.applyCommands(w)

	ps.space.Step(dt)

	ps.integrateVertical(w, dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
			if body.Body != nil || body.Shape != nil {
				return
			}
			if _, seen := ps.entities[e]; seen {
				return
			}
			ps.createBody(e, body, transform)
		})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
	pos := cp.Vector{X: transform.Position.X, Y: transform.Position.Z}

	var shape *cp.Shape
	if body.Static {
		if body.Radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, body.Radius, pos)
		} else {
			bb := cp.BB{
				L: pos.X - body.Width/2,
				B: pos.Y - body.Depth/2,
				R: pos.X + body.Width/2,
				T: pos.Y + body.Depth/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		body.Body = ps.space.StaticBody
	} else {
		mass := body.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if body.Radius > 0 {
			moment = cp.MomentForCircle(mass, 0, body.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, body.Width, body.Depth)
		}
		b := cp.NewBody(mass, moment)
		b.SetPosition(pos)
		if body.Radius > 0 {
			shape = cp.NewCircle(b, body.Radius, cp.Vector{})
		} else {
			shape = cp.NewBox(b, body.Width, body.Depth, 0)
		}
		if body.CollisionType == component.CollisionProjectile {
			// Projectiles get their velocity once at launch; the space
			// damping that bleeds off walk momentum must not touch them.
			b.SetVelocityUpdateFunc(func(pb *cp.Body, gravity cp.Vector, _ float64, dt float64) {
				cp.BodyUpdateVelocity(pb, gravity, 1.0, dt)
			})
		}
		ps.space.AddBody(b)
		body.Body = b
	}

	shape.SetFriction(body.Friction)
	shape.SetElasticity(body.Elasticity)
	shape.SetCollisionType(body.CollisionType)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, body.Category, body.Mask))
	shape.UserData = e
	ps.space.AddShape(shape)

	body.Shape = shape
	ps.entities[e] = body.Body
}

func (ps *PhysicsSystem) applyCommands(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody) {
		if body.Body == nil || body.Static || !body.HasCommand {
			return
		}
		body.Body.SetVelocity(body.CommandX, body.CommandZ)
		body.HasCommand = false
	})
}

func (ps *PhysicsSystem) integrateVertical(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
			if body.Static || body.Body == nil {
				return
			}
			body.VerticalVel -= gravity * body.GravityScale * dt
			transform.Position.Y += body.VerticalVel * dt
			if transform.Position.Y <= groundY {
				transform.Position.Y = groundY
				body.VerticalVel = 0
				body.Grounded = true
			} else {
				body.Grounded = false
			}
		})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
			if body.Body == nil || body.Static {
				return
			}
			pos := body.Body.Position()
			transform.Position.X = pos.X
			transform.Position.Z = pos.Y
		})
}
