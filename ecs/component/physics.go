package component

import "github.com/jakecoffman/cp"

// Collision types registered with the chipmunk space. The zero value is
// chipmunk's wildcard, so these start at 1.
const (
	CollisionPlayer cp.CollisionType = iota + 1
	CollisionObstacle
	CollisionProjectile
	CollisionTarget
)

// Shape filter categories. Occluder is set on geometry that should block
// the camera's line-of-sight ray in addition to movement.
const (
	CategoryPlayer uint = 1 << iota
	CategoryObstacle
	CategoryProjectile
	CategoryTarget
	CategoryOccluder
)

// PhysicsBody couples an entity to its chipmunk body on the ground plane.
// Chipmunk integrates X/Z; the vertical channel is integrated by the physics
// system so bodies can fall and rest without a 3D engine. A positive Radius
// makes a circle collider, otherwise Width and Depth make a box.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius     float64
	Width      float64
	Depth      float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool

	CollisionType cp.CollisionType
	Category      uint
	Mask          uint

	CommandX   float64
	CommandZ   float64
	HasCommand bool

	VerticalVel  float64
	GravityScale float64
	Grounded     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
