package component

import "github.com/TomRobson01/PDP-3CsExperiments/common"

// Transform is the world-space pose of an entity. Yaw is in degrees, with 0
// facing +Z and positive values turning toward +X. Pitch and roll are not
// modeled on entities; only the camera carries a pitch.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
