package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// LookTargetTag marks an entity the headtrack scanner may pick.
type LookTargetTag struct{}

var LookTargetTagComponent = NewComponent[LookTargetTag]()

// WeaponProp is the equipment mesh stand-in whose visibility follows the
// aim-state edge.
type WeaponProp struct {
	Visible bool
}

var WeaponPropComponent = NewComponent[WeaponProp]()

// CannedAnchorTag marks the pose entity a canned sequence animates.
type CannedAnchorTag struct{}

var CannedAnchorTagComponent = NewComponent[CannedAnchorTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()
