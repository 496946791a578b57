package component

// AnimBridge carries the smoothing scratch between the player simulation and
// the animator, plus the idle-flavor clip pool.
type AnimBridge struct {
	InputSmoothRate float64
	AimLayerRate    float64
	PitchClampDeg   float64

	FlavorPool []string

	SmoothedMoveX float64
	SmoothedMoveY float64
	AimWeight     float64
	WasAiming     bool
}

var AnimBridgeComponent = NewComponent[AnimBridge]()
