package component

// Reticle is the aim HUD state. Spread blends toward the player's smoothed
// speed so the reticle widens while moving.
type Reticle struct {
	Visible    bool
	Spread     float64
	SpreadRate float64
	MinSpread  float64
	MaxSpread  float64
}

var ReticleComponent = NewComponent[Reticle]()
