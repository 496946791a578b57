package component

// ProjectileState is the lifecycle of a spawned projectile. Penetrated and
// Destroyed are terminal; a projectile leaves Flying on its first contact
// and never re-enters it.
type ProjectileState int

const (
	ProjectileFlying ProjectileState = iota
	ProjectilePenetrated
	ProjectileDestroyed
)

func (s ProjectileState) String() string {
	switch s {
	case ProjectileFlying:
		return "flying"
	case ProjectilePenetrated:
		return "penetrated"
	case ProjectileDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Projectile is the runtime copy of the descriptor that spawned it. The
// descriptor itself is immutable; every field here belongs to this instance.
type Projectile struct {
	Name       string
	Speed      float64
	Penetrates bool
	State      ProjectileState
}

var ProjectileComponent = NewComponent[Projectile]()
