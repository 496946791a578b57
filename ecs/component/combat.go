package component

// Combat is the global two-valued gameplay mode. Firing raises the flag and
// re-arms the calm timer; the flag drops once the timer runs out.
type Combat struct {
	Active    bool
	CalmDelay float64
	Calm      float64
}

var CombatComponent = NewComponent[Combat]()
