package component

// TTL destroys an entity after the given number of seconds, unconditionally.
// Systems attach it at spawn time; nothing extends or pauses it.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
