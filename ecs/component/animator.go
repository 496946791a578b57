package component

// AnimatorSink receives the parameter and playback writes the bridge
// produces each tick. *Animator implements it; tests substitute fakes.
type AnimatorSink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
	SetLayerWeight(name string, w float64)
	Play(name string)
}

// AnimEvent is a named timeline marker inside a clip, fired once per
// playback when the clip clock passes At.
type AnimEvent struct {
	Name string
	At   float64
}

// AnimClip describes one playable clip on the character rig. Length is in
// seconds. Non-looping clips fall back to Fallback when they finish.
type AnimClip struct {
	Name     string
	Length   float64
	Loop     bool
	Fallback string
	Events   []AnimEvent
}

// Animator is the clip playback runtime plus the parameter blackboard the
// bridge writes into.
type Animator struct {
	Clips   map[string]AnimClip
	Current string
	Clock   float64
	Playing bool

	Floats map[string]float64
	Bools  map[string]bool
	Layers map[string]float64

	fired map[string]bool
}

// SetFloat writes a float parameter, allocating the blackboard lazily.
func (a *Animator) SetFloat(name string, v float64) {
	if a.Floats == nil {
		a.Floats = make(map[string]float64)
	}
	a.Floats[name] = v
}

// SetBool writes a bool parameter.
func (a *Animator) SetBool(name string, v bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = v
}

// SetLayerWeight writes a blend-layer weight in [0, 1].
func (a *Animator) SetLayerWeight(name string, w float64) {
	if a.Layers == nil {
		a.Layers = make(map[string]float64)
	}
	a.Layers[name] = w
}

// Float reads a float parameter, zero when unset.
func (a *Animator) Float(name string) float64 {
	return a.Floats[name]
}

// Bool reads a bool parameter, false when unset.
func (a *Animator) Bool(name string) bool {
	return a.Bools[name]
}

// LayerWeight reads a blend-layer weight, zero when unset.
func (a *Animator) LayerWeight(name string) float64 {
	return a.Layers[name]
}

// Play restarts playback of the named clip from time zero. Unknown clips
// leave the animator untouched; the caller decides whether that is an error.
func (a *Animator) Play(name string) {
	if _, ok := a.Clips[name]; !ok {
		return
	}
	a.Current = name
	a.Clock = 0
	a.Playing = true
	a.fired = nil
}

// ResetFired rearms every timeline event. Looping playback calls it on each
// wrap.
func (a *Animator) ResetFired() {
	a.fired = nil
}

// MarkFired records that the named event fired during the current playback.
// It reports false when the event already fired.
func (a *Animator) MarkFired(name string) bool {
	if a.fired == nil {
		a.fired = make(map[string]bool)
	}
	if a.fired[name] {
		return false
	}
	a.fired[name] = true
	return true
}

var AnimatorComponent = NewComponent[Animator]()
