package system

import (
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// AnimationSystem advances clip clocks and fires timeline events exactly
// once per playback. Non-looping clips fall back to their configured
// locomotion clip when they finish.
type AnimationSystem struct {
	handlers map[string]func(*ecs.World)
}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{
		handlers: make(map[string]func(*ecs.World)),
	}
}

// OnEvent registers a callback for a named timeline event. The canned
// handshake hangs off these: "exit" notifies the camera, "finished" clears
// the sticky player state.
func (a *AnimationSystem) OnEvent(name string, fn func(*ecs.World)) {
	if a == nil || name == "" || fn == nil {
		return
	}
	a.handlers[name] = fn
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	dt := w.DT()

	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(_ ecs.Entity, anim *component.Animator) {
		if !anim.Playing {
			return
		}
		clip, ok := anim.Clips[anim.Current]
		if !ok || clip.Length <= 0 {
			anim.Playing = false
			return
		}

		anim.Clock += dt

		for _, ev := range clip.Events {
			if anim.Clock < ev.At {
				continue
			}
			if !anim.MarkFired(ev.Name) {
				continue
			}
			if fn, ok := a.handlers[ev.Name]; ok {
				fn(w)
			}
		}

		if anim.Clock < clip.Length {
			return
		}

		if clip.Loop {
			for anim.Clock >= clip.Length {
				anim.Clock -= clip.Length
			}
			anim.ResetFired()
			return
		}

		if clip.Fallback != "" {
			anim.Play(clip.Fallback)
			return
		}
		anim.Playing = false
	})
}
