package system

import (
	"math"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

const (
	headHeight = 1.6

	// Animator parameter names for the smoothed head-aim angles.
	ParamHeadH = "head_h"
	ParamHeadV = "head_v"
)

// HeadtrackSystem layers a procedural look-at on top of the authored
// animation. Two cadences: a slow scan re-resolves the nearest look target
// on a fixed interval, and the per-tick pass computes and smooths the aim
// angles toward it. Decoupling the two bounds the cost of the spatial query
// independent of frame rate.
type HeadtrackSystem struct {
	target    ecs.Entity
	hasTarget bool

	// Last target position, kept for the debug overlay.
	TargetPos common.Vec3
	Tracking  bool
}

func NewHeadtrackSystem() *HeadtrackSystem {
	return &HeadtrackSystem{}
}

func (hs *HeadtrackSystem) Update(w *ecs.World) {
	if hs == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	track, ok := ecs.Get(w, player, component.HeadtrackComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dt := w.DT()
	head := transform.Position.Add(common.Vec3{Y: headHeight})

	track.ScanTimer -= dt
	if track.ScanTimer <= 0 {
		track.ScanTimer = track.ScanInterval
		hs.scan(w, player, head, track.Radius)
	}

	targetH, targetV := hs.aimAngles(w, head, transform.Yaw, track)

	track.YawOffset = common.Damp(track.YawOffset, targetH, track.SmoothRate, dt)
	track.PitchOffset = common.Damp(track.PitchOffset, targetV, track.SmoothRate, dt)

	if animator, ok := ecs.Get(w, player, component.AnimatorComponent.Kind()); ok {
		animator.SetFloat(ParamHeadH, track.YawOffset)
		animator.SetFloat(ParamHeadV, track.PitchOffset)
	}
}

// scan picks the nearest look target inside the radius. Strict less-than
// keeps the first-seen candidate on exact distance ties.
func (hs *HeadtrackSystem) scan(w *ecs.World, player ecs.Entity, head common.Vec3, radius float64) {
	best := radius * radius
	hs.hasTarget = false

	ecs.ForEach2(w, component.LookTargetTagComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.LookTargetTag, t *component.Transform) {
			if e == player {
				return
			}
			distSq := t.Position.Sub(head).MagSq()
			if distSq < best {
				best = distSq
				hs.target = e
				hs.hasTarget = true
			}
		})
}

// aimAngles derives the horizontal and vertical look deltas in degrees, or
// zeros when there is no live target or it sits outside the tracking cone.
func (hs *HeadtrackSystem) aimAngles(w *ecs.World, head common.Vec3, facingYaw float64, track *component.Headtrack) (float64, float64) {
	hs.Tracking = false
	if !hs.hasTarget || !ecs.IsAlive(w, hs.target) {
		hs.hasTarget = false
		return 0, 0
	}

	targetTransform, ok := ecs.Get(w, hs.target, component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}

	to := targetTransform.Position.Sub(head)
	if to.MagSq() == 0 {
		return 0, 0
	}

	facing := common.YawDirection(facingYaw)
	toDir := to.Normalized()

	totalAngle := math.Acos(common.Clamp(facing.Dot(toDir), -1, 1)) * common.Rad2Deg
	if totalAngle > track.MaxAngleDeg*track.ExtendMult {
		return 0, 0
	}

	// Horizontal: magnitude from the flattened angle, sign from the cross
	// product's vertical component.
	flat := to.Flat().Normalized()
	horizontal := math.Acos(common.Clamp(facing.Dot(flat), -1, 1)) * common.Rad2Deg
	if facing.Cross(flat).Y < 0 {
		horizontal = -horizontal
	}

	vertical := math.Asin(common.Clamp(toDir.Y, -1, 1)) * common.Rad2Deg

	hs.Tracking = true
	hs.TargetPos = targetTransform.Position
	return horizontal, vertical
}
