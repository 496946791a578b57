package system

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// Animator parameter names. The blend tree on the other side of the sink
// keys on these.
const (
	ParamMoveX    = "move_x"
	ParamMoveY    = "move_y"
	ParamAimAngle = "aim_angle"
	ParamAiming   = "aiming"
	ParamRunning  = "running"
	ParamCrouched = "crouched"
	LayerAim      = "aim"
)

// AnimatorBridgeSystem translates controller state into animator parameters
// every tick. It carries no transition logic of its own: bools mirror the
// state verbatim, scalars are smoothed, and playback calls are
// fire-and-forget.
type AnimatorBridgeSystem struct {
	logger zerolog.Logger
	pick   func(n int) int
}

func NewAnimatorBridgeSystem(logger zerolog.Logger) *AnimatorBridgeSystem {
	return &AnimatorBridgeSystem{
		logger: logger,
		pick:   rand.IntN,
	}
}

func playerBridge(w *ecs.World) (ecs.Entity, *component.AnimBridge, component.AnimatorSink, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	bridge, ok := ecs.Get(w, player, component.AnimBridgeComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	animator, ok := ecs.Get(w, player, component.AnimatorComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	return player, bridge, animator, true
}

func (ab *AnimatorBridgeSystem) Update(w *ecs.World) {
	if ab == nil || w == nil {
		return
	}

	player, bridge, sink, ok := playerBridge(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	machine, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return
	}

	dt := w.DT()
	kind := machine.CurrentKind()
	aiming := kind == component.StateAiming

	bridge.SmoothedMoveX = common.Damp(bridge.SmoothedMoveX, input.MoveX, bridge.InputSmoothRate, dt)
	bridge.SmoothedMoveY = common.Damp(bridge.SmoothedMoveY, input.MoveY, bridge.InputSmoothRate, dt)
	sink.SetFloat(ParamMoveX, bridge.SmoothedMoveX)
	sink.SetFloat(ParamMoveY, bridge.SmoothedMoveY)

	sink.SetBool(ParamAiming, aiming)
	sink.SetBool(ParamRunning, kind == component.StateRunning)
	sink.SetBool(ParamCrouched, kind == component.StateCrouched)

	sink.SetFloat(ParamAimAngle, ab.aimAngle(w, bridge))

	target := 0.0
	if aiming {
		target = 1.0
	}
	bridge.AimWeight = common.Damp(bridge.AimWeight, target, bridge.AimLayerRate, dt)
	sink.SetLayerWeight(LayerAim, bridge.AimWeight)

	// The weapon prop follows the aim edge, not the level, so visibility is
	// written at most once per transition.
	if aiming != bridge.WasAiming {
		if propEnt, ok := ecs.First(w, component.WeaponPropComponent.Kind()); ok {
			if prop, ok := ecs.Get(w, propEnt, component.WeaponPropComponent.Kind()); ok {
				prop.Visible = aiming
			}
		}
		bridge.WasAiming = aiming
	}
}

// aimAngle folds the camera's vertical angle from the engine's [0, 360)
// convention into signed degrees, then normalizes by the pitch clamp.
func (ab *AnimatorBridgeSystem) aimAngle(w *ecs.World, bridge *component.AnimBridge) float64 {
	rig, ok := cameraRig(w)
	if !ok || bridge.PitchClampDeg == 0 {
		return 0
	}
	raw := math.Mod(rig.Pitch+360, 360)
	return common.FoldAngle(raw) / bridge.PitchClampDeg
}

// PlayOneShot triggers a clip jump with no return value; unknown clips are
// the animator's problem.
func (ab *AnimatorBridgeSystem) PlayOneShot(w *ecs.World, name string) {
	if ab == nil || w == nil {
		return
	}
	if _, _, sink, ok := playerBridge(w); ok {
		sink.Play(name)
	}
}

// PlayCanned resets the smoothed input and the aim flag before triggering,
// so the canned clip starts from a neutral pose.
func (ab *AnimatorBridgeSystem) PlayCanned(w *ecs.World, name string) {
	if ab == nil || w == nil {
		return
	}
	_, bridge, sink, ok := playerBridge(w)
	if !ok {
		return
	}
	bridge.SmoothedMoveX = 0
	bridge.SmoothedMoveY = 0
	sink.SetFloat(ParamMoveX, 0)
	sink.SetFloat(ParamMoveY, 0)
	sink.SetBool(ParamAiming, false)
	sink.Play(name)
}

// PlayIdleFlavor picks uniformly from the flavor pool. An empty pool warns
// and no-ops rather than failing.
func (ab *AnimatorBridgeSystem) PlayIdleFlavor(w *ecs.World) {
	if ab == nil || w == nil {
		return
	}
	_, bridge, sink, ok := playerBridge(w)
	if !ok {
		return
	}
	if len(bridge.FlavorPool) == 0 {
		ab.logger.Warn().Msg("animator bridge: idle flavor pool is empty")
		return
	}
	sink.Play(bridge.FlavorPool[ab.pick(len(bridge.FlavorPool))])
}
