package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
	"github.com/TomRobson01/PDP-3CsExperiments/prefabs"
)

// cannedDispatchScript is appended to every sequence script so one compiled
// program serves both lifecycle phases.
const cannedDispatchScript = `
if __phase == "setup" {
	setup(__engine)
} else if __phase == "update" {
	update(__engine, __t)
}
`

const defaultCannedDuration = 2.0

type cannedScript struct {
	name     string
	compiled *tengo.Compiled
	duration float64
}

// CannedSystem runs scripted sequences that suspend normal control. A
// sequence is a tengo script driving an anchor pose the camera follows,
// paired with a canned clip on the animator. Scripts are compiled at
// construction; a compile error is a setup failure, never a mid-play one.
type CannedSystem struct {
	logger  zerolog.Logger
	bridge  *AnimatorBridgeSystem
	scripts map[string]*cannedScript

	// finish clears the player's sticky canned state; the game wires it.
	finish func(*ecs.World)

	active  bool
	current *cannedScript
	clock   float64

	entryPos common.Vec3
	entryYaw float64

	anchorPos common.Vec3
	anchorYaw float64
	anchor    ecs.Entity
}

func NewCannedSystem(logger zerolog.Logger, finish func(*ecs.World), names ...string) (*CannedSystem, error) {
	cs := &CannedSystem{
		logger:  logger,
		finish:  finish,
		scripts: make(map[string]*cannedScript, len(names)),
	}
	for _, name := range names {
		script, err := cs.compile(name)
		if err != nil {
			return nil, fmt.Errorf("canned: compile %q: %w", name, err)
		}
		cs.scripts[name] = script
	}
	return cs, nil
}

// SetBridge wires the animator bridge used to trigger the canned clip. The
// bridge is constructed after the canned system in the game boot order.
func (cs *CannedSystem) SetBridge(bridge *AnimatorBridgeSystem) {
	cs.bridge = bridge
}

func (cs *CannedSystem) compile(name string) (*cannedScript, error) {
	src, err := prefabs.LoadScript(name + ".tengo")
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte("\n"+cannedDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__t", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	out := &cannedScript{name: name, compiled: compiled, duration: defaultCannedDuration}

	// Prime the globals so the exported duration is resolvable.
	if err := runCannedPhase(compiled, "noop", cs.engine(), 0); err != nil {
		return nil, err
	}
	if compiled.IsDefined("duration") {
		if d := compiled.Get("duration").Float(); d > 0 {
			out.duration = d
		}
	}
	return out, nil
}

func runCannedPhase(compiled *tengo.Compiled, phase string, engine *tengo.ImmutableMap, t float64) error {
	if compiled == nil {
		return fmt.Errorf("nil canned script")
	}
	if err := compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := compiled.Set("__t", &tengo.Float{Value: t}); err != nil {
		return err
	}
	return compiled.Run()
}

// engine builds the function table a sequence script sees.
func (cs *CannedSystem) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_entry_position"] = &tengo.UserFunction{Name: "get_entry_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(cs.entryPos), nil
	}}

	values["get_entry_yaw"] = &tengo.UserFunction{Name: "get_entry_yaw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: cs.entryYaw}, nil
	}}

	values["set_anchor_position"] = &tengo.UserFunction{Name: "set_anchor_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		z, okZ := tengo.ToFloat64(args[2])
		if !okX || !okY || !okZ {
			return tengo.FalseValue, nil
		}
		cs.anchorPos = common.Vec3{X: x, Y: y, Z: z}
		return tengo.TrueValue, nil
	}}

	values["set_anchor_yaw"] = &tengo.UserFunction{Name: "set_anchor_yaw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		yaw, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		cs.anchorYaw = common.NormalizeAngle(yaw)
		return tengo.TrueValue, nil
	}}

	values["yaw_direction"] = &tengo.UserFunction{Name: "yaw_direction", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return vecObject(common.Vec3{}), nil
		}
		yaw, ok := tengo.ToFloat64(args[0])
		if !ok {
			return vecObject(common.Vec3{}), nil
		}
		return vecObject(common.YawDirection(yaw)), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecObject(v common.Vec3) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

// Active reports whether a sequence is currently playing.
func (cs *CannedSystem) Active() bool {
	return cs != nil && cs.active
}

// Request starts the named sequence: snapshots the player pose, seeds the
// anchor, runs the script's setup phase, and triggers the canned clip. An
// unknown name warns and no-ops; the controller treats that tick's canned
// entry as instantly finished.
func (cs *CannedSystem) Request(w *ecs.World, name string) {
	if cs == nil || w == nil {
		return
	}

	script, ok := cs.scripts[name]
	if !ok {
		cs.logger.Warn().Str("sequence", name).Msg("canned: unknown sequence")
		if cs.finish != nil {
			cs.finish(w)
		}
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	cs.entryPos = transform.Position
	cs.entryYaw = transform.Yaw
	cs.anchorPos = transform.Position
	cs.anchorYaw = transform.Yaw
	cs.current = script
	cs.clock = 0
	cs.active = true

	if err := runCannedPhase(script.compiled, "setup", cs.engine(), 0); err != nil {
		cs.logger.Error().Err(err).Str("sequence", name).Msg("canned: setup phase")
	}
	cs.writeAnchor(w)

	if cs.bridge != nil {
		cs.bridge.PlayCanned(w, "canned_"+name)
	}
}

func (cs *CannedSystem) Update(w *ecs.World) {
	if cs == nil || w == nil || !cs.active || cs.current == nil {
		return
	}

	cs.clock += w.DT()
	t := common.Clamp01(cs.clock / cs.current.duration)

	if err := runCannedPhase(cs.current.compiled, "update", cs.engine(), t); err != nil {
		cs.logger.Error().Err(err).Str("sequence", cs.current.name).Msg("canned: update phase")
	}
	cs.writeAnchor(w)

	if cs.clock >= cs.current.duration {
		cs.active = false
		cs.current = nil
		if cs.finish != nil {
			cs.finish(w)
		}
	}
}

func (cs *CannedSystem) writeAnchor(w *ecs.World) {
	if !ecs.IsAlive(w, cs.anchor) {
		cs.anchor = ecs.CreateEntity(w)
		_ = ecs.Add(w, cs.anchor, component.CannedAnchorTagComponent.Kind(), &component.CannedAnchorTag{})
		_ = ecs.Add(w, cs.anchor, component.TransformComponent.Kind(), &component.Transform{})
	}
	if transform, ok := ecs.Get(w, cs.anchor, component.TransformComponent.Kind()); ok {
		transform.Position = cs.anchorPos
		transform.Yaw = cs.anchorYaw
	}
}
