package entity

import (
	"fmt"
	"sort"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
	"github.com/TomRobson01/PDP-3CsExperiments/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"camera_tag":      addCameraTag,
	"look_target_tag": addLookTargetTag,
	"obstacle_tag":    addObstacleTag,
	"transform":       addTransform,
	"physics_body":    addPhysicsBody,
	"input":           addInput,
	"weapon_prop":     addWeaponProp,
	"combat":          addCombat,
	"headtrack":       addHeadtrack,
	"reticle":         addReticle,
	"ttl":             addTTL,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"look_target_tag",
	"obstacle_tag",
	"transform",
	"physics_body",
	"input",
	"weapon_prop",
	"combat",
	"headtrack",
	"reticle",
	"ttl",
}

// BuildEntity instantiates one entity from a generic prefab: every named
// component block goes through the registry in build order, then any
// stragglers in sorted order. An unknown component name fails the build.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := buildComponent(w, e, name, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := buildComponent(w, e, name, remaining[name], ctx); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	return e, nil
}

func buildComponent(w *ecs.World, e ecs.Entity, name string, raw any, ctx *buildContext) error {
	builder, ok := componentRegistry[name]
	if !ok {
		return fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, name)
	}
	if err := builder(w, e, raw, ctx); err != nil {
		return fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
	}
	return nil
}

// SetEntityTransform overrides the prefab's authored pose, for prefabs
// placed more than once.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos common.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	t.Yaw = yaw
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addLookTargetTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.LookTargetTagComponent.Kind(), &component.LookTargetTag{})
}

func addObstacleTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: common.Vec3{X: spec.X, Y: spec.Y, Z: spec.Z},
		Yaw:      spec.Yaw,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	body := &component.PhysicsBody{
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	}
	if spec.Static {
		if spec.Target {
			body.CollisionType = component.CollisionTarget
			body.Category = component.CategoryTarget
			body.Mask = component.CategoryProjectile
		} else {
			body.CollisionType = component.CollisionObstacle
			body.Category = component.CategoryObstacle
			if spec.Occluder {
				body.Category |= component.CategoryOccluder
			}
			body.Mask = ^uint(0)
		}
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addWeaponProp(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponPropComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.WeaponPropComponent.Kind(), &component.WeaponProp{Visible: spec.Visible})
}

func addCombat(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CombatComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CombatComponent.Kind(), &component.Combat{CalmDelay: spec.CalmDelay})
}

func addHeadtrack(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HeadtrackComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HeadtrackComponent.Kind(), &component.Headtrack{
		Radius:       spec.Radius,
		MaxAngleDeg:  spec.MaxAngle,
		ExtendMult:   spec.ExtendMult,
		SmoothRate:   spec.SmoothRate,
		ScanInterval: spec.ScanInterval,
	})
}

func addReticle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ReticleComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ReticleComponent.Kind(), &component.Reticle{
		SpreadRate: spec.SpreadRate,
		MinSpread:  spec.MinSpread,
		MaxSpread:  spec.MaxSpread,
		Spread:     spec.MinSpread,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Seconds})
}
