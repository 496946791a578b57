package main

import (
	"fmt"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/config"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/entity"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/system"
	"github.com/TomRobson01/PDP-3CsExperiments/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	arenaWallThickness = 0.5
)

type Game struct {
	logger zerolog.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler

	physics   *system.PhysicsSystem
	cameraSys *system.CameraSystem
	headtrack *system.HeadtrackSystem
	inputSys  *system.InputSystem

	playerSpec *prefabs.PlayerSpec
	cameraSpec *prefabs.CameraSpec
	arenaSpec  *prefabs.ArenaSpec

	watcher *prefabs.Watcher

	ui          *ebitenui.UI
	paused      bool
	debug       bool
	guides      bool
	clipboardOK bool
}

func NewGame(logger zerolog.Logger, debug bool) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: player spec: %w", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, fmt.Errorf("game: camera spec: %w", err)
	}
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, fmt.Errorf("game: arena spec: %w", err)
	}
	projSpec, err := prefabs.LoadProjectilesSpec()
	if err != nil {
		return nil, fmt.Errorf("game: projectiles spec: %w", err)
	}

	g := &Game{
		logger:     logger,
		world:      ecs.NewWorld(),
		playerSpec: playerSpec,
		cameraSpec: cameraSpec,
		arenaSpec:  arenaSpec,
		debug:      debug,
	}

	if err := g.spawnPlayer(playerSpec, cameraSpec, arenaSpec); err != nil {
		return nil, err
	}
	if err := g.spawnCamera(cameraSpec); err != nil {
		return nil, err
	}
	if err := g.spawnArena(arenaSpec); err != nil {
		return nil, err
	}
	if _, err := entity.BuildEntity(g.world, "weapon_prop.yaml"); err != nil {
		return nil, fmt.Errorf("game: weapon prop: %w", err)
	}
	if _, err := entity.BuildEntity(g.world, "combat_state.yaml"); err != nil {
		return nil, fmt.Errorf("game: combat state: %w", err)
	}

	if err := g.wireSystems(projSpec); err != nil {
		return nil, err
	}

	if watcher, err := prefabs.NewWatcher("prefabs"); err != nil {
		logger.Warn().Err(err).Msg("game: prefab watcher unavailable, live tuning reload disabled")
	} else {
		g.watcher = watcher
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn().Err(err).Msg("game: clipboard unavailable, tuning export disabled")
	} else {
		g.clipboardOK = true
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) wireSystems(projSpec *prefabs.ProjectilesSpec) error {
	g.physics = system.NewPhysicsSystem()
	g.cameraSys = system.NewCameraSystem(g.physics)
	g.headtrack = system.NewHeadtrackSystem()
	g.inputSys = system.NewInputSystem(config.GetFloat64("input.mouseSensitivity"))

	bridge := system.NewAnimatorBridgeSystem(g.logger)

	finish := func(w *ecs.World) {
		if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			if rig, ok := ecs.Get(w, player, component.PlayerRigComponent.Kind()); ok {
				rig.CannedFinished = true
			}
		}
	}

	canned, err := system.NewCannedSystem(g.logger, finish, prefabs.ScriptNames()...)
	if err != nil {
		return fmt.Errorf("game: canned sequences: %w", err)
	}
	canned.SetBridge(bridge)

	animSys := system.NewAnimationSystem()
	animSys.OnEvent("exit", g.cameraSys.CannedAnimExitNotify)
	animSys.OnEvent("finished", finish)

	controller := system.NewPlayerControllerSystem(
		func(name string) { canned.Request(g.world, name) },
		func() { g.cameraSys.PreCannedAnimNotify(g.world) },
		func() { bridge.PlayIdleFlavor(g.world) },
	)

	projectiles := system.NewProjectileSystem(g.logger, g.physics, bridge, projSpec)

	g.scheduler = ecs.NewScheduler(
		g.inputSys,
		controller,
		system.NewCombatSystem(),
		canned,
		g.cameraSys,
		g.headtrack,
		bridge,
		animSys,
		projectiles,
		g.physics,
		system.NewTTLSystem(),
		system.NewReticleSystem(),
	)
	return nil
}

func (g *Game) spawnPlayer(spec *prefabs.PlayerSpec, camera *prefabs.CameraSpec, arena *prefabs.ArenaSpec) error {
	w := g.world
	e := ecs.CreateEntity(w)

	spawn := arena.PlayerSpawn
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return err
	}
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: common.Vec3{X: spawn.X, Y: spawn.Y, Z: spawn.Z},
		Yaw:      spawn.Yaw,
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:        spec.Collider.Radius,
		Mass:          spec.Collider.Mass,
		Friction:      spec.Collider.Friction,
		Elasticity:    spec.Collider.Elasticity,
		CollisionType: component.CollisionPlayer,
		Category:      component.CategoryPlayer,
		Mask:          component.CategoryObstacle,
		GravityScale:  1,
	})
	_ = ecs.Add(w, e, component.PlayerRigComponent.Kind(), &component.PlayerRig{
		Profiles:       moveProfiles(spec),
		MoveThreshold:  spec.MoveThreshold,
		RunThreshold:   spec.RunThreshold,
		FlavorMinWait:  spec.FlavorMinWait,
		FlavorMaxWait:  spec.FlavorMaxWait,
		CannedSequence: spec.CannedSequence,
	})
	_ = ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{})
	_ = ecs.Add(w, e, component.AnimBridgeComponent.Kind(), &component.AnimBridge{
		InputSmoothRate: spec.Bridge.InputSmoothRate,
		AimLayerRate:    spec.Bridge.AimLayerRate,
		PitchClampDeg:   math.Max(math.Abs(camera.PitchMin), math.Abs(camera.PitchMax)),
		FlavorPool:      append([]string(nil), spec.Bridge.FlavorPool...),
	})
	_ = ecs.Add(w, e, component.AnimatorComponent.Kind(), newAnimator(spec))
	_ = ecs.Add(w, e, component.HeadtrackComponent.Kind(), &component.Headtrack{
		Radius:       spec.Headtrack.Radius,
		MaxAngleDeg:  spec.Headtrack.MaxAngle,
		ExtendMult:   spec.Headtrack.ExtendMult,
		SmoothRate:   spec.Headtrack.SmoothRate,
		ScanInterval: spec.Headtrack.ScanInterval,
	})
	_ = ecs.Add(w, e, component.ReticleComponent.Kind(), &component.Reticle{
		SpreadRate: spec.Reticle.SpreadRate,
		MinSpread:  spec.Reticle.MinSpread,
		MaxSpread:  spec.Reticle.MaxSpread,
		Spread:     spec.Reticle.MinSpread,
	})
	return nil
}

func newAnimator(spec *prefabs.PlayerSpec) *component.Animator {
	anim := &component.Animator{Clips: make(map[string]component.AnimClip, len(spec.Clips))}
	for name, clip := range spec.Clips {
		events := make([]component.AnimEvent, 0, len(clip.Events))
		for _, ev := range clip.Events {
			events = append(events, component.AnimEvent{Name: ev.Name, At: ev.At})
		}
		anim.Clips[name] = component.AnimClip{
			Name:     name,
			Length:   clip.Length,
			Loop:     clip.Loop,
			Fallback: clip.Fallback,
			Events:   events,
		}
	}
	anim.Play(spec.StartClip)
	return anim
}

func (g *Game) spawnCamera(spec *prefabs.CameraSpec) error {
	w := g.world
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return err
	}
	rig := &component.CameraRig{
		Profiles:   cameraProfiles(spec),
		Yaw:        spec.StartYaw,
		Pitch:      spec.StartPitch,
		YawSpeed:   spec.YawSpeed,
		PitchSpeed: spec.PitchSpeed,
		PitchMin:   spec.PitchMin,
		PitchMax:   spec.PitchMax,
		RateBlend:  spec.RateBlend,
		CannedRate: spec.CannedRate,
	}
	rig.FovDeg = rig.Profile(component.CameraProfileResting).FovDeg
	rig.ActiveProfile = component.CameraProfileResting
	rig.OffsetDist = rig.Profile(component.CameraProfileResting).Offset.Mag()
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), rig)
}

func (g *Game) spawnArena(spec *prefabs.ArenaSpec) error {
	w := g.world

	for _, obstacle := range spec.Obstacles {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{})
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: common.Vec3{X: obstacle.X, Z: obstacle.Z},
		})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:         obstacle.Width,
			Depth:         obstacle.Depth,
			Static:        true,
			CollisionType: component.CollisionObstacle,
			Category:      component.CategoryObstacle | component.CategoryOccluder,
			Mask:          ^uint(0),
		})
	}

	// Perimeter walls double as camera occluders.
	halfW := spec.GroundWidth / 2
	halfD := spec.GroundDepth / 2
	walls := []struct{ x, z, w, d float64 }{
		{0, halfD, spec.GroundWidth, arenaWallThickness},
		{0, -halfD, spec.GroundWidth, arenaWallThickness},
		{halfW, 0, arenaWallThickness, spec.GroundDepth},
		{-halfW, 0, arenaWallThickness, spec.GroundDepth},
	}
	for _, wall := range walls {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: common.Vec3{X: wall.x, Z: wall.z},
		})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:         wall.w,
			Depth:         wall.d,
			Static:        true,
			CollisionType: component.CollisionObstacle,
			Category:      component.CategoryObstacle | component.CategoryOccluder,
			Mask:          ^uint(0),
		})
	}

	for _, target := range spec.LookTargets {
		e, err := entity.BuildEntity(w, "look_target.yaml")
		if err != nil {
			return fmt.Errorf("game: look target %q: %w", target.Name, err)
		}
		if err := entity.SetEntityTransform(w, e, common.Vec3{X: target.X, Y: target.Y, Z: target.Z}, 0); err != nil {
			return fmt.Errorf("game: look target %q: %w", target.Name, err)
		}
	}
	return nil
}

func moveProfiles(spec *prefabs.PlayerSpec) map[component.StateKind]component.MoveProfile {
	kinds := map[string]component.StateKind{
		"idle":     component.StateIdle,
		"walking":  component.StateWalking,
		"running":  component.StateRunning,
		"crouched": component.StateCrouched,
		"aiming":   component.StateAiming,
		"canned":   component.StateCannedAnim,
	}
	out := make(map[component.StateKind]component.MoveProfile, len(kinds))
	for name, kind := range kinds {
		prof, ok := spec.Profiles[name]
		if !ok {
			prof = spec.Profiles["idle"]
		}
		out[kind] = component.MoveProfile{
			Speed:     prof.Speed,
			AccelRate: prof.AccelRate,
			TurnRate:  prof.TurnRate,
		}
	}
	return out
}

func cameraProfiles(spec *prefabs.CameraSpec) map[component.CameraProfileID]component.CameraProfile {
	ids := map[string]component.CameraProfileID{
		"resting":  component.CameraProfileResting,
		"walking":  component.CameraProfileWalking,
		"running":  component.CameraProfileRunning,
		"crouched": component.CameraProfileCrouched,
		"combat":   component.CameraProfileCombat,
		"aiming":   component.CameraProfileAiming,
		"canned":   component.CameraProfileCanned,
	}
	out := make(map[component.CameraProfileID]component.CameraProfile, len(ids))
	for name, id := range ids {
		prof, ok := spec.Profiles[name]
		if !ok {
			prof = spec.Profiles["resting"]
		}
		out[id] = component.CameraProfile{
			Offset:         common.Vec3{X: prof.OffsetX, Y: prof.OffsetY, Z: prof.OffsetZ},
			ChaseRate:      prof.ChaseRate,
			CorrectionRate: prof.CorrectionRate,
			FovDeg:         prof.Fov,
		}
	}
	return out
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.guides = !g.guides
	}

	g.pumpWatcher()

	if g.paused {
		g.ui.Update()
		return nil
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.scheduler.Update(g.world, dt)
	return nil
}

// pumpWatcher drains prefab file events and re-applies the hot tuning. Only
// the scalar tables reload live; entity layout changes need a restart.
func (g *Game) pumpWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			reload = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				g.logger.Warn().Err(err).Msg("game: prefab watcher")
			}
			if !ok {
				g.watcher = nil
				return
			}
		default:
			if reload {
				g.reloadTuning()
			}
			return
		}
	}
}

func (g *Game) reloadTuning() {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		g.logger.Warn().Err(err).Msg("game: reload player spec")
		return
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		g.logger.Warn().Err(err).Msg("game: reload camera spec")
		return
	}
	g.playerSpec = playerSpec
	g.cameraSpec = cameraSpec

	if player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok {
		if rig, ok := ecs.Get(g.world, player, component.PlayerRigComponent.Kind()); ok {
			rig.Profiles = moveProfiles(playerSpec)
			rig.MoveThreshold = playerSpec.MoveThreshold
			rig.RunThreshold = playerSpec.RunThreshold
			rig.FlavorMinWait = playerSpec.FlavorMinWait
			rig.FlavorMaxWait = playerSpec.FlavorMaxWait
			rig.CannedSequence = playerSpec.CannedSequence
		}
		if bridge, ok := ecs.Get(g.world, player, component.AnimBridgeComponent.Kind()); ok {
			bridge.InputSmoothRate = playerSpec.Bridge.InputSmoothRate
			bridge.AimLayerRate = playerSpec.Bridge.AimLayerRate
			bridge.FlavorPool = append([]string(nil), playerSpec.Bridge.FlavorPool...)
		}
	}
	if cam, ok := ecs.First(g.world, component.CameraRigComponent.Kind()); ok {
		if rig, ok := ecs.Get(g.world, cam, component.CameraRigComponent.Kind()); ok {
			rig.Profiles = cameraProfiles(cameraSpec)
			rig.YawSpeed = cameraSpec.YawSpeed
			rig.PitchSpeed = cameraSpec.PitchSpeed
			rig.PitchMin = cameraSpec.PitchMin
			rig.PitchMax = cameraSpec.PitchMax
			rig.RateBlend = cameraSpec.RateBlend
			rig.CannedRate = cameraSpec.CannedRate
			rig.OffsetDist = rig.Profile(rig.ActiveProfile).Offset.Mag()
		}
	}
	g.logger.Info().Msg("game: tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawScene(screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
