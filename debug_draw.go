package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/TomRobson01/PDP-3CsExperiments/common"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// Top-down debug view of the 3D scene: the world XZ plane mapped onto the
// screen, +Z up. Pure presentation; nothing here feeds back into the
// simulation.

type sceneView struct {
	scale   float64
	centerX float64
	centerY float64
}

func (g *Game) view() sceneView {
	margin := 40.0
	sx := (baseWidth - 2*margin) / g.arenaSpec.GroundWidth
	sy := (baseHeight - 2*margin) / g.arenaSpec.GroundDepth
	return sceneView{
		scale:   math.Min(sx, sy),
		centerX: baseWidth / 2,
		centerY: baseHeight / 2,
	}
}

func (v sceneView) point(p common.Vec3) (float32, float32) {
	return float32(v.centerX + p.X*v.scale), float32(v.centerY - p.Z*v.scale)
}

func (g *Game) drawScene(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 24, G: 26, B: 30, A: 255})
	v := g.view()

	g.drawGround(screen, v)
	g.drawObstacles(screen, v)
	g.drawLookTargets(screen, v)
	g.drawProjectiles(screen, v)
	g.drawPlayer(screen, v)
	g.drawCamera(screen, v)

	if g.guides {
		drawThirdsGuides(screen)
	}

	g.drawReticle(screen)
	g.drawStateText(screen)
}

func (g *Game) drawGround(screen *ebiten.Image, v sceneView) {
	x0, y0 := v.point(common.Vec3{X: -g.arenaSpec.GroundWidth / 2, Z: g.arenaSpec.GroundDepth / 2})
	w := float32(g.arenaSpec.GroundWidth * v.scale)
	h := float32(g.arenaSpec.GroundDepth * v.scale)
	vector.DrawFilledRect(screen, x0, y0, w, h, color.NRGBA{R: 34, G: 38, B: 40, A: 255}, false)
	vector.StrokeRect(screen, x0, y0, w, h, 1, colornames.Dimgray, false)
}

func (g *Game) drawObstacles(screen *ebiten.Image, v sceneView) {
	for _, obstacle := range g.arenaSpec.Obstacles {
		x, y := v.point(common.Vec3{X: obstacle.X - obstacle.Width/2, Z: obstacle.Z + obstacle.Depth/2})
		w := float32(obstacle.Width * v.scale)
		h := float32(obstacle.Depth * v.scale)
		fill := color.Color(colornames.Slategray)
		if obstacle.Color != nil && obstacle.Color.Color != nil {
			fill = obstacle.Color.Color
		}
		vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	}
}

func (g *Game) drawLookTargets(screen *ebiten.Image, v sceneView) {
	ecs.ForEach2(g.world, component.LookTargetTagComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.LookTargetTag, t *component.Transform) {
			x, y := v.point(t.Position)
			vector.StrokeCircle(screen, x, y, 4, 1, colornames.Gold, true)
		})

	if g.headtrack != nil && g.headtrack.Tracking {
		if player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok {
			if t, ok := ecs.Get(g.world, player, component.TransformComponent.Kind()); ok {
				x0, y0 := v.point(t.Position)
				x1, y1 := v.point(g.headtrack.TargetPos)
				vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Gold, true)
			}
		}
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image, v sceneView) {
	ecs.ForEach2(g.world, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, proj *component.Projectile, t *component.Transform) {
			x, y := v.point(t.Position)
			c := color.Color(colornames.Orange)
			if proj.State == component.ProjectilePenetrated {
				c = colornames.Orangered
			}
			vector.DrawFilledCircle(screen, x, y, 3, c, true)
		})
}

func (g *Game) drawPlayer(screen *ebiten.Image, v sceneView) {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(g.world, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	x, y := v.point(t.Position)
	vector.DrawFilledCircle(screen, x, y, float32(0.35*v.scale), colornames.Lightsteelblue, true)

	// Facing wedge.
	tip := t.Position.Add(common.YawDirection(t.Yaw).Scale(0.9))
	tx, ty := v.point(tip)
	vector.StrokeLine(screen, x, y, tx, ty, 2, colornames.White, true)
}

func (g *Game) drawCamera(screen *ebiten.Image, v sceneView) {
	rig, ok := firstCameraRig(g.world)
	if !ok {
		return
	}

	x, y := v.point(rig.Position)
	vector.DrawFilledCircle(screen, x, y, 4, colornames.Deepskyblue, true)

	// Frustum wedge from yaw and FOV.
	half := rig.FovDeg / 2
	for _, a := range []float64{-half, half} {
		edge := rig.Position.Add(common.YawDirection(rig.Yaw + a).Scale(3))
		ex, ey := v.point(edge)
		vector.StrokeLine(screen, x, y, ex, ey, 1, colornames.Deepskyblue, true)
	}

	if g.debug && g.cameraSys != nil {
		c := color.Color(colornames.Green)
		if g.cameraSys.RayHit {
			c = colornames.Red
		}
		x0, y0 := v.point(g.cameraSys.RayFrom)
		x1, y1 := v.point(g.cameraSys.RayTo)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, true)
	}
}

// drawThirdsGuides overlays the rule-of-thirds grid used to eyeball camera
// framing.
func drawThirdsGuides(screen *ebiten.Image) {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 48}
	for i := 1; i <= 2; i++ {
		x := float32(baseWidth * i / 3)
		y := float32(baseHeight * i / 3)
		vector.StrokeLine(screen, x, 0, x, baseHeight, 1, c, false)
		vector.StrokeLine(screen, 0, y, baseWidth, y, 1, c, false)
	}
}

func (g *Game) drawReticle(screen *ebiten.Image) {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	reticle, ok := ecs.Get(g.world, player, component.ReticleComponent.Kind())
	if !ok {
		return
	}

	cx := float32(baseWidth / 2)
	cy := float32(baseHeight / 2)
	if !reticle.Visible {
		vector.DrawFilledCircle(screen, cx, cy, 2, colornames.White, true)
		return
	}

	spread := float32(reticle.Spread)
	for _, d := range [][4]float32{
		{0, -spread, 0, -spread - 8},
		{0, spread, 0, spread + 8},
		{-spread, 0, -spread - 8, 0},
		{spread, 0, spread + 8, 0},
	} {
		vector.StrokeLine(screen, cx+d[0], cy+d[1], cx+d[2], cy+d[3], 2, colornames.White, true)
	}
}

func (g *Game) drawStateText(screen *ebiten.Image) {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	machine, ok := ecs.Get(g.world, player, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return
	}

	text := fmt.Sprintf("state: %s", machine.CurrentKind())
	if rig, ok := firstCameraRig(g.world); ok {
		text += fmt.Sprintf("  cam: %s fov %.0f", rig.ActiveProfile, rig.FovDeg)
	}
	ebitenutil.DebugPrintAt(screen, text, 8, baseHeight-18)
}

func firstCameraRig(w *ecs.World) (*component.CameraRig, bool) {
	cam, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, cam, component.CameraRigComponent.Kind())
}
