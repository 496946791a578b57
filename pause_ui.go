package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"

	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

// NewPauseUI builds the pause overlay: resume, a handful of hot-tuning
// steppers, and a clipboard export of the live tuning yaml. Colored
// nine-slices and the built-in basic font keep it free of theme assets.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	labelColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, labelColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.paused = false
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)

	panel.AddChild(newStepperRow(&face, btnImg, btnTextColor, labelColor, "Mouse sens",
		func() float64 { return g.inputSys.Sensitivity() },
		func(delta float64) { g.inputSys.SetSensitivity(g.inputSys.Sensitivity() + delta*0.1) },
	))
	panel.AddChild(newStepperRow(&face, btnImg, btnTextColor, labelColor, "Aim FOV",
		func() float64 { return g.tunableCameraProfile(component.CameraProfileAiming).FovDeg },
		func(delta float64) { g.adjustCameraFov(component.CameraProfileAiming, delta*2) },
	))
	panel.AddChild(newStepperRow(&face, btnImg, btnTextColor, labelColor, "Chase rate",
		func() float64 { return g.tunableCameraProfile(component.CameraProfileResting).ChaseRate },
		func(delta float64) { g.adjustCameraChase(delta * 0.5) },
	))

	if g.clipboardOK {
		copyBtn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text("Copy tuning YAML", &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.copyTuning()
			}),
		)
		panel.AddChild(copyBtn)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// newStepperRow is a label plus -/+ buttons; the label re-reads the value on
// every click so it stays live.
func newStepperRow(face *ebtext.Face, btnImg *imageui.NineSlice, btnTextColor *widget.ButtonTextColor, labelColor color.Color, name string, read func() float64, apply func(delta float64)) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	label := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("%s: %.1f", name, read()), face, labelColor),
	)
	refresh := func() {
		label.Label = fmt.Sprintf("%s: %.1f", name, read())
	}

	minus := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(" - ", face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			apply(-1)
			refresh()
		}),
	)
	plus := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(" + ", face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			apply(1)
			refresh()
		}),
	)

	row.AddChild(minus)
	row.AddChild(label)
	row.AddChild(plus)
	return row
}

func (g *Game) tunableCameraProfile(id component.CameraProfileID) component.CameraProfile {
	if rig, ok := firstCameraRig(g.world); ok {
		return rig.Profile(id)
	}
	return component.CameraProfile{}
}

func (g *Game) adjustCameraFov(id component.CameraProfileID, delta float64) {
	rig, ok := firstCameraRig(g.world)
	if !ok {
		return
	}
	prof := rig.Profiles[id]
	prof.FovDeg += delta
	rig.Profiles[id] = prof
}

// adjustCameraChase nudges every profile's chase rate together so the feel
// stays consistent across states.
func (g *Game) adjustCameraChase(delta float64) {
	rig, ok := firstCameraRig(g.world)
	if !ok {
		return
	}
	for id, prof := range rig.Profiles {
		prof.ChaseRate += delta
		if prof.ChaseRate < 0.5 {
			prof.ChaseRate = 0.5
		}
		rig.Profiles[id] = prof
	}
}

// copyTuning marshals the live tuning back into prefab-shaped yaml and puts
// it on the clipboard, so a good-feeling run can be pasted straight into
// the data files.
func (g *Game) copyTuning() {
	type tuningExport struct {
		Player *tuningPlayer `yaml:"player"`
		Camera *tuningCamera `yaml:"camera"`
	}

	export := tuningExport{
		Player: g.exportPlayerTuning(),
		Camera: g.exportCameraTuning(),
	}

	data, err := yaml.Marshal(&export)
	if err != nil {
		g.logger.Warn().Err(err).Msg("game: marshal tuning")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.logger.Info().Msg("game: tuning copied to clipboard")
}

type tuningPlayer struct {
	MoveThreshold float64                       `yaml:"move_threshold"`
	RunThreshold  float64                       `yaml:"run_threshold"`
	Profiles      map[string]map[string]float64 `yaml:"profiles"`
}

type tuningCamera struct {
	Profiles map[string]map[string]float64 `yaml:"profiles"`
}

func (g *Game) exportPlayerTuning() *tuningPlayer {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return nil
	}
	rig, ok := ecs.Get(g.world, player, component.PlayerRigComponent.Kind())
	if !ok {
		return nil
	}
	out := &tuningPlayer{
		MoveThreshold: rig.MoveThreshold,
		RunThreshold:  rig.RunThreshold,
		Profiles:      make(map[string]map[string]float64, len(rig.Profiles)),
	}
	for kind, prof := range rig.Profiles {
		out.Profiles[kind.String()] = map[string]float64{
			"speed":      prof.Speed,
			"accel_rate": prof.AccelRate,
			"turn_rate":  prof.TurnRate,
		}
	}
	return out
}

func (g *Game) exportCameraTuning() *tuningCamera {
	rig, ok := firstCameraRig(g.world)
	if !ok {
		return nil
	}
	out := &tuningCamera{Profiles: make(map[string]map[string]float64, len(rig.Profiles))}
	for id, prof := range rig.Profiles {
		out.Profiles[id.String()] = map[string]float64{
			"offset_x":        prof.Offset.X,
			"offset_y":        prof.Offset.Y,
			"offset_z":        prof.Offset.Z,
			"chase_rate":      prof.ChaseRate,
			"correction_rate": prof.CorrectionRate,
			"fov":             prof.FovDeg,
		}
	}
	return out
}
