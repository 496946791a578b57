package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

const (
	stickDeadzone  = 0.2
	mouseLookScale = 0.08
)

// InputSystem snapshots keyboard, mouse, and gamepad state into every Input
// component once per tick. Downstream systems only ever read the snapshot.
type InputSystem struct {
	sensitivity float64

	lastCursorX int
	lastCursorY int
	cursorInit  bool
}

func NewInputSystem(sensitivity float64) *InputSystem {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &InputSystem{sensitivity: sensitivity}
}

// SetSensitivity rescales mouse look; the pause overlay drives it.
func (i *InputSystem) SetSensitivity(s float64) {
	if s > 0 {
		i.sensitivity = s
	}
}

// Sensitivity reports the current mouse look scale.
func (i *InputSystem) Sensitivity() float64 {
	return i.sensitivity
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	moveX := 0.0
	moveY := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		moveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		moveY -= 1
	}

	cx, cy := ebiten.CursorPosition()
	lookX := 0.0
	lookY := 0.0
	if i.cursorInit {
		lookX = float64(cx-i.lastCursorX) * mouseLookScale * i.sensitivity
		lookY = float64(i.lastCursorY-cy) * mouseLookScale * i.sensitivity
	}
	i.lastCursorX = cx
	i.lastCursorY = cy
	i.cursorInit = true

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		lookX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		lookX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		lookY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		lookY -= 1
	}

	aim := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	fire := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	firePressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	sprint := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	sprintPressed := inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight)
	crouch := ebiten.IsKeyPressed(ebiten.KeyC)
	crouchPressed := inpututil.IsKeyJustPressed(ebiten.KeyC)
	cannedPressed := inpututil.IsKeyJustPressed(ebiten.KeyE)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]

		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX = lx
			moveY = -ly
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			lookX = rx
			lookY = -ry
		}

		aim = aim || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		firePressed = firePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)

		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		sprintPressed = sprintPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftStick)
		crouch = crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		crouchPressed = crouchPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		cannedPressed = cannedPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.LookX = lookX
		input.LookY = lookY
		input.Aim = aim
		input.Fire = fire
		input.FirePressed = firePressed
		input.Sprint = sprint
		input.SprintPressed = sprintPressed
		input.Crouch = crouch
		input.CrouchPressed = crouchPressed
		input.CannedPressed = cannedPressed
	})
}
