package system

import (
	"testing"

	"github.com/TomRobson01/PDP-3CsExperiments/ecs"
	"github.com/TomRobson01/PDP-3CsExperiments/ecs/component"
)

func testMoveProfiles() map[component.StateKind]component.MoveProfile {
	return map[component.StateKind]component.MoveProfile{
		component.StateIdle:     {Speed: 0, AccelRate: 8, TurnRate: 10},
		component.StateWalking:  {Speed: 2.4, AccelRate: 8, TurnRate: 10},
		component.StateRunning:  {Speed: 5.0, AccelRate: 6, TurnRate: 14},
		component.StateCrouched: {Speed: 1.2, AccelRate: 8, TurnRate: 6},
		component.StateAiming:   {Speed: 1.6, AccelRate: 10, TurnRate: 18},
	}
}

func newControllerWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetDT(1.0 / 60.0)

	e := ecs.CreateEntity(w)
	mustAdd := func(err error) {
		if err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
	mustAdd(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	mustAdd(ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}))
	mustAdd(ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{}))
	mustAdd(ecs.Add(w, e, component.PlayerRigComponent.Kind(), &component.PlayerRig{
		Profiles:       testMoveProfiles(),
		MoveThreshold:  0.1,
		RunThreshold:   0.5,
		FlavorMinWait:  4,
		FlavorMaxWait:  7,
		CannedSequence: "vault",
	}))
	return w, e
}

func controllerParts(t *testing.T, w *ecs.World, e ecs.Entity) (*component.Input, *component.PlayerRig, *component.PlayerStateMachine) {
	t.Helper()
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		t.Fatal("missing input")
	}
	rig, ok := ecs.Get(w, e, component.PlayerRigComponent.Kind())
	if !ok {
		t.Fatal("missing rig")
	}
	machine, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind())
	if !ok {
		t.Fatal("missing state machine")
	}
	return input, rig, machine
}

func noopController() *PlayerControllerSystem {
	return NewPlayerControllerSystem(func(string) {}, func() {}, func() {})
}

func TestMovementTierThresholds(t *testing.T) {
	cases := []struct {
		name   string
		moveY  float64
		sprint bool
		want   component.StateKind
	}{
		{"below_move_threshold", 0.05, false, component.StateIdle},
		{"at_move_threshold", 0.1, false, component.StateIdle},
		{"above_move_threshold", 0.6, false, component.StateWalking},
		{"sprint_above_run_threshold", 0.6, true, component.StateRunning},
		{"sprint_below_run_threshold", 0.3, true, component.StateWalking},
		{"sprint_at_run_threshold", 0.5, true, component.StateRunning},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, e := newControllerWorld(t)
			input, _, machine := controllerParts(t, w, e)
			sys := noopController()

			input.MoveY = c.moveY
			input.SprintPressed = c.sprint
			sys.Update(w)

			if got := machine.CurrentKind(); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRunningFallsBackThroughWalking(t *testing.T) {
	w, e := newControllerWorld(t)
	input, _, machine := controllerParts(t, w, e)
	sys := noopController()

	input.MoveY = 0.8
	input.SprintPressed = true
	sys.Update(w)
	if machine.CurrentKind() != component.StateRunning {
		t.Fatalf("expected running, got %v", machine.CurrentKind())
	}

	// Dropping below the run threshold while still moving lands in Walking,
	// never straight in Idle.
	input.SprintPressed = false
	input.MoveY = 0.3
	sys.Update(w)
	if machine.CurrentKind() != component.StateWalking {
		t.Fatalf("expected walking after run fallback, got %v", machine.CurrentKind())
	}

	input.MoveY = 0
	sys.Update(w)
	if machine.CurrentKind() != component.StateIdle {
		t.Fatalf("expected idle after stopping, got %v", machine.CurrentKind())
	}
}

func TestCrouchTogglesOnPressEdge(t *testing.T) {
	w, e := newControllerWorld(t)
	input, _, machine := controllerParts(t, w, e)
	sys := noopController()

	input.CrouchPressed = true
	sys.Update(w)
	if machine.CurrentKind() != component.StateCrouched {
		t.Fatalf("expected crouched, got %v", machine.CurrentKind())
	}

	// Holding the button after the edge must not toggle back out.
	input.CrouchPressed = false
	input.Crouch = true
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	if machine.CurrentKind() != component.StateCrouched {
		t.Fatalf("expected crouched while held, got %v", machine.CurrentKind())
	}

	input.CrouchPressed = true
	sys.Update(w)
	if machine.CurrentKind() != component.StateIdle {
		t.Fatalf("expected idle after second press, got %v", machine.CurrentKind())
	}
}

func TestAimOverridesMovementTiers(t *testing.T) {
	cases := []struct {
		name   string
		moveY  float64
		sprint bool
		crouch bool
	}{
		{"standing", 0, false, false},
		{"moving", 0.7, false, false},
		{"sprinting", 0.9, true, false},
		{"crouch_edge", 0, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, e := newControllerWorld(t)
			input, rig, machine := controllerParts(t, w, e)
			sys := noopController()

			input.MoveY = c.moveY
			input.SprintPressed = c.sprint
			input.CrouchPressed = c.crouch
			input.Aim = true
			sys.Update(w)

			if machine.CurrentKind() != component.StateAiming {
				t.Fatalf("expected aiming, got %v", machine.CurrentKind())
			}
			// Aim entry snaps the speed blend instead of easing into it.
			if want := rig.Profile(component.StateAiming).Speed; rig.SmoothedSpeed != want {
				t.Fatalf("expected smoothed speed snapped to %v, got %v", want, rig.SmoothedSpeed)
			}
		})
	}
}

func TestAimReleaseRestoresMovementTier(t *testing.T) {
	w, e := newControllerWorld(t)
	input, _, machine := controllerParts(t, w, e)
	sys := noopController()

	input.Aim = true
	input.MoveY = 0.6
	sys.Update(w)
	if machine.CurrentKind() != component.StateAiming {
		t.Fatalf("expected aiming, got %v", machine.CurrentKind())
	}

	input.Aim = false
	sys.Update(w)
	if machine.CurrentKind() != component.StateWalking {
		t.Fatalf("expected walking after aim release, got %v", machine.CurrentKind())
	}
}

func TestCannedStateStickyUntilFinished(t *testing.T) {
	w, e := newControllerWorld(t)
	input, rig, machine := controllerParts(t, w, e)

	var started []string
	sys := NewPlayerControllerSystem(func(name string) { started = append(started, name) }, func() {}, func() {})

	input.CannedPressed = true
	sys.Update(w)
	if machine.CurrentKind() != component.StateCannedAnim {
		t.Fatalf("expected canned, got %v", machine.CurrentKind())
	}
	if len(started) != 1 || started[0] != "vault" {
		t.Fatalf("expected one start of %q, got %v", "vault", started)
	}

	// Every input is ignored while the sequence plays.
	input.CannedPressed = false
	input.MoveY = 1
	input.Aim = true
	input.SprintPressed = true
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if machine.CurrentKind() != component.StateCannedAnim {
		t.Fatalf("expected canned to stay sticky, got %v", machine.CurrentKind())
	}
	if len(started) != 1 {
		t.Fatalf("expected no re-entry, got %d starts", len(started))
	}

	input.MoveY = 0
	input.Aim = false
	input.SprintPressed = false
	rig.CannedFinished = true
	sys.Update(w)
	if machine.CurrentKind() != component.StateIdle {
		t.Fatalf("expected idle after finish, got %v", machine.CurrentKind())
	}
}

func TestCannedEntryNotifiesBeforeCommit(t *testing.T) {
	w, e := newControllerWorld(t)
	input, _, machine := controllerParts(t, w, e)

	sys := noopController()
	sys.Update(w) // prime Idle

	observed := component.StateCannedAnim
	sys = NewPlayerControllerSystem(func(string) {}, func() {
		observed = machine.CurrentKind()
	}, func() {})

	input.CannedPressed = true
	sys.Update(w)

	if observed != component.StateIdle {
		t.Fatalf("expected the notify to see the pre-commit state, saw %v", observed)
	}
	if machine.CurrentKind() != component.StateCannedAnim {
		t.Fatalf("expected canned after commit, got %v", machine.CurrentKind())
	}
}

func TestIdleFlavorTimer(t *testing.T) {
	w, e := newControllerWorld(t)
	input, rig, machine := controllerParts(t, w, e)

	flavorCount := 0
	sys := NewPlayerControllerSystem(func(string) {}, func() {}, func() { flavorCount++ })
	sys.rollWait = func(min, max float64) float64 { return 0.25 }
	w.SetDT(0.1)

	// Enter arms the timer; the third tick drains it and re-arms.
	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	if flavorCount != 1 {
		t.Fatalf("expected one flavor after 0.3s, got %d", flavorCount)
	}
	if !rig.FlavorArmed || rig.FlavorWait != 0.25 {
		t.Fatalf("expected timer re-armed to 0.25, got armed=%v wait=%v", rig.FlavorArmed, rig.FlavorWait)
	}

	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	if flavorCount != 2 {
		t.Fatalf("expected a second flavor on the loop, got %d", flavorCount)
	}

	// Leaving Idle cancels the pending timer.
	input.MoveY = 0.6
	sys.Update(w)
	if machine.CurrentKind() != component.StateWalking {
		t.Fatalf("expected walking, got %v", machine.CurrentKind())
	}
	if rig.FlavorArmed || rig.FlavorWait != 0 {
		t.Fatalf("expected timer cancelled on exit, got armed=%v wait=%v", rig.FlavorArmed, rig.FlavorWait)
	}

	// Re-entering Idle starts a fresh wait, never resumes the old one.
	input.MoveY = 0
	for i := 0; i < 2; i++ {
		sys.Update(w)
	}
	if flavorCount != 2 {
		t.Fatalf("expected no flavor right after re-entry, got %d", flavorCount)
	}
}

func TestWalkCommandIsCameraRelative(t *testing.T) {
	w, e := newControllerWorld(t)
	input, _, _ := controllerParts(t, w, e)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	sys := noopController()

	// No camera entity: facing falls back to the transform yaw of 0, which
	// looks down +Z.
	input.MoveY = 1
	sys.Update(w)

	if !body.HasCommand {
		t.Fatal("expected a velocity command")
	}
	if body.CommandZ <= 0 {
		t.Fatalf("expected forward +Z command, got %v", body.CommandZ)
	}
	if body.CommandX < -1e-9 || body.CommandX > 1e-9 {
		t.Fatalf("expected no lateral command, got %v", body.CommandX)
	}
}
