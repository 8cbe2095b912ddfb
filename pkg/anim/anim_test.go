package anim

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
	"github.com/Faultbox/skinview/pkg/skin"
)

func newTestPlayer() *rig.Player {
	return rig.NewPlayer(skin.VariantDefault)
}

func TestStepAdvancesBySpeed(t *testing.T) {
	w := NewWalk()
	p := newTestPlayer()

	w.SetSpeed(2)
	w.Update(p, 0.5)
	if w.Progress() != 1 {
		t.Errorf("progress should be dt*speed = 1, got %v", w.Progress())
	}

	// dt = 0 must not advance progress
	w.Update(p, 0)
	if w.Progress() != 1 {
		t.Errorf("dt=0 advanced progress to %v", w.Progress())
	}
}

func TestControllerSetResetsProgressAndPose(t *testing.T) {
	p := newTestPlayer()
	c := NewController(p)

	a := NewWalk()
	c.Set(a)
	c.Update(5) // a.Progress() == 5, pose disturbed
	if a.Progress() != 5 {
		t.Fatalf("expected progress 5, got %v", a.Progress())
	}
	if p.Skin.LeftUpperArm.Rotation.X == 0 {
		t.Fatal("walk should have posed the arm")
	}

	b := NewWave(SideLeft)
	b.SetProgress(5)
	c.Set(b)

	if b.Progress() != 0 {
		t.Errorf("newly assigned animation should have progress 0, got %v", b.Progress())
	}
	if p.Skin.LeftUpperArm.Rotation.X != 0 || p.Skin.RightUpperLeg.Rotation.X != 0 {
		t.Error("assigning an animation should reset the previous pose")
	}
	if c.Animation() != b {
		t.Error("controller should report the new animation")
	}
}

func TestControllerDetachResetsPose(t *testing.T) {
	p := newTestPlayer()
	c := NewController(p)

	c.Set(NewRun())
	c.Update(1.3)
	c.Set(nil)

	if c.Animation() != nil {
		t.Error("controller should be detached")
	}
	if p.Skin.Body.Position.Y != p.Skin.Body.RestPosition().Y {
		t.Error("detaching should reset the rig to rest pose")
	}
	if p.Skin.LeftUpperArm.Rotation.X != 0 {
		t.Error("detaching should zero pivot rotations")
	}
}

func TestPauseFreezesPose(t *testing.T) {
	p := newTestPlayer()
	a := NewWalk()

	a.Update(p, 0.37)
	armBefore := p.Skin.LeftUpperArm.Rotation
	progressBefore := a.Progress()

	a.SetPaused(true)
	for _, dt := range []float32{0.01, 1, 1000, 1e9} {
		a.Update(p, dt)
	}

	if a.Progress() != progressBefore {
		t.Errorf("paused update advanced progress: %v -> %v", progressBefore, a.Progress())
	}
	if p.Skin.LeftUpperArm.Rotation != armBefore {
		t.Error("paused update changed the pose")
	}

	a.SetPaused(false)
	a.Update(p, 0.1)
	if a.Progress() == progressBefore {
		t.Error("unpaused update should advance progress again")
	}
}

func TestWalkGaitSymmetry(t *testing.T) {
	p := newTestPlayer()
	a := NewWalk()

	// Sample phases across [0, 4pi]
	for i := 0; i <= 200; i++ {
		phase := float32(i) / 200 * 4 * math32.Pi
		a.SetProgress(phase / walkFrequency)
		a.Update(p, 0)

		la := p.Skin.LeftUpperArm.Rotation.X
		ra := p.Skin.RightUpperArm.Rotation.X
		if math32.Abs(la+ra) > 1e-5 {
			t.Fatalf("phase %v: left arm %v is not the negation of right arm %v", phase, la, ra)
		}

		// An arm opposes its own side's leg
		ll := p.Skin.LeftUpperLeg.Rotation.X
		if la != 0 && math32.Signbit(la) == math32.Signbit(ll) {
			t.Fatalf("phase %v: left arm and left leg swing the same way", phase)
		}
	}
}

func TestBuiltinsStayInJointRange(t *testing.T) {
	limit := float32(math32.Pi/2 + 1e-4)

	anims := map[string]Animation{
		"idle":   NewIdle(),
		"walk":   NewWalk(),
		"run":    NewRun(),
		"fly":    NewFly(),
		"crouch": NewCrouch(),
		"waveL":  NewWave(SideLeft),
		"waveR":  NewWave(SideRight),
		"bend":   NewBend(),
	}
	for name, a := range anims {
		p := newTestPlayer()
		for i := 0; i < 500; i++ {
			a.Update(p, 0.033)
			for _, n := range []*rig.Node{
				p.Skin.LeftUpperArm, p.Skin.RightUpperArm,
				p.Skin.LeftUpperLeg, p.Skin.RightUpperLeg,
			} {
				for _, v := range []float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z} {
					if math32.Abs(v) > limit {
						t.Fatalf("%s drives %s beyond pi/2: %v", name, n.Name, v)
					}
				}
			}
		}
	}
}

func TestWrapPhase(t *testing.T) {
	twoPi := 2 * math32.Pi
	for _, p := range []float32{0, 1, twoPi, twoPi + 1, -1, 1e9, 1e13, 6e12} {
		got := wrapPhase(p)
		if math32.IsNaN(got) || got < 0 || got >= twoPi {
			t.Errorf("wrapPhase(%v) = %v, want a value in [0, 2pi)", p, got)
		}
		if s := math32.Sin(got); math32.IsNaN(s) || math32.Abs(s) > 1 {
			t.Errorf("sin of wrapped phase %v is %v", got, s)
		}
	}

	// Wrapping preserves the angle for already-reduced phases
	if got := wrapPhase(1.5); got != 1.5 {
		t.Errorf("wrapPhase(1.5) = %v", got)
	}
}

func TestBuiltinsSurviveHugeDelta(t *testing.T) {
	anims := []Animation{
		NewIdle(), NewWalk(), NewRun(), NewFly(),
		NewCrouch(), NewWave(SideRight), NewBend(), NewHit(),
	}
	for _, a := range anims {
		p := newTestPlayer()
		a.Update(p, 1e12)
		p.Root.Walk(func(n *rig.Node) {
			for _, v := range []float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z, n.Position.Y} {
				if math32.IsNaN(v) || math32.IsInf(v, 0) {
					t.Fatalf("huge dt produced non-finite transform on %s", n.Name)
				}
			}
		})
	}
}

func TestHitCompletesAndLeavesRestPose(t *testing.T) {
	p := newTestPlayer()
	h := NewHit()

	moved := false
	for i := 0; i < 100; i++ {
		h.Update(p, 0.01)
		if p.Skin.RightUpperArm.Rotation.X != 0 {
			moved = true
		}
	}
	if !moved {
		t.Fatal("hit never moved the arm")
	}
	if !h.Done() {
		t.Fatal("hit should be done after a full second")
	}
	if math32.Abs(p.Skin.RightUpperArm.Rotation.X) > 1e-4 {
		t.Errorf("finished hit should leave the arm at its base pose, got %v",
			p.Skin.RightUpperArm.Rotation.X)
	}

	// A finished hit is inert until restarted
	h.Update(p, 1)
	if math32.Abs(p.Skin.RightUpperArm.Rotation.X) > 1e-4 {
		t.Error("finished hit should stay inert")
	}
	h.Restart()
	if h.Done() {
		t.Error("restart should rewind the impulse")
	}
}

func TestHitLayersOnCrouch(t *testing.T) {
	p := newTestPlayer()
	c := NewCrouch()

	// Settle into the crouch, then trigger the hit at double speed
	for i := 0; i < 30; i++ {
		c.Update(p, 0.033)
	}
	kneeBefore := p.Skin.LeftLowerLeg.Rotation.X
	c.TriggerHit(2)
	if c.HitDone() {
		t.Fatal("triggered hit should be pending")
	}

	// The impulse never exceeds its amplitude on top of the tuck, on
	// either arm segment
	shoulderMax := float32(crouchArmTuck + hitShoulder + 1e-3)
	elbowMax := float32(crouchArmTuck/2 + hitElbow + 1e-3)

	swung := false
	for i := 0; i < 60 && !c.HitDone(); i++ {
		c.Update(p, 0.01)
		if p.Skin.RightUpperArm.Rotation.X < -crouchArmTuck-0.1 {
			swung = true
		}
		if math32.Abs(p.Skin.RightUpperArm.Rotation.X) > shoulderMax {
			t.Fatalf("shoulder impulse accumulated to %v", p.Skin.RightUpperArm.Rotation.X)
		}
		if math32.Abs(p.Skin.RightLowerArm.Rotation.X) > elbowMax {
			t.Fatalf("elbow impulse accumulated to %v", p.Skin.RightLowerArm.Rotation.X)
		}
	}
	if !swung {
		t.Error("layered hit should swing the arm past the crouch tuck")
	}
	if !c.HitDone() {
		t.Error("hit should complete")
	}
	if math32.Abs(p.Skin.LeftLowerLeg.Rotation.X-kneeBefore) > 1e-4 {
		t.Error("layered hit must not disturb the crouch legs")
	}

	// A finished hit leaves no residue: further updates settle both
	// segments back on the plain crouch pose
	c.Update(p, 0.033)
	if math32.Abs(p.Skin.RightUpperArm.Rotation.X+crouchArmTuck) > 1e-3 {
		t.Errorf("shoulder should return to the crouch tuck, got %v",
			p.Skin.RightUpperArm.Rotation.X)
	}
	if math32.Abs(p.Skin.RightLowerArm.Rotation.X+crouchArmTuck/2) > 1e-3 {
		t.Errorf("elbow should return to the crouch tuck, got %v",
			p.Skin.RightLowerArm.Rotation.X)
	}
}

func TestCrouchRampIsMonotonic(t *testing.T) {
	p := newTestPlayer()
	c := NewCrouch()

	prev := float32(0)
	for i := 0; i < 40; i++ {
		c.Update(p, 0.02)
		knee := p.Skin.LeftLowerLeg.Rotation.X
		if knee < prev-1e-6 {
			t.Fatalf("knee bend regressed during the crouch ramp: %v -> %v", prev, knee)
		}
		prev = knee
	}
	if prev < crouchKneeBend-1e-3 {
		t.Errorf("crouch should settle at full knee bend, got %v", prev)
	}

	// Holds once settled
	c.Update(p, 10)
	if math32.Abs(p.Skin.LeftLowerLeg.Rotation.X-crouchKneeBend) > 1e-3 {
		t.Error("crouch should hold the settled pose")
	}
}

func TestWaveOnceHolds(t *testing.T) {
	p := newTestPlayer()
	w := NewWave(SideLeft)
	w.Once = true

	w.Update(p, 100) // way past one cycle
	held := p.Skin.LeftUpperArm.Rotation.Z
	w.Update(p, 1)
	if p.Skin.LeftUpperArm.Rotation.Z != held {
		t.Error("one-shot wave should hold its final pose")
	}

	// Looping wave keeps moving
	loop := NewWave(SideLeft)
	loop.Update(p, 0.1)
	first := p.Skin.LeftUpperArm.Rotation.Z
	loop.Update(p, 0.1)
	if p.Skin.LeftUpperArm.Rotation.Z == first {
		t.Error("looping wave should keep swinging")
	}
}

func TestWaveSelectsArm(t *testing.T) {
	p := newTestPlayer()
	w := NewWave(SideRight)
	w.Update(p, 0.1)

	if p.Skin.RightUpperArm.Rotation.Z == 0 {
		t.Error("right-side wave should move the right arm")
	}
	if p.Skin.LeftUpperArm.Rotation.Z != 0 {
		t.Error("right-side wave must not move the left arm")
	}
}

func TestBendLeavesLimbRootsAlone(t *testing.T) {
	p := newTestPlayer()
	b := NewBend()

	shoulderRest := p.Skin.LeftUpperArm.WorldPosition()
	for i := 0; i < 50; i++ {
		b.Update(p, 0.033)
		if p.Skin.LeftUpperArm.Rotation.X != 0 || p.Skin.RightUpperLeg.Rotation.X != 0 {
			t.Fatal("bend must not rotate shoulder or hip pivots")
		}
	}
	got := p.Skin.LeftUpperArm.WorldPosition()
	if got != shoulderRest {
		t.Error("bend displaced the shoulder attachment")
	}
	if p.Skin.LeftLowerArm.Rotation.X == 0 && p.Skin.LeftLowerLeg.Rotation.X == 0 {
		t.Error("bend should articulate the mid-limb pivots")
	}
}

func TestFlySettlesIntoFixedPose(t *testing.T) {
	p := newTestPlayer()
	f := NewFly()

	for i := 0; i < 60; i++ {
		f.Update(p, 0.033)
	}
	legL := p.Skin.LeftUpperLeg.Rotation.X
	legR := p.Skin.RightUpperLeg.Rotation.X
	if legL != legR {
		t.Error("flight pose should freeze both legs identically")
	}
	if legL != -flyLegRaise {
		t.Errorf("legs should settle at the raised pose, got %v", legL)
	}
	if p.Skin.Root.Rotation.X != flyBodyPitch {
		t.Errorf("torso should settle pitched forward, got %v", p.Skin.Root.Rotation.X)
	}

	// Settled pose holds under further updates
	f.Update(p, 5)
	if p.Skin.LeftUpperLeg.Rotation.X != legL {
		t.Error("flight pose should hold once settled")
	}
}

func TestRunBobsAndLeans(t *testing.T) {
	p := newTestPlayer()
	r := NewRun()

	for i := 0; i < 100; i++ {
		r.Update(p, 0.02)
		if p.Skin.Body.Position.Y < p.Skin.Body.RestPosition().Y-1e-5 {
			t.Fatal("run bob should never dip below rest height")
		}
	}
	if p.Skin.Body.Rotation.X <= 0 {
		t.Error("run should lean the torso forward")
	}
}
