package anim

import (
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
)

// Crouch tuning.
const (
	crouchRampRate = 4 // progress seconds^-1 to reach the full crouch
	crouchDrop     = 3 // texels the torso and head lower
	crouchHunch    = 0.25
	crouchHipBend  = 0.55
	crouchKneeBend = 1.1
	crouchArmTuck  = 0.2
)

// Crouch lowers the torso and head and bends the knees along a
// monotonic eased ramp, then holds. An optional one-shot hit swing can
// be layered on top, running at its own speed.
type Crouch struct {
	Base
	hit Hit
}

// NewCrouch creates a crouching animation. The hit swing starts
// completed; call TriggerHit to play it.
func NewCrouch() *Crouch {
	c := &Crouch{Base: NewBase()}
	c.hit = Hit{Base: NewBase(), done: true}
	return c
}

// TriggerHit plays the layered hit swing once, at the given speed
// (independent of the crouch's own speed).
func (a *Crouch) TriggerHit(speed float32) {
	a.hit.SetSpeed(speed)
	a.hit.Restart()
}

// HitDone reports whether the layered hit swing has finished.
func (a *Crouch) HitDone() bool {
	return a.hit.Done()
}

// Update implements Animation.
func (a *Crouch) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	ramp := ease.OutQuad(math.Clamp01(a.Progress()*crouchRampRate), 0, 1, 1)

	s := player.Skin
	drop := crouchDrop * ramp
	s.Body.Position.Y = s.Body.RestPosition().Y - drop
	s.Head.Position.Y = s.Head.RestPosition().Y - drop
	s.Body.Rotation.X = crouchHunch * ramp

	s.LeftUpperLeg.Rotation.X = -crouchHipBend * ramp
	s.RightUpperLeg.Rotation.X = -crouchHipBend * ramp
	s.LeftLowerLeg.Rotation.X = crouchKneeBend * ramp
	s.RightLowerLeg.Rotation.X = crouchKneeBend * ramp
	s.LeftFoot.Rotation.X = -crouchKneeBend * ramp / 2
	s.RightFoot.Rotation.X = -crouchKneeBend * ramp / 2

	s.LeftUpperArm.Rotation.X = -crouchArmTuck * ramp
	s.RightUpperArm.Rotation.X = -crouchArmTuck * ramp
	s.LeftLowerArm.Rotation.X = -crouchArmTuck * ramp / 2
	s.RightLowerArm.Rotation.X = -crouchArmTuck * ramp / 2

	if !a.hit.Done() {
		// Both arm components the hit drives were rewritten above, so
		// the impulse rebases onto this frame's pose.
		a.hit.rebase()
		a.hit.Update(player, dt)
	}
}
