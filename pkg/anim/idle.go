package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Idle sway tuning. The two sine periods are incommensurate (1 : sqrt 2)
// so the pose never visibly repeats within a short window.
const (
	idleArmSpread = 0.06
	idleSwayA     = 0.03
	idleSwayB     = 0.02
)

// Idle is the default standing animation: a near-zero-amplitude sway on
// torso, arms and legs.
type Idle struct {
	Base
}

// NewIdle creates an idle animation.
func NewIdle() *Idle {
	return &Idle{Base: NewBase()}
}

// Update implements Animation.
func (a *Idle) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	t := a.Progress()
	sway := idleSwayA*math32.Sin(wrapPhase(t)) + idleSwayB*math32.Sin(wrapPhase(t*math32.Sqrt2))

	s := player.Skin
	s.Head.Rotation.X = sway
	s.Body.Rotation.Z = sway * 0.3

	s.LeftUpperArm.Rotation.Z = idleArmSpread + sway
	s.RightUpperArm.Rotation.Z = -idleArmSpread - sway
	s.LeftUpperArm.Rotation.X = sway * 0.5
	s.RightUpperArm.Rotation.X = -sway * 0.5

	s.LeftUpperLeg.Rotation.Z = sway * 0.2
	s.RightUpperLeg.Rotation.Z = -sway * 0.2
}
