package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Bend tuning.
const (
	bendFrequency = 4
	bendElbowMax  = 1.2
	bendKneeMax   = 1.2
	bendTipMax    = 0.25
)

// Bend cycles the elbow and knee pivots through a bend-and-recover
// motion while leaving the shoulder and hip pivots alone, exercising
// mid-limb-only articulation.
type Bend struct {
	Base
}

// NewBend creates a bending animation.
func NewBend() *Bend {
	return &Bend{Base: NewBase()}
}

// Update implements Animation.
func (a *Bend) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	// 0..1 bend-and-recover cycle
	cycle := (1 - math32.Cos(wrapPhase(a.Progress()*bendFrequency))) / 2

	s := player.Skin
	s.LeftLowerArm.Rotation.X = -bendElbowMax * cycle
	s.RightLowerArm.Rotation.X = -bendElbowMax * cycle
	s.LeftLowerLeg.Rotation.X = bendKneeMax * cycle
	s.RightLowerLeg.Rotation.X = bendKneeMax * cycle

	s.LeftHand.Rotation.X = -bendTipMax * cycle
	s.RightHand.Rotation.X = -bendTipMax * cycle
	s.LeftFoot.Rotation.X = -bendTipMax * cycle
	s.RightFoot.Rotation.X = -bendTipMax * cycle
}
