package anim

import (
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
)

// Fly tuning.
const (
	flyRampRate  = 2 // progress seconds^-1 to reach the full pose
	flyBodyPitch = 1.3
	flyLegRaise  = 0.5
	flyKneeBend  = 0.3
	flyArmSweep  = 0.4
	flyArmSpread = 0.25
)

// Fly eases into a horizontal flight pose and holds it: the whole skin
// pitches forward, legs freeze slightly raised and the arms sweep back.
type Fly struct {
	Base
}

// NewFly creates a flying animation.
func NewFly() *Fly {
	return &Fly{Base: NewBase()}
}

// Update implements Animation.
func (a *Fly) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	ramp := ease.OutCubic(math.Clamp01(a.Progress()*flyRampRate), 0, 1, 1)

	s := player.Skin
	s.Root.Rotation.X = flyBodyPitch * ramp
	s.Head.Rotation.X = -0.7 * ramp // look ahead, against the pitch

	s.LeftUpperLeg.Rotation.X = -flyLegRaise * ramp
	s.RightUpperLeg.Rotation.X = -flyLegRaise * ramp
	s.LeftLowerLeg.Rotation.X = flyKneeBend * ramp
	s.RightLowerLeg.Rotation.X = flyKneeBend * ramp

	s.LeftUpperArm.Rotation.X = flyArmSweep * ramp
	s.RightUpperArm.Rotation.X = flyArmSweep * ramp
	s.LeftUpperArm.Rotation.Z = flyArmSpread * ramp
	s.RightUpperArm.Rotation.Z = -flyArmSpread * ramp
}
