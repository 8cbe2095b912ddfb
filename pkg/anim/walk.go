package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Gait tuning, radians unless noted.
const (
	walkFrequency  = 8 // phase radians per progress second
	walkArmSwing   = 0.5
	walkLegSwing   = 0.5
	walkElbowSwing = 0.15
)

// Walk is the walking gait: opposite-phase sinusoidal swing between the
// left/right limb pairs, with an arm always opposing its own side's leg.
type Walk struct {
	Base
}

// NewWalk creates a walking animation.
func NewWalk() *Walk {
	return &Walk{Base: NewBase()}
}

// Update implements Animation.
func (a *Walk) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	applyGait(player, a.Progress()*walkFrequency, walkArmSwing, walkLegSwing)
}

// applyGait writes the limb swing shared by walking and running. Every
// left-side rotation is the exact negation of its right-side twin.
func applyGait(player *rig.Player, phase, armAmp, legAmp float32) {
	swing := math32.Sin(wrapPhase(phase))
	s := player.Skin

	s.LeftUpperArm.Rotation.X = swing * armAmp
	s.RightUpperArm.Rotation.X = -swing * armAmp
	s.LeftUpperLeg.Rotation.X = -swing * legAmp
	s.RightUpperLeg.Rotation.X = swing * legAmp

	// Elbow follow-through, same opposite-phase coupling
	bend := swing * walkElbowSwing
	s.LeftLowerArm.Rotation.X = bend
	s.RightLowerArm.Rotation.X = -bend
}
