package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
)

// Run tuning.
const (
	runFrequency = 10
	runArmSwing  = 0.75
	runLegSwing  = 0.9
	runBob       = 0.6 // texels
	runLean      = 0.3
)

// Run is the running gait: the walk coupling at higher frequency and
// amplitude, plus a torso bob and forward lean. Amplitude scales
// linearly with speed, clamped so joints stay in plausible range.
// Progress already advances by dt*speed, so stride frequency is linear
// in speed as well.
type Run struct {
	Base
}

// NewRun creates a running animation.
func NewRun() *Run {
	return &Run{Base: NewBase()}
}

// Update implements Animation.
func (a *Run) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	scale := math.Clamp(0.5+0.5*a.Speed(), 0.5, 1.5)
	phase := wrapPhase(a.Progress() * runFrequency)
	applyGait(player, phase, runArmSwing*scale, runLegSwing*scale)

	s := player.Skin
	bob := math32.Abs(math32.Cos(phase)) * runBob * scale
	s.Body.Position.Y = s.Body.RestPosition().Y + bob
	s.Head.Position.Y = s.Head.RestPosition().Y + bob
	s.Body.Rotation.X = runLean * scale
	s.Head.Rotation.X = -runLean * scale * 0.5 // keep the gaze level
}
