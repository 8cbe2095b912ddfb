package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Side selects a limb side.
type Side int

// Limb sides.
const (
	SideLeft Side = iota
	SideRight
)

// Wave tuning.
const (
	waveFrequency = 6
	waveRaise     = 1.0
	waveSwing     = 0.35
	waveElbow     = 0.4
)

// Wave raises one arm and swings it about the shoulder. With Once set
// the swing plays a single cycle and holds; otherwise it loops.
type Wave struct {
	Base
	Side Side
	Once bool
}

// NewWave creates a waving animation for the given arm.
func NewWave(side Side) *Wave {
	return &Wave{Base: NewBase(), Side: side}
}

// Update implements Animation.
func (a *Wave) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	phase := a.Progress() * waveFrequency
	if a.Once {
		if phase > 2*math32.Pi {
			phase = 2 * math32.Pi
		}
	} else {
		phase = wrapPhase(phase)
	}
	swing := math32.Sin(phase)

	s := player.Skin
	upper, lower := s.LeftUpperArm, s.LeftLowerArm
	dir := float32(1)
	if a.Side == SideRight {
		upper, lower = s.RightUpperArm, s.RightLowerArm
		dir = -1
	}
	upper.Rotation.Z = dir * (waveRaise + swing*waveSwing)
	lower.Rotation.Z = dir * swing * waveElbow
}
