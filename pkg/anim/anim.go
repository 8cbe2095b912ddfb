// Package anim implements the animation contract and the built-in
// animation library for the player rig.
//
// An animation is a pose function of its progress value: every Update
// advances progress by dt*speed and rewrites joint rotations on the
// player. Animations assume the full rig shape and panic on a rig
// missing an expected pivot.
package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Animation drives a player's pose from elapsed time.
type Animation interface {
	// Update advances the animation by dt seconds and writes the pose.
	// Safe with dt == 0 (no-op) and with very large dt.
	Update(player *rig.Player, dt float32)

	Speed() float32
	SetSpeed(float32)
	Paused() bool
	SetPaused(bool)
	Progress() float32
	SetProgress(float32)
}

// Base carries the progress/speed/pause bookkeeping shared by every
// animation. Embed it and call Step at the top of Update.
type Base struct {
	speed    float32
	paused   bool
	progress float32
}

// NewBase returns a Base with speed 1.
func NewBase() Base {
	return Base{speed: 1}
}

// Speed returns the time multiplier.
func (b *Base) Speed() float32 { return b.speed }

// SetSpeed sets the time multiplier.
func (b *Base) SetSpeed(s float32) { b.speed = s }

// Paused reports whether the animation is paused.
func (b *Base) Paused() bool { return b.paused }

// SetPaused pauses or resumes the animation. While paused, Update calls
// leave progress and pose untouched.
func (b *Base) SetPaused(p bool) { b.paused = p }

// Progress returns the phase accumulator.
func (b *Base) Progress() float32 { return b.progress }

// SetProgress sets the phase accumulator.
func (b *Base) SetProgress(p float32) { b.progress = p }

// Step advances progress by dt*speed. It returns false while paused, in
// which case the caller must not touch the pose.
func (b *Base) Step(dt float32) bool {
	if b.paused {
		return false
	}
	b.progress += dt * b.speed
	return true
}

// wrapPhase reduces a phase angle into [0, 2pi). float32 trig loses all
// precision on huge arguments, so periodic animations must reduce
// before calling Sin/Cos.
func wrapPhase(p float32) float32 {
	m := math32.Mod(p, 2*math32.Pi)
	if m < 0 {
		m += 2 * math32.Pi
	}
	return m
}

// Controller owns which animation drives a player. Assigning an
// animation resets the rig to rest pose and zeroes the animation's
// progress, so no pose or phase leaks between animations.
type Controller struct {
	player  *rig.Player
	current Animation
}

// NewController creates a controller for the player.
func NewController(player *rig.Player) *Controller {
	return &Controller{player: player}
}

// Player returns the controlled player.
func (c *Controller) Player() *rig.Player {
	return c.player
}

// Animation returns the active animation, nil when detached.
func (c *Controller) Animation() Animation {
	return c.current
}

// Set replaces the active animation. The rig is reset to rest pose and
// the new animation's progress is zeroed; passing nil just detaches.
func (c *Controller) Set(a Animation) {
	c.player.ResetPose()
	if a != nil {
		a.SetProgress(0)
	}
	c.current = a
}

// Update advances the active animation, if any.
func (c *Controller) Update(dt float32) {
	if c.current != nil {
		c.current.Update(c.player, dt)
	}
}
