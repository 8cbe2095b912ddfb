package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/rig"
)

// Hit tuning.
const (
	hitDuration = 0.35 // progress seconds at speed 1
	hitShoulder = 1.2
	hitElbow    = 0.6
)

// Hit is a short, non-looping right-arm swing impulse. It layers onto
// whatever pose is present by summing rotation deltas rather than
// overwriting, and reports completion via Done so the caller can remove
// it. The impulse starts and ends at zero, so a finished hit leaves the
// underlying pose untouched.
type Hit struct {
	Base
	done            bool
	appliedShoulder float32
	appliedElbow    float32
}

// NewHit creates a hit-reaction animation.
func NewHit() *Hit {
	return &Hit{Base: NewBase()}
}

// Done reports whether the impulse has completed.
func (a *Hit) Done() bool {
	return a.done
}

// Restart rewinds the impulse so it plays again.
func (a *Hit) Restart() {
	a.SetProgress(0)
	a.done = false
	a.appliedShoulder = 0
	a.appliedElbow = 0
}

// rebase forgets the previously applied offsets. A layering animation
// that overwrites the arm pose each frame calls this before Update so
// the full impulse value lands on top of the fresh base.
func (a *Hit) rebase() {
	a.appliedShoulder = 0
	a.appliedElbow = 0
}

// Update implements Animation.
func (a *Hit) Update(player *rig.Player, dt float32) {
	if a.done || !a.Step(dt) {
		return
	}
	t := a.Progress() / hitDuration
	if t >= 1 {
		t = 1
		a.done = true
	}
	swing := math32.Sin(t * math32.Pi) // 0 -> 1 -> 0 impulse

	shoulder := -hitShoulder * swing
	elbow := -hitElbow * swing

	s := player.Skin
	s.RightUpperArm.Rotation.X += shoulder - a.appliedShoulder
	s.RightLowerArm.Rotation.X += elbow - a.appliedElbow
	a.appliedShoulder = shoulder
	a.appliedElbow = elbow
}
