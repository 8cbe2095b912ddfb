// Package keyframe implements a data-driven pose animation engine.
// Animations are flat lists of timed bone rotations, loadable from
// JSON and exportable back to JSON or to Go source.
package keyframe

import (
	"encoding/json"
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/Faultbox/skinview/pkg/anim"
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
)

// ErrMalformedData reports keyframe data that does not satisfy the
// interchange shape.
var ErrMalformedData = errors.New("keyframe: malformed data")

// Keyframe is one timed pose snapshot in the interchange format. Bones
// maps bone paths to Euler XYZ rotations in radians.
type Keyframe struct {
	Time  float32               `json:"time"`
	Bones map[string][3]float32 `json:"bones"`
}

// Data is the interchange document: a flat keyframe list.
type Data struct {
	Keyframes []Keyframe `json:"keyframes"`
}

// Key is one timed rotation on a single bone track.
type Key struct {
	Time     float32
	Rotation math.Vec3
}

// Tracks holds per-bone key lists, each sorted ascending by time.
type Tracks map[string][]Key

// Wrap maps t into [0, length) for looping playback. A non-positive
// length always yields 0.
func Wrap(t, length float32) float32 {
	if length <= 0 {
		return 0
	}
	m := math32.Mod(t, length)
	if m < 0 {
		m += length
	}
	return m
}

// Sample returns the rotation of one key list at time t. Keys must be
// sorted ascending. Before the first key the first rotation holds,
// after the last the last holds, and between neighbors the components
// interpolate linearly.
func Sample(keys []Key, t float32) math.Vec3 {
	if len(keys) == 0 {
		return math.Vec3{}
	}
	if t <= keys[0].Time {
		return keys[0].Rotation
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Rotation
	}
	for i := 1; i < len(keys); i++ {
		if t < keys[i].Time {
			a, b := keys[i-1], keys[i]
			f := (t - a.Time) / (b.Time - a.Time)
			return a.Rotation.Lerp(b.Rotation, f)
		}
	}
	return last.Rotation
}

// Apply poses the player from every track at time t. Paths that do not
// resolve on this player are skipped.
func (tr Tracks) Apply(player *rig.Player, t float32) {
	for path, keys := range tr {
		node, ok := player.Node(path)
		if !ok {
			continue
		}
		node.Rotation = Sample(keys, t)
	}
}

// Length returns the largest key time across all tracks.
func (tr Tracks) Length() float32 {
	var max float32
	for _, keys := range tr {
		if n := len(keys); n > 0 && keys[n-1].Time > max {
			max = keys[n-1].Time
		}
	}
	return max
}

// Animation plays a set of keyframe tracks on a player, looping over
// the track length. It satisfies anim.Animation.
type Animation struct {
	anim.Base
	tracks Tracks
	length float32
}

// New creates an animation over already-built tracks. Each track must
// be sorted ascending by time.
func New(tracks Tracks) *Animation {
	return &Animation{
		Base:   anim.NewBase(),
		tracks: tracks,
		length: tracks.Length(),
	}
}

// FromData builds an animation from interchange data. Keyframes are
// ordered by time with a stable sort; when two keyframes share a time,
// the later one in the list wins for the bones it names.
func FromData(d Data) (*Animation, error) {
	for i, kf := range d.Keyframes {
		if math32.IsNaN(kf.Time) || math32.IsInf(kf.Time, 0) {
			return nil, errors.Wrapf(ErrMalformedData, "keyframe %d: non-finite time", i)
		}
		if kf.Time < 0 {
			return nil, errors.Wrapf(ErrMalformedData, "keyframe %d: negative time %v", i, kf.Time)
		}
	}

	frames := make([]Keyframe, len(d.Keyframes))
	copy(frames, d.Keyframes)
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Time < frames[j].Time
	})

	tracks := make(Tracks)
	for _, kf := range frames {
		for path, r := range kf.Bones {
			rot := math.Vec3{X: r[0], Y: r[1], Z: r[2]}
			keys := tracks[path]
			// Same-time duplicate: the later keyframe replaces
			if n := len(keys); n > 0 && keys[n-1].Time == kf.Time {
				keys[n-1].Rotation = rot
				continue
			}
			tracks[path] = append(keys, Key{Time: kf.Time, Rotation: rot})
		}
	}
	return New(tracks), nil
}

// jsonKeyframe mirrors Keyframe with a pointer time so a missing field
// is distinguishable from zero.
type jsonKeyframe struct {
	Time  *float32             `json:"time"`
	Bones map[string][]float32 `json:"bones"`
}

// FromJSON parses and validates an interchange document. Every
// keyframe needs a time field, and every bone rotation must be a
// 3-element array.
func FromJSON(b []byte) (*Animation, error) {
	var doc struct {
		Keyframes []jsonKeyframe `json:"keyframes"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrap(ErrMalformedData, err.Error())
	}

	d := Data{Keyframes: make([]Keyframe, 0, len(doc.Keyframes))}
	for i, kf := range doc.Keyframes {
		if kf.Time == nil {
			return nil, errors.Wrapf(ErrMalformedData, "keyframe %d: missing time", i)
		}
		bones := make(map[string][3]float32, len(kf.Bones))
		for path, r := range kf.Bones {
			if len(r) != 3 {
				return nil, errors.Wrapf(ErrMalformedData,
					"keyframe %d: bone %q has %d components, want 3", i, path, len(r))
			}
			bones[path] = [3]float32{r[0], r[1], r[2]}
		}
		d.Keyframes = append(d.Keyframes, Keyframe{Time: *kf.Time, Bones: bones})
	}
	return FromData(d)
}

// Tracks returns the animation's bone tracks.
func (a *Animation) Tracks() Tracks {
	return a.tracks
}

// Length returns the duration of one loop in progress seconds.
func (a *Animation) Length() float32 {
	return a.length
}

// Data rebuilds the interchange form, one keyframe per distinct key
// time, ordered ascending.
func (a *Animation) Data() Data {
	byTime := make(map[float32]map[string][3]float32)
	for path, keys := range a.tracks {
		for _, k := range keys {
			bones := byTime[k.Time]
			if bones == nil {
				bones = make(map[string][3]float32)
				byTime[k.Time] = bones
			}
			bones[path] = [3]float32{k.Rotation.X, k.Rotation.Y, k.Rotation.Z}
		}
	}

	times := make([]float32, 0, len(byTime))
	for t := range byTime {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	d := Data{Keyframes: make([]Keyframe, 0, len(times))}
	for _, t := range times {
		d.Keyframes = append(d.Keyframes, Keyframe{Time: t, Bones: byTime[t]})
	}
	return d
}

// ToJSON serializes the animation as an indented interchange document.
func (a *Animation) ToJSON() ([]byte, error) {
	b, err := json.MarshalIndent(a.Data(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "keyframe: marshal")
	}
	return b, nil
}

// Update implements anim.Animation, sampling all tracks at the wrapped
// progress time.
func (a *Animation) Update(player *rig.Player, dt float32) {
	if !a.Step(dt) {
		return
	}
	a.tracks.Apply(player, Wrap(a.Progress(), a.length))
}
