package rig

import (
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Model geometry constants, in texels. The model stands on y=0 facing +Z.
const (
	bodyHalfWidth = 4
	limbHeight    = 12
	limbDepth     = 4

	shoulderY = 22 // shoulder pivot height; arm top sits 2 above
	hipY      = 12

	upperLen = 6 // shoulder/hip to elbow/knee
	lowerLen = 4 // elbow/knee to wrist/ankle
	tipLen   = 2 // hand/foot

	overlayInflate     = 0.25
	headOverlayInflate = 0.5
)

// SkinRig is the skin-textured part of the player model: head, body and
// four three-segment limbs. Every bendable limb has a root pivot
// (shoulder/hip), a mid pivot (elbow/knee) parented under it, and a tip
// pivot (wrist/ankle) parented under that, so rotating a child pivot
// never displaces the limb's attachment point.
type SkinRig struct {
	Root *Node

	Head *Node
	Body *Node

	RightUpperArm *Node // shoulder pivot
	RightLowerArm *Node // elbow pivot
	RightHand     *Node // wrist pivot
	LeftUpperArm  *Node
	LeftLowerArm  *Node
	LeftHand      *Node

	RightUpperLeg *Node // hip pivot
	RightLowerLeg *Node // knee pivot
	RightFoot     *Node // ankle pivot
	LeftUpperLeg  *Node
	LeftLowerLeg  *Node
	LeftFoot      *Node

	variant skin.Variant
}

// newBoxPair builds the inner/outer layer boxes of one segment.
func newBoxPair(size, offset math.Vec3, inner, outer skin.BoxUV, inflate float32) []*Box {
	return []*Box{
		{Layer: LayerInner, Size: size, Offset: offset, UV: inner, Visible: true},
		{Layer: LayerOuter, Size: size, Offset: offset, UV: outer, Inflate: inflate, Visible: true},
	}
}

// limbSlices describes how the 12-texel limb column splits into the
// upper, lower and tip segments.
var limbSlices = [3]struct{ yOff, yLen int }{
	{0, upperLen},
	{upperLen, lowerLen},
	{upperLen + lowerLen, tipLen},
}

// newLimb builds a three-segment chain under root: a root pivot at rest,
// a mid pivot and a tip pivot, each with sliced UVs from the limb's
// inner and outer unwrap origins.
func newLimb(root *Node, names [3]string, rest math.Vec3, width int,
	innerU, innerV, outerU, outerV int) [3]*Node {

	fw := float32(width)
	lens := [3]float32{upperLen, lowerLen, tipLen}

	// Arms hang from a shoulder pivot 2 texels below the limb top; legs
	// start exactly at the hip pivot.
	isArm := rest.Y == shoulderY
	var topPad float32
	if isArm {
		topPad = 2
	}

	var nodes [3]*Node
	parent := root
	offsets := [3]math.Vec3{rest, {Y: -(upperLen - topPad)}, {Y: -lowerLen}}

	for i := 0; i < 3; i++ {
		n := NewNode(names[i], offsets[i])
		centerY := -lens[i] / 2 // covers 0 .. -len
		if i == 0 {
			centerY += topPad // covers topPad .. topPad-len
		}
		size := math.Vec3{X: fw, Y: lens[i], Z: limbDepth}
		offset := math.Vec3{Y: centerY}
		inner := skin.BoxUVSliceY(innerU, innerV, width, limbHeight, limbDepth, limbSlices[i].yOff, limbSlices[i].yLen)
		outer := skin.BoxUVSliceY(outerU, outerV, width, limbHeight, limbDepth, limbSlices[i].yOff, limbSlices[i].yLen)
		n.Boxes = newBoxPair(size, offset, inner, outer, overlayInflate)
		parent.AddChild(n)
		nodes[i] = n
		parent = n
	}
	return nodes
}

// NewSkinRig builds the rig at rest pose for the given model variant.
func NewSkinRig(variant skin.Variant) *SkinRig {
	r := &SkinRig{
		Root:    NewNode("skin", math.Vec3{}),
		variant: variant,
	}

	r.Head = NewNode("head", math.Vec3{Y: 24})
	r.Head.Boxes = newBoxPair(
		math.Vec3{X: 8, Y: 8, Z: 8}, math.Vec3{Y: 4},
		skin.BoxUVAt(0, 0, 8, 8, 8),
		skin.BoxUVAt(32, 0, 8, 8, 8),
		headOverlayInflate,
	)
	r.Root.AddChild(r.Head)

	r.Body = NewNode("body", math.Vec3{Y: 18})
	r.Body.Boxes = newBoxPair(
		math.Vec3{X: 8, Y: 12, Z: 4}, math.Vec3{},
		skin.BoxUVAt(16, 16, 8, 12, 4),
		skin.BoxUVAt(16, 32, 8, 12, 4),
		overlayInflate,
	)
	r.Root.AddChild(r.Body)

	w := variant.ArmWidth()
	armOff := float32(bodyHalfWidth) + float32(w)/2

	right := newLimb(r.Root,
		[3]string{"rightUpperArm", "rightLowerArm", "rightHand"},
		math.Vec3{X: -armOff, Y: shoulderY}, w, 40, 16, 40, 32)
	r.RightUpperArm, r.RightLowerArm, r.RightHand = right[0], right[1], right[2]

	left := newLimb(r.Root,
		[3]string{"leftUpperArm", "leftLowerArm", "leftHand"},
		math.Vec3{X: armOff, Y: shoulderY}, w, 32, 48, 48, 48)
	r.LeftUpperArm, r.LeftLowerArm, r.LeftHand = left[0], left[1], left[2]

	rleg := newLimb(r.Root,
		[3]string{"rightUpperLeg", "rightLowerLeg", "rightFoot"},
		math.Vec3{X: -2, Y: hipY}, 4, 0, 16, 0, 32)
	r.RightUpperLeg, r.RightLowerLeg, r.RightFoot = rleg[0], rleg[1], rleg[2]

	lleg := newLimb(r.Root,
		[3]string{"leftUpperLeg", "leftLowerLeg", "leftFoot"},
		math.Vec3{X: 2, Y: hipY}, 4, 16, 48, 0, 48)
	r.LeftUpperLeg, r.LeftLowerLeg, r.LeftFoot = lleg[0], lleg[1], lleg[2]

	return r
}

// Variant returns the active model variant.
func (r *SkinRig) Variant() skin.Variant {
	return r.variant
}

// SetVariant recomputes arm widths, shoulder offsets and arm UV rects
// for the given variant. Only arm segments are touched.
func (r *SkinRig) SetVariant(variant skin.Variant) {
	if variant == r.variant {
		return
	}
	r.variant = variant

	w := variant.ArmWidth()
	fw := float32(w)
	armOff := float32(bodyHalfWidth) + fw/2
	r.RightUpperArm.SetRestPosition(math.Vec3{X: -armOff, Y: shoulderY})
	r.LeftUpperArm.SetRestPosition(math.Vec3{X: armOff, Y: shoulderY})

	arms := [2]struct {
		segs           [3]*Node
		innerU, innerV int
		outerU, outerV int
	}{
		{[3]*Node{r.RightUpperArm, r.RightLowerArm, r.RightHand}, 40, 16, 40, 32},
		{[3]*Node{r.LeftUpperArm, r.LeftLowerArm, r.LeftHand}, 32, 48, 48, 48},
	}
	for _, arm := range arms {
		for i, seg := range arm.segs {
			sl := limbSlices[i]
			for _, box := range seg.Boxes {
				box.Size.X = fw
				switch box.Layer {
				case LayerInner:
					box.UV = skin.BoxUVSliceY(arm.innerU, arm.innerV, w, limbHeight, limbDepth, sl.yOff, sl.yLen)
				case LayerOuter:
					box.UV = skin.BoxUVSliceY(arm.outerU, arm.outerV, w, limbHeight, limbDepth, sl.yOff, sl.yLen)
				}
			}
		}
	}
}
