package rig

import (
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/skin"
)

// BackEquipment selects which back attachment is visible.
type BackEquipment string

// Back equipment states. Cape and elytra are mutually exclusive.
const (
	BackNone   BackEquipment = "none"
	BackCape   BackEquipment = "cape"
	BackElytra BackEquipment = "elytra"
)

// Player is the whole avatar: the skin rig plus the cape and elytra
// back attachments, with an explicit registry of animatable bone paths.
type Player struct {
	Root *Node
	Skin *SkinRig

	Cape      *Node
	Elytra    *Node
	LeftWing  *Node
	RightWing *Node

	back  BackEquipment
	paths map[string]*Node
}

// NewPlayer builds a player at rest pose with the given model variant.
// Back equipment starts at none.
func NewPlayer(variant skin.Variant) *Player {
	p := &Player{
		Root: NewNode("player", math.Vec3{}),
		Skin: NewSkinRig(variant),
		back: BackNone,
	}
	p.Root.AddChild(p.Skin.Root)

	p.Cape = NewNode("cape", math.Vec3{Y: 24, Z: -2})
	p.Cape.Boxes = []*Box{{
		Layer:   LayerInner,
		Size:    math.Vec3{X: 10, Y: 16, Z: 1},
		Offset:  math.Vec3{Y: -8, Z: -0.5},
		UV:      skin.BoxUVAt(0, 0, 10, 16, 1),
		Visible: true,
	}}
	p.Cape.Visible = false
	p.Root.AddChild(p.Cape)

	p.Elytra = NewNode("elytra", math.Vec3{Y: 24, Z: -2})
	p.Elytra.Visible = false
	p.LeftWing = NewNode("leftWing", math.Vec3{X: 1})
	p.LeftWing.Boxes = []*Box{{
		Layer:   LayerInner,
		Size:    math.Vec3{X: 10, Y: 20, Z: 2},
		Offset:  math.Vec3{X: 4, Y: -10, Z: -1},
		UV:      skin.BoxUVAt(22, 0, 10, 20, 2),
		Visible: true,
	}}
	p.RightWing = NewNode("rightWing", math.Vec3{X: -1})
	p.RightWing.Boxes = []*Box{{
		Layer:   LayerInner,
		Size:    math.Vec3{X: 10, Y: 20, Z: 2},
		Offset:  math.Vec3{X: -4, Y: -10, Z: -1},
		UV:      skin.BoxUVAt(22, 0, 10, 20, 2),
		Visible: true,
	}}
	p.Elytra.AddChild(p.LeftWing)
	p.Elytra.AddChild(p.RightWing)
	p.Root.AddChild(p.Elytra)

	p.paths = map[string]*Node{
		"skin":               p.Skin.Root,
		"skin.head":          p.Skin.Head,
		"skin.body":          p.Skin.Body,
		"skin.rightUpperArm": p.Skin.RightUpperArm,
		"skin.rightLowerArm": p.Skin.RightLowerArm,
		"skin.rightHand":     p.Skin.RightHand,
		"skin.leftUpperArm":  p.Skin.LeftUpperArm,
		"skin.leftLowerArm":  p.Skin.LeftLowerArm,
		"skin.leftHand":      p.Skin.LeftHand,
		"skin.rightUpperLeg": p.Skin.RightUpperLeg,
		"skin.rightLowerLeg": p.Skin.RightLowerLeg,
		"skin.rightFoot":     p.Skin.RightFoot,
		"skin.leftUpperLeg":  p.Skin.LeftUpperLeg,
		"skin.leftLowerLeg":  p.Skin.LeftLowerLeg,
		"skin.leftFoot":      p.Skin.LeftFoot,
		"cape":               p.Cape,
		"elytra":             p.Elytra,
		"elytra.leftWing":    p.LeftWing,
		"elytra.rightWing":   p.RightWing,
	}
	return p
}

// Node resolves a dotted bone path to its rig node. The registry is
// fixed at construction; unknown paths return false.
func (p *Player) Node(path string) (*Node, bool) {
	n, ok := p.paths[path]
	return n, ok
}

// Paths returns every registered bone path.
func (p *Player) Paths() []string {
	out := make([]string, 0, len(p.paths))
	for path := range p.paths {
		out = append(out, path)
	}
	return out
}

// ResetPose restores every node to identity rotation and its authored
// rest offset. Idempotent; visibility and model variant are untouched.
func (p *Player) ResetPose() {
	p.Root.Walk(func(n *Node) {
		n.Reset()
	})
}

// SetModelVariant recomputes the arm geometry for the given variant.
func (p *Player) SetModelVariant(variant skin.Variant) {
	p.Skin.SetVariant(variant)
}

// ModelVariant returns the active model variant.
func (p *Player) ModelVariant() skin.Variant {
	return p.Skin.Variant()
}

// SetLayerVisibility toggles all boxes of the given layer. Visual only;
// the pose is unaffected.
func (p *Player) SetLayerVisibility(layer Layer, visible bool) {
	p.Root.Walk(func(n *Node) {
		for _, b := range n.Boxes {
			if b.Layer == layer {
				b.Visible = visible
			}
		}
	})
}

// SetBackEquipment switches the back attachment. Cape and elytra
// visibility are mutually exclusive.
func (p *Player) SetBackEquipment(be BackEquipment) {
	p.back = be
	p.Cape.Visible = be == BackCape
	p.Elytra.Visible = be == BackElytra
}

// BackEquipment returns the current back attachment state.
func (p *Player) BackEquipment() BackEquipment {
	return p.back
}
