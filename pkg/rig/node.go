// Package rig defines the player model's joint hierarchy.
//
// The rig is a fixed tree of transform nodes. Animations write Euler
// rotations (and for a few pivots, positions) directly into the nodes;
// the rig performs no clamping or validation of those writes. The tree
// shape never changes at runtime.
package rig

import (
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Layer distinguishes the two visual box layers carried by a segment.
type Layer int

// Box layers.
const (
	LayerInner Layer = iota // base skin layer
	LayerOuter              // overlay (jacket/hat) layer
)

// Box is a visual-only textured box attached to a node. It plays no part
// in the animation contract.
type Box struct {
	Layer   Layer
	Size    math.Vec3 // extents in texels
	Offset  math.Vec3 // center offset from the node origin
	Inflate float32   // overlay inflation, texels per side
	UV      skin.BoxUV
	Visible bool
}

// Node is one transform in the rig hierarchy. The parent pointer is used
// only for world-transform queries; children are owned by their parent.
type Node struct {
	Name     string
	Position math.Vec3 // local translation
	Rotation math.Vec3 // local Euler XYZ rotation, radians
	Scale    math.Vec3 // local per-axis scale
	Visible  bool

	Boxes []*Box

	rest     math.Vec3 // authored rest offset restored by Reset
	parent   *Node
	children []*Node
}

// NewNode creates a detached node at the given rest offset.
func NewNode(name string, rest math.Vec3) *Node {
	return &Node{
		Name:     name,
		Position: rest,
		Scale:    math.One(),
		Visible:  true,
		rest:     rest,
	}
}

// AddChild attaches a child node and returns it.
func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The returned slice is the rig's
// own storage and must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// RestPosition returns the authored rest offset.
func (n *Node) RestPosition() math.Vec3 {
	return n.rest
}

// SetRestPosition re-authors the rest offset and moves the node to it.
// Used by model-variant changes; animations never call this.
func (n *Node) SetRestPosition(p math.Vec3) {
	n.rest = p
	n.Position = p
}

// Reset restores the node to its rest transform. Idempotent.
func (n *Node) Reset() {
	n.Position = n.rest
	n.Rotation = math.Vec3{}
	n.Scale = math.One()
}

// LocalMatrix returns the node's local transform (translate, rotate,
// scale order).
func (n *Node) LocalMatrix() math.Mat4 {
	m := math.TranslateVec3(n.Position).Mul(math.EulerXYZ(n.Rotation))
	if n.Scale != math.One() {
		m = m.Mul(math.ScaleVec3(n.Scale))
	}
	return m
}

// WorldMatrix returns the node's transform composed with all ancestors.
func (n *Node) WorldMatrix() math.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul(n.LocalMatrix())
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().TransformPoint(math.Vec3{})
}

// Walk visits the node and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
