package rig

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/skin"
)

func vecsClose(a, b math.Vec3) bool {
	return math32.Abs(a.X-b.X) < 1e-5 &&
		math32.Abs(a.Y-b.Y) < 1e-5 &&
		math32.Abs(a.Z-b.Z) < 1e-5
}

func TestResetPoseIdempotent(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	// Disturb a scattering of pivots
	p.Skin.Head.Rotation = math.Vec3{X: 0.4, Y: -0.2}
	p.Skin.LeftUpperArm.Rotation = math.Vec3{X: 1.1}
	p.Skin.RightLowerLeg.Rotation = math.Vec3{X: 0.7}
	p.Skin.Body.Position.Y -= 3
	p.Cape.Rotation = math.Vec3{X: 0.5}

	p.ResetPose()

	type snap struct {
		pos, rot math.Vec3
	}
	first := map[string]snap{}
	p.Root.Walk(func(n *Node) {
		first[n.Name] = snap{n.Position, n.Rotation}
	})

	p.ResetPose()
	p.Root.Walk(func(n *Node) {
		s := first[n.Name]
		if n.Position != s.pos || n.Rotation != s.rot {
			t.Errorf("node %s changed between first and second reset", n.Name)
		}
	})

	// Reset pose must match a fresh rig
	fresh := NewPlayer(skin.VariantDefault)
	fresh.Root.Walk(func(n *Node) {
		s, ok := first[n.Name]
		if !ok {
			t.Fatalf("node %s missing after reset", n.Name)
		}
		if !vecsClose(n.Position, s.pos) || !vecsClose(n.Rotation, s.rot) {
			t.Errorf("node %s differs from freshly built rig", n.Name)
		}
	})
}

func TestChildPivotDoesNotMoveParent(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	shoulderBefore := p.Skin.RightUpperArm.WorldPosition()
	elbowBefore := p.Skin.RightLowerArm.WorldPosition()

	// Bending the elbow must leave the shoulder and the elbow's own
	// origin where they are.
	p.Skin.RightLowerArm.Rotation.X = -1.2
	if !vecsClose(p.Skin.RightUpperArm.WorldPosition(), shoulderBefore) {
		t.Error("elbow rotation displaced the shoulder pivot")
	}
	if !vecsClose(p.Skin.RightLowerArm.WorldPosition(), elbowBefore) {
		t.Error("elbow rotation displaced the elbow's own origin")
	}

	// The wrist, a descendant, must have moved
	p.ResetPose()
	wristBefore := p.Skin.RightHand.WorldPosition()
	p.Skin.RightLowerArm.Rotation.X = -1.2
	if vecsClose(p.Skin.RightHand.WorldPosition(), wristBefore) {
		t.Error("elbow rotation should carry the wrist pivot")
	}
}

func TestParentPivotCarriesDescendants(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	elbowRest := p.Skin.LeftLowerArm.WorldPosition()
	wristRest := p.Skin.LeftHand.WorldPosition()

	p.Skin.LeftUpperArm.Rotation.X = 0.9

	elbow := p.Skin.LeftLowerArm.WorldPosition()
	wrist := p.Skin.LeftHand.WorldPosition()
	if vecsClose(elbow, elbowRest) || vecsClose(wrist, wristRest) {
		t.Error("shoulder rotation should move elbow and wrist")
	}

	// The rigid elbow-to-wrist distance is preserved
	restDist := elbowRest.Distance(wristRest)
	dist := elbow.Distance(wrist)
	if math32.Abs(restDist-dist) > 1e-4 {
		t.Errorf("segment length changed under rotation: %v -> %v", restDist, dist)
	}
}

func TestModelVariantRoundTrip(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	type armSnap struct {
		rest  math.Vec3
		width float32
		uv    skin.BoxUV
	}
	snapshot := func() armSnap {
		return armSnap{
			rest:  p.Skin.LeftUpperArm.RestPosition(),
			width: p.Skin.LeftUpperArm.Boxes[0].Size.X,
			uv:    p.Skin.LeftUpperArm.Boxes[0].UV,
		}
	}
	before := snapshot()
	legRest := p.Skin.LeftUpperLeg.RestPosition()
	legUV := p.Skin.LeftUpperLeg.Boxes[0].UV
	headRest := p.Skin.Head.RestPosition()
	bodyRest := p.Skin.Body.RestPosition()

	p.SetModelVariant(skin.VariantSlim)

	if p.Skin.LeftUpperArm.Boxes[0].Size.X != 3 {
		t.Errorf("slim arm width should be 3, got %v", p.Skin.LeftUpperArm.Boxes[0].Size.X)
	}
	if p.Skin.LeftUpperArm.RestPosition().X != 5.5 {
		t.Errorf("slim shoulder offset should be 5.5, got %v", p.Skin.LeftUpperArm.RestPosition().X)
	}
	if p.Skin.LeftUpperArm.Boxes[0].UV == before.uv {
		t.Error("slim variant should recompute arm UV rects")
	}

	// Non-arm segments untouched
	if p.Skin.LeftUpperLeg.RestPosition() != legRest || p.Skin.LeftUpperLeg.Boxes[0].UV != legUV {
		t.Error("variant change must not touch leg segments")
	}
	if p.Skin.Head.RestPosition() != headRest || p.Skin.Body.RestPosition() != bodyRest {
		t.Error("variant change must not touch head or body")
	}

	p.SetModelVariant(skin.VariantDefault)
	after := snapshot()
	if after != before {
		t.Errorf("toggling back to default should restore arm geometry: %+v != %+v", after, before)
	}
}

func TestSetLayerVisibility(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)
	pose := p.Skin.Head.Rotation

	p.SetLayerVisibility(LayerOuter, false)
	p.Root.Walk(func(n *Node) {
		for _, b := range n.Boxes {
			if b.Layer == LayerOuter && b.Visible {
				t.Errorf("outer box on %s still visible", n.Name)
			}
			if b.Layer == LayerInner && !b.Visible {
				t.Errorf("inner box on %s was hidden", n.Name)
			}
		}
	})
	if p.Skin.Head.Rotation != pose {
		t.Error("layer visibility must not affect the pose")
	}

	p.SetLayerVisibility(LayerOuter, true)
	for _, b := range p.Skin.Body.Boxes {
		if !b.Visible {
			t.Error("outer layer should be visible again")
		}
	}
}

func TestBackEquipmentExclusive(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	if p.Cape.Visible || p.Elytra.Visible {
		t.Error("back equipment should start hidden")
	}

	p.SetBackEquipment(BackCape)
	if !p.Cape.Visible || p.Elytra.Visible {
		t.Error("cape state should show only the cape")
	}

	p.SetBackEquipment(BackElytra)
	if p.Cape.Visible || !p.Elytra.Visible {
		t.Error("elytra state should show only the elytra")
	}

	p.SetBackEquipment(BackNone)
	if p.Cape.Visible || p.Elytra.Visible {
		t.Error("none state should hide both")
	}
	if p.BackEquipment() != BackNone {
		t.Errorf("expected none, got %v", p.BackEquipment())
	}
}

func TestBonePathRegistry(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	for _, path := range []string{
		"skin.head", "skin.body",
		"skin.leftUpperArm", "skin.leftLowerArm", "skin.leftHand",
		"skin.rightUpperLeg", "skin.rightLowerLeg", "skin.rightFoot",
		"cape", "elytra.leftWing", "elytra.rightWing",
	} {
		if _, ok := p.Node(path); !ok {
			t.Errorf("path %q should resolve", path)
		}
	}

	if _, ok := p.Node("skin.tail"); ok {
		t.Error("unknown path should not resolve")
	}
	if n, _ := p.Node("skin.leftUpperArm"); n != p.Skin.LeftUpperArm {
		t.Error("path should resolve to the exact pivot node")
	}
}

func TestArmChainOffsets(t *testing.T) {
	p := NewPlayer(skin.VariantDefault)

	// Shoulder at y=22, elbow 4 below, wrist 4 below that
	if got := p.Skin.RightUpperArm.WorldPosition().Y; math32.Abs(got-22) > 1e-5 {
		t.Errorf("shoulder height: got %v", got)
	}
	if got := p.Skin.RightLowerArm.WorldPosition().Y; math32.Abs(got-18) > 1e-5 {
		t.Errorf("elbow height: got %v", got)
	}
	if got := p.Skin.RightHand.WorldPosition().Y; math32.Abs(got-14) > 1e-5 {
		t.Errorf("wrist height: got %v", got)
	}

	// Hip at y=12, knee at 6, ankle at 2
	if got := p.Skin.LeftUpperLeg.WorldPosition().Y; math32.Abs(got-12) > 1e-5 {
		t.Errorf("hip height: got %v", got)
	}
	if got := p.Skin.LeftLowerLeg.WorldPosition().Y; math32.Abs(got-6) > 1e-5 {
		t.Errorf("knee height: got %v", got)
	}
	if got := p.Skin.LeftFoot.WorldPosition().Y; math32.Abs(got-2) > 1e-5 {
		t.Errorf("ankle height: got %v", got)
	}
}
