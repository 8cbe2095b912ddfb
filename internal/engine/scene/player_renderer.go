// Package scene provides the 3D rendering of staged player models.
package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/Faultbox/skinview/internal/engine/shader"
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
	"github.com/Faultbox/skinview/pkg/skin"
)

// Vertex is the interleaved GPU vertex layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// boxMesh is the uploaded geometry of one rig box. Geometry lives in
// node-local space; the node's world matrix positions it each frame.
type boxMesh struct {
	node       *rig.Node
	box        *rig.Box
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// PlayerRenderer draws a player rig with its skin texture. The mesh is
// static per box; animation comes entirely from the per-node model
// matrices, so pose changes need no rebuild. Rebuild is only needed
// after structural changes such as an arm-variant switch.
type PlayerRenderer struct {
	program uint32

	locMVP      int32
	locModel    int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32
	locTexture  int32

	texture uint32
	meshes  []*boxMesh

	LightDir [3]float32
	Ambient  [3]float32
	Diffuse  [3]float32
}

// NewPlayerRenderer compiles the player shader.
func NewPlayerRenderer() (*PlayerRenderer, error) {
	program, err := shader.CompileProgram(playerVertexShader, playerFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "player shader")
	}

	pr := &PlayerRenderer{
		program:  program,
		LightDir: [3]float32{-0.4, -1, -0.6},
		Ambient:  [3]float32{0.55, 0.55, 0.55},
		Diffuse:  [3]float32{0.6, 0.6, 0.6},
	}
	pr.locMVP = shader.GetUniform(program, "uMVP")
	pr.locModel = shader.GetUniform(program, "uModel")
	pr.locLightDir = shader.GetUniform(program, "uLightDir")
	pr.locAmbient = shader.GetUniform(program, "uAmbient")
	pr.locDiffuse = shader.GetUniform(program, "uDiffuse")
	pr.locTexture = shader.GetUniform(program, "uTexture")
	return pr, nil
}

// SetSkin uploads the skin texture, replacing any previous one.
// Nearest filtering keeps the texel look.
func (pr *PlayerRenderer) SetSkin(s *skin.Skin) {
	if pr.texture != 0 {
		gl.DeleteTextures(1, &pr.texture)
	}
	img := s.Image
	gl.GenTextures(1, &pr.texture)
	gl.BindTexture(gl.TEXTURE_2D, pr.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Rebuild regenerates the box meshes from the rig. Inner-layer boxes
// sort before overlay boxes so the cutout overlay draws on top.
func (pr *PlayerRenderer) Rebuild(player *rig.Player) {
	pr.clearMeshes()

	var inner, outer []*boxMesh
	player.Root.Walk(func(n *rig.Node) {
		for _, box := range n.Boxes {
			m := pr.buildBoxMesh(n, box)
			if box.Layer == rig.LayerOuter {
				outer = append(outer, m)
			} else {
				inner = append(inner, m)
			}
		}
	})
	pr.meshes = append(inner, outer...)
}

func (pr *PlayerRenderer) buildBoxMesh(node *rig.Node, box *rig.Box) *boxMesh {
	vertices, indices := boxGeometry(box)

	m := &boxMesh{node: node, box: box}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	m.indexCount = int32(len(indices))
	gl.BindVertexArray(0)
	return m
}

// boxGeometry builds the 24 vertices and 36 indices of one textured
// box in node-local space. The model's right side faces -X.
func boxGeometry(box *rig.Box) ([]Vertex, []uint32) {
	hx := box.Size.X/2 + box.Inflate
	hy := box.Size.Y/2 + box.Inflate
	hz := box.Size.Z/2 + box.Inflate
	c := box.Offset

	type face struct {
		uv      skin.FaceUV
		normal  [3]float32
		corners [4][3]float32 // tl, tr, br, bl seen from outside
	}
	faces := []face{
		{box.UV.Top, [3]float32{0, 1, 0}, [4][3]float32{
			{-hx, +hy, -hz}, {+hx, +hy, -hz}, {+hx, +hy, +hz}, {-hx, +hy, +hz}}},
		{box.UV.Bottom, [3]float32{0, -1, 0}, [4][3]float32{
			{-hx, -hy, +hz}, {+hx, -hy, +hz}, {+hx, -hy, -hz}, {-hx, -hy, -hz}}},
		{box.UV.Front, [3]float32{0, 0, 1}, [4][3]float32{
			{-hx, +hy, +hz}, {+hx, +hy, +hz}, {+hx, -hy, +hz}, {-hx, -hy, +hz}}},
		{box.UV.Back, [3]float32{0, 0, -1}, [4][3]float32{
			{+hx, +hy, -hz}, {-hx, +hy, -hz}, {-hx, -hy, -hz}, {+hx, -hy, -hz}}},
		{box.UV.Right, [3]float32{-1, 0, 0}, [4][3]float32{
			{-hx, +hy, -hz}, {-hx, +hy, +hz}, {-hx, -hy, +hz}, {-hx, -hy, -hz}}},
		{box.UV.Left, [3]float32{1, 0, 0}, [4][3]float32{
			{+hx, +hy, +hz}, {+hx, +hy, -hz}, {+hx, -hy, -hz}, {+hx, -hy, +hz}}},
	}

	const texSize = 64
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		u0 := float32(f.uv.X) / texSize
		v0 := float32(f.uv.Y) / texSize
		u1 := float32(f.uv.X+f.uv.W) / texSize
		v1 := float32(f.uv.Y+f.uv.H) / texSize
		uvs := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

		base := uint32(len(vertices))
		for i := 0; i < 4; i++ {
			p := f.corners[i]
			vertices = append(vertices, Vertex{
				Position: [3]float32{p[0] + c.X, p[1] + c.Y, p[2] + c.Z},
				Normal:   f.normal,
				TexCoord: uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// nodeVisible reports whether the node and all its ancestors are
// visible.
func nodeVisible(n *rig.Node) bool {
	for ; n != nil; n = n.Parent() {
		if !n.Visible {
			return false
		}
	}
	return true
}

// Render draws every visible box with the current pose.
func (pr *PlayerRenderer) Render(viewProj math.Mat4) {
	if len(pr.meshes) == 0 || pr.texture == 0 {
		return
	}

	gl.UseProgram(pr.program)
	gl.Uniform3f(pr.locLightDir, pr.LightDir[0], pr.LightDir[1], pr.LightDir[2])
	gl.Uniform3f(pr.locAmbient, pr.Ambient[0], pr.Ambient[1], pr.Ambient[2])
	gl.Uniform3f(pr.locDiffuse, pr.Diffuse[0], pr.Diffuse[1], pr.Diffuse[2])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pr.texture)
	gl.Uniform1i(pr.locTexture, 0)

	// Skin texels can be seen from both sides (overlay cutouts)
	gl.Disable(gl.CULL_FACE)

	for _, m := range pr.meshes {
		if !m.box.Visible || !nodeVisible(m.node) {
			continue
		}
		model := m.node.WorldMatrix()
		mvp := viewProj.Mul(model)
		gl.UniformMatrix4fv(pr.locMVP, 1, false, &mvp[0])
		gl.UniformMatrix4fv(pr.locModel, 1, false, &model[0])

		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)
}

func (pr *PlayerRenderer) clearMeshes() {
	for _, m := range pr.meshes {
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.ebo != 0 {
			gl.DeleteBuffers(1, &m.ebo)
		}
	}
	pr.meshes = nil
}

// Destroy releases all resources.
func (pr *PlayerRenderer) Destroy() {
	pr.clearMeshes()
	if pr.texture != 0 {
		gl.DeleteTextures(1, &pr.texture)
		pr.texture = 0
	}
	if pr.program != 0 {
		gl.DeleteProgram(pr.program)
		pr.program = 0
	}
}
