package graphics

import (
	"fmt"
	"unsafe"

	glpkg "github.com/tinyrange/texquad/internal/gowin/gl"
)

// Mesh is an indexed, interleaved vertex array resident on the GPU.
type Mesh struct {
	gl glpkg.OpenGL

	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32
}

// NewMesh uploads vertices and indices and declares the attribute pointers
// described by layout. The vertex array and array buffer are unbound on
// return; the element buffer stays attached to the vertex array.
func NewMesh(gl glpkg.OpenGL, layout VertexLayout, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh needs vertices and indices, got %d and %d", len(vertices), len(indices))
	}
	if err := ValidateIndices(indices, len(vertices)); err != nil {
		return nil, fmt.Errorf("invalid indices: %w", err)
	}
	data, err := layout.Pack(vertices)
	if err != nil {
		return nil, fmt.Errorf("pack vertices: %w", err)
	}

	m := &Mesh{
		gl:         gl,
		indexCount: int32(len(indices)),
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	// Bind the vertex array first so the element buffer binding is recorded in it.
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(glpkg.ArrayBuffer, m.vbo)
	gl.BufferData(glpkg.ArrayBuffer, len(data)*floatSize, unsafe.Pointer(&data[0]), glpkg.StaticDraw)

	gl.BindBuffer(glpkg.ElementArrayBuffer, m.ebo)
	gl.BufferData(glpkg.ElementArrayBuffer, len(indices)*4, unsafe.Pointer(&indices[0]), glpkg.StaticDraw)

	stride := int32(layout.Stride())
	for i, a := range layout {
		gl.VertexAttribPointer(a.Location, int32(a.Components), glpkg.Float, false, stride, uintptr(layout.Offset(i)))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindBuffer(glpkg.ArrayBuffer, 0)
	gl.BindVertexArray(0)

	return m, nil
}

// NewQuadMesh uploads the textured unit quad.
func NewQuadMesh(gl glpkg.OpenGL) (*Mesh, error) {
	return NewMesh(gl, PosTexLayout, QuadVertices, QuadIndices)
}

// Bind makes the mesh's vertex array current.
func (m *Mesh) Bind() {
	m.gl.BindVertexArray(m.vao)
}

// Draw binds the mesh and draws all of its triangles.
func (m *Mesh) Draw() {
	m.gl.BindVertexArray(m.vao)
	m.gl.DrawElements(glpkg.Triangles, m.indexCount, glpkg.UnsignedInt, 0)
}

// Delete frees the vertex array and both buffers.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		m.gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		m.gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		m.gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
