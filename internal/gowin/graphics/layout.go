package graphics

import (
	"fmt"
	"unsafe"
)

const floatSize = int(unsafe.Sizeof(float32(0)))

// Attribute is one float32 vector field of an interleaved vertex.
type Attribute struct {
	Name       string
	Location   uint32
	Components int
}

// VertexLayout lists the attributes of an interleaved vertex in buffer order.
// The same layout packs vertex data and declares attribute pointers, so the two
// cannot disagree about strides or offsets.
type VertexLayout []Attribute

// Stride is the size in bytes of one vertex.
func (l VertexLayout) Stride() int {
	return l.Components() * floatSize
}

// Components is the number of floats in one vertex.
func (l VertexLayout) Components() int {
	n := 0
	for _, a := range l {
		n += a.Components
	}
	return n
}

// Offset returns the byte offset of attribute i within a vertex.
func (l VertexLayout) Offset(i int) int {
	n := 0
	for _, a := range l[:i] {
		n += a.Components
	}
	return n * floatSize
}

// Validate checks the layout is non-empty, that locations are unique and
// that every attribute has between one and four components.
func (l VertexLayout) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("vertex layout has no attributes")
	}
	seen := make(map[uint32]string)
	for _, a := range l {
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("attribute %q: %d components, want 1-4", a.Name, a.Components)
		}
		if prev, ok := seen[a.Location]; ok {
			return fmt.Errorf("attribute %q: location %d already used by %q", a.Name, a.Location, prev)
		}
		seen[a.Location] = a.Name
	}
	return nil
}

// Vertex is a position plus a texture coordinate.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// PosTexLayout describes Vertex: position at location 0, texture coordinate at 1.
var PosTexLayout = VertexLayout{
	{Name: "aPos", Location: 0, Components: 3},
	{Name: "aTexCoord", Location: 1, Components: 2},
}

// attribute returns the components of v that belong to the named attribute.
func (v Vertex) attribute(name string) ([]float32, bool) {
	switch name {
	case "aPos":
		return v.Position[:], true
	case "aTexCoord":
		return v.TexCoord[:], true
	}
	return nil, false
}

// Pack interleaves vertices into a float buffer in layout order.
func (l VertexLayout) Pack(vertices []Vertex) ([]float32, error) {
	out := make([]float32, 0, len(vertices)*l.Components())
	for i, v := range vertices {
		for _, a := range l {
			data, ok := v.attribute(a.Name)
			if !ok {
				return nil, fmt.Errorf("vertex %d: no data for attribute %q", i, a.Name)
			}
			if len(data) != a.Components {
				return nil, fmt.Errorf("vertex %d: attribute %q has %d components, layout wants %d", i, a.Name, len(data), a.Components)
			}
			out = append(out, data...)
		}
	}
	return out, nil
}

// QuadVertices is a unit quad centered on the origin.
var QuadVertices = []Vertex{
	{Position: [3]float32{0.5, 0.5, 0}, TexCoord: [2]float32{1, 1}},   // top right
	{Position: [3]float32{0.5, -0.5, 0}, TexCoord: [2]float32{1, 0}},  // bottom right
	{Position: [3]float32{-0.5, -0.5, 0}, TexCoord: [2]float32{0, 0}}, // bottom left
	{Position: [3]float32{-0.5, 0.5, 0}, TexCoord: [2]float32{0, 1}},  // top left
}

// QuadIndices splits QuadVertices into two triangles.
var QuadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// ValidateIndices checks that indices form whole triangles, stay within
// vertexCount and reference every vertex at least once.
func ValidateIndices(indices []uint32, vertexCount int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%d indices do not form whole triangles", len(indices))
	}
	used := make([]bool, vertexCount)
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d: %d out of range for %d vertices", i, idx, vertexCount)
		}
		used[idx] = true
	}
	for v, ok := range used {
		if !ok {
			return fmt.Errorf("vertex %d is not referenced", v)
		}
	}
	return nil
}
