// Package gltest provides an in-memory gl.OpenGL that records calls and
// tracks enough object state for renderer tests.
package gltest

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/texquad/internal/gowin/gl"
)

// Call is one recorded GL entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// TexImage is the level/format/size of an uploaded texture image.
type TexImage struct {
	Level          int32
	InternalFormat int32
	Width, Height  int32
	Format         uint32
	Type           uint32
	Pixels         []byte
}

// AttribPointer is a recorded VertexAttribPointer declaration.
type AttribPointer struct {
	VAO        uint32
	Buffer     uint32
	Index      uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// GL is a fake OpenGL context. The zero value is not usable; call New.
type GL struct {
	Calls []Call

	// FailCompile makes shaders of this type fail to compile.
	FailCompile uint32
	// FailLink makes every program fail to link.
	FailLink bool
	// Errors are returned by GetError in order.
	Errors []uint32

	Strings map[uint32]string

	nextID uint32

	ShaderTypes map[uint32]uint32
	ShaderSrc   map[uint32]string
	Attached    map[uint32][]uint32
	Program     uint32

	UniformLocations map[string]int32
	UniformInts      map[string]int32
	UniformMats      map[string][16]float32

	VAO          uint32
	ArrayBuf     uint32
	ElementBufs  map[uint32]uint32 // VAO -> element buffer
	Buffers      map[uint32][]byte
	BufferUsage  map[uint32]uint32
	Attribs      []AttribPointer
	EnabledAttrs map[uint32][]uint32 // VAO -> enabled indices

	ActiveUnit    uint32
	BoundTextures map[uint32]uint32 // unit -> texture
	TexParams     map[uint32]map[uint32]int32
	TexImages     map[uint32]TexImage
	Mipmaps       map[uint32]int
	PixelStore    map[uint32]int32

	Deleted map[string][]uint32
}

var _ gl.OpenGL = (*GL)(nil)

// New returns an empty fake context.
func New() *GL {
	return &GL{
		Strings:          map[uint32]string{gl.Version: "3.3.0 gltest", gl.Renderer: "gltest"},
		ShaderTypes:      make(map[uint32]uint32),
		ShaderSrc:        make(map[uint32]string),
		Attached:         make(map[uint32][]uint32),
		UniformLocations: make(map[string]int32),
		UniformInts:      make(map[string]int32),
		UniformMats:      make(map[string][16]float32),
		ElementBufs:      make(map[uint32]uint32),
		Buffers:          make(map[uint32][]byte),
		BufferUsage:      make(map[uint32]uint32),
		EnabledAttrs:     make(map[uint32][]uint32),
		BoundTextures:    make(map[uint32]uint32),
		TexParams:        make(map[uint32]map[uint32]int32),
		TexImages:        make(map[uint32]TexImage),
		Mipmaps:          make(map[uint32]int),
		PixelStore:       make(map[uint32]int32),
		Deleted:          make(map[string][]uint32),
	}
}

func (g *GL) record(name string, args ...any) {
	g.Calls = append(g.Calls, Call{Name: name, Args: args})
}

func (g *GL) id() uint32 {
	g.nextID++
	return g.nextID
}

// Names returns the names of the recorded calls in order.
func (g *GL) Names() []string {
	names := make([]string, len(g.Calls))
	for i, c := range g.Calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times name was called.
func (g *GL) Count(name string) int {
	n := 0
	for _, c := range g.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps object state.
func (g *GL) Reset() { g.Calls = nil }

// BoundTexture returns the texture bound to the active unit.
func (g *GL) BoundTexture() uint32 { return g.BoundTextures[g.ActiveUnit] }

func (g *GL) GetString(name uint32) string {
	g.record("GetString", name)
	return g.Strings[name]
}

func (g *GL) GetError() uint32 {
	if len(g.Errors) == 0 {
		return gl.NoError
	}
	code := g.Errors[0]
	g.Errors = g.Errors[1:]
	return code
}

func (g *GL) Viewport(x, y, width, height int32) { g.record("Viewport", x, y, width, height) }
func (g *GL) ClearColor(r, gr, b, a float32) { g.record("ClearColor", r, gr, b, a) }
func (g *GL) Clear(mask uint32) { g.record("Clear", mask) }
func (g *GL) PixelStorei(pname uint32, param int32) {
	g.record("PixelStorei", pname, param)
	g.PixelStore[pname] = param
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	id := g.id()
	g.record("CreateShader", shaderType)
	g.ShaderTypes[id] = shaderType
	return id
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.record("ShaderSource", shader)
	g.ShaderSrc[shader] = source
}

func (g *GL) CompileShader(shader uint32) { g.record("CompileShader", shader) }

func (g *GL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	g.record("GetShaderiv", shader, pname)
	switch pname {
	case gl.CompileStatus:
		*params = 1
		if g.FailCompile != 0 && g.ShaderTypes[shader] == g.FailCompile {
			*params = 0
		}
	default:
		*params = 0
	}
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	g.record("GetShaderInfoLog", shader)
	return fmt.Sprintf("0:1(1): error: shader %d rejected", shader)
}

func (g *GL) DeleteShader(shader uint32) {
	g.record("DeleteShader", shader)
	g.Deleted["shader"] = append(g.Deleted["shader"], shader)
}

func (g *GL) CreateProgram() uint32 {
	id := g.id()
	g.record("CreateProgram")
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader", program, shader)
	g.Attached[program] = append(g.Attached[program], shader)
}

func (g *GL) LinkProgram(program uint32) { g.record("LinkProgram", program) }

func (g *GL) GetProgramiv(program uint32, pname uint32, params *int32) {
	g.record("GetProgramiv", program, pname)
	switch pname {
	case gl.LinkStatus:
		*params = 1
		if g.FailLink {
			*params = 0
		}
	default:
		*params = 0
	}
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	g.record("GetProgramInfoLog", program)
	return fmt.Sprintf("program %d: link error", program)
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram", program)
	g.Program = program
}

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram", program)
	g.Deleted["program"] = append(g.Deleted["program"], program)
}

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	g.record("GetUniformLocation", program, name)
	loc, ok := g.UniformLocations[name]
	if !ok {
		loc = int32(len(g.UniformLocations))
		g.UniformLocations[name] = loc
	}
	return loc
}

func (g *GL) uniformName(location int32) string {
	for name, loc := range g.UniformLocations {
		if loc == location {
			return name
		}
	}
	return fmt.Sprintf("location%d", location)
}

func (g *GL) Uniform1i(location int32, v0 int32) {
	g.record("Uniform1i", location, v0)
	g.UniformInts[g.uniformName(location)] = v0
}

func (g *GL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	g.record("UniformMatrix4fv", location, count, transpose)
	var m [16]float32
	copy(m[:], unsafe.Slice(value, 16))
	g.UniformMats[g.uniformName(location)] = m
}

func (g *GL) GenVertexArrays(n int32, arrays *uint32) {
	g.record("GenVertexArrays", n)
	for i, a := 0, unsafe.Slice(arrays, n); i < int(n); i++ {
		a[i] = g.id()
	}
}

func (g *GL) BindVertexArray(array uint32) {
	g.record("BindVertexArray", array)
	g.VAO = array
}

func (g *GL) DeleteVertexArrays(n int32, arrays *uint32) {
	g.record("DeleteVertexArrays", n)
	g.Deleted["vertexarray"] = append(g.Deleted["vertexarray"], unsafe.Slice(arrays, n)...)
}

func (g *GL) GenBuffers(n int32, buffers *uint32) {
	g.record("GenBuffers", n)
	for i, b := 0, unsafe.Slice(buffers, n); i < int(n); i++ {
		b[i] = g.id()
	}
}

func (g *GL) BindBuffer(target uint32, buffer uint32) {
	g.record("BindBuffer", target, buffer)
	switch target {
	case gl.ArrayBuffer:
		g.ArrayBuf = buffer
	case gl.ElementArrayBuffer:
		g.ElementBufs[g.VAO] = buffer
	}
}

func (g *GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	g.record("BufferData", target, size, usage)
	var buf uint32
	switch target {
	case gl.ArrayBuffer:
		buf = g.ArrayBuf
	case gl.ElementArrayBuffer:
		buf = g.ElementBufs[g.VAO]
	}
	b := make([]byte, size)
	if data != nil {
		copy(b, unsafe.Slice((*byte)(data), size))
	}
	g.Buffers[buf] = b
	g.BufferUsage[buf] = usage
}

func (g *GL) DeleteBuffers(n int32, buffers *uint32) {
	g.record("DeleteBuffers", n)
	g.Deleted["buffer"] = append(g.Deleted["buffer"], unsafe.Slice(buffers, n)...)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	g.Attribs = append(g.Attribs, AttribPointer{
		VAO:        g.VAO,
		Buffer:     g.ArrayBuf,
		Index:      index,
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	})
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray", index)
	g.EnabledAttrs[g.VAO] = append(g.EnabledAttrs[g.VAO], index)
}

func (g *GL) GenTextures(n int32, textures *uint32) {
	g.record("GenTextures", n)
	for i, t := 0, unsafe.Slice(textures, n); i < int(n); i++ {
		t[i] = g.id()
	}
}

func (g *GL) ActiveTexture(texture uint32) {
	g.record("ActiveTexture", texture)
	g.ActiveUnit = texture - gl.Texture0
}

func (g *GL) BindTexture(target uint32, texture uint32) {
	g.record("BindTexture", target, texture)
	g.BoundTextures[g.ActiveUnit] = texture
}

func (g *GL) TexParameteri(target uint32, pname uint32, param int32) {
	g.record("TexParameteri", target, pname, param)
	tex := g.BoundTexture()
	if g.TexParams[tex] == nil {
		g.TexParams[tex] = make(map[uint32]int32)
	}
	g.TexParams[tex][pname] = param
}

func (g *GL) TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	g.record("TexImage2D", target, level, internalFormat, width, height, format, xtype)
	img := TexImage{
		Level:          level,
		InternalFormat: internalFormat,
		Width:          width,
		Height:         height,
		Format:         format,
		Type:           xtype,
	}
	if pixels != nil {
		channels := int32(3)
		if format == gl.RGBA {
			channels = 4
		}
		n := int(width * height * channels)
		img.Pixels = append([]byte(nil), unsafe.Slice((*byte)(pixels), n)...)
	}
	g.TexImages[g.BoundTexture()] = img
}

func (g *GL) GenerateMipmap(target uint32) {
	g.record("GenerateMipmap", target)
	g.Mipmaps[g.BoundTexture()]++
}

func (g *GL) DeleteTextures(n int32, textures *uint32) {
	g.record("DeleteTextures", n)
	g.Deleted["texture"] = append(g.Deleted["texture"], unsafe.Slice(textures, n)...)
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	g.record("DrawElements", mode, count, xtype, offset)
}
