// Package gl describes the subset of OpenGL 3.3 core used by the renderer.
//
// Callers depend on the OpenGL interface rather than a concrete binding so the
// renderer can run against a recording fake in tests. The go-gl backed
// implementation lives in the gogl subpackage.
package gl

import (
	"fmt"
	"unsafe"
)

const (
	// Texture targets and units.
	Texture2D = 0x0DE1
	Texture0  = 0x84C0

	// Texture parameters.
	TextureMagFilter = 0x2800
	TextureMinFilter = 0x2801
	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803

	Linear             = 0x2601
	LinearMipmapLinear = 0x2703
	Repeat             = 0x2901

	// Pixel formats and types.
	RGB             = 0x1907
	RGBA            = 0x1908
	UnsignedByte    = 0x1401
	UnsignedInt     = 0x1405
	Float           = 0x1406
	UnpackAlignment = 0x0CF5

	// Buffers.
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	// Shaders.
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	// Drawing.
	ColorBufferBit = 0x4000
	Triangles      = 0x0004

	// Strings.
	Renderer = 0x1F01
	Version  = 0x1F02

	// Errors.
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// OpenGL is the set of GL entry points the renderer calls. Names and
// argument order follow the C API with the gl prefix dropped.
type OpenGL interface {
	GetString(name uint32) string
	GetError() uint32

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	PixelStorei(pname uint32, param int32)

	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v0 int32)
	UniformMatrix4fv(location int32, count int32, transpose bool, value *float32)

	GenVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	GenBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	DeleteBuffers(n int32, buffers *uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	GenTextures(n int32, textures *uint32)
	ActiveTexture(texture uint32)
	BindTexture(target uint32, texture uint32)
	TexParameteri(target uint32, pname uint32, param int32)
	TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, border int32, format, xtype uint32, pixels unsafe.Pointer)
	GenerateMipmap(target uint32)
	DeleteTextures(n int32, textures *uint32)

	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}

// ErrorString returns the symbolic name of a GL error code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("GL_ERROR(0x%04x)", code)
	}
}

// CheckError drains the GL error queue and returns the first error seen, if any.
func CheckError(gl OpenGL, op string) error {
	var first uint32
	for i := 0; i < 8; i++ {
		code := gl.GetError()
		if code == NoError {
			break
		}
		if first == NoError {
			first = code
		}
	}
	if first != NoError {
		return fmt.Errorf("%s: %s", op, ErrorString(first))
	}
	return nil
}
