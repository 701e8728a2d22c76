// Package gogl implements gl.OpenGL on top of github.com/go-gl/gl.
package gogl

import (
	"fmt"
	"strings"
	"unsafe"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/tinyrange/texquad/internal/gowin/gl"
)

type openGL struct{}

// New loads GL function pointers for the context current on the calling
// thread. It must be called after the window has made its context current.
func New() (gl.OpenGL, error) {
	if err := gogl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL loader: %w", err)
	}
	return openGL{}, nil
}

var _ gl.OpenGL = openGL{}

func cstr(s string) *uint8 {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gogl.Str(s)
}

func (openGL) GetString(name uint32) string {
	p := gogl.GetString(name)
	if p == nil {
		return ""
	}
	return gogl.GoStr(p)
}

func (openGL) GetError() uint32 { return gogl.GetError() }

func (openGL) Viewport(x, y, width, height int32) { gogl.Viewport(x, y, width, height) }
func (openGL) ClearColor(r, g, b, a float32) { gogl.ClearColor(r, g, b, a) }
func (openGL) Clear(mask uint32) { gogl.Clear(mask) }
func (openGL) PixelStorei(pname uint32, param int32) {
	gogl.PixelStorei(pname, param)
}

func (openGL) CreateShader(shaderType uint32) uint32 { return gogl.CreateShader(shaderType) }

func (openGL) ShaderSource(shader uint32, source string) {
	csources, free := gogl.Strs(source + "\x00")
	defer free()
	gogl.ShaderSource(shader, 1, csources, nil)
}

func (openGL) CompileShader(shader uint32) { gogl.CompileShader(shader) }

func (openGL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gogl.GetShaderiv(shader, pname, params)
}

func (openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gogl.GetShaderiv(shader, gl.InfoLogLength, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length+1)
	gogl.GetShaderInfoLog(shader, length, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (openGL) DeleteShader(shader uint32) { gogl.DeleteShader(shader) }

func (openGL) CreateProgram() uint32 { return gogl.CreateProgram() }
func (openGL) AttachShader(program, shader uint32) { gogl.AttachShader(program, shader) }
func (openGL) LinkProgram(program uint32) { gogl.LinkProgram(program) }

func (openGL) GetProgramiv(program uint32, pname uint32, params *int32) {
	gogl.GetProgramiv(program, pname, params)
}

func (openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gogl.GetProgramiv(program, gl.InfoLogLength, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length+1)
	gogl.GetProgramInfoLog(program, length, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (openGL) UseProgram(program uint32) { gogl.UseProgram(program) }
func (openGL) DeleteProgram(program uint32) { gogl.DeleteProgram(program) }

func (openGL) GetUniformLocation(program uint32, name string) int32 {
	return gogl.GetUniformLocation(program, cstr(name))
}

func (openGL) Uniform1i(location int32, v0 int32) { gogl.Uniform1i(location, v0) }

func (openGL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	gogl.UniformMatrix4fv(location, count, transpose, value)
}

func (openGL) GenVertexArrays(n int32, arrays *uint32) { gogl.GenVertexArrays(n, arrays) }
func (openGL) BindVertexArray(array uint32) { gogl.BindVertexArray(array) }
func (openGL) DeleteVertexArrays(n int32, arrays *uint32) { gogl.DeleteVertexArrays(n, arrays) }
func (openGL) GenBuffers(n int32, buffers *uint32) { gogl.GenBuffers(n, buffers) }
func (openGL) BindBuffer(target uint32, buffer uint32) { gogl.BindBuffer(target, buffer) }
func (openGL) DeleteBuffers(n int32, buffers *uint32) { gogl.DeleteBuffers(n, buffers) }

func (openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gogl.BufferData(target, size, data, usage)
}

func (openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gogl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (openGL) EnableVertexAttribArray(index uint32) { gogl.EnableVertexAttribArray(index) }

func (openGL) GenTextures(n int32, textures *uint32) { gogl.GenTextures(n, textures) }
func (openGL) ActiveTexture(texture uint32) { gogl.ActiveTexture(texture) }
func (openGL) BindTexture(target, texture uint32) { gogl.BindTexture(target, texture) }
func (openGL) GenerateMipmap(target uint32) { gogl.GenerateMipmap(target) }
func (openGL) DeleteTextures(n int32, textures *uint32) { gogl.DeleteTextures(n, textures) }

func (openGL) TexParameteri(target uint32, pname uint32, param int32) {
	gogl.TexParameteri(target, pname, param)
}

func (openGL) TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gogl.TexImage2D(target, level, internalFormat, width, height, border, format, xtype, pixels)
}

func (openGL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gogl.DrawElementsWithOffset(mode, count, xtype, offset)
}
