package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	glpkg "github.com/tinyrange/texquad/internal/gowin/gl"
)

// Program is a linked vertex+fragment shader program.
type Program struct {
	gl       glpkg.OpenGL
	id       uint32
	uniforms map[string]int32
}

// LoadProgram reads the vertex and fragment shader sources from disk and
// links them.
func LoadProgram(gl glpkg.OpenGL, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("read fragment shader: %w", err)
	}
	return NewProgram(gl, string(vs), string(fs))
}

// NewProgram compiles and links a program from source.
func NewProgram(gl glpkg.OpenGL, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := createShaderProgram(gl, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{gl: gl, id: id, uniforms: make(map[string]int32)}, nil
}

func compileShader(gl glpkg.OpenGL, shaderType uint32, src string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, src)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, glpkg.CompileStatus, &status)
	if status == 0 {
		log := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", log)
	}
	return shader, nil
}

func createShaderProgram(gl glpkg.OpenGL, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(gl, glpkg.VertexShader, vertexSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader %w", err)
	}
	fragmentShader, err := compileShader(gl, glpkg.FragmentShader, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Shaders can be deleted after linking
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, glpkg.LinkStatus, &status)
	if status == 0 {
		log := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program linking failed: %s", log)
	}
	return program, nil
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Use() {
	p.gl.UseProgram(p.id)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.gl.GetUniformLocation(p.id, name)
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform. The program must be in use.
func (p *Program) SetInt(name string, v int32) {
	p.gl.Uniform1i(p.location(name), v)
}

// SetMat4 sets a mat4 uniform from a column-major matrix. The program must be in use.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.gl.DeleteProgram(p.id)
	p.id = 0
}
