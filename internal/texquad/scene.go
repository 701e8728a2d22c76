// Package texquad draws a textured quad that spins about the view axis while
// offset towards the bottom right of the window.
package texquad

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/tinyrange/texquad/internal/assets"
	"github.com/tinyrange/texquad/internal/config"
	glpkg "github.com/tinyrange/texquad/internal/gowin/gl"
	"github.com/tinyrange/texquad/internal/gowin/graphics"
)

const (
	// Uniform names shared with the shaders.
	samplerUniform   = "texture1"
	transformUniform = "transform"
)

// Scene owns every GPU object the demo draws with. All of them are created by
// NewScene and released by Delete.
type Scene struct {
	gl glpkg.OpenGL

	program *graphics.Program
	mesh    *graphics.Mesh
	texture *graphics.Texture

	clear graphics.Color
}

// NewScene compiles the shaders, uploads the quad and loads the texture
// described by cfg. A texture that fails to decode is logged and drawn
// without image data; any other failure releases what was created and
// returns an error.
func NewScene(gl glpkg.OpenGL, cfg config.Config) (*Scene, error) {
	s := &Scene{gl: gl, clear: graphics.Color(cfg.ClearColor)}

	var err error
	if cfg.Shaders.Vertex != "" {
		s.program, err = graphics.LoadProgram(gl, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	} else {
		s.program, err = graphics.NewProgram(gl, assets.VertexShader, assets.FragmentShader)
	}
	if err != nil {
		return nil, fmt.Errorf("create shader program: %w", err)
	}

	s.mesh, err = graphics.NewQuadMesh(gl)
	if err != nil {
		s.Delete()
		return nil, fmt.Errorf("create quad mesh: %w", err)
	}

	opts := graphics.TextureOptions{Alpha: cfg.Texture.Alpha}
	if cfg.Texture.Path != "" {
		s.texture = graphics.LoadTexture(gl, cfg.Texture.Path, cfg.Texture.Unit, opts)
	} else {
		s.texture = graphics.LoadTextureFrom(gl, assets.ContainerName, bytes.NewReader(assets.ContainerPNG), cfg.Texture.Unit, opts)
	}

	if err := glpkg.CheckError(gl, "scene setup"); err != nil {
		slog.Warn("GL error after setup", "error", err)
	}
	return s, nil
}

// Bind makes the scene's program, texture and vertex array current and
// points the sampler at the texture's unit.
func (s *Scene) Bind() {
	s.program.Use()
	s.program.SetInt(samplerUniform, int32(s.texture.Unit()))
	s.texture.Bind()
	s.mesh.Bind()
}

// RenderFrame draws one frame for the given elapsed time. Bind must have been
// called first.
func (s *Scene) RenderFrame(elapsed time.Duration) {
	graphics.ClearFrame(s.gl, s.clear)
	s.program.SetMat4(transformUniform, graphics.QuadTransform(elapsed))
	s.mesh.Draw()
}

func (s *Scene) Texture() *graphics.Texture { return s.texture }

// Delete releases the scene's GPU objects. It is safe to call on a partially
// constructed scene.
func (s *Scene) Delete() {
	if s.mesh != nil {
		s.mesh.Delete()
	}
	if s.texture != nil {
		s.texture.Delete()
	}
	if s.program != nil {
		s.program.Delete()
	}
	slog.Debug("scene released")
}
