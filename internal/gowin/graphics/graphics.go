// Package graphics holds the GPU resources used to draw a textured quad:
// shader programs, textures, meshes with a declarative vertex layout and the
// per-frame model transform.
package graphics

import glpkg "github.com/tinyrange/texquad/internal/gowin/gl"

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// BackgroundColor is the dark teal the frame is cleared to.
var BackgroundColor = Color{0.2, 0.3, 0.3, 1.0}

// ClearFrame clears the color buffer of the current framebuffer to c.
func ClearFrame(gl glpkg.OpenGL, c Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(glpkg.ColorBufferBit)
}
