// Package glfwwin implements window.Window with GLFW.
package glfwwin

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/tinyrange/texquad/internal/gowin/gl"
	"github.com/tinyrange/texquad/internal/gowin/gl/gogl"
	"github.com/tinyrange/texquad/internal/gowin/window"
)

func init() {
	// GLFW event handling and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

var keyCodes = map[window.Key]glfw.Key{
	window.KeySpace:     glfw.KeySpace,
	window.KeyEnter:     glfw.KeyEnter,
	window.KeyEscape:    glfw.KeyEscape,
	window.KeyBackspace: glfw.KeyBackspace,
	window.KeyTab:       glfw.KeyTab,
	window.KeyUp:        glfw.KeyUp,
	window.KeyDown:      glfw.KeyDown,
	window.KeyLeft:      glfw.KeyLeft,
	window.KeyRight:     glfw.KeyRight,
}

func init() {
	for k := window.KeyA; k <= window.KeyZ; k++ {
		keyCodes[k] = glfw.KeyA + glfw.Key(k-window.KeyA)
	}
}

type glfwWindow struct {
	win *glfw.Window
	gl  gl.OpenGL

	// Key states as of the previous Poll, used to derive edge states.
	prevDown map[window.Key]bool
	curDown  map[window.Key]bool
}

var _ window.Window = (*glfwWindow)(nil)

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// New initializes GLFW, creates a window with a current GL context and loads
// the GL entry points. On failure everything created so far is released.
func New(cfg window.Config) (window.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", window.ErrPlatformInit, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	if cfg.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		// Required by macOS for core profiles.
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Visible, boolHint(cfg.Visible))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", window.ErrCreateWindow, err)
	}
	win.MakeContextCurrent()

	g, err := gogl.New()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", window.ErrLoadGL, err)
	}

	if cfg.SwapInterval >= 0 {
		glfw.SwapInterval(cfg.SwapInterval)
	}

	w := &glfwWindow{
		win:      win,
		gl:       g,
		prevDown: make(map[window.Key]bool),
		curDown:  make(map[window.Key]bool),
	}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		window.SyncViewport(w.gl, width, height)
	})
	fbw, fbh := win.GetFramebufferSize()
	window.SyncViewport(g, fbw, fbh)

	slog.Info("window created",
		"title", cfg.Title,
		"width", cfg.Width,
		"height", cfg.Height,
		"gl_version", g.GetString(gl.Version),
		"renderer", g.GetString(gl.Renderer),
	)
	return w, nil
}

func (w *glfwWindow) GL() gl.OpenGL { return w.gl }

func (w *glfwWindow) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	slog.Debug("window closed")
}

func (w *glfwWindow) Poll() bool {
	for k, v := range w.curDown {
		w.prevDown[k] = v
	}
	glfw.PollEvents()
	return !w.win.ShouldClose()
}

func (w *glfwWindow) Swap() { w.win.SwapBuffers() }

func (w *glfwWindow) ShouldClose() bool { return w.win.ShouldClose() }

func (w *glfwWindow) SetShouldClose(close bool) { w.win.SetShouldClose(close) }

func (w *glfwWindow) BackingSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *glfwWindow) Time() float64 { return glfw.GetTime() }

func (w *glfwWindow) GetKeyState(key window.Key) window.KeyState {
	code, ok := keyCodes[key]
	if !ok {
		return window.KeyStateUp
	}
	// GetKey reports only Press or Release.
	isDown := w.win.GetKey(code) == glfw.Press
	w.curDown[key] = isDown
	return window.NextKeyState(w.prevDown[key], isDown)
}
