// Package window defines the platform window the renderer draws into.
package window

import (
	"errors"
	"log/slog"

	"github.com/tinyrange/texquad/internal/gowin/gl"
)

var (
	// ErrPlatformInit is returned when the windowing library fails to start.
	ErrPlatformInit = errors.New("window: platform initialization failed")
	// ErrCreateWindow is returned when the window or its GL context cannot be created.
	ErrCreateWindow = errors.New("window: failed to create window")
	// ErrLoadGL is returned when GL entry points cannot be loaded for the new context.
	ErrLoadGL = errors.New("window: failed to load OpenGL")
)

// Config describes the window and the GL context requested for it.
type Config struct {
	Title  string
	Width  int
	Height int

	GLMajor     int
	GLMinor     int
	CoreProfile bool

	// SwapInterval is passed to the platform's swap interval call. Negative
	// values leave the platform default untouched.
	SwapInterval int

	// Visible controls whether the window is shown on creation.
	Visible bool
}

// DefaultConfig returns an 800x600 window with a 3.3 core context.
func DefaultConfig() Config {
	return Config{
		Title:        "LearnOpenGL",
		Width:        800,
		Height:       600,
		GLMajor:      3,
		GLMinor:      3,
		CoreProfile:  true,
		SwapInterval: -1,
		Visible:      true,
	}
}

type Window interface {
	// GL returns the bindings for the window's context. The context is
	// current on the thread that created the window.
	GL() gl.OpenGL
	Close()
	// Poll processes pending events and reports whether the window is still open.
	Poll() bool
	Swap()
	ShouldClose() bool
	SetShouldClose(close bool)
	BackingSize() (width, height int)
	GetKeyState(key Key) KeyState
	// Time returns seconds elapsed since the platform was initialized.
	Time() float64
}

// SyncViewport resizes the GL viewport to cover the whole framebuffer. Window
// backends call it once after creation and again from their resize callback.
func SyncViewport(g gl.OpenGL, width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	slog.Debug("framebuffer resized", "width", width, "height", height)
	g.Viewport(0, 0, int32(width), int32(height))
}
