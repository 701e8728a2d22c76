package texquad

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tinyrange/texquad/internal/config"
	glpkg "github.com/tinyrange/texquad/internal/gowin/gl"
	"github.com/tinyrange/texquad/internal/gowin/gl/gltest"
	"github.com/tinyrange/texquad/internal/gowin/graphics"
	"github.com/tinyrange/texquad/internal/gowin/window"
)

type fakeWindow struct {
	gl *gltest.GL

	keys        map[window.Key]window.KeyState
	shouldClose bool

	// closeAfterPolls sets the close flag on that poll, as an OS close would.
	closeAfterPolls int
	times           []float64

	polls, swaps int
	closed       bool
}

var _ window.Window = (*fakeWindow)(nil)

func newFakeWindow() *fakeWindow {
	return &fakeWindow{gl: gltest.New(), keys: make(map[window.Key]window.KeyState)}
}

func (w *fakeWindow) GL() glpkg.OpenGL { return w.gl }
func (w *fakeWindow) Close() { w.closed = true }
func (w *fakeWindow) Swap() { w.swaps++ }

func (w *fakeWindow) Poll() bool {
	w.polls++
	if w.closeAfterPolls > 0 && w.polls >= w.closeAfterPolls {
		w.shouldClose = true
	}
	return !w.shouldClose
}

func (w *fakeWindow) ShouldClose() bool { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(close bool) { w.shouldClose = close }
func (w *fakeWindow) BackingSize() (int, int) { return 800, 600 }

func (w *fakeWindow) GetKeyState(key window.Key) window.KeyState {
	if s, ok := w.keys[key]; ok {
		return s
	}
	return window.KeyStateUp
}

func (w *fakeWindow) Time() float64 {
	if len(w.times) == 0 {
		return 0
	}
	t := w.times[0]
	if len(w.times) > 1 {
		w.times = w.times[1:]
	}
	return t
}

func TestProcessInput(t *testing.T) {
	tests := []struct {
		name  string
		keys  map[window.Key]window.KeyState
		close bool
	}{
		{"no keys", nil, false},
		{"escape pressed", map[window.Key]window.KeyState{window.KeyEscape: window.KeyStatePressed}, true},
		{"escape held", map[window.Key]window.KeyState{window.KeyEscape: window.KeyStateDown}, true},
		{"escape released", map[window.Key]window.KeyState{window.KeyEscape: window.KeyStateReleased}, false},
		{"other key", map[window.Key]window.KeyState{window.KeyQ: window.KeyStateDown}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWindow()
			for k, s := range tt.keys {
				w.keys[k] = s
			}
			ProcessInput(w)
			if w.shouldClose != tt.close {
				t.Errorf("close flag = %v, want %v", w.shouldClose, tt.close)
			}
		})
	}
}

func TestNewSceneEmbeddedAssets(t *testing.T) {
	g := gltest.New()
	s, err := NewScene(g, config.Default())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if !s.Texture().Loaded() {
		t.Error("embedded texture not loaded")
	}
	if w, h := s.Texture().Size(); w != 128 || h != 128 {
		t.Errorf("texture size = %dx%d", w, h)
	}
	if !strings.Contains(g.ShaderSrc[1], "uniform mat4 transform") {
		t.Error("embedded vertex shader not used")
	}
}

func TestNewSceneMissingTextureStillRenders(t *testing.T) {
	cfg := config.Default()
	cfg.Texture.Path = filepath.Join(t.TempDir(), "notAbee.jpg")

	g := gltest.New()
	s, err := NewScene(g, cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if s.Texture().Loaded() {
		t.Error("Loaded() = true for missing file")
	}
	params := g.TexParams[s.Texture().ID()]
	if params[glpkg.TextureWrapS] != glpkg.Repeat || params[glpkg.TextureMinFilter] != glpkg.LinearMipmapLinear {
		t.Errorf("sampling params = %v", params)
	}
}

func TestNewSceneShaderFailureReleases(t *testing.T) {
	g := gltest.New()
	g.FailLink = true
	if _, err := NewScene(g, config.Default()); err == nil || !strings.Contains(err.Error(), "shader program") {
		t.Fatalf("error = %v, want shader program failure", err)
	}
	if g.Count("GenBuffers") != 0 || g.Count("GenTextures") != 0 {
		t.Error("resources created after shader failure")
	}
}

func TestNewSceneShaderFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Shaders.Vertex = filepath.Join(dir, "vertex.glsl")
	cfg.Shaders.Fragment = filepath.Join(dir, "fragment.glsl")

	g := gltest.New()
	if _, err := NewScene(g, cfg); err == nil {
		t.Fatal("expected error for missing shader files")
	}

	for _, p := range []string{cfg.Shaders.Vertex, cfg.Shaders.Fragment} {
		if err := os.WriteFile(p, []byte("#version 330 core\nvoid main() {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := NewScene(g, cfg); err != nil {
		t.Fatalf("NewScene with shader files: %v", err)
	}
}

func TestRenderFrameOrder(t *testing.T) {
	g := gltest.New()
	s, err := NewScene(g, config.Default())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.Bind()
	g.Reset()

	s.RenderFrame(0)

	var got []string
	for _, name := range g.Names() {
		if name == "GetUniformLocation" {
			continue
		}
		got = append(got, name)
	}
	want := []string{"ClearColor", "Clear", "UniformMatrix4fv", "BindVertexArray", "DrawElements"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if got := mgl32.Mat4(g.UniformMats["transform"]); !got.ApproxEqualThreshold(mgl32.Translate3D(0.5, -0.5, 0), 1e-6) {
		t.Errorf("transform at t=0 = %v", got)
	}
}

func TestSceneBind(t *testing.T) {
	cfg := config.Default()
	cfg.Texture.Unit = 3
	g := gltest.New()
	s, err := NewScene(g, cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.Bind()

	if g.Program != s.program.ID() {
		t.Error("program not in use")
	}
	if g.UniformInts["texture1"] != 3 {
		t.Errorf("texture1 sampler = %d, want unit 3", g.UniformInts["texture1"])
	}
	if g.ActiveUnit != 3 || g.BoundTexture() != s.Texture().ID() {
		t.Errorf("unit %d has texture %d, want unit 3 with %d", g.ActiveUnit, g.BoundTexture(), s.Texture().ID())
	}
	if g.VAO == 0 {
		t.Error("vertex array not bound")
	}
}

func TestLoopStopsOnEscape(t *testing.T) {
	w := newFakeWindow()
	w.keys[window.KeyEscape] = window.KeyStatePressed
	s, err := NewScene(w.gl, config.Default())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	frames := Loop(context.Background(), w, s, 0)
	// The frame during which Escape is seen is still drawn and presented.
	if frames != 1 || w.swaps != 1 || w.polls != 1 {
		t.Errorf("frames=%d swaps=%d polls=%d, want 1 each", frames, w.swaps, w.polls)
	}
	if w.gl.Count("DrawElements") != 1 {
		t.Errorf("DrawElements called %d times, want 1", w.gl.Count("DrawElements"))
	}
}

func TestLoopStopsOnWindowClose(t *testing.T) {
	w := newFakeWindow()
	w.closeAfterPolls = 3
	w.times = []float64{0, 0.5, math.Pi}
	s, err := NewScene(w.gl, config.Default())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	frames := Loop(context.Background(), w, s, 0)
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	want := graphics.QuadTransform(graphics.Seconds(math.Pi))
	if got := mgl32.Mat4(w.gl.UniformMats["transform"]); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("last transform = %v, want %v", got, want)
	}
}

func TestLoopFrameLimitAndCancel(t *testing.T) {
	w := newFakeWindow()
	s, err := NewScene(w.gl, config.Default())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if frames := Loop(context.Background(), w, s, 5); frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if frames := Loop(ctx, w, s, 0); frames != 0 {
		t.Errorf("frames after cancel = %d, want 0", frames)
	}
}

func TestRunReleasesScene(t *testing.T) {
	w := newFakeWindow()
	cfg := config.Default()
	cfg.MaxFrames = 2
	if err := Run(context.Background(), w, cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w.swaps != 2 {
		t.Errorf("swaps = %d, want 2", w.swaps)
	}
	for _, kind := range []string{"vertexarray", "texture", "program"} {
		if len(w.gl.Deleted[kind]) != 1 {
			t.Errorf("%s deleted %d times, want 1", kind, len(w.gl.Deleted[kind]))
		}
	}
	if len(w.gl.Deleted["buffer"]) != 2 {
		t.Errorf("buffers deleted = %v, want 2", w.gl.Deleted["buffer"])
	}
	if w.closed {
		t.Error("Run closed the caller's window")
	}
}

func TestRunLogsFramebufferSize(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	w := newFakeWindow()
	cfg := config.Default()
	cfg.MaxFrames = 1
	if err := Run(context.Background(), w, cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"framebuffer_width":800`) || !strings.Contains(out, `"framebuffer_height":600`) {
		t.Errorf("log output missing framebuffer size:\n%s", out)
	}
}

func TestRunSetupFailure(t *testing.T) {
	w := newFakeWindow()
	w.gl.FailCompile = glpkg.VertexShader
	err := Run(context.Background(), w, config.Default())
	if err == nil || !strings.Contains(err.Error(), "set up scene") {
		t.Fatalf("error = %v, want setup failure", err)
	}
	if w.swaps != 0 {
		t.Error("frames presented after setup failure")
	}
}
