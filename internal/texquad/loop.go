package texquad

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinyrange/texquad/internal/config"
	"github.com/tinyrange/texquad/internal/gowin/graphics"
	"github.com/tinyrange/texquad/internal/gowin/window"
)

// ProcessInput requests the window close when Escape is held.
func ProcessInput(win window.Window) {
	if win.GetKeyState(window.KeyEscape).IsDown() {
		win.SetShouldClose(true)
	}
}

// Loop renders frames until the window is asked to close, ctx is cancelled,
// or maxFrames frames have been presented (when maxFrames > 0). It returns
// the number of frames presented.
func Loop(ctx context.Context, win window.Window, scene *Scene, maxFrames int) int {
	scene.Bind()

	frames := 0
	for !win.ShouldClose() {
		if ctx.Err() != nil {
			slog.Info("render loop cancelled", "frames", frames)
			break
		}

		ProcessInput(win)
		scene.RenderFrame(graphics.Seconds(win.Time()))

		win.Swap()
		win.Poll()

		frames++
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
	}
	return frames
}

// Run builds the scene in win's context, runs the render loop and releases
// the scene. The caller owns win and closes it afterwards.
func Run(ctx context.Context, win window.Window, cfg config.Config) error {
	scene, err := NewScene(win.GL(), cfg)
	if err != nil {
		return fmt.Errorf("set up scene: %w", err)
	}
	defer scene.Delete()

	fbw, fbh := win.BackingSize()
	slog.Info("rendering", "framebuffer_width", fbw, "framebuffer_height", fbh, "texture_unit", scene.Texture().Unit())
	if !scene.Texture().Loaded() {
		slog.Warn("drawing quad without texture data")
	}

	frames := Loop(ctx, win, scene, cfg.MaxFrames)
	slog.Info("render loop finished", "frames", frames)
	return nil
}
