package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tinyrange/texquad/internal/config"
	"github.com/tinyrange/texquad/internal/gowin/window"
	"github.com/tinyrange/texquad/internal/gowin/window/glfwwin"
	"github.com/tinyrange/texquad/internal/logging"
	"github.com/tinyrange/texquad/internal/texquad"
)

func main() {
	if err := run(); err != nil {
		slog.Error("texquad failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file (default: built-in settings)")
	width := flag.Int("width", 0, "Window width, overrides the config file")
	height := flag.Int("height", 0, "Window height, overrides the config file")
	frames := flag.Int("frames", -1, "Stop after this many frames (0 runs until the window is closed)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	printConfig := flag.Bool("print-config", false, "Print the effective config as YAML and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Draw a spinning textured quad. Press Escape to quit.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		return fmt.Errorf("unexpected arguments: %v", flag.Args())
	}

	logging.Setup(*verbose)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	cfg, err := config.Overrides{Width: *width, Height: *height, MaxFrames: *frames}.Apply(cfg)
	if err != nil {
		return err
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win, err := glfwwin.New(cfg.WindowConfig())
	if err != nil {
		if errors.Is(err, window.ErrLoadGL) {
			return fmt.Errorf("initialize OpenGL: %w", err)
		}
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	return texquad.Run(ctx, win, cfg)
}
