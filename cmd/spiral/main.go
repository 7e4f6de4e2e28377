package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/spiral"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file, reloaded on save")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := spiral.DefaultConfig()
	if *configPath != "" {
		loaded, err := spiral.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spiral: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	app := spiral.NewAppBuilder().
		UseModule(
			spiral.LoggingModule{Prefix: "spiral", Debug: *debug || cfg.Debug.Enabled},
			spiral.TimeModule{},
			spiral.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			spiral.InputModule{},
			spiral.AssetServerModule{},
			spiral.Camera2dModule{
				Speed:           cfg.Camera.Speed,
				Zoom:            cfg.Camera.Zoom,
				RecenterSeconds: cfg.Camera.RecenterSeconds,
				FollowWindow:    cfg.Camera.FollowWindow,
				LogCursor:       cfg.Debug.LogCursor,
			},
			spiral.GalaxyModule{
				Config:     cfg.Galaxy.Generator(),
				Seed:       cfg.Galaxy.Seed,
				ConfigPath: *configPath,
			},
			spiral.ProfilerModule{},
		).
		Build()
	defer app.Close()

	app.UseStars(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Sprite)
	app.Run()
}
