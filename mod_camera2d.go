package spiral

import (
	"github.com/gekko3d/spiral/core"
)

// Camera2dModule installs the galaxy view camera and its keyboard/wheel controls.
// W/Up, S/Down, A/Left and D/Right pan, the wheel zooms and H glides back to the origin.
// The aspect ratio is taken from the window once, at install time, unless
// FollowWindow is set.
type Camera2dModule struct {
	Speed           float32
	Zoom            float32
	RecenterSeconds float32
	FollowWindow    bool
	LogCursor       bool
}

type cameraSettings struct {
	recenterSeconds float32
	followWindow    bool
	logCursor       bool
}

func (m Camera2dModule) Install(app *App, cmd *Commands) {
	aspect := aspectRatio(0, 0)
	if ws, ok := Resource[WindowState](app); ok {
		aspect = ws.AspectRatio()
	}
	if m.Zoom < core.MinZoom {
		cmd.Logger().Warnf("Camera zoom %v below minimum, clamped to %v", m.Zoom, core.MinZoom)
	}

	cmd.AddResources(
		core.NewCamera2d(aspect, m.Speed, m.Zoom),
		&cameraSettings{
			recenterSeconds: m.RecenterSeconds,
			followWindow:    m.FollowWindow,
			logCursor:       m.LogCursor,
		},
	)
	app.UseSystem(
		System(camera2dSystem).
			InStage(Update).
			RunAlways(),
	)
}

func camera2dSystem(cam *core.Camera2d, input *Input, t *Time, settings *cameraSettings, cmd *Commands) {
	dt := t.Seconds()

	if settings.followWindow && input.WindowWidth > 0 && input.WindowHeight > 0 {
		cam.SetAspectRatio(aspectRatio(input.WindowWidth, input.WindowHeight))
	}

	if input.ScrollY != 0 {
		before := cam.Zoom()
		cam.OnZoom(float32(input.ScrollY), dt)
		if cam.Zoom() == core.MinZoom && before != core.MinZoom {
			cmd.Logger().Debugf("Zoom clamped at %v", core.MinZoom)
		}
	}

	if input.JustPressed[KeyH] {
		cam.ScrollTo(0, 0, settings.recenterSeconds)
	}

	cam.OnUpdate(panKeys(input), dt)

	if settings.logCursor && input.JustPressed[MouseButtonLeft] {
		world := cam.ScreenToWorld(float32(input.MouseX), float32(input.MouseY), input.WindowWidth, input.WindowHeight)
		cmd.Logger().Debugf("Cursor at world (%.1f, %.1f)", world.X(), world.Y())
	}
}

func panKeys(input *Input) core.PanKeys {
	var keys core.PanKeys
	if input.Pressed[KeyW] || input.Pressed[KeyUp] {
		keys |= core.PanUp
	}
	if input.Pressed[KeyS] || input.Pressed[KeyDown] {
		keys |= core.PanDown
	}
	if input.Pressed[KeyA] || input.Pressed[KeyLeft] {
		keys |= core.PanLeft
	}
	if input.Pressed[KeyD] || input.Pressed[KeyRight] {
		keys |= core.PanRight
	}
	return keys
}
