package spiral

import (
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultWindowTitle  = "Spiral Galaxy"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// AspectRatio falls back to 16:9 while the window is minimized.
func (s *WindowState) AspectRatio() float32 {
	return aspectRatio(s.WindowWidth, s.WindowHeight)
}

func aspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return float32(defaultWindowWidth) / float32(defaultWindowHeight)
	}
	return float32(width) / float32(height)
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func ensureWindowResource(app *App, width, height int, title string) {
	if app.hasResource(reflect.TypeOf((*WindowState)(nil)).Elem()) {
		return
	}
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	app.addResources(createWindowState(width, height, title))
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

func (s *WindowState) destroy() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}

type releaser interface {
	release()
}

// Close releases GPU resources and then the shared window.
// Call it after Run returns.
func (app *App) Close() {
	for _, r := range app.resources {
		if rel, ok := r.(releaser); ok {
			rel.release()
		}
	}
	if ws, ok := Resource[WindowState](app); ok {
		ws.destroy()
	}
}
