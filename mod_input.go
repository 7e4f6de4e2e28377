package spiral

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyG
	KeyH
	KeyS
	KeyW
	KeySpace
	KeyEscape
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY float64

	// Wheel movement since the previous poll.
	ScrollX, ScrollY float64

	WindowWidth, WindowHeight int
	CloseRequested            bool

	scrollBound                    bool
	pendingScrollX, pendingScrollY float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	if !input.scrollBound {
		s.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff float64, yoff float64) {
			input.addScroll(xoff, yoff)
		})
		input.scrollBound = true
	}

	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setKey(key, glfw.Press == s.windowGlfw.GetKey(glfwKey))
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.setKey(btn, glfw.Press == s.windowGlfw.GetMouseButton(glfwBtn))
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
	s.WindowWidth, s.WindowHeight = input.WindowWidth, input.WindowHeight
	input.CloseRequested = s.windowGlfw.ShouldClose()

	input.takeScroll()
}

// setKey records the key state for this frame and derives the edge flags.
func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func (input *Input) addScroll(dx, dy float64) {
	input.pendingScrollX += dx
	input.pendingScrollY += dy
}

func (input *Input) takeScroll() {
	input.ScrollX, input.ScrollY = input.pendingScrollX, input.pendingScrollY
	input.pendingScrollX, input.pendingScrollY = 0, 0
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:      glfw.KeyA,
	KeyD:      glfw.KeyD,
	KeyG:      glfw.KeyG,
	KeyH:      glfw.KeyH,
	KeyS:      glfw.KeyS,
	KeyW:      glfw.KeyW,
	KeySpace:  glfw.KeySpace,
	KeyEscape: glfw.KeyEscape,
	KeyRight:  glfw.KeyRight,
	KeyLeft:   glfw.KeyLeft,
	KeyDown:   glfw.KeyDown,
	KeyUp:     glfw.KeyUp,
	KeyF1:     glfw.KeyF1,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
