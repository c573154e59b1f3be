// Package platform owns the window, the GL context and OS input through glfw.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/topdown/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window *glfw.Window

	events     *core.EventQueue
	terminated bool
	startTime  float64
}

func New() *Platform {
	return &Platform{}
}

// Startup creates a fixed-size window with an OpenGL 2.1 context made current
// on the calling thread. A negative x or y centres the window.
func (p *Platform) Startup(applicationName string, x, y, width, height int, vsync bool) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 16)

	window, err := glfw.CreateWindow(width, height, applicationName, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create window: %w", err)
	}
	p.Window = window
	p.Window.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)

	if x < 0 || y < 0 {
		if mode := glfw.GetPrimaryMonitor().GetVideoMode(); mode != nil {
			x, y = (mode.Width-width)/2, (mode.Height-height)/2
		}
	}
	p.Window.SetPos(x, y)
	p.Window.Show()

	p.startTime = glfw.GetTime()
	core.LogInfo("window '%s' ready: %dx%d, vsync %v", applicationName, width, height, vsync)
	return nil
}

// PumpMessages polls the OS and pushes the resulting events onto events.
// A close request from the window manager becomes core.EventQuit.
func (p *Platform) PumpMessages(events *core.EventQueue) {
	if p.Window == nil {
		return
	}
	p.events = events
	glfw.PollEvents()
	if p.Window.ShouldClose() {
		p.Window.SetShouldClose(false)
		p.push(core.Event{Type: core.EventQuit})
	}
	p.events = nil
}

func (p *Platform) SwapBuffers() {
	if p.Window != nil {
		p.Window.SwapBuffers()
	}
}

// AbsoluteTime returns seconds since the window was created.
func (p *Platform) AbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) Shutdown() error {
	if p.terminated {
		return nil
	}
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	p.terminated = true
	return nil
}

func (p *Platform) push(e core.Event) {
	if p.events != nil {
		p.events.Push(e)
	}
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	// Repeats carry no new state.
	if action == glfw.Repeat {
		return
	}
	code := translateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	t := core.EventKeyPressed
	if action == glfw.Release {
		t = core.EventKeyReleased
	}
	p.push(core.Event{Type: t, Key: code})
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	t := core.EventButtonPressed
	if action == glfw.Release {
		t = core.EventButtonReleased
	}
	x, y := w.GetCursorPos()
	p.push(core.Event{Type: t, Button: b, X: int32(x), Y: int32(y)})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.push(core.Event{Type: core.EventMouseMoved, X: int32(xpos), Y: int32(ypos)})
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var delta int8
	switch {
	case yoff > 0:
		delta = 1
	case yoff < 0:
		delta = -1
	default:
		return
	}
	p.push(core.Event{Type: core.EventMouseWheel, Delta: delta})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.push(core.Event{Type: core.EventResized, X: int32(width), Y: int32(height)})
}
