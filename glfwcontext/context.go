package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glsteps/graphics"
)

// Context wraps a GLFW window and dispatches key presses to registered callbacks.
type Context struct {
	window       *glfw.Window
	keyCallbacks graphics.KeyCallbacks
	saidGoodbye  bool
}

// New creates a GLFW window from attrs and returns a Context object.
// When attrs.NoAPI is set no OpenGL context is created for the window.
func New(attrs graphics.Attributes) (*Context, error) {
	glfw.DefaultWindowHints()
	if attrs.NoAPI {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	} else {
		glfw.WindowHint(glfw.ContextVersionMajor, attrs.Major)
		glfw.WindowHint(glfw.ContextVersionMinor, attrs.Minor)
		if attrs.CoreProfile {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
		glfw.WindowHint(glfw.DoubleBuffer, boolHint(attrs.DoubleBuffer))
		glfw.WindowHint(glfw.DepthBits, attrs.DepthBits)
	}
	glfw.WindowHint(glfw.Visible, boolHint(attrs.Visible))
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	if attrs.X != 0 || attrs.Y != 0 {
		win.SetPos(attrs.X, attrs.Y)
	}

	c := &Context{
		window:       win,
		keyCallbacks: graphics.KeyCallbacks{},
	}
	win.SetKeyCallback(c.glfwKeyCallback)

	if !attrs.NoAPI {
		c.MakeCurrent()
		glfw.SwapInterval(attrs.SwapInterval)
	}
	return c, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (c *Context) RegisterKeyCallback(key graphics.Key, f func()) {
	c.keyCallbacks.Register(key, f)
}

// glfwKeyCallback is called by GLFW on a key event.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
	}
	c.keyCallbacks.Dispatch(translateKey(key))
}

func translateKey(key glfw.Key) graphics.Key {
	switch key {
	case glfw.KeyEscape:
		return graphics.KeyEscape
	case glfw.KeySpace:
		return graphics.KeySpace
	case glfw.KeyR:
		return graphics.KeyR
	case glfw.KeyW:
		return graphics.KeyW
	}
	return graphics.KeyUnknown
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
	c.checkQuit()
}

func (c *Context) WaitEvents() {
	glfw.WaitEvents()
	c.checkQuit()
}

func (c *Context) checkQuit() {
	if c.window.ShouldClose() && !c.saidGoodbye {
		c.saidGoodbye = true
		log.Println("Goodbye!!")
	}
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the GLFW subsystem. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
