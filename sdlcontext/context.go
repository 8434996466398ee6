package sdlcontext

import (
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/glsteps/graphics"
	"github.com/veandco/go-sdl2/sdl"
)

// Context wraps an SDL2 window and, unless created with NoAPI, its OpenGL context.
type Context struct {
	window       *sdl.Window
	glContext    sdl.GLContext
	hasGL        bool
	quit         bool
	keyCallbacks graphics.KeyCallbacks
}

// New creates an SDL window from attrs. The GL attributes are applied before
// the window is created so they take effect when the context is created.
func New(attrs graphics.Attributes) (*Context, error) {
	c := &Context{keyCallbacks: graphics.KeyCallbacks{}}

	var flags uint32 = sdl.WINDOW_SHOWN
	if !attrs.Visible {
		flags = sdl.WINDOW_HIDDEN
	}
	if !attrs.NoAPI {
		if err := setGLAttributes(attrs); err != nil {
			return nil, err
		}
		flags |= sdl.WINDOW_OPENGL
	}

	win, err := sdl.CreateWindow(attrs.Title, int32(attrs.X), int32(attrs.Y), int32(attrs.Width), int32(attrs.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("SDL window was not created: %w", err)
	}
	c.window = win

	if attrs.NoAPI {
		return c, nil
	}

	c.glContext, err = win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("OpenGL context not available: %w", err)
	}
	c.hasGL = true
	c.MakeCurrent()
	if err := sdl.GLSetSwapInterval(attrs.SwapInterval); err != nil {
		log.Printf("Warning: could not set swap interval %d: %v", attrs.SwapInterval, err)
	}
	return c, nil
}

type glAttr struct {
	attr  sdl.GLattr
	value int
}

func setGLAttributes(attrs graphics.Attributes) error {
	set := []glAttr{
		{sdl.GL_CONTEXT_MAJOR_VERSION, attrs.Major},
		{sdl.GL_CONTEXT_MINOR_VERSION, attrs.Minor},
		{sdl.GL_DOUBLEBUFFER, boolAttr(attrs.DoubleBuffer)},
		{sdl.GL_DEPTH_SIZE, attrs.DepthBits},
	}
	if attrs.CoreProfile {
		set = append(set,
			glAttr{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
			glAttr{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		)
	}
	for _, s := range set {
		if err := sdl.GLSetAttribute(s.attr, s.value); err != nil {
			return fmt.Errorf("failed to set GL attribute %d: %w", s.attr, err)
		}
	}
	return nil
}

func boolAttr(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *Context) RegisterKeyCallback(key graphics.Key, f func()) {
	c.keyCallbacks.Register(key, f)
}

func (c *Context) MakeCurrent() {
	if !c.hasGL {
		return
	}
	if err := c.window.GLMakeCurrent(c.glContext); err != nil {
		log.Printf("Error making GL context current: %v", err)
	}
}

// Shutdown destroys the GL context and the window.
func (c *Context) Shutdown() {
	if c.hasGL {
		sdl.GLDeleteContext(c.glContext)
		c.hasGL = false
	}
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.quit
}

func (c *Context) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		c.handleEvent(event)
	}
}

func (c *Context) WaitEvents() {
	if event := sdl.WaitEventTimeout(100); event != nil {
		c.handleEvent(event)
	}
	c.PollEvents()
}

func (c *Context) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		c.requestQuit()
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return
		}
		key := translateKey(e.Keysym.Sym)
		if key == graphics.KeyEscape {
			c.requestQuit()
		}
		c.keyCallbacks.Dispatch(key)
	}
}

func (c *Context) requestQuit() {
	if !c.quit {
		log.Println("Goodbye!!")
	}
	c.quit = true
}

func translateKey(sym sdl.Keycode) graphics.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return graphics.KeyEscape
	case sdl.K_SPACE:
		return graphics.KeySpace
	case sdl.K_r:
		return graphics.KeyR
	case sdl.K_w:
		return graphics.KeyW
	}
	return graphics.KeyUnknown
}

func (c *Context) SwapBuffers() {
	if c.hasGL {
		c.window.GLSwap()
	}
}

func (c *Context) GetFramebufferSize() (int, int) {
	if c.hasGL {
		w, h := c.window.GLGetDrawableSize()
		return int(w), int(h)
	}
	w, h := c.window.GetSize()
	return int(w), int(h)
}

func (c *Context) Time() float64 {
	return float64(sdl.GetTicks()) / 1000.0
}

// InitGraphics initializes the SDL video subsystem. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("SDL could not be initialized: %w", err)
	}
	log.Printf("SDL video system is ready to go")
	return nil
}

// TerminateGraphics shuts down SDL. Must be called from the main thread.
func TerminateGraphics() {
	sdl.Quit()
	log.Printf("SDL Terminated")
}
