package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glsteps/glsl"
	"github.com/richinsley/glsteps/graphics"
	"github.com/richinsley/glsteps/shader"
)

// glInitOnce ensures the OpenGL function pointers are loaded only once.
var glInitOnce sync.Once

// Info describes the driver behind the current context.
type Info struct {
	Vendor                 string
	Renderer               string
	Version                string
	ShadingLanguageVersion string
}

// QueryInfo reads the driver strings of the current context.
func QueryInfo() Info {
	return Info{
		Vendor:                 gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:               gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:                gl.GoStr(gl.GetString(gl.VERSION)),
		ShadingLanguageVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

func (i Info) Log() {
	log.Printf("Vendor: %s", i.Vendor)
	log.Printf("Renderer: %s", i.Renderer)
	log.Printf("Version: %s", i.Version)
	log.Printf("Shading Language Version: %s", i.ShadingLanguageVersion)
}

// Renderer runs the poll loop for a context and optionally draws a triangle scene.
type Renderer struct {
	context    graphics.Context
	info       Info
	clearColor mgl32.Vec4
	scene      *Scene
	wireframe  bool
}

// NewRenderer makes ctx current, loads the OpenGL function pointers and logs
// the driver information.
func NewRenderer(ctx graphics.Context, clearColor mgl32.Vec4) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		clearColor: clearColor,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	r.info = QueryInfo()
	r.info.Log()
	return r, nil
}

// Info returns the driver strings queried when the renderer was created.
func (r *Renderer) Info() Info {
	return r.info
}

// LoadScene builds the shader program from src and uploads the triangle.
// With watch set the program is rebuilt whenever a shader file changes.
func (r *Renderer) LoadScene(src shader.Sources, watch bool) error {
	scene, err := NewScene(src)
	if err != nil {
		return err
	}
	if watch {
		w, err := glsl.NewWatcher(src.VertexPath, src.FragmentPath)
		if err != nil {
			scene.Destroy()
			return err
		}
		scene.watcher = w
		log.Printf("Watching %s and %s for changes", src.VertexPath, src.FragmentPath)
	}

	r.scene = scene
	r.context.RegisterKeyCallback(graphics.KeyR, func() { r.scene.reloadRequested = true })
	r.context.RegisterKeyCallback(graphics.KeyW, r.toggleWireframe)
	return nil
}

func (r *Renderer) toggleWireframe() {
	r.wireframe = !r.wireframe
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Shutdown releases the GL objects owned by the renderer. The context itself
// is shut down by its owner.
func (r *Renderer) Shutdown() {
	if r.scene != nil {
		r.scene.Destroy()
		r.scene = nil
	}
}
