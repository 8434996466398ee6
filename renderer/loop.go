package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Run executes the poll loop until the context is asked to close:
// drain events, prepare the frame, draw it, present it.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		r.Input()
		r.PreDraw()
		r.Draw()
		r.context.SwapBuffers()
	}
}

// Input drains pending window events and applies any pending shader reload.
func (r *Renderer) Input() {
	r.context.PollEvents()
	if r.scene != nil {
		r.scene.pollReload()
	}
}

// PreDraw sets the viewport to the framebuffer and clears it.
func (r *Renderer) PreDraw() {
	width, height := r.context.GetFramebufferSize()
	r.clear(width, height)
}

func (r *Renderer) clear(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the scene, if any.
func (r *Renderer) Draw() {
	if r.scene != nil {
		r.scene.Draw()
	}
}
