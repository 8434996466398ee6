package renderer

import (
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glsteps/glsl"
	"github.com/richinsley/glsteps/mesh"
	"github.com/richinsley/glsteps/shader"
)

// Scene is a shader program plus the vertex array it draws.
type Scene struct {
	sources         shader.Sources
	program         *shader.Program
	vao             uint32
	vbo             uint32
	vertexCount     int32
	watcher         *glsl.Watcher
	reloadRequested bool
}

// NewScene compiles the program described by src and uploads the triangle.
func NewScene(src shader.Sources) (*Scene, error) {
	program, err := shader.Load(src)
	if err != nil {
		return nil, err
	}

	s := &Scene{sources: src, program: program}
	s.upload(mesh.Triangle())
	return s, nil
}

// upload binds the vertex array first, then fills the vertex buffer and
// describes attribute 0 as three floats per vertex.
func (s *Scene) upload(m mesh.Mesh) {
	vertices := m.Flatten()

	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, m.ByteSize(), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, m.Stride(), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// the attribute keeps a reference to the buffer, so both can be unbound
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	s.vertexCount = m.VertexCount()
}

// pollReload rebuilds the program if a reload was requested or a watched
// file changed. A program that fails to build leaves the old one in place.
func (s *Scene) pollReload() {
	if s.watcher != nil {
		select {
		case path := <-s.watcher.Changes():
			log.Printf("Shader changed: %s", path)
			s.reloadRequested = true
		default:
		}
	}
	if !s.reloadRequested {
		return
	}
	s.reloadRequested = false

	program, err := shader.Load(s.sources)
	if err != nil {
		log.Printf("Keeping previous shader program: %v", err)
		return
	}
	s.program.Delete()
	s.program = program
}

// Draw issues the triangle draw call.
func (s *Scene) Draw() {
	s.program.Use()
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, s.vertexCount)
}

// Destroy releases the program, buffers and file watcher.
func (s *Scene) Destroy() {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	s.program.Delete()
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.vbo)
}
