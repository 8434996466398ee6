// Package mesh holds CPU-side vertex data ready to be uploaded to a vertex buffer.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FloatSize is the size in bytes of one float32 component.
const FloatSize = 4

// Mesh is a list of vertex positions drawn as independent triangles.
type Mesh struct {
	Positions []mgl32.Vec3
}

// Triangle returns the single triangle drawn by the shader sample:
// left, right and top vertices in normalized device coordinates.
func Triangle() Mesh {
	return Mesh{Positions: []mgl32.Vec3{
		{-0.5, -0.5, 0.0},
		{0.5, -0.5, 0.0},
		{0.0, 0.5, 0.0},
	}}
}

// Flatten returns the positions as a tightly packed float32 slice.
func (m Mesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Positions)*3)
	for _, p := range m.Positions {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// VertexCount is the number of vertices passed to a draw call.
func (m Mesh) VertexCount() int32 {
	return int32(len(m.Positions))
}

// Stride is the byte distance between consecutive vertices.
func (m Mesh) Stride() int32 {
	return 3 * FloatSize
}

// ByteSize is the size of the flattened vertex data.
func (m Mesh) ByteSize() int {
	return len(m.Positions) * 3 * FloatSize
}
