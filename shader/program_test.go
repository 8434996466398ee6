package shader

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glsteps/glsl"
	"github.com/richinsley/glsteps/graphics"
	"github.com/richinsley/glsteps/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;
void main()
{
    gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`
	fragmentSource = `#version 410 core
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`
	brokenFragmentSource = `#version 410 core
out vec4 FragColor;
void main()
{
    FragColor = undefinedColor();
}
`
	// reads an input the vertex stage never writes
	unmatchedFragmentSource = `#version 410 core
in vec3 vertexColor;
out vec4 FragColor;
void main()
{
    FragColor = vec4(vertexColor, 1.0);
}
`
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// withGLContext makes a headless 4.1 core context current on the test's
// thread, or skips the test when none can be created.
func withGLContext(t *testing.T) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	attrs := graphics.DefaultAttributes()
	attrs.Width, attrs.Height = 16, 16
	attrs.Visible = false
	ctx, err := headless.NewHeadless(attrs)
	if err != nil {
		t.Skipf("no EGL context available: %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	ctx.MakeCurrent()

	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		t.Skipf("OpenGL functions could not be loaded: %v", glInitErr)
	}
}

func writeShader(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func shaderDeleteStatus(id uint32) int32 {
	var status int32
	gl.GetShaderiv(id, gl.DELETE_STATUS, &status)
	return status
}

func TestCompileVertexShader(t *testing.T) {
	withGLContext(t)

	id, err := Compile(glsl.Vertex, vertexSource)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.True(t, gl.IsShader(id))
	gl.DeleteShader(id)
}

func TestCompileReportsFragmentError(t *testing.T) {
	withGLContext(t)

	id, err := Compile(glsl.Fragment, brokenFragmentSource)
	require.Error(t, err)
	assert.Zero(t, id)

	var ce *glsl.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, glsl.Fragment, ce.Stage)
	assert.NotEmpty(t, ce.Log)
	assert.ErrorContains(t, err, "ERROR::SHADER::FRAGMENT::COMPILATION_FAILED")
}

func TestLinkDeletesStagesOnSuccess(t *testing.T) {
	withGLContext(t)

	vs, err := Compile(glsl.Vertex, vertexSource)
	require.NoError(t, err)
	fs, err := Compile(glsl.Fragment, fragmentSource)
	require.NoError(t, err)

	program, err := Link(vs, fs)
	require.NoError(t, err)
	defer gl.DeleteProgram(program)

	assert.True(t, gl.IsProgram(program))
	// still attached, so only flagged for deletion
	assert.Equal(t, int32(gl.TRUE), shaderDeleteStatus(vs))
	assert.Equal(t, int32(gl.TRUE), shaderDeleteStatus(fs))
}

func TestLinkReportsMismatchedInterfaces(t *testing.T) {
	withGLContext(t)

	vs, err := Compile(glsl.Vertex, vertexSource)
	require.NoError(t, err)
	fs, err := Compile(glsl.Fragment, unmatchedFragmentSource)
	require.NoError(t, err)

	program, err := Link(vs, fs)
	require.Error(t, err)
	assert.Zero(t, program)

	var le *glsl.LinkError
	require.True(t, errors.As(err, &le))
	assert.NotEmpty(t, le.Log)
	assert.ErrorContains(t, err, "ERROR::SHADER::PROGRAM::LINKING_FAILED")

	// the failed program was deleted, which released both stages
	assert.False(t, gl.IsShader(vs))
	assert.False(t, gl.IsShader(fs))
}

func TestNewProgram(t *testing.T) {
	withGLContext(t)

	p, err := NewProgram(vertexSource, fragmentSource)
	require.NoError(t, err)
	id := p.ID
	assert.True(t, gl.IsProgram(id))

	p.Delete()
	assert.Zero(t, p.ID)
	assert.False(t, gl.IsProgram(id))
}

func TestLoad(t *testing.T) {
	withGLContext(t)
	dir := t.TempDir()

	p, err := Load(Sources{
		VertexPath:   writeShader(t, dir, "shader.vert", vertexSource),
		FragmentPath: writeShader(t, dir, "shader.frag", fragmentSource),
	})
	require.NoError(t, err)
	defer p.Delete()
	assert.True(t, gl.IsProgram(p.ID))
}

func TestLoadSetsPathOnCompileError(t *testing.T) {
	withGLContext(t)
	dir := t.TempDir()
	frag := writeShader(t, dir, "broken.frag", brokenFragmentSource)

	_, err := Load(Sources{
		VertexPath:   writeShader(t, dir, "shader.vert", vertexSource),
		FragmentPath: frag,
	})
	require.Error(t, err)

	var ce *glsl.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, glsl.Fragment, ce.Stage)
	assert.Equal(t, frag, ce.Path)
	assert.ErrorContains(t, err, frag)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Sources{
		VertexPath:   filepath.Join(t.TempDir(), "missing.vert"),
		FragmentPath: filepath.Join(t.TempDir(), "missing.frag"),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "couldn't open file")
}
