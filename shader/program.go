package shader

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glsteps/glsl"
)

// Sources names the vertex and fragment shader files of a program.
type Sources struct {
	VertexPath   string
	FragmentPath string
	// Echo logs every source line as it is read.
	Echo bool
}

// Program is a linked vertex/fragment shader program.
type Program struct {
	ID uint32
}

// Use selects the program for subsequent draw calls.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Load reads both shader files, translates them if needed, compiles them and
// links the program. A GL context must be current on the calling thread.
func Load(src Sources) (*Program, error) {
	vertexSource, err := readStage(glsl.Vertex, src.VertexPath, src.Echo)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := readStage(glsl.Fragment, src.FragmentPath, src.Echo)
	if err != nil {
		return nil, err
	}

	program, err := NewProgram(vertexSource, fragmentSource)
	if err != nil {
		var ce *glsl.CompileError
		if errors.As(err, &ce) {
			ce.Path = src.VertexPath
			if ce.Stage == glsl.Fragment {
				ce.Path = src.FragmentPath
			}
		}
		return nil, err
	}
	log.Printf("Linked shader program %d from %s and %s", program.ID, src.VertexPath, src.FragmentPath)
	return program, nil
}

func readStage(stage glsl.Stage, path string, echo bool) (string, error) {
	source, err := glsl.LoadSource(path, echo)
	if err != nil {
		return "", err
	}
	return Translate(source, stage)
}

// NewProgram compiles and links a program from in-memory sources.
func NewProgram(vertexShaderSource, fragmentShaderSource string) (*Program, error) {
	vs, err := Compile(glsl.Vertex, vertexShaderSource)
	if err != nil {
		return nil, err
	}
	fs, err := Compile(glsl.Fragment, fragmentShaderSource)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}
	id, err := Link(vs, fs)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id}, nil
}

func glShaderType(stage glsl.Stage) (uint32, error) {
	switch stage {
	case glsl.Vertex:
		return gl.VERTEX_SHADER, nil
	case glsl.Fragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("unsupported shader stage %d", stage)
}

// Compile creates and compiles a shader object. On failure the object is
// deleted and a *glsl.CompileError holding the info log is returned.
func Compile(stage glsl.Stage, source string) (uint32, error) {
	shaderType, err := glShaderType(stage)
	if err != nil {
		return 0, err
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &glsl.CompileError{Stage: stage, Log: glsl.CleanInfoLog(logText)}
	}
	return shader, nil
}

// Link attaches both stages to a new program and links it. The stage objects
// are deleted whether or not linking succeeds.
func Link(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, &glsl.LinkError{Log: glsl.CleanInfoLog(logText)}
	}
	return program, nil
}
