package glsl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Stage: Fragment, Log: "0:3: 'foo' : undeclared identifier"}
	assert.Equal(t, "ERROR::SHADER::FRAGMENT::COMPILATION_FAILED\n0:3: 'foo' : undeclared identifier", err.Error())

	err.Path = "shaders/shader.frag"
	assert.Equal(t, "ERROR::SHADER::FRAGMENT::COMPILATION_FAILED (shaders/shader.frag)\n0:3: 'foo' : undeclared identifier", err.Error())
}

func TestLinkErrorFormat(t *testing.T) {
	err := &LinkError{Log: "error: vertex shader output not written"}
	assert.Equal(t, "ERROR::SHADER::PROGRAM::LINKING_FAILED\nerror: vertex shader output not written", err.Error())
}

func TestCompileErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to build program: %w", &CompileError{Stage: Vertex, Log: "x"})

	var ce *CompileError
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, Vertex, ce.Stage)
}

func TestCleanInfoLog(t *testing.T) {
	assert.Equal(t, "0:1: error", CleanInfoLog("0:1: error\n\x00\x00\x00"))
	assert.Equal(t, "", CleanInfoLog("\x00"))
	assert.Equal(t, "line one\nline two", CleanInfoLog("line one\nline two\r\n"))
}
