package glsl

import (
	"fmt"
	"strings"
)

// CompileError carries the info log of a shader stage that failed to compile.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	tag := fmt.Sprintf("ERROR::SHADER::%s::COMPILATION_FAILED", e.Stage)
	if e.Path != "" {
		tag += " (" + e.Path + ")"
	}
	return tag + "\n" + e.Log
}

// LinkError carries the info log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "ERROR::SHADER::PROGRAM::LINKING_FAILED\n" + e.Log
}

// CleanInfoLog strips the NUL terminator and trailing whitespace that drivers
// leave in info logs.
func CleanInfoLog(raw string) string {
	if i := strings.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, " \t\r\n")
}
