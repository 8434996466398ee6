// Package glsl loads GLSL shader sources from disk and formats the
// diagnostics produced when compiling and linking them.
package glsl

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// ErrEmptySource is returned for shader files without any code in them.
var ErrEmptySource = errors.New("shader source is empty")

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// String returns the upper-case stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	}
	return "UNKNOWN"
}

// TranslatorName is the lower-case stage name expected by the shader translator.
func (s Stage) TranslatorName() string {
	return strings.ToLower(s.String())
}

// LoadSource reads a shader file line by line. Line breaks are preserved so
// preprocessor directives such as #version stay on their own line. When echo
// is set every line is written to the log as it is read.
func LoadSource(path string, echo bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("couldn't open file %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if echo {
			log.Println(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	src := sb.String()
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptySource)
	}
	return src, nil
}

// Version is the value of a #version directive.
type Version struct {
	Number  int
	Profile string
}

// IsES reports whether the directive names the OpenGL ES shading language.
func (v Version) IsES() bool {
	return v.Profile == "es"
}

func (v Version) String() string {
	if v.Profile == "" {
		return fmt.Sprintf("#version %d", v.Number)
	}
	return fmt.Sprintf("#version %d %s", v.Number, v.Profile)
}

// ParseVersion finds the #version directive of src. Blank lines and line
// comments may precede it; any other statement before it means the source
// has no directive and false is returned.
func ParseVersion(src string) (Version, bool) {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "#version") {
			return Version{}, false
		}
		fields := strings.Fields(strings.TrimPrefix(line, "#version"))
		if len(fields) == 0 {
			return Version{}, false
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return Version{}, false
		}
		v := Version{Number: n}
		if len(fields) > 1 {
			v.Profile = fields[1]
		}
		return v, true
	}
	return Version{}, false
}
