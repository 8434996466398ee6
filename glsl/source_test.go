package glsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadSourcePreservesLineBreaks(t *testing.T) {
	src := "#version 410 core\nlayout (location = 0) in vec3 aPos;\nvoid main() {\n    gl_Position = vec4(aPos, 1.0);\n}"
	p := writeFile(t, t.TempDir(), "shader.vert", src)

	got, err := LoadSource(p, false)
	require.NoError(t, err)
	assert.Equal(t, src+"\n", got)

	v, ok := ParseVersion(got)
	require.True(t, ok)
	assert.Equal(t, Version{Number: 410, Profile: "core"}, v)
}

func TestLoadSourceStripsCarriageReturns(t *testing.T) {
	p := writeFile(t, t.TempDir(), "shader.frag", "#version 410 core\r\nvoid main() {}\r\n")

	got, err := LoadSource(p, true)
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", got)
}

func TestLoadSourceMissingFile(t *testing.T) {
	_, err := LoadSource(filepath.Join(t.TempDir(), "missing.vert"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "couldn't open file")
}

func TestLoadSourceEmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.frag", "  \n\n")

	_, err := LoadSource(p, false)
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Version
		ok   bool
	}{
		{"core", "#version 410 core\n", Version{410, "core"}, true},
		{"es", "#version 300 es\nprecision mediump float;\n", Version{300, "es"}, true},
		{"no profile", "#version 330\n", Version{330, ""}, true},
		{"after comments", "// triangle\n\n#version 410 core\n", Version{410, "core"}, true},
		{"missing", "void main() {}\n", Version{}, false},
		{"bad number", "#version abc\n", Version{}, false},
		{"bare directive", "#version\n", Version{}, false},
		{"empty", "", Version{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVersion(tt.src)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "#version 300 es", Version{300, "es"}.String())
	assert.Equal(t, "#version 330", Version{Number: 330}.String())
	assert.True(t, Version{300, "es"}.IsES())
	assert.False(t, Version{410, "core"}.IsES())
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, "VERTEX", Vertex.String())
	assert.Equal(t, "FRAGMENT", Fragment.String())
	assert.Equal(t, "vertex", Vertex.TranslatorName())
	assert.Equal(t, "fragment", Fragment.TranslatorName())
	assert.Equal(t, "UNKNOWN", Stage(7).String())
}
