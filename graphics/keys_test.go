package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCallbacksDispatch(t *testing.T) {
	kc := KeyCallbacks{}
	count := 0
	kc.Register(KeyR, func() { count++ })

	require.True(t, kc.Dispatch(KeyR))
	require.True(t, kc.Dispatch(KeyR))
	assert.Equal(t, 2, count)

	assert.False(t, kc.Dispatch(KeyW))
}

func TestKeyCallbacksRegisterNilRemoves(t *testing.T) {
	kc := KeyCallbacks{}
	kc.Register(KeySpace, func() {})
	kc.Register(KeySpace, nil)
	assert.False(t, kc.Dispatch(KeySpace))
	assert.Empty(t, kc)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "W", KeyW.String())
	assert.Equal(t, "Unknown", Key(99).String())
}

func TestDefaultAttributes(t *testing.T) {
	a := DefaultAttributes()
	assert.Equal(t, 640, a.Width)
	assert.Equal(t, 480, a.Height)
	assert.Equal(t, 4, a.Major)
	assert.Equal(t, 1, a.Minor)
	assert.True(t, a.CoreProfile)
	assert.True(t, a.DoubleBuffer)
	assert.Equal(t, 24, a.DepthBits)
	assert.False(t, a.NoAPI)
}
