package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	// 1 pixel wide, 3 rows
	pixels := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	FlipRows(pixels, 1, 3)
	assert.Equal(t, []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}, pixels)
}

func TestFlipRowsEvenHeight(t *testing.T) {
	pixels := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	FlipRows(pixels, 2, 2)
	assert.Equal(t, []byte{
		9, 10, 11, 12, 13, 14, 15, 16,
		1, 2, 3, 4, 5, 6, 7, 8,
	}, pixels)
}

func TestFlipRowsShortBufferUntouched(t *testing.T) {
	pixels := []byte{1, 2, 3, 4}
	FlipRows(pixels, 2, 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, pixels)
}
