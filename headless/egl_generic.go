//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glsteps/graphics"
)

func NewHeadless(attrs graphics.Attributes) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
