package graphics

// Key is a backend-neutral keyboard key.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyR
	KeyW
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyR:
		return "R"
	case KeyW:
		return "W"
	}
	return "Unknown"
}

// Attributes describes the window and the OpenGL context requested from a backend.
type Attributes struct {
	Title  string
	Width  int
	Height int
	X      int
	Y      int
	// GL context version and profile.
	Major        int
	Minor        int
	CoreProfile  bool
	DoubleBuffer bool
	DepthBits    int
	SwapInterval int
	Visible      bool
	// NoAPI creates a plain window without any graphics context.
	NoAPI bool
}

// DefaultAttributes matches the 640x480, GL 4.1 core window used by the samples.
func DefaultAttributes() Attributes {
	return Attributes{
		Title:        "Opengl Window",
		Width:        640,
		Height:       480,
		Major:        4,
		Minor:        1,
		CoreProfile:  true,
		DoubleBuffer: true,
		DepthBits:    24,
		SwapInterval: 1,
		Visible:      true,
	}
}

// Context defines the interface for a window with an (optional) OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// PollEvents drains pending window and input events without blocking.
	PollEvents()
	// WaitEvents blocks until at least one event arrives.
	WaitEvents()
	SwapBuffers()
	GetFramebufferSize() (int, int)
	Time() float64
	RegisterKeyCallback(key Key, f func())
}
