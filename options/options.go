package options

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/richinsley/glsteps/graphics"
)

// Modes, one per sample.
const (
	ModeWindow   = "window"
	ModeStarter  = "starter"
	ModeTriangle = "triangle"
	ModeRecord   = "record"
)

// Windowing backends.
const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// Options configures a run. Values come from the defaults, then an optional
// TOML file, then any flag given explicitly on the command line.
type Options struct {
	ConfigFile string `toml:"-"`
	Help       bool   `toml:"-"`

	Mode    string `toml:"mode"`
	Backend string `toml:"backend"`

	Title        string `toml:"title"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	X            int    `toml:"x"`
	Y            int    `toml:"y"`
	GLMajor      int    `toml:"gl_major"`
	GLMinor      int    `toml:"gl_minor"`
	DepthBits    int    `toml:"depth_bits"`
	SwapInterval int    `toml:"swap_interval"`

	VertexShader   string     `toml:"vertex_shader"`
	FragmentShader string     `toml:"fragment_shader"`
	EchoSource     bool       `toml:"echo_source"`
	Watch          bool       `toml:"watch"`
	ClearColor     ColorValue `toml:"clear_color"`

	// Record mode.
	Frames     int    `toml:"frames"`
	FPS        int    `toml:"fps"`
	OutputFile string `toml:"output"`
	FFMPEGPath string `toml:"ffmpeg"`
	Headless   bool   `toml:"headless"`
}

// Defaults returns the settings used by the original samples.
func Defaults() *Options {
	a := graphics.DefaultAttributes()
	return &Options{
		Mode:           ModeTriangle,
		Backend:        BackendGLFW,
		Title:          a.Title,
		Width:          a.Width,
		Height:         a.Height,
		GLMajor:        a.Major,
		GLMinor:        a.Minor,
		DepthBits:      a.DepthBits,
		SwapInterval:   a.SwapInterval,
		VertexShader:   "assets/shader.vert",
		FragmentShader: "assets/shader.frag",
		ClearColor:     ColorValue{0.2, 0.3, 0.3, 1.0},
		Frames:         120,
		FPS:            60,
		OutputFile:     "triangle.mp4",
	}
}

func bindFlags(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a TOML configuration file")
	fs.BoolVar(&o.Help, "help", o.Help, "Show help message")

	fs.StringVar(&o.Mode, "mode", o.Mode, "Sample to run: window, starter, triangle or record")
	fs.StringVar(&o.Backend, "backend", o.Backend, "Windowing backend: glfw or sdl")

	fs.StringVar(&o.Title, "title", o.Title, "Window title")
	fs.IntVar(&o.Width, "width", o.Width, "Window or output width")
	fs.IntVar(&o.Height, "height", o.Height, "Window or output height")
	fs.IntVar(&o.X, "x", o.X, "Window x position")
	fs.IntVar(&o.Y, "y", o.Y, "Window y position")
	fs.IntVar(&o.GLMajor, "gl-major", o.GLMajor, "Requested OpenGL major version")
	fs.IntVar(&o.GLMinor, "gl-minor", o.GLMinor, "Requested OpenGL minor version")
	fs.IntVar(&o.DepthBits, "depth-bits", o.DepthBits, "Depth buffer size in bits")
	fs.IntVar(&o.SwapInterval, "swap-interval", o.SwapInterval, "Buffer swap interval (0 disables vsync)")

	fs.StringVar(&o.VertexShader, "vert", o.VertexShader, "Vertex shader file")
	fs.StringVar(&o.FragmentShader, "frag", o.FragmentShader, "Fragment shader file")
	fs.BoolVar(&o.EchoSource, "echo", o.EchoSource, "Log shader sources while reading them")
	fs.BoolVar(&o.Watch, "watch", o.Watch, "Rebuild the shader program when the shader files change")
	fs.Var(&o.ClearColor, "clear", "Clear color as r,g,b,a")

	fs.IntVar(&o.Frames, "frames", o.Frames, "Number of frames to record")
	fs.IntVar(&o.FPS, "fps", o.FPS, "Frames per second for recording")
	fs.StringVar(&o.OutputFile, "output", o.OutputFile, "Output file name for recording")
	fs.StringVar(&o.FFMPEGPath, "ffmpeg", o.FFMPEGPath, "Path to ffmpeg executable")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "Record through an EGL context instead of a hidden window")
}

// NewFlagSet returns a flag set bound to o.
func NewFlagSet(name string, o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	bindFlags(fs, o)
	return fs
}

// Parse builds Options from the command line arguments (without the program name).
func Parse(name string, args []string) (*Options, *flag.FlagSet, error) {
	o := Defaults()
	fs := NewFlagSet(name, o)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if o.ConfigFile == "" || o.Help {
		return o, fs, nil
	}

	base := Defaults()
	if err := LoadFile(o.ConfigFile, base); err != nil {
		return nil, fs, err
	}
	base.ConfigFile = o.ConfigFile

	// flags given on the command line win over the file
	overlay := NewFlagSet(name, base)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if setErr == nil {
			setErr = overlay.Set(f.Name, f.Value.String())
		}
	})
	if setErr != nil {
		return nil, fs, setErr
	}
	return base, fs, nil
}

// LoadFile decodes a TOML file into o. Keys absent from the file keep the
// values already in o.
func LoadFile(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(o); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// a decoded array only fills the components it lists
	var color struct {
		ClearColor []float64 `toml:"clear_color"`
	}
	if err := toml.Unmarshal(data, &color); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if color.ClearColor != nil {
		if err := o.ClearColor.setComponents(color.ClearColor); err != nil {
			return fmt.Errorf("invalid clear_color in %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks the combination of options.
func (o *Options) Validate() error {
	switch o.Mode {
	case ModeWindow, ModeStarter, ModeTriangle, ModeRecord:
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	switch o.Backend {
	case BackendGLFW, BackendSDL:
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.GLMajor < 3 || (o.GLMajor == 3 && o.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d is too old, 3.3 or newer is required", o.GLMajor, o.GLMinor)
	}
	if o.DepthBits < 0 {
		return fmt.Errorf("invalid depth bits %d", o.DepthBits)
	}
	for _, v := range o.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear color %s has a component outside [0,1]", o.ClearColor.String())
		}
	}
	if o.Mode == ModeTriangle || o.Mode == ModeRecord {
		if o.VertexShader == "" || o.FragmentShader == "" {
			return fmt.Errorf("both a vertex and a fragment shader are required")
		}
	}
	if o.Mode == ModeRecord {
		if o.Frames <= 0 {
			return fmt.Errorf("frames must be positive, got %d", o.Frames)
		}
		if o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", o.FPS)
		}
		if o.OutputFile == "" {
			return fmt.Errorf("an output file is required in record mode")
		}
	}
	return nil
}

// Attributes converts the options into the window/context request for a backend.
func (o *Options) Attributes() graphics.Attributes {
	a := graphics.DefaultAttributes()
	a.Title = o.Title
	a.Width = o.Width
	a.Height = o.Height
	a.X = o.X
	a.Y = o.Y
	a.Major = o.GLMajor
	a.Minor = o.GLMinor
	a.DepthBits = o.DepthBits
	a.SwapInterval = o.SwapInterval
	switch o.Mode {
	case ModeWindow:
		a.NoAPI = true
	case ModeRecord:
		a.Visible = false
		a.SwapInterval = 0
	}
	return a
}

// ColorValue is an RGBA color usable as a flag ("r,g,b,a") and as a TOML array.
type ColorValue [4]float32

func (c *ColorValue) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func (c *ColorValue) Set(s string) error {
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("invalid color component %q: %w", p, err)
		}
		values[i] = v
	}
	return c.setComponents(values)
}

// setComponents accepts r,g,b or r,g,b,a in [0,1]. Alpha defaults to 1.
func (c *ColorValue) setComponents(values []float64) error {
	if len(values) != 3 && len(values) != 4 {
		return fmt.Errorf("color must have 3 or 4 components, got %d", len(values))
	}
	out := ColorValue{0, 0, 0, 1}
	for i, v := range values {
		if v < 0 || v > 1 {
			return fmt.Errorf("color component %v out of range [0,1]", v)
		}
		out[i] = float32(v)
	}
	*c = out
	return nil
}
