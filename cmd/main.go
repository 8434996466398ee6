package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glsteps/encoder"
	"github.com/richinsley/glsteps/glfwcontext"
	"github.com/richinsley/glsteps/graphics"
	"github.com/richinsley/glsteps/headless"
	"github.com/richinsley/glsteps/options"
	"github.com/richinsley/glsteps/renderer"
	"github.com/richinsley/glsteps/sdlcontext"
	"github.com/richinsley/glsteps/shader"
)

// backend bundles the subsystem lifecycle and window factory of one windowing library.
type backend struct {
	initGraphics      func() error
	terminateGraphics func()
	newContext        func(graphics.Attributes) (graphics.Context, error)
}

func selectBackend(name string) backend {
	if name == options.BackendSDL {
		return backend{
			initGraphics:      sdlcontext.InitGraphics,
			terminateGraphics: sdlcontext.TerminateGraphics,
			newContext: func(a graphics.Attributes) (graphics.Context, error) {
				return sdlcontext.New(a)
			},
		}
	}
	return backend{
		initGraphics:      glfwcontext.InitGraphics,
		terminateGraphics: glfwcontext.TerminateGraphics,
		newContext: func(a graphics.Attributes) (graphics.Context, error) {
			return glfwcontext.New(a)
		},
	}
}

// runWindow opens a plain window and polls events until it is closed.
func runWindow(ctx graphics.Context) {
	for !ctx.ShouldClose() {
		ctx.WaitEvents()
	}
}

func runGL(ctx graphics.Context, opts *options.Options) error {
	r, err := renderer.NewRenderer(ctx, mgl32.Vec4(opts.ClearColor))
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if opts.Mode == options.ModeStarter {
		log.Printf("Starting poll loop on %s...", r.Info().Renderer)
		r.Run()
		return nil
	}

	src := shader.Sources{
		VertexPath:   opts.VertexShader,
		FragmentPath: opts.FragmentShader,
		Echo:         opts.EchoSource,
	}
	if err := r.LoadScene(src, opts.Watch && opts.Mode == options.ModeTriangle); err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}

	if opts.Mode == options.ModeRecord {
		cfg := encoder.Config{
			Width:      opts.Width,
			Height:     opts.Height,
			FPS:        opts.FPS,
			OutputFile: opts.OutputFile,
			FFMPEGPath: opts.FFMPEGPath,
		}
		if err := r.RunRecord(cfg, opts.Frames); err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", opts.OutputFile)
		return nil
	}

	log.Println("Starting poll loop...")
	r.Run()
	return nil
}

func run(opts *options.Options) error {
	attrs := opts.Attributes()

	if opts.Mode == options.ModeRecord && opts.Headless {
		ctx, err := headless.NewHeadless(attrs)
		if err != nil {
			return fmt.Errorf("failed to create headless context: %w", err)
		}
		defer ctx.Shutdown()
		return runGL(ctx, opts)
	}

	b := selectBackend(opts.Backend)
	if err := b.initGraphics(); err != nil {
		return err
	}
	defer b.terminateGraphics()

	ctx, err := b.newContext(attrs)
	if err != nil {
		return fmt.Errorf("failed to create %s window: %w", opts.Backend, err)
	}
	defer ctx.Shutdown()

	if opts.Mode == options.ModeWindow {
		runWindow(ctx)
		log.Println("ending the game!!")
		return nil
	}
	return runGL(ctx, opts)
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, fs, err := options.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	if opts.Help {
		fmt.Println("OpenGL step-by-step samples")
		fs.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	log.Printf("Running %s sample with the %s backend", opts.Mode, opts.Backend)
	if err := run(opts); err != nil {
		log.Fatalf("%v", err)
	}
}
