package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrEncoderExited is returned by WriteFrame once ffmpeg is no longer reading.
var ErrEncoderExited = errors.New("ffmpeg exited")

// Frame represents a single rendered frame's RGBA pixels, top row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the raw frames fed to ffmpeg and where the result goes.
type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string
}

// FrameSize is the byte size of one RGBA frame.
func (c Config) FrameSize() int {
	return c.Width * c.Height * 4
}

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
}

// IsImage reports whether path names a single still image rather than a video.
func IsImage(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// InputArgs describes the raw RGBA stream written to ffmpeg's stdin.
func InputArgs(c Config) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", c.Width, c.Height),
		"framerate": c.FPS,
	}
}

// OutputArgs picks the codec from the output file extension.
func OutputArgs(c Config) ffmpeg.KwArgs {
	if IsImage(c.OutputFile) {
		return ffmpeg.KwArgs{"frames:v": 1}
	}
	switch strings.ToLower(filepath.Ext(c.OutputFile)) {
	case ".gif":
		return ffmpeg.KwArgs{}
	case ".webm":
		return ffmpeg.KwArgs{"c:v": "libvpx-vp9", "pix_fmt": "yuv420p"}
	default:
		return ffmpeg.KwArgs{"c:v": "libx264", "pix_fmt": "yuv420p", "preset": "fast"}
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.FPS)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("no output file")
	}
	return nil
}

// Encoder pipes raw frames into an ffmpeg process.
type Encoder struct {
	cfg        Config
	pipeWriter *io.PipeWriter
	errc       chan error
	frames     int64
}

// Start launches ffmpeg reading frames described by cfg from a pipe.
func Start(cfg Config) (*Encoder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", InputArgs(cfg)).
		Output(cfg.OutputFile, OutputArgs(cfg)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if cfg.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(cfg.FFMPEGPath)
	}

	e := &Encoder{
		cfg:        cfg,
		pipeWriter: pipeWriter,
		errc:       make(chan error, 1),
	}
	go func() {
		err := ffmpegCmd.Run()
		// unblock writers once ffmpeg stops reading
		pipeReader.CloseWithError(ErrEncoderExited)
		e.errc <- err
	}()
	log.Printf("Encoding %dx%d@%d to %s", cfg.Width, cfg.Height, cfg.FPS, cfg.OutputFile)
	return e, nil
}

// WriteFrame sends one frame to ffmpeg.
func (e *Encoder) WriteFrame(f *Frame) error {
	if len(f.Pixels) != e.cfg.FrameSize() {
		return fmt.Errorf("frame %d has %d bytes, expected %d", f.PTS, len(f.Pixels), e.cfg.FrameSize())
	}
	if _, err := e.pipeWriter.Write(f.Pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", f.PTS, err)
	}
	e.frames++
	return nil
}

// Close signals end of stream and waits for ffmpeg to exit.
func (e *Encoder) Close() error {
	e.pipeWriter.Close()
	err := <-e.errc
	if err != nil {
		return fmt.Errorf("ffmpeg failed after %d frames: %w", e.frames, err)
	}
	log.Printf("Encoder finished after %d frames", e.frames)
	return nil
}

// Run is the consumer side of a recording: it encodes every frame received on
// frames and reports the result on done. A failure is reported as soon as it
// happens; the remaining frames are then drained until the producer closes
// the channel.
func Run(cfg Config, frames <-chan *Frame, done chan<- error) {
	e, err := Start(cfg)
	if err != nil {
		done <- err
		drain(frames)
		return
	}

	for frame := range frames {
		if writeErr := e.WriteFrame(frame); writeErr != nil {
			log.Printf("Error writing frame %d: %v", frame.PTS, writeErr)
			done <- errors.Join(writeErr, e.Close())
			drain(frames)
			return
		}
	}
	done <- e.Close()
}

func drain(frames <-chan *Frame) {
	for range frames {
	}
}
