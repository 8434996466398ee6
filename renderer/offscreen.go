package renderer

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glsteps/encoder"
)

// numBuffers is the depth of the frame queue between renderer and encoder.
const numBuffers = 3

// OffscreenRenderer is a framebuffer with an RGBA8 color texture and a 24-bit
// depth renderbuffer, read back one frame at a time.
type OffscreenRenderer struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{width: width, height: height}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)

	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &or.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
}

func (or *OffscreenRenderer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels returns the color attachment as RGBA bytes, top row first.
func (or *OffscreenRenderer) ReadPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	encoder.FlipRows(pixels, or.width, or.height)
	return pixels
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
	gl.DeleteRenderbuffers(1, &or.depthRenderbuffer)
}

// RunRecord is the producer of a recording: it renders frames into an
// offscreen framebuffer and hands them to the encoder goroutine. Image
// outputs take a single frame.
func (r *Renderer) RunRecord(cfg encoder.Config, frames int) error {
	if encoder.IsImage(cfg.OutputFile) {
		frames = 1
	}

	offscreen, err := NewOffscreenRenderer(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	defer offscreen.Destroy()

	log.Printf("Recording %d frame(s) to %s", frames, cfg.OutputFile)
	frameChan := make(chan *encoder.Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)
	go encoder.Run(cfg, frameChan, encoderDoneChan)

	for i := 0; i < frames; i++ {
		select {
		case err := <-encoderDoneChan:
			close(frameChan)
			if err == nil {
				err = fmt.Errorf("encoder stopped after %d frames", i)
			}
			return err
		default:
		}

		if r.scene != nil {
			r.scene.pollReload()
		}
		offscreen.Bind()
		r.clear(cfg.Width, cfg.Height)
		r.Draw()
		offscreen.Unbind()

		frameChan <- &encoder.Frame{Pixels: offscreen.ReadPixels(), PTS: int64(i)}
	}

	close(frameChan)
	return <-encoderDoneChan
}
