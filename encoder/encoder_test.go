package encoder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("triangle.png"))
	assert.True(t, IsImage("out/Triangle.JPG"))
	assert.False(t, IsImage("triangle.mp4"))
	assert.False(t, IsImage("triangle"))
}

func TestInputArgs(t *testing.T) {
	args := InputArgs(Config{Width: 640, Height: 480, FPS: 30})
	assert.Equal(t, "rawvideo", args["format"])
	assert.Equal(t, "rgba", args["pix_fmt"])
	assert.Equal(t, "640x480", args["s"])
	assert.Equal(t, 30, args["framerate"])
}

func TestOutputArgs(t *testing.T) {
	assert.Equal(t, 1, OutputArgs(Config{OutputFile: "shot.png"})["frames:v"])
	assert.Equal(t, "libx264", OutputArgs(Config{OutputFile: "clip.mp4"})["c:v"])
	assert.Equal(t, "yuv420p", OutputArgs(Config{OutputFile: "clip.mkv"})["pix_fmt"])
	assert.Equal(t, "libvpx-vp9", OutputArgs(Config{OutputFile: "clip.webm"})["c:v"])
	assert.Empty(t, OutputArgs(Config{OutputFile: "clip.gif"}))
}

func TestFrameSize(t *testing.T) {
	assert.Equal(t, 640*480*4, Config{Width: 640, Height: 480}.FrameSize())
}

func TestStartRejectsBadConfig(t *testing.T) {
	_, err := Start(Config{Width: 0, Height: 480, FPS: 30, OutputFile: "x.mp4"})
	assert.Error(t, err)
	_, err = Start(Config{Width: 640, Height: 480, FPS: 0, OutputFile: "x.mp4"})
	assert.Error(t, err)
	_, err = Start(Config{Width: 640, Height: 480, FPS: 30})
	assert.Error(t, err)
}

func TestRunDrainsFramesOnStartFailure(t *testing.T) {
	frames := make(chan *Frame)
	done := make(chan error, 1)
	go Run(Config{}, frames, done)

	frames <- &Frame{Pixels: []byte{1, 2, 3, 4}}
	close(frames)
	require.Error(t, <-done)
}

func TestRunReportsFFMPEGFailureBeforeFramesClose(t *testing.T) {
	cfg := Config{
		Width:      2,
		Height:     2,
		FPS:        1,
		OutputFile: filepath.Join(t.TempDir(), "out.mp4"),
		FFMPEGPath: "/nonexistent/ffmpeg",
	}
	frames := make(chan *Frame, 3)
	done := make(chan error, 1)
	go Run(cfg, frames, done)

	for i := 0; i < 3; i++ {
		frames <- &Frame{Pixels: make([]byte, cfg.FrameSize()), PTS: int64(i)}
	}

	var err error
	select {
	case err = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("no error reported while the frame channel is still open")
	}
	close(frames)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoderExited)
	assert.ErrorContains(t, err, "ffmpeg failed after 0 frames")
}
