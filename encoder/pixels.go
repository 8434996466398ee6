package encoder

// FlipRows reverses the row order of a tightly packed RGBA image in place.
// glReadPixels returns the bottom row first; encoders expect the top row first.
func FlipRows(pixels []byte, width, height int) {
	stride := width * 4
	if stride == 0 || len(pixels) < stride*height {
		return
	}
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pixels[top*stride : (top+1)*stride]
		b := pixels[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, b)
		copy(b, tmp)
	}
}
