package hw

import "image"

// Frame is a RGBA framebuffer of ScreenWidth*ScreenHeight pixels.
type Frame []byte

const FrameSize = ScreenWidth * ScreenHeight * 4

func NewFrame() Frame {
	return make(Frame, FrameSize)
}

func (f Frame) Set(x, y int, c Color) {
	rgba := c.NRGBA()
	off := (y*ScreenWidth + x) * 4
	f[off+0] = rgba.R
	f[off+1] = rgba.G
	f[off+2] = rgba.B
	f[off+3] = 0xFF
}

func (f Frame) Fill(c Color) {
	rgba := c.NRGBA()
	for off := 0; off < len(f); off += 4 {
		f[off+0] = rgba.R
		f[off+1] = rgba.G
		f[off+2] = rgba.B
		f[off+3] = 0xFF
	}
}

// Image returns an image sharing the frame pixels.
func (f Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f,
		Stride: 4 * ScreenWidth,
		Rect:   image.Rect(0, 0, ScreenWidth, ScreenHeight),
	}
}
