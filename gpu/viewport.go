// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/math32"
)

// Viewport is the region of the current framebuffer that
// normalized device coordinates map to.
type Viewport struct {
	X, Y, W, H int
}

// ViewportForWindow returns a viewport covering a whole
// window of the given size in pixels.
func ViewportForWindow(width, height int) Viewport {
	return Viewport{W: width, H: height}
}

// UpdateSize sets the size of the viewport.
func (vp *Viewport) UpdateSize(width, height int) {
	vp.W, vp.H = width, height
}

// Rect returns the viewport as a rectangle.
func (vp Viewport) Rect() image.Rectangle {
	return image.Rect(vp.X, vp.Y, vp.X+vp.W, vp.Y+vp.H)
}

// Aspect returns the width divided by the height, or 1 if the height is 0.
func (vp Viewport) Aspect() float32 {
	if vp.H == 0 {
		return 1
	}
	return float32(vp.W) / float32(vp.H)
}

// Refresh sets the driver viewport.
func (vp Viewport) Refresh(ctx *Context) {
	ctx.Driver.Viewport(int32(vp.X), int32(vp.Y), int32(vp.W), int32(vp.H))
}

// ColorBuffer is the color that the current framebuffer is cleared to.
type ColorBuffer struct {
	Color math32.Vector4
}

// ColorBufferFromColor returns an opaque clear color.
func ColorBufferFromColor(c math32.Vector3) ColorBuffer {
	return ColorBuffer{Color: math32.Vector4FromVector3(c, 1)}
}

// UpdateColor sets the clear color, opaque.
func (cb *ColorBuffer) UpdateColor(c math32.Vector3) {
	cb.Color = math32.Vector4FromVector3(c, 1)
}

// Clear sets the driver clear color and clears the color
// and depth of the current framebuffer.
func (cb ColorBuffer) Clear(ctx *Context) {
	ctx.Driver.ClearColor(cb.Color.X, cb.Color.Y, cb.Color.Z, cb.Color.W)
	ctx.Driver.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
}
