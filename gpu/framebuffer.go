// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gl"
)

// Framebuffer is an offscreen render target. It owns a framebuffer,
// the color texture it renders into, and a depth renderbuffer. Either
// all three are live or, after a failed build, none of them are.
type Framebuffer struct {
	ctx   *Context
	fbo   handle
	depth handle
	color *Texture
	size  image.Point
}

// NewFramebuffer builds a new framebuffer of the given size in pixels.
// Allocation failures return an error. A framebuffer that the driver
// reports as incomplete is a driver contract violation and panics with a
// [*gl.DriverError]. It leaves no framebuffer, renderbuffer, or texture bound.
func NewFramebuffer(ctx *Context, width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{ctx: ctx}
	if err := fb.build(image.Pt(width, height)); err != nil {
		return nil, err
	}
	return fb, nil
}

func (fb *Framebuffer) build(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return errors.Log(fmt.Errorf("gpu: invalid framebuffer size %v", size))
	}
	ctx, d := fb.ctx, fb.ctx.Driver
	fb.size = size
	id := d.GenFramebuffer()
	if id == 0 {
		return errors.Log(&AllocError{Kind: FramebufferHandle, Name: "framebuffer"})
	}
	fb.fbo = adopt(ctx, fb, FramebufferHandle, id, "framebuffer")

	color, err := newTexture(ctx, "framebuffer color", size, 3, gl.RGB, gl.ClampToEdge, nil, false)
	if err != nil {
		fb.free()
		return err
	}
	fb.color = color

	rb := d.GenRenderbuffer()
	if rb == 0 {
		fb.free()
		return errors.Log(&AllocError{Kind: RenderbufferHandle, Name: "framebuffer depth"})
	}
	fb.depth = adopt(ctx, fb, RenderbufferHandle, rb, "framebuffer depth")

	ctx.BindFramebuffer(id)
	d.FramebufferTexture2D(gl.Framebuffer, gl.ColorAttachment0, gl.Texture2D, color.Handle(), 0)
	ctx.BindRenderbuffer(rb)
	d.RenderbufferStorage(gl.Renderbuffer, gl.DepthComponent32, int32(size.X), int32(size.Y))
	d.FramebufferRenderbuffer(gl.Framebuffer, gl.DepthAttachment, gl.Renderbuffer, rb)
	status := d.CheckFramebufferStatus(gl.Framebuffer)
	ctx.BindRenderbuffer(0)
	ctx.BindFramebuffer(0)
	if status != gl.FramebufferComplete {
		fb.free()
		panic(&gl.DriverError{Op: "framebuffer", Kind: gl.KindIncompleteFramebuffer, Code: status})
	}
	ctx.CheckError("framebuffer")
	return nil
}

// free releases whichever of the three handles are live.
func (fb *Framebuffer) free() {
	fb.depth.release()
	if fb.color != nil {
		fb.color.Release()
		fb.color = nil
	}
	fb.fbo.release()
}

// Resize releases the framebuffer and builds a new one of the given
// size, unless the size is unchanged. It must not be called while the
// framebuffer is bound for drawing.
func (fb *Framebuffer) Resize(width, height int) error {
	size := image.Pt(width, height)
	if size == fb.size && fb.fbo.id() != 0 {
		return nil
	}
	fb.free()
	return fb.build(size)
}

// Handle returns the driver framebuffer handle, or 0 once released.
func (fb *Framebuffer) Handle() uint32 { return fb.fbo.id() }

// DepthHandle returns the driver handle of the depth renderbuffer.
func (fb *Framebuffer) DepthHandle() uint32 { return fb.depth.id() }

// ColorTexture returns the texture that the framebuffer renders into.
// It is owned by the framebuffer, and is replaced by [Framebuffer.Resize].
func (fb *Framebuffer) ColorTexture() *Texture { return fb.color }

// Size returns the size of the framebuffer in pixels.
func (fb *Framebuffer) Size() image.Point { return fb.size }

// Bounds returns the bounds of the framebuffer's image. It is equal to
// image.Rectangle{Max: fb.Size()}.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rectangle{Max: fb.size}
}

// Bind directs subsequent drawing into the framebuffer,
// and sets the viewport to cover all of it.
func (fb *Framebuffer) Bind() {
	fb.ctx.BindFramebuffer(fb.fbo.id())
	fb.ctx.Driver.Viewport(0, 0, int32(fb.size.X), int32(fb.size.Y))
}

// Detach directs subsequent drawing back to the default framebuffer.
func (fb *Framebuffer) Detach() {
	fb.ctx.BindFramebuffer(0)
}

// Status returns the completeness status that the driver reports for
// the framebuffer, such as [gl.FramebufferComplete]. The framebuffer
// binding is restored afterward.
func (fb *Framebuffer) Status() uint32 {
	prev := fb.ctx.CurrentFramebuffer()
	fb.ctx.BindFramebuffer(fb.fbo.id())
	status := fb.ctx.Driver.CheckFramebufferStatus(gl.Framebuffer)
	fb.ctx.BindFramebuffer(prev)
	return status
}

// Release deletes the framebuffer, its color texture, and its depth
// renderbuffer. It is safe to call more than once.
func (fb *Framebuffer) Release() {
	fb.free()
}
