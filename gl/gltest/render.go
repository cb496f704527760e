// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltest

import (
	"unsafe"

	"cogentcore.org/glrender/gl"
)

////////  Textures

func (d *Driver) GenTexture() uint32 {
	h := d.gen(Texture)
	if h != 0 {
		d.textures[h] = &TextureState{Params: map[uint32]int32{}}
	}
	return h
}

func (d *Driver) DeleteTexture(texture uint32) {
	if _, ok := d.textures[texture]; !ok {
		return
	}
	d.Mutations++
	delete(d.textures, texture)
	d.released[Texture]++
	for u, t := range d.textureUnits {
		if t == texture {
			d.textureUnits[u] = 0
		}
	}
	for _, fb := range d.framebuffers {
		if fb.Color == texture {
			fb.Color = 0
		}
	}
}

// maxTextureUnits is the number of texture units the driver reports.
const maxTextureUnits = 16

func (d *Driver) ActiveTexture(unit uint32) {
	if unit < gl.Texture0 || unit >= gl.Texture0+maxTextureUnits {
		d.fail(gl.InvalidEnum)
		return
	}
	d.Mutations++
	d.activeUnit = unit
}

func (d *Driver) BindTexture(target, texture uint32) {
	if target != gl.Texture2D {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.textures[texture]; texture != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	d.textureUnits[d.activeUnit] = texture
}

// TextureUnit returns the texture bound to the given unit, counted from 0.
func (d *Driver) TextureUnit(unit int) uint32 {
	return d.textureUnits[gl.Texture0+uint32(unit)]
}

func (d *Driver) boundTexture(target uint32) *TextureState {
	if target != gl.Texture2D {
		d.fail(gl.InvalidEnum)
		return nil
	}
	t := d.textures[d.textureUnits[d.activeUnit]]
	if t == nil {
		d.fail(gl.InvalidOperation)
	}
	return t
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	t := d.boundTexture(target)
	if t == nil {
		return
	}
	switch pname {
	case gl.TextureWrapS, gl.TextureWrapT, gl.TextureMinFilter, gl.TextureMagFilter:
	default:
		d.fail(gl.InvalidEnum)
		return
	}
	d.Mutations++
	t.Params[pname] = param
}

func (d *Driver) PixelStorei(pname uint32, param int32) {
	if pname != gl.UnpackAlignment {
		d.fail(gl.InvalidEnum)
		return
	}
	switch param {
	case 1, 2, 4, 8:
	default:
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	d.unpackAlign = param
}

func formatChannels(format uint32) int {
	switch format {
	case gl.Red:
		return 1
	case gl.RGB:
		return 3
	case gl.RGBA:
		return 4
	}
	return 0
}

func validInternalFormat(f int32) bool {
	switch f {
	case gl.Red, gl.RGB, gl.RGBA, gl.RGB8, gl.RGBA8:
		return true
	}
	return false
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	t := d.boundTexture(target)
	if t == nil {
		return
	}
	ch := formatChannels(format)
	if ch == 0 || !validInternalFormat(internalFormat) || xtype != gl.UnsignedByte {
		d.fail(gl.InvalidEnum)
		return
	}
	if level < 0 || width < 0 || height < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	if level > 0 {
		return
	}
	t.Width, t.Height = width, height
	t.InternalFormat, t.Format = internalFormat, format
	t.Mipmaps = false
	t.Pixels = nil
	if pixels != nil {
		row := int(width) * ch
		if a := int(d.unpackAlign); row%a != 0 {
			row += a - row%a
		}
		n := row * int(height)
		t.Pixels = make([]byte, n)
		copy(t.Pixels, unsafe.Slice((*byte)(pixels), n))
	}
}

func (d *Driver) GenerateMipmap(target uint32) {
	t := d.boundTexture(target)
	if t == nil {
		return
	}
	if t.Width == 0 || t.Height == 0 {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	t.Mipmaps = true
}

////////  Framebuffers

func (d *Driver) GenFramebuffer() uint32 {
	h := d.gen(Framebuffer)
	if h != 0 {
		d.framebuffers[h] = &FramebufferState{}
	}
	return h
}

func (d *Driver) DeleteFramebuffer(framebuffer uint32) {
	if _, ok := d.framebuffers[framebuffer]; !ok {
		return
	}
	d.Mutations++
	delete(d.framebuffers, framebuffer)
	d.released[Framebuffer]++
	if d.framebuffer == framebuffer {
		d.framebuffer = 0
	}
}

func (d *Driver) BindFramebuffer(target, framebuffer uint32) {
	if target != gl.Framebuffer {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.framebuffers[framebuffer]; framebuffer != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	d.framebuffer = framebuffer
}

func (d *Driver) boundFramebuffer(target uint32) *FramebufferState {
	if target != gl.Framebuffer {
		d.fail(gl.InvalidEnum)
		return nil
	}
	fb := d.framebuffers[d.framebuffer]
	if fb == nil {
		d.fail(gl.InvalidOperation)
	}
	return fb
}

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	fb := d.boundFramebuffer(target)
	if fb == nil {
		return
	}
	if attachment != gl.ColorAttachment0 || texTarget != gl.Texture2D {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.textures[texture]; texture != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	fb.Color = texture
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	fb := d.boundFramebuffer(target)
	if fb == nil {
		return
	}
	if attachment != gl.DepthAttachment || rbTarget != gl.Renderbuffer {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.renderbuffers[renderbuffer]; renderbuffer != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	fb.Depth = renderbuffer
}

// CheckFramebufferStatus reports complete when the bound framebuffer has
// a color texture with storage and a depth renderbuffer of the same size.
func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	if target != gl.Framebuffer {
		d.fail(gl.InvalidEnum)
		return 0
	}
	if d.framebuffer == 0 {
		return gl.FramebufferComplete
	}
	if d.ForceIncomplete {
		return gl.FramebufferUnsupported
	}
	fb := d.framebuffers[d.framebuffer]
	tex := d.textures[fb.Color]
	rb := d.renderbuffers[fb.Depth]
	switch {
	case tex == nil && rb == nil:
		return gl.FramebufferIncompleteMissingAttachment
	case tex == nil || rb == nil:
		return gl.FramebufferIncompleteAttachment
	case tex.Width == 0 || tex.Height == 0 || rb.Width == 0 || rb.Height == 0:
		return gl.FramebufferIncompleteAttachment
	case tex.Width != rb.Width || tex.Height != rb.Height:
		return gl.FramebufferUnsupported
	}
	return gl.FramebufferComplete
}

func (d *Driver) GenRenderbuffer() uint32 {
	h := d.gen(Renderbuffer)
	if h != 0 {
		d.renderbuffers[h] = &RenderbufferState{}
	}
	return h
}

func (d *Driver) DeleteRenderbuffer(renderbuffer uint32) {
	if _, ok := d.renderbuffers[renderbuffer]; !ok {
		return
	}
	d.Mutations++
	delete(d.renderbuffers, renderbuffer)
	d.released[Renderbuffer]++
	if d.renderbuffer == renderbuffer {
		d.renderbuffer = 0
	}
	for _, fb := range d.framebuffers {
		if fb.Depth == renderbuffer {
			fb.Depth = 0
		}
	}
}

func (d *Driver) BindRenderbuffer(target, renderbuffer uint32) {
	if target != gl.Renderbuffer {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.renderbuffers[renderbuffer]; renderbuffer != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	d.renderbuffer = renderbuffer
}

func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	if target != gl.Renderbuffer {
		d.fail(gl.InvalidEnum)
		return
	}
	switch internalFormat {
	case gl.DepthComponent32, gl.DepthComponent32F, gl.RGBA8:
	default:
		d.fail(gl.InvalidEnum)
		return
	}
	if width < 0 || height < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	rb := d.renderbuffers[d.renderbuffer]
	if rb == nil {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	rb.InternalFormat, rb.Width, rb.Height = internalFormat, width, height
}

////////  Drawing

func (d *Driver) Viewport(x, y, width, height int32) {
	if width < 0 || height < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.Mutations++
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask uint32) {
	if mask&^(gl.ColorBufferBit|gl.DepthBufferBit) != 0 {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	d.Clears = append(d.Clears, mask)
}

func validCapability(c uint32) bool {
	return c == gl.DepthTest || c == gl.CullFace || c == gl.Blend
}

func (d *Driver) Enable(capability uint32) {
	if !validCapability(capability) {
		d.fail(gl.InvalidEnum)
		return
	}
	d.Mutations++
	d.Enabled[capability] = true
}

func (d *Driver) Disable(capability uint32) {
	if !validCapability(capability) {
		d.fail(gl.InvalidEnum)
		return
	}
	d.Mutations++
	delete(d.Enabled, capability)
}

func (d *Driver) BlendFunc(sfactor, dfactor uint32) {
	d.Mutations++
}

func (d *Driver) draw(mode uint32, count int32, indexed bool) {
	if mode != gl.Triangles && mode != gl.TriangleStrip {
		d.fail(gl.InvalidEnum)
		return
	}
	if count < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	if d.vertexArray == 0 || d.program == 0 {
		d.fail(gl.InvalidOperation)
		return
	}
	if indexed && d.vertexArrays[d.vertexArray].ElementArray == 0 {
		d.fail(gl.InvalidOperation)
		return
	}
	if d.framebuffer != 0 && d.CheckFramebufferStatus(gl.Framebuffer) != gl.FramebufferComplete {
		d.fail(gl.InvalidFramebufferOperation)
		return
	}
	d.Mutations++
	d.Draws = append(d.Draws, DrawCall{Mode: mode, Count: count, Indexed: indexed,
		Program: d.program, VertexArray: d.vertexArray, Framebuffer: d.framebuffer})
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.draw(mode, count, false)
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	if xtype != gl.UnsignedByte && xtype != gl.UnsignedShort && xtype != gl.UnsignedInt {
		d.fail(gl.InvalidEnum)
		return
	}
	d.draw(mode, count, true)
}
