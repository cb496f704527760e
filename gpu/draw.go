// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image/draw"

	"cogentcore.org/glrender/gl"
)

// Drawing provides commonly-used drawing functions.
// All operate on the current program, vertex array, and framebuffer.
type Drawing struct {
	ctx *Context
}

// Draw returns the drawing functions of the context.
func (c *Context) Draw() Drawing {
	return Drawing{ctx: c}
}

// Clear clears the given properties of the current render target
func (dr Drawing) Clear(color, depth bool) {
	bits := uint32(0)
	if color {
		bits |= gl.ColorBufferBit
	}
	if depth {
		bits |= gl.DepthBufferBit
	}
	dr.ctx.Driver.Clear(bits)
}

// DepthTest turns on / off depth testing
func (dr Drawing) DepthTest(on bool) {
	if on {
		dr.ctx.Driver.Enable(gl.DepthTest)
	} else {
		dr.ctx.Driver.Disable(gl.DepthTest)
	}
}

// Op sets the blend function based on go standard draw operation
// Src disables blending, and Over uses alpha-blending
func (dr Drawing) Op(op draw.Op) {
	if op == draw.Over {
		dr.ctx.Driver.Enable(gl.Blend)
		dr.ctx.Driver.BlendFunc(gl.One, gl.OneMinusSrcAlpha)
	} else {
		dr.ctx.Driver.Disable(gl.Blend)
	}
}

// Triangles uses all existing settings to draw Triangles
// (non-indexed)
func (dr Drawing) Triangles(start, count int) {
	dr.ctx.Driver.DrawArrays(gl.Triangles, int32(start), int32(count))
}

// TriangleStrips uses all existing settings to draw TriangleStrip
// (non-indexed)
func (dr Drawing) TriangleStrips(start, count int) {
	dr.ctx.Driver.DrawArrays(gl.TriangleStrip, int32(start), int32(count))
}

// TrianglesIndexed draws Triangles with count uint32 indexes from
// the element array buffer of the current vertex array.
func (dr Drawing) TrianglesIndexed(count int) {
	dr.ctx.Driver.DrawElements(gl.Triangles, int32(count), gl.UnsignedInt, 0)
}

// TriangleStripsIndexed draws a TriangleStrip with count uint32
// indexes from the element array buffer of the current vertex array.
func (dr Drawing) TriangleStripsIndexed(count int) {
	dr.ctx.Driver.DrawElements(gl.TriangleStrip, int32(count), gl.UnsignedInt, 0)
}
