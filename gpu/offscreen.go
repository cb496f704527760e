// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"embed"

	"cogentcore.org/glrender/resources"
	"cogentcore.org/glrender/vertex"
)

//go:generate vertexgen

// Shaders are the built-in shaders, used by [Offscreen]
// when no resources are given.
//
//go:embed shaders/*.vert shaders/*.frag
var Shaders embed.FS

// OffscreenProgram is the name of the program that [Offscreen]
// draws its framebuffer to the screen with.
const OffscreenProgram = "shaders/offscreen"

// quadVertex is a corner of the quad that [Offscreen] draws.
//
//gpu:vertex
type quadVertex struct {
	Pos vertex.F32F32F32 `location:"0"`
	Tex vertex.F32F32    `location:"1"`
}

// quad is the screen-filling quad, with the corners in the order
// bottom right, top right, top left, bottom left.
var quad = []quadVertex{
	{vertex.Vec3(1, -1, -0.5), vertex.Vec2(1, 0)},
	{vertex.Vec3(1, 1, -0.5), vertex.Vec2(1, 1)},
	{vertex.Vec3(-1, 1, -0.5), vertex.Vec2(0, 1)},
	{vertex.Vec3(-1, -1, -0.5), vertex.Vec2(0, 0)},
}

var quadIndexes = []uint32{0, 1, 2, 0, 2, 3}

// Offscreen is a [Framebuffer] that a scene is rendered into, and a
// screen-filling quad that draws its color texture to the current
// framebuffer.
type Offscreen struct {
	ctx *Context

	// Framebuffer is the render target.
	Framebuffer *Framebuffer

	program *Program
	vbo     *ArrayBuffer
	ebo     *ElementArrayBuffer
	vao     *VertexArray
}

// NewOffscreen builds a new offscreen target of the given size. The
// output program is built from res, or from [Shaders] if res is nil.
func NewOffscreen(ctx *Context, res *resources.Resources, width, height int) (*Offscreen, error) {
	if res == nil {
		res = resources.New(Shaders)
	}
	fb, err := NewFramebuffer(ctx, width, height)
	if err != nil {
		return nil, err
	}
	o := &Offscreen{ctx: ctx, Framebuffer: fb}
	if err := o.buildQuad(res); err != nil {
		o.Release()
		return nil, err
	}
	return o, nil
}

func (o *Offscreen) buildQuad(res *resources.Resources) error {
	var err error
	o.program, err = ProgramFromResource(o.ctx, res, OffscreenProgram)
	if err != nil {
		return err
	}
	if o.vbo, err = NewArrayBuffer(o.ctx); err != nil {
		return err
	}
	layout := StaticVertexData(o.vbo, quad)
	o.vbo.Unbind()
	if o.ebo, err = NewElementArrayBuffer(o.ctx); err != nil {
		return err
	}
	StaticDrawData(o.ebo, quadIndexes)
	o.ebo.Unbind()
	if o.vao, err = NewVertexArray(o.ctx); err != nil {
		return err
	}
	o.vao.Configure(layout, o.vbo, o.ebo)
	return nil
}

// Program returns the program that draws the framebuffer to the screen.
func (o *Offscreen) Program() *Program { return o.program }

// Resize rebuilds the framebuffer at the given size.
func (o *Offscreen) Resize(width, height int) error {
	return o.Framebuffer.Resize(width, height)
}

// Bind directs subsequent drawing into the framebuffer.
func (o *Offscreen) Bind() { o.Framebuffer.Bind() }

// Detach directs subsequent drawing back to the default framebuffer.
func (o *Offscreen) Detach() { o.Framebuffer.Detach() }

// RenderOutput draws the color texture of the framebuffer over all of
// the current framebuffer. It leaves no program, vertex array, or
// texture bound.
func (o *Offscreen) RenderOutput() {
	o.ctx.CheckError("offscreen render")
	o.program.Use()
	o.program.UploadTextureSlot("Frame", 0)
	o.vao.Bind()
	tex := o.Framebuffer.ColorTexture()
	tex.Bind(0)
	o.ctx.Draw().TrianglesIndexed(len(quadIndexes))
	tex.Detach()
	o.vao.Unbind()
	o.program.Detach()
	o.ctx.CheckError("offscreen render")
}

// Release deletes the framebuffer and the quad. It is safe to call
// more than once.
func (o *Offscreen) Release() {
	o.Framebuffer.Release()
	if o.program != nil {
		o.program.Release()
	}
	if o.vao != nil {
		o.vao.Release()
	}
	if o.vbo != nil {
		o.vbo.Release()
	}
	if o.ebo != nil {
		o.ebo.Release()
	}
}
