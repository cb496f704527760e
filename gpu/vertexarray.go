// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/vertex"
)

// VertexArray owns one driver vertex array object, which records the
// attribute bindings and element array buffer used for drawing.
type VertexArray struct {
	ctx *Context
	h   handle
}

// NewVertexArray allocates a new vertex array.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	id := ctx.Driver.GenVertexArray()
	if id == 0 {
		return nil, errors.Log(&AllocError{Kind: VertexArrayHandle, Name: "vertex array"})
	}
	va := &VertexArray{ctx: ctx}
	va.h = adopt(ctx, va, VertexArrayHandle, id, "vertex array")
	return va, nil
}

// Handle returns the driver handle, or 0 once released.
func (va *VertexArray) Handle() uint32 { return va.h.id() }

// Bind binds the vertex array.
func (va *VertexArray) Bind() {
	va.ctx.BindVertexArray(va.h.id())
}

// Unbind resets the vertex array binding to none.
func (va *VertexArray) Unbind() {
	va.ctx.BindVertexArray(0)
}

// Configure records the given layout of the vertex data in vbo, and
// the element indexes in ebo if it is non-nil, in the vertex array.
// It leaves no vertex array or array buffer bound.
func (va *VertexArray) Configure(layout *vertex.Layout, vbo *ArrayBuffer, ebo *ElementArrayBuffer) {
	va.Bind()
	vbo.Bind()
	if ebo != nil {
		ebo.Bind()
	}
	layout.Bind(va.ctx.Driver)
	va.Unbind()
	vbo.Unbind()
}

// Release deletes the vertex array. It is safe to call more than once.
func (va *VertexArray) Release() {
	va.h.release()
}
