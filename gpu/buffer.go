// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"unsafe"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/vertex"
)

// BufferKind selects the binding target of a [Buffer] at compile time.
type BufferKind interface {
	ArrayKind | ElementArrayKind

	// Target returns the driver binding target.
	Target() uint32

	String() string
}

// ArrayKind is the [BufferKind] of vertex data.
type ArrayKind struct{}

func (ArrayKind) Target() uint32 { return gl.ArrayBuffer }

func (ArrayKind) String() string { return "array buffer" }

// ElementArrayKind is the [BufferKind] of element indexes.
type ElementArrayKind struct{}

func (ElementArrayKind) Target() uint32 { return gl.ElementArrayBuffer }

func (ElementArrayKind) String() string { return "element array buffer" }

// Buffer owns one driver buffer of kind K.
type Buffer[K BufferKind] struct {
	ctx *Context
	h   handle
}

// ArrayBuffer is a buffer of vertex data.
type ArrayBuffer = Buffer[ArrayKind]

// ElementArrayBuffer is a buffer of element indexes.
type ElementArrayBuffer = Buffer[ElementArrayKind]

// NewBuffer allocates a new buffer of kind K.
func NewBuffer[K BufferKind](ctx *Context) (*Buffer[K], error) {
	var k K
	id := ctx.Driver.GenBuffer()
	if id == 0 {
		return nil, errors.Log(&AllocError{Kind: BufferHandle, Name: k.String()})
	}
	b := &Buffer[K]{ctx: ctx}
	b.h = adopt(ctx, b, BufferHandle, id, k.String())
	return b, nil
}

// NewArrayBuffer allocates a new buffer of vertex data.
func NewArrayBuffer(ctx *Context) (*ArrayBuffer, error) {
	return NewBuffer[ArrayKind](ctx)
}

// NewElementArrayBuffer allocates a new buffer of element indexes.
func NewElementArrayBuffer(ctx *Context) (*ElementArrayBuffer, error) {
	return NewBuffer[ElementArrayKind](ctx)
}

// Target returns the driver binding target of the buffer.
func (b *Buffer[K]) Target() uint32 {
	var k K
	return k.Target()
}

// Handle returns the driver handle, or 0 once released.
func (b *Buffer[K]) Handle() uint32 { return b.h.id() }

// Bind binds the buffer to its target.
func (b *Buffer[K]) Bind() {
	b.ctx.BindBuffer(b.Target(), b.h.id())
}

// Unbind resets the target of the buffer to no buffer.
func (b *Buffer[K]) Unbind() {
	b.ctx.BindBuffer(b.Target(), 0)
}

// StaticDrawData binds the buffer and uploads the given records as raw
// bytes, for drawing many times without modification. The driver keeps
// its own copy, so records may be modified after the call returns.
// The layout of T should be checked with [vertex.LayoutOf] if it
// is a vertex record.
func StaticDrawData[K BufferKind, T any](b *Buffer[K], records []T) {
	b.Bind()
	var ptr unsafe.Pointer
	if len(records) > 0 {
		ptr = unsafe.Pointer(unsafe.SliceData(records))
	}
	size := len(records) * int(unsafe.Sizeof(*new(T)))
	b.ctx.Driver.BufferData(b.Target(), size, ptr, gl.StaticDraw)
}

// StaticVertexData binds the buffer and uploads the given vertex records,
// after checking their layout with [vertex.LayoutOf].
func StaticVertexData[T any](b *ArrayBuffer, records []T) *vertex.Layout {
	l := vertex.LayoutOf[T]()
	StaticDrawData(b, records)
	return l
}

// StaticDrawBytes binds the buffer and uploads the given bytes.
func (b *Buffer[K]) StaticDrawBytes(data []byte) {
	StaticDrawData(b, data)
}

// Size binds the buffer and returns the size of its data store
// in bytes, as reported by the driver.
func (b *Buffer[K]) Size() int {
	b.Bind()
	return int(b.ctx.Driver.GetBufferParameteriv(b.Target(), gl.BufferSize))
}

// Release deletes the buffer. It is safe to call more than once.
func (b *Buffer[K]) Release() {
	b.h.release()
}
