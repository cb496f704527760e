// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"slices"
	"testing"
	"unsafe"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"cogentcore.org/glrender/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colorVertex struct {
	Pos   vertex.F32F32F32           `location:"0"`
	Color vertex.U2U10U10U10RevFloat `location:"1"`
}

func TestBindUnbind(t *testing.T) {
	d, ctx := newTestContext(t)
	vbo, err := NewArrayBuffer(ctx)
	require.NoError(t, err)
	ebo, err := NewElementArrayBuffer(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(gl.ArrayBuffer), vbo.Target())
	assert.Equal(t, uint32(gl.ElementArrayBuffer), ebo.Target())

	vbo.Bind()
	ebo.Bind()
	assert.Equal(t, int32(vbo.Handle()), d.GetIntegerv(gl.ArrayBufferBinding))
	assert.Equal(t, int32(ebo.Handle()), d.GetIntegerv(gl.ElementArrayBufferBinding))
	for range 2 {
		vbo.Unbind()
		ebo.Unbind()
		assert.Zero(t, d.GetIntegerv(gl.ArrayBufferBinding))
		assert.Zero(t, d.GetIntegerv(gl.ElementArrayBufferBinding))
		assert.Zero(t, ctx.CurrentBuffer(gl.ArrayBuffer))
		assert.Zero(t, ctx.CurrentBuffer(gl.ElementArrayBuffer))
	}
	ctx.EndFrame()
}

func TestStaticDrawData(t *testing.T) {
	d, ctx := newTestContext(t)
	vbo, err := NewArrayBuffer(ctx)
	require.NoError(t, err)
	defer vbo.Release()

	verts := []colorVertex{
		{vertex.Vec3(0.5, -0.5, 0), vertex.Packed(1, 0, 0, 1)},
		{vertex.Vec3(-0.5, -0.5, 0), vertex.Packed(0, 1, 0, 1)},
		{vertex.Vec3(0, 0.5, 0), vertex.Packed(0, 0, 1, 1)},
	}
	layout := StaticVertexData(vbo, verts)
	assert.Equal(t, uintptr(16), layout.Stride)
	assert.Equal(t, len(verts)*int(unsafe.Sizeof(colorVertex{})), vbo.Size())
	data := d.Buffer(vbo.Handle()).Data
	assert.Equal(t, unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), 48), data)
	assert.Equal(t, uint32(gl.StaticDraw), d.Buffer(vbo.Handle()).Usage)

	before := slices.Clone(data)
	verts[0].Pos = vertex.Vec3(9, 9, 9)
	assert.Equal(t, before, d.Buffer(vbo.Handle()).Data, "the driver keeps its own copy")

	vbo.StaticDrawBytes(nil)
	assert.Zero(t, vbo.Size())

	ebo, err := NewElementArrayBuffer(ctx)
	require.NoError(t, err)
	StaticDrawData(ebo, []uint32{0, 1, 2})
	assert.Equal(t, 12, ebo.Size())
	ebo.Release()
	ctx.EndFrame()
}

func TestBufferRelease(t *testing.T) {
	d, ctx := newTestContext(t)
	b, err := NewArrayBuffer(ctx)
	require.NoError(t, err)
	b.Bind()
	b.Release()
	b.Release()
	assert.Zero(t, b.Handle())
	assert.Equal(t, 1, d.Released(gltest.Buffer))
	assert.Zero(t, ctx.CurrentBuffer(gl.ArrayBuffer))

	d.FailAlloc(gltest.Buffer, 1)
	_, err = NewElementArrayBuffer(ctx)
	var aerr *AllocError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, BufferHandle, aerr.Kind)
	assert.Equal(t, "gpu: element array buffer: failed to allocate a buffer handle", err.Error())
}

func TestVertexArrayConfigure(t *testing.T) {
	d, ctx := newTestContext(t)
	vbo, err := NewArrayBuffer(ctx)
	require.NoError(t, err)
	ebo, err := NewElementArrayBuffer(ctx)
	require.NoError(t, err)
	va, err := NewVertexArray(ctx)
	require.NoError(t, err)

	layout := vertex.LayoutOf[colorVertex]()
	va.Configure(layout, vbo, ebo)
	assert.Zero(t, d.GetIntegerv(gl.VertexArrayBinding))
	assert.Zero(t, d.GetIntegerv(gl.ArrayBufferBinding))
	assert.Zero(t, d.GetIntegerv(gl.ElementArrayBufferBinding))

	st := d.VertexArray(va.Handle())
	assert.Equal(t, ebo.Handle(), st.ElementArray)
	require.Len(t, st.Attribs, 2)
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 3, Type: gl.Float, Stride: 16, Offset: 0, Buffer: vbo.Handle()}, *st.Attribs[0])
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 4, Type: gl.UnsignedInt2101010Rev, Normalized: true, Stride: 16, Offset: 12, Buffer: vbo.Handle()}, *st.Attribs[1])

	va.Bind()
	assert.Equal(t, ebo.Handle(), ctx.CurrentBuffer(gl.ElementArrayBuffer))
	assert.Equal(t, int32(ebo.Handle()), d.GetIntegerv(gl.ElementArrayBufferBinding))
	va.Unbind()
	assert.Zero(t, ctx.CurrentBuffer(gl.ElementArrayBuffer))

	va.Release()
	vbo.Release()
	ebo.Release()
	assert.Zero(t, d.LiveTotal())
	ctx.EndFrame()
}
