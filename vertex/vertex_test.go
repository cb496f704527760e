// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"testing"
	"unsafe"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"cogentcore.org/glrender/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colorVertex struct {
	Pos   F32F32F32 `location:"0"`
	Color F32F32F32 `location:"1"`
}

type mixedVertex struct {
	Pos   F32F32F32           `location:"0"`
	Color U2U10U10U10RevFloat `location:"1"`
	Tex   F32F32              `location:"2"`
	Layer I8                  `location:"3"`
	Alpha I8Float             `location:"4"`
	Pad   I8                  `location:"5"`
	Mask  I8                  `location:"6"`
}

type emptyVertex struct{}

type untaggedVertex struct {
	Pos   F32F32F32 `location:"0"`
	Color F32F32F32
}

type interiorPadding struct {
	Layer I8  `location:"0"`
	Value F32 `location:"1"`
}

type trailingPadding struct {
	Pos   F32F32F32 `location:"0"`
	Layer I8        `location:"1"`
}

type duplicateLocation struct {
	Pos   F32F32F32 `location:"0"`
	Color F32F32F32 `location:"0"`
}

type plainField struct {
	Pos   F32F32F32  `location:"0"`
	Color [3]float32 `location:"1"`
}

type badLocation struct {
	Pos F32F32F32 `location:"first"`
}

func TestDescribe(t *testing.T) {
	l, err := Describe[colorVertex]()
	require.NoError(t, err)
	assert.Equal(t, "colorVertex", l.Name)
	assert.Equal(t, uintptr(24), l.Stride)
	assert.Equal(t, []Attribute{
		{Name: "Pos", Location: 0, Format: F32F32F32{}.AttribFormat(), Offset: 0},
		{Name: "Color", Location: 1, Format: F32F32F32{}.AttribFormat(), Offset: 12},
	}, l.Attributes)

	l, err = Describe[mixedVertex]()
	require.NoError(t, err)
	assert.Equal(t, unsafe.Sizeof(mixedVertex{}), l.Stride)
	offsets := []uintptr{}
	for _, a := range l.Attributes {
		offsets = append(offsets, a.Offset)
	}
	assert.Equal(t, []uintptr{0, 12, 16, 24, 25, 26, 27}, offsets)
}

func TestDescribeEmpty(t *testing.T) {
	l, err := Describe[emptyVertex]()
	require.NoError(t, err)
	assert.Empty(t, l.Attributes)
	assert.Zero(t, l.Stride)

	d := gltest.New()
	l.Bind(d)
	assert.Zero(t, d.Mutations)
}

func TestDescribeErrors(t *testing.T) {
	check := func(err, want error, field string) {
		t.Helper()
		var le *LayoutError
		if assert.ErrorAs(t, err, &le) {
			assert.ErrorIs(t, err, want)
			assert.Equal(t, field, le.Field)
		}
	}
	_, err := Describe[untaggedVertex]()
	check(err, ErrMissingLocation, "Color")
	assert.EqualError(t, err, "vertex: layout of untaggedVertex: field Color: missing location tag")

	_, err = Describe[interiorPadding]()
	check(err, ErrPadding, "Value")

	_, err = Describe[trailingPadding]()
	check(err, ErrPadding, "")

	_, err = Describe[duplicateLocation]()
	check(err, ErrDuplicateLocation, "Color")

	_, err = Describe[plainField]()
	check(err, ErrNotAttrib, "Color")

	_, err = Describe[badLocation]()
	check(err, ErrInvalidLocation, "Pos")

	_, err = Describe[int]()
	check(err, ErrNotStruct, "")

	assert.Panics(t, func() { MustDescribe[trailingPadding]() })
}

func TestBind(t *testing.T) {
	d := gltest.New()
	va, vb := d.GenVertexArray(), d.GenBuffer()
	d.BindVertexArray(va)
	d.BindBuffer(gl.ArrayBuffer, vb)

	l := MustDescribe[mixedVertex]()
	l.Bind(d)
	assert.Equal(t, uint32(gl.NoError), d.GetError())

	attribs := d.VertexArray(va).Attribs
	assert.Len(t, attribs, 7)
	pos := attribs[0]
	assert.True(t, pos.Enabled)
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 3, Type: gl.Float, Stride: 28, Offset: 0, Buffer: vb}, *pos)
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 4, Type: gl.UnsignedInt2101010Rev, Normalized: true, Stride: 28, Offset: 12, Buffer: vb}, *attribs[1])
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 1, Type: gl.Byte, Integer: true, Stride: 28, Offset: 24, Buffer: vb}, *attribs[3])
	assert.Equal(t, gltest.Attrib{Enabled: true, Size: 1, Type: gl.Byte, Normalized: true, Stride: 28, Offset: 25, Buffer: vb}, *attribs[4])
}

type generatedVertex struct {
	Pos F32F32F32 `location:"3"`
}

var generatedLayout = &Layout{Name: "generatedVertex", Stride: 12, Attributes: []Attribute{
	{Name: "Pos", Location: 3, Format: F32F32F32{}.AttribFormat()},
}}

func (generatedVertex) VertexLayout() *Layout { return generatedLayout }

func TestLayoutOf(t *testing.T) {
	assert.Same(t, generatedLayout, LayoutOf[generatedVertex]())
	l := LayoutOf[colorVertex]()
	assert.Same(t, l, LayoutOf[colorVertex]())
	assert.Equal(t, uintptr(24), l.Stride)
}

func TestPacked(t *testing.T) {
	p := Packed(1, 0, 0.5, 1)
	assert.Equal(t, uint32(3<<30|512<<20|0<<10|1023), p.Raw())
	assert.Equal(t, float32(1), p.X())
	assert.Equal(t, float32(0), p.Y())
	assert.InDelta(t, 0.5, p.Z(), 1.0/1023)
	assert.Equal(t, float32(1), p.W())

	// out of range input is clamped
	assert.Equal(t, Packed(1, 0, 1, 0), Packed(2, -1, 7, -3))

	p.SetY(1)
	p.SetW(1.0 / 3)
	assert.Equal(t, float32(1), p.Y())
	assert.InDelta(t, 1.0/3, p.W(), 1e-6)
	assert.Equal(t, float32(1), p.X(), "other channels unchanged")

	p.SetXYZ(0, 0, 0)
	assert.Equal(t, uint32(1<<30), p.Raw())
	assert.Equal(t, p, FromRaw(p.Raw()))

	c := PackedFromVector4(math32.Vec4(0.25, 0.5, 0.75, 2.0/3))
	v := c.Vector4()
	assert.InDelta(t, 0.25, v.X, 1.0/1023)
	assert.InDelta(t, 0.5, v.Y, 1.0/1023)
	assert.InDelta(t, 0.75, v.Z, 1.0/1023)
	assert.InDelta(t, 2.0/3, v.W, 1e-6)
}

func TestFormats(t *testing.T) {
	for _, a := range []Attrib{F32(0), F32F32{}, F32F32F32{}, F32F32F32F32{}, I8(0), I8Float(0), U2U10U10U10RevFloat(0)} {
		f := a.AttribFormat()
		assert.LessOrEqual(t, f.Components, int32(4))
		assert.NotZero(t, f.Size)
	}
	assert.Equal(t, "4 x 0x8368 normalized (4 bytes)", U2U10U10U10RevFloat(0).AttribFormat().String())
	assert.Equal(t, "1 x 0x1400 integer (1 bytes)", I8(0).AttribFormat().String())
	assert.Equal(t, Vec3(1, 2, 3), FromVector3(math32.Vec3(1, 2, 3)))
	assert.Equal(t, Vec2(1, 2), FromVector2(math32.Vec2(1, 2)))
	assert.Equal(t, Vec4(1, 2, 3, 4), FromVector4(math32.Vec4(1, 2, 3, 4)))
	assert.Equal(t, I8(-7), Byte(-7))
	assert.Equal(t, I8Float(127), ByteFloat(127))
	assert.True(t, ByteFloat(0).AttribFormat().Normalized)
	assert.True(t, Byte(0).AttribFormat().Integer)
}
