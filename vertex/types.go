// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"fmt"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/math32"
)

// Format is the binding contract of one vertex attribute: how many
// components it has, their driver data type, and how the shader
// receives them.
type Format struct {

	// Components is the number of components, 1 to 4.
	Components int32

	// Type is the driver data type of each component, such as [gl.Float].
	Type uint32

	// Normalized maps integer data to [0,1] or [-1,1] on the float path.
	Normalized bool

	// Integer passes integer data to the shader unconverted,
	// using the integer attribute path.
	Integer bool

	// Size is the size of the attribute in bytes.
	Size uintptr
}

func (f Format) String() string {
	path := "float"
	switch {
	case f.Integer:
		path = "integer"
	case f.Normalized:
		path = "normalized"
	}
	return fmt.Sprintf("%d x 0x%04X %s (%d bytes)", f.Components, f.Type, path, f.Size)
}

// Attrib is implemented by the primitive layout types that
// vertex record fields are made of.
type Attrib interface {
	AttribFormat() Format
}

// F32 is a single float attribute.
type F32 float32

func (F32) AttribFormat() Format {
	return Format{Components: 1, Type: gl.Float, Size: 4}
}

// F32F32 is a two-float attribute, such as a texture coordinate.
type F32F32 [2]float32

func (F32F32) AttribFormat() Format {
	return Format{Components: 2, Type: gl.Float, Size: 8}
}

// Vec2 returns a two-float attribute.
func Vec2(x, y float32) F32F32 { return F32F32{x, y} }

// FromVector2 returns a two-float attribute from v.
func FromVector2(v math32.Vector2) F32F32 { return F32F32{v.X, v.Y} }

// F32F32F32 is a three-float attribute, such as a position or a color.
type F32F32F32 [3]float32

func (F32F32F32) AttribFormat() Format {
	return Format{Components: 3, Type: gl.Float, Size: 12}
}

// Vec3 returns a three-float attribute.
func Vec3(x, y, z float32) F32F32F32 { return F32F32F32{x, y, z} }

// FromVector3 returns a three-float attribute from v.
func FromVector3(v math32.Vector3) F32F32F32 { return F32F32F32{v.X, v.Y, v.Z} }

// F32F32F32F32 is a four-float attribute.
type F32F32F32F32 [4]float32

func (F32F32F32F32) AttribFormat() Format {
	return Format{Components: 4, Type: gl.Float, Size: 16}
}

// Vec4 returns a four-float attribute.
func Vec4(x, y, z, w float32) F32F32F32F32 { return F32F32F32F32{x, y, z, w} }

// FromVector4 returns a four-float attribute from v.
func FromVector4(v math32.Vector4) F32F32F32F32 { return F32F32F32F32{v.X, v.Y, v.Z, v.W} }

// I8 is a signed byte attribute that reaches the shader as an int.
type I8 int8

func (I8) AttribFormat() Format {
	return Format{Components: 1, Type: gl.Byte, Integer: true, Size: 1}
}

// Byte returns a signed byte attribute.
func Byte(v int8) I8 { return I8(v) }

// I8Float is a signed byte attribute that reaches the shader as a
// float normalized to [-1, 1].
type I8Float int8

func (I8Float) AttribFormat() Format {
	return Format{Components: 1, Type: gl.Byte, Normalized: true, Size: 1}
}

// ByteFloat returns a normalized signed byte attribute.
func ByteFloat(v int8) I8Float { return I8Float(v) }
