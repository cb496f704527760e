// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/math32"
)

// U2U10U10U10RevFloat is a four-component attribute packed into 32 bits:
// three 10-bit channels x, y, z from the low bits up, and a 2-bit
// channel w in the top bits. Each channel is an unsigned fraction that
// reaches the shader as a float in [0, 1].
type U2U10U10U10RevFloat uint32

func (U2U10U10U10RevFloat) AttribFormat() Format {
	return Format{Components: 4, Type: gl.UnsignedInt2101010Rev, Normalized: true, Size: 4}
}

const (
	max10 = 1<<10 - 1
	max2  = 1<<2 - 1
)

func pack(c float32, maxv uint32) uint32 {
	return uint32(math32.Round(math32.Clamp(c, 0, 1) * float32(maxv)))
}

// Packed returns the packed form of the given channels,
// each clamped to [0, 1] and rounded to the nearest step.
func Packed(x, y, z, w float32) U2U10U10U10RevFloat {
	return U2U10U10U10RevFloat(pack(w, max2)<<30 | pack(z, max10)<<20 | pack(y, max10)<<10 | pack(x, max10))
}

// PackedFromVector4 returns the packed form of v, such as an RGBA color.
func PackedFromVector4(v math32.Vector4) U2U10U10U10RevFloat {
	return Packed(v.X, v.Y, v.Z, v.W)
}

// FromRaw returns the attribute with the given packed bits.
func FromRaw(raw uint32) U2U10U10U10RevFloat { return U2U10U10U10RevFloat(raw) }

// Raw returns the packed bits.
func (p U2U10U10U10RevFloat) Raw() uint32 { return uint32(p) }

func (p U2U10U10U10RevFloat) channel(shift, maxv uint32) float32 {
	return float32((uint32(p)>>shift)&maxv) / float32(maxv)
}

func (p *U2U10U10U10RevFloat) setChannel(shift, maxv uint32, c float32) {
	*p = U2U10U10U10RevFloat(uint32(*p)&^(maxv<<shift) | pack(c, maxv)<<shift)
}

// X returns the first 10-bit channel.
func (p U2U10U10U10RevFloat) X() float32 { return p.channel(0, max10) }

// Y returns the second 10-bit channel.
func (p U2U10U10U10RevFloat) Y() float32 { return p.channel(10, max10) }

// Z returns the third 10-bit channel.
func (p U2U10U10U10RevFloat) Z() float32 { return p.channel(20, max10) }

// W returns the 2-bit channel.
func (p U2U10U10U10RevFloat) W() float32 { return p.channel(30, max2) }

// SetX sets the first 10-bit channel, clamped to [0, 1].
func (p *U2U10U10U10RevFloat) SetX(x float32) { p.setChannel(0, max10, x) }

// SetY sets the second 10-bit channel, clamped to [0, 1].
func (p *U2U10U10U10RevFloat) SetY(y float32) { p.setChannel(10, max10, y) }

// SetZ sets the third 10-bit channel, clamped to [0, 1].
func (p *U2U10U10U10RevFloat) SetZ(z float32) { p.setChannel(20, max10, z) }

// SetW sets the 2-bit channel, clamped to [0, 1].
func (p *U2U10U10U10RevFloat) SetW(w float32) { p.setChannel(30, max2, w) }

// SetXYZ sets the three 10-bit channels.
func (p *U2U10U10U10RevFloat) SetXYZ(x, y, z float32) {
	p.SetX(x)
	p.SetY(y)
	p.SetZ(z)
}

// Vector4 returns the unpacked channels.
func (p U2U10U10U10RevFloat) Vector4() math32.Vector4 {
	return math32.Vec4(p.X(), p.Y(), p.Z(), p.W())
}
