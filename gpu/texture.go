// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"math"
	"unsafe"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/resources"
)

// ErrTextureSize is returned for texture dimensions the driver cannot hold.
var ErrTextureSize = errors.New("invalid texture size")

// Texture owns one driver 2D texture.
type Texture struct {
	ctx  *Context
	h    handle
	name string

	// upload metadata
	size     image.Point
	channels int

	// unit is the texture unit of the last Bind.
	unit int
}

// NewTexture decodes the given image file data and uploads it as a
// new mipmapped texture. Data that is not a decodable image returns a
// [*TextureError], and an image without 3 or 4 channels returns an
// [*UnsupportedFormatError].
func NewTexture(ctx *Context, name string, data []byte) (*Texture, error) {
	img, format, err := DecodeImage(data)
	if err != nil {
		return nil, errors.Log(&TextureError{Name: name, Err: err})
	}
	ch, err := FileChannels(data, format)
	if err != nil {
		return nil, errors.Log(&TextureError{Name: name, Err: err})
	}
	return newTextureFromImage(ctx, name, img, ch)
}

// NewTextureFromImage uploads the given image as a new mipmapped texture.
// The channel count comes from the image type, see [ImageChannels].
func NewTextureFromImage(ctx *Context, name string, img image.Image) (*Texture, error) {
	return newTextureFromImage(ctx, name, img, ImageChannels(img))
}

func newTextureFromImage(ctx *Context, name string, img image.Image, ch int) (*Texture, error) {
	if ch != 3 && ch != 4 {
		return nil, errors.Log(&UnsupportedFormatError{Name: name, Channels: ch})
	}
	sz := img.Bounds().Size()
	return NewTextureFromPixels(ctx, name, sz.X, sz.Y, ch, ImagePixels(img, ch))
}

// NewTextureFromPixels uploads the given tightly packed 8-bit pixel
// rows, starting at the bottom row, as a new mipmapped texture. Three
// channels upload as RGB, and four as RGBA; any other count returns an
// [*UnsupportedFormatError] before a handle is allocated.
func NewTextureFromPixels(ctx *Context, name string, width, height, channels int, pix []byte) (*Texture, error) {
	var format uint32
	switch channels {
	case 3:
		format = gl.RGB
	case 4:
		format = gl.RGBA
	default:
		return nil, errors.Log(&UnsupportedFormatError{Name: name, Channels: channels})
	}
	if width <= 0 || height <= 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, errors.Log(&TextureError{Name: name, Err: fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)})
	}
	if len(pix)/(width*channels) < height {
		return nil, errors.Log(&TextureError{Name: name, Err: errors.New("not enough pixel data for the texture size")})
	}
	return newTexture(ctx, name, image.Pt(width, height), channels, format, gl.Repeat, unsafe.Pointer(unsafe.SliceData(pix)), true)
}

// TextureFromResource decodes the named image resource and uploads it
// as a new mipmapped texture.
func TextureFromResource(ctx *Context, res *resources.Resources, name string) (*Texture, error) {
	data, err := res.LoadBytes(name)
	if err != nil {
		return nil, errors.Log(&ResourceError{Name: name, Err: err})
	}
	return NewTexture(ctx, name, data)
}

// newTexture allocates a texture with linear filtering and the given
// wrap mode, and specifies its storage. The pixels may be nil to
// allocate storage only. It leaves no texture bound to unit 0.
func newTexture(ctx *Context, name string, size image.Point, channels int, format uint32, wrap int32, pixels unsafe.Pointer, mipmaps bool) (*Texture, error) {
	d := ctx.Driver
	id := d.GenTexture()
	if id == 0 {
		return nil, errors.Log(&AllocError{Kind: TextureHandle, Name: name})
	}
	tx := &Texture{ctx: ctx, name: name, size: size, channels: channels}
	tx.h = adopt(ctx, tx, TextureHandle, id, name)
	tx.Bind(0)
	d.TexParameteri(gl.Texture2D, gl.TextureWrapS, wrap)
	d.TexParameteri(gl.Texture2D, gl.TextureWrapT, wrap)
	d.TexParameteri(gl.Texture2D, gl.TextureMinFilter, gl.Linear)
	d.TexParameteri(gl.Texture2D, gl.TextureMagFilter, gl.Linear)
	if pixels != nil {
		d.PixelStorei(gl.UnpackAlignment, 1)
	}
	d.TexImage2D(gl.Texture2D, 0, int32(format), int32(size.X), int32(size.Y), format, gl.UnsignedByte, pixels)
	if pixels != nil {
		d.PixelStorei(gl.UnpackAlignment, 4)
	}
	if mipmaps {
		d.GenerateMipmap(gl.Texture2D)
	}
	tx.Detach()
	return tx, nil
}

// Name returns the name of the texture.
func (tx *Texture) Name() string { return tx.name }

// Handle returns the driver handle, or 0 once released.
func (tx *Texture) Handle() uint32 { return tx.h.id() }

// Size returns the size of the texture in pixels.
func (tx *Texture) Size() image.Point { return tx.size }

// Channels returns the number of channels per pixel of the texture.
func (tx *Texture) Channels() int { return tx.channels }

// Bind binds the texture to the given texture unit, counted from 0.
func (tx *Texture) Bind(unit int) {
	tx.unit = unit
	tx.ctx.BindTexture(unit, tx.h.id())
}

// Detach unbinds the texture from the unit of the last [Texture.Bind].
func (tx *Texture) Detach() {
	tx.ctx.BindTexture(tx.unit, 0)
}

// Release deletes the texture. It is safe to call more than once.
func (tx *Texture) Release() {
	tx.h.release()
}
