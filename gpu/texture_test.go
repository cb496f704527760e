// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
	"testing/fstest"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"cogentcore.org/glrender/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadrants returns a 2x2 image with red, green, blue, and white
// pixels from the top left, with the given alpha on the white one.
func quadrants(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, alpha})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngChunk appends one chunk with its length and checksum.
func pngChunk(buf *bytes.Buffer, typ string, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	buf.WriteString(typ)
	buf.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}

// rawPNG returns a 2x2 8-bit PNG with the given color type, whose
// rows hold the given bytes, with the extra chunks before the data.
// The png encoder picks its own color type, so it cannot make these.
func rawPNG(t *testing.T, colorType byte, rows [2][]byte, extra ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	pngChunk(&buf, "IHDR", []byte{0, 0, 0, 2, 0, 0, 0, 2, 8, colorType, 0, 0, 0})
	for _, c := range extra {
		pngChunk(&buf, c[0], []byte(c[1]))
	}
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	for _, row := range rows {
		zw.Write(append([]byte{0}, row...))
	}
	require.NoError(t, zw.Close())
	pngChunk(&buf, "IDAT", z.Bytes())
	pngChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

func TestFileChannels(t *testing.T) {
	opaque := [2][]byte{{255, 0, 0, 255, 0, 255, 0, 255}, {0, 0, 255, 255, 9, 9, 9, 255}}
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"rgba", rawPNG(t, 6, opaque), 4},
		{"gray alpha", rawPNG(t, 4, [2][]byte{{1, 255, 2, 255}, {3, 255, 4, 255}}), 2},
		{"gray", rawPNG(t, 0, [2][]byte{{1, 2}, {3, 4}}), 1},
		{"rgb", rawPNG(t, 2, [2][]byte{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 1, 2, 3}}), 3},
		{"rgb trns", rawPNG(t, 2, [2][]byte{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 1, 2, 3}}, [2]string{"tRNS", "\x00\x01\x00\x02\x00\x03"}), 4},
		{"palette", rawPNG(t, 3, [2][]byte{{0, 1}, {1, 0}}, [2]string{"PLTE", "\xff\x00\x00\x00\xff\x00"}), 3},
		{"palette trns", rawPNG(t, 3, [2][]byte{{0, 1}, {1, 0}}, [2]string{"PLTE", "\xff\x00\x00\x00\xff\x00"}, [2]string{"tRNS", "\x80"}), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeImage(tt.data)
			require.NoError(t, err)
			require.Equal(t, image.Pt(2, 2), img.Bounds().Size())
			ch, err := FileChannels(tt.data, format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ch)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	ch, err := FileChannels(buf.Bytes(), "jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, ch)

	buf.Reset()
	require.NoError(t, gif.Encode(&buf, quadrants(255), nil))
	ch, err = FileChannels(buf.Bytes(), "gif")
	require.NoError(t, err)
	assert.Equal(t, 4, ch)

	_, err = FileChannels([]byte("\x89PNG\r\n\x1a\n"), "png")
	assert.ErrorIs(t, err, ErrBadPNG)
}

func TestImageChannels(t *testing.T) {
	assert.Equal(t, 4, ImageChannels(quadrants(128)))
	assert.Equal(t, 4, ImageChannels(quadrants(255)), "pixel values do not change the type")
	assert.Equal(t, 3, ImageChannels(image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White})))
	assert.Equal(t, 4, ImageChannels(image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent})))
	assert.Equal(t, 1, ImageChannels(image.NewGray(image.Rect(0, 0, 1, 1))))
	assert.Equal(t, 1, ImageChannels(image.NewAlpha(image.Rect(0, 0, 1, 1))))
	assert.Equal(t, 3, ImageChannels(image.NewYCbCr(image.Rect(0, 0, 1, 1), image.YCbCrSubsampleRatio420)))
}

func TestImagePixels(t *testing.T) {
	img := quadrants(128)
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255, 255, 128,
		255, 0, 0, 255, 0, 255, 0, 255,
	}, ImagePixels(img, 4), "rows run bottom to top")
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255,
		255, 0, 0, 0, 255, 0,
	}, ImagePixels(img, 3))
}

func TestDecodeImage(t *testing.T) {
	img, format, err := DecodeImage(encodePNG(t, quadrants(255)))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Pt(2, 2), img.Bounds().Size())

	_, _, err = DecodeImage([]byte("#version 330 core"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestTextureRGB(t *testing.T) {
	d, ctx := newTestContext(t)
	tx, err := NewTexture(ctx, "opaque.png", encodePNG(t, quadrants(255)))
	require.NoError(t, err)
	assert.Equal(t, 3, tx.Channels())
	assert.Equal(t, image.Pt(2, 2), tx.Size())

	st := d.Texture(tx.Handle())
	assert.Equal(t, int32(gl.RGB), st.InternalFormat)
	assert.Equal(t, uint32(gl.RGB), st.Format)
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 255, 255, 0, 0, 0, 255, 0}, st.Pixels)
	assert.True(t, st.Mipmaps)
	assert.Equal(t, int32(gl.Repeat), st.Params[gl.TextureWrapS])
	assert.Equal(t, int32(gl.Linear), st.Params[gl.TextureMinFilter])
	assert.Equal(t, int32(4), d.GetIntegerv(gl.UnpackAlignment), "alignment is restored")
	assert.Zero(t, d.TextureUnit(0), "no texture is left bound")
	ctx.EndFrame()
}

func TestTextureRGBA(t *testing.T) {
	d, ctx := newTestContext(t)
	res := resources.New(fstest.MapFS{"textures/window.png": {Data: encodePNG(t, quadrants(128))}})
	tx, err := TextureFromResource(ctx, res, "textures/window.png")
	require.NoError(t, err)
	assert.Equal(t, 4, tx.Channels())
	st := d.Texture(tx.Handle())
	assert.Equal(t, int32(gl.RGBA), st.InternalFormat)
	assert.Equal(t, uint32(gl.RGBA), st.Format)
	assert.Len(t, st.Pixels, 16)

	tx.Bind(3)
	assert.Equal(t, tx.Handle(), d.TextureUnit(3))
	assert.Equal(t, tx.Handle(), ctx.CurrentTexture(3))
	tx.Detach()
	assert.Zero(t, d.TextureUnit(3))
	tx.Release()
	tx.Release()
	assert.Zero(t, d.Live(gltest.Texture))
	ctx.EndFrame()
}

func TestTextureDeclaredChannels(t *testing.T) {
	d, ctx := newTestContext(t)
	opaque := rawPNG(t, 6, [2][]byte{{255, 0, 0, 255, 0, 255, 0, 255}, {0, 0, 255, 255, 9, 9, 9, 255}})
	tx, err := NewTexture(ctx, "opaque-rgba.png", opaque)
	require.NoError(t, err)
	assert.Equal(t, 4, tx.Channels())
	assert.Equal(t, uint32(gl.RGBA), d.Texture(tx.Handle()).Format)
	assert.Equal(t, []byte{0, 0, 255, 255, 9, 9, 9, 255, 255, 0, 0, 255, 0, 255, 0, 255}, d.Texture(tx.Handle()).Pixels)
	tx.Release()

	_, err = NewTexture(ctx, "gray-alpha.png", rawPNG(t, 4, [2][]byte{{1, 255, 2, 128}, {3, 255, 4, 255}}))
	var uerr *UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 2, uerr.Channels)
	assert.Equal(t, 1, d.Allocated(gltest.Texture))
	ctx.EndFrame()
}

func TestTextureJPEG(t *testing.T) {
	d, ctx := newTestContext(t)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, quadrants(255), nil))
	tx, err := NewTexture(ctx, "photo.jpg", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, tx.Channels())
	assert.Equal(t, uint32(gl.RGB), d.Texture(tx.Handle()).Format)
}

func TestTextureErrors(t *testing.T) {
	d, ctx := newTestContext(t)
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	_, err := NewTexture(ctx, "gray.png", encodePNG(t, gray))
	var uerr *UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 1, uerr.Channels)

	for _, ch := range []int{1, 2, 5} {
		_, err = NewTextureFromPixels(ctx, "raw", 1, 1, ch, make([]byte, ch))
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, ch, uerr.Channels)
	}
	assert.Zero(t, d.Allocated(gltest.Texture), "unsupported formats allocate nothing")

	_, err = NewTexture(ctx, "notes.txt", []byte("not an image at all"))
	var terr *TextureError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "notes.txt", terr.Name)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = NewTextureFromPixels(ctx, "short", 2, 2, 3, make([]byte, 6))
	require.ErrorAs(t, err, &terr)

	for _, sz := range []image.Point{{-1, -3}, {0, 4}, {4, 0}, {-2, 2}} {
		_, err = NewTextureFromPixels(ctx, "bad size", sz.X, sz.Y, 3, make([]byte, 64))
		require.ErrorAs(t, err, &terr)
		assert.ErrorIs(t, err, ErrTextureSize)
	}

	_, err = TextureFromResource(ctx, resources.New(fstest.MapFS{}), "missing.png")
	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)

	d.FailAlloc(gltest.Texture, 1)
	_, err = NewTextureFromPixels(ctx, "raw", 1, 1, 4, make([]byte, 4))
	var aerr *AllocError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, TextureHandle, aerr.Kind)
	assert.Zero(t, d.LiveTotal())
	ctx.EndFrame()
}
