// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for texture data that is not an image.
var ErrNotImage = errors.New("data is not an image")

// DecodeImage decodes the given image file data, returning the image
// and the name of its format. The format is sniffed before decoding.
func DecodeImage(data []byte) (image.Image, string, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, "", ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.Extension, err
	}
	return img, kind.Extension, nil
}

// FileChannels returns the number of channels per pixel that the
// given image file data of the given format declares in its header,
// independent of the pixel values. A transparency chunk in a gray,
// color, or palette PNG adds an alpha channel. GIF images always have 4.
func FileChannels(data []byte, format string) (int, error) {
	if format == "png" {
		return pngChannels(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	return modelChannels(cfg.ColorModel, format), nil
}

func modelChannels(m color.Model, format string) int {
	if p, ok := m.(color.Palette); ok {
		if format == "gif" {
			return 4
		}
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	switch m {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	case color.RGBAModel, color.RGBA64Model:
		// bmp and tiff use these for files without an alpha sample
		if format == "bmp" || format == "tif" {
			return 3
		}
	}
	return 4
}

const pngSignature = "\x89PNG\r\n\x1a\n"

// ErrBadPNG is returned for PNG data with a malformed header.
var ErrBadPNG = errors.New("malformed png header")

// pngChannels returns the channel count from the IHDR color type.
func pngChannels(data []byte) (int, error) {
	if len(data) < 33 || string(data[:8]) != pngSignature || string(data[12:16]) != "IHDR" {
		return 0, ErrBadPNG
	}
	ct := data[25]
	trns := 0
	if pngHasTransparency(data[33:]) {
		trns = 1
	}
	switch ct {
	case 0:
		return 1 + trns, nil
	case 2, 3:
		return 3 + trns, nil
	case 4:
		return 2, nil
	case 6:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: color type %d", ErrBadPNG, ct)
}

// pngHasTransparency reports whether a tRNS chunk precedes the image data.
func pngHasTransparency(chunks []byte) bool {
	for len(chunks) >= 8 {
		n := binary.BigEndian.Uint32(chunks[:4])
		switch string(chunks[4:8]) {
		case "tRNS":
			return true
		case "IDAT", "IEND":
			return false
		}
		if uint64(n)+12 > uint64(len(chunks)) {
			return false
		}
		chunks = chunks[n+12:]
	}
	return false
}

// ImageChannels returns the number of channels of the given decoded
// image by its type: 1 for gray or alpha only images, 3 for color
// types without alpha and for palettes without transparency, and 4
// otherwise. Images decoded from files should use [FileChannels].
func ImageChannels(img image.Image) int {
	switch im := img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		return modelChannels(im.Palette, "")
	}
	return 4
}

// ImagePixels returns the pixels of the given image with the given
// number of channels per pixel, which must be 3 or 4, as tightly packed
// rows of non-premultiplied 8-bit values. Rows run from the bottom of
// the image to the top, which is the origin of driver texture coordinates.
func ImagePixels(img image.Image, channels int) []byte {
	flipped := transform.FlipV(img)
	b := flipped.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Rect, flipped, b.Min, draw.Src)
	if channels == 4 {
		return nrgba.Pix
	}
	n := b.Dx() * b.Dy()
	pix := make([]byte, 0, n*channels)
	for i := 0; i < n; i++ {
		pix = append(pix, nrgba.Pix[4*i:4*i+channels]...)
	}
	return pix
}
