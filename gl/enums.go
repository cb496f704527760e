// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

// Buffer targets and usage.
const (
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8
	BufferSize         = 0x8764
)

// Component data types.
const (
	Byte                  = 0x1400
	UnsignedByte          = 0x1401
	Short                 = 0x1402
	UnsignedShort         = 0x1403
	Int                   = 0x1404
	UnsignedInt           = 0x1405
	Float                 = 0x1406
	UnsignedInt2101010Rev = 0x8368
	Int2101010Rev         = 0x8D9F
)

// Shader stages and status queries.
const (
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	GeometryShader = 0x8DD9

	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	False = 0
	True  = 1
)

// Textures.
const (
	Texture2D          = 0x0DE1
	Texture0           = 0x84C0
	TextureWrapS       = 0x2802
	TextureWrapT       = 0x2803
	TextureMinFilter   = 0x2801
	TextureMagFilter   = 0x2800
	Repeat             = 0x2901
	ClampToEdge        = 0x812F
	Nearest            = 0x2600
	Linear             = 0x2601
	LinearMipmapLinear = 0x2703
	UnpackAlignment    = 0x0CF5

	Red   = 0x1903
	RGB   = 0x1907
	RGBA  = 0x1908
	RGB8  = 0x8051
	RGBA8 = 0x8058
)

// Framebuffers and renderbuffers.
const (
	Framebuffer       = 0x8D40
	Renderbuffer      = 0x8D41
	ColorAttachment0  = 0x8CE0
	DepthAttachment   = 0x8D00
	DepthComponent32  = 0x81A7
	DepthComponent32F = 0x8CAC

	FramebufferComplete                    = 0x8CD5
	FramebufferIncompleteAttachment        = 0x8CD6
	FramebufferIncompleteMissingAttachment = 0x8CD7
	FramebufferUnsupported                 = 0x8CDD
)

// State queries for GetIntegerv.
const (
	ArrayBufferBinding        = 0x8894
	ElementArrayBufferBinding = 0x8895
	VertexArrayBinding        = 0x85B5
	CurrentProgram            = 0x8B8D
	TextureBinding2D          = 0x8069
	FramebufferBinding        = 0x8CA6
	RenderbufferBinding       = 0x8CA7
	ActiveTexture             = 0x84E0
	MajorVersion              = 0x821B
	MinorVersion              = 0x821C
)

// GetString names.
const (
	Vendor                 = 0x1F00
	Renderer               = 0x1F01
	Version                = 0x1F02
	ShadingLanguageVersion = 0x8B8C
)

// Error register values.
const (
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// Drawing.
const (
	Triangles        = 0x0004
	TriangleStrip    = 0x0005
	ColorBufferBit   = 0x4000
	DepthBufferBit   = 0x0100
	DepthTest        = 0x0B71
	CullFace         = 0x0B44
	Blend            = 0x0BE2
	One              = 0x0001
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303
)
