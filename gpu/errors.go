// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// ErrReleased is returned for operations on a released resource.
var ErrReleased = errors.New("resource has been released")

// AllocError is a failure of the driver to allocate a handle.
type AllocError struct {

	// Kind is the kind of handle requested.
	Kind HandleKinds

	// Name is the resource the handle was for.
	Name string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("gpu: %s: failed to allocate a %s handle", e.Name, e.Kind)
}

// CompileError is a shader that failed to compile.
type CompileError struct {

	// Name is the shader name.
	Name string

	// Type is the shader stage.
	Type ShaderTypes

	// Log is the driver diagnostic log. It is never empty.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: %s shader %s failed to compile:\n%s", e.Type, e.Name, e.Log)
}

// LinkError is a program that failed to link.
type LinkError struct {

	// Name is the program name.
	Name string

	// Log is the driver diagnostic log. It is never empty.
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("gpu: program %s failed to link:\n%s", e.Name, e.Log)
}

// ResourceError is a failure to load the named resource
// that a shader, program, or texture is built from.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("gpu: failed to load resource %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ShaderTypeError is a shader resource name whose
// extension does not name a shader stage.
type ShaderTypeError struct {
	Name string
}

func (e *ShaderTypeError) Error() string {
	return fmt.Sprintf("gpu: can not determine the shader type of %s", e.Name)
}

// TextureError is image data that could not be decoded.
type TextureError struct {
	Name string
	Err  error
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("gpu: texture %s: %v", e.Name, e.Err)
}

func (e *TextureError) Unwrap() error { return e.Err }

// UnsupportedFormatError is an image with a channel count
// that has no upload path.
type UnsupportedFormatError struct {
	Name     string
	Channels int
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("gpu: texture %s: unsupported image format with %d channels", e.Name, e.Channels)
}
