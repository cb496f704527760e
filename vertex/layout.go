// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vertex describes the memory layout of vertex records and
// issues the per-attribute binding calls for them.
//
// A vertex record is a struct whose fields are all primitive layout
// types (see [Attrib]), each annotated with its shader input location:
//
//	type Vertex struct {
//		Pos   vertex.F32F32F32 `location:"0"`
//		Color vertex.F32F32F32 `location:"1"`
//	}
//
// The layout of a record is derived from its declaration, either at
// build time by vertexgen or at initialization by [MustDescribe].
// Both reject records that cannot be bound exactly, so a layout
// mismatch never reaches drawing code.
package vertex

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"cogentcore.org/glrender/gl"
)

// LocationTag is the struct tag key holding a field's shader input location.
const LocationTag = "location"

// Attribute is one attribute of a [Layout].
type Attribute struct {

	// Name is the record field name.
	Name string

	// Location is the shader input location.
	Location uint32

	// Format is the binding contract of the field type.
	Format Format

	// Offset is the byte offset of the field within the record.
	Offset uintptr
}

// Layout is the memory layout of a vertex record type: its attributes
// in declaration order, at strictly increasing offsets with no gaps,
// and the stride between consecutive records.
type Layout struct {

	// Name is the record type name.
	Name string

	// Stride is the size of one record in bytes.
	Stride uintptr

	// Attributes are the record fields in declaration order.
	Attributes []Attribute
}

// Bind enables each attribute location and describes its data to the
// driver, relative to the currently bound array buffer. The vertex
// array object to configure must be bound.
func (l *Layout) Bind(d gl.Driver) {
	stride := int32(l.Stride)
	for _, a := range l.Attributes {
		f := a.Format
		d.EnableVertexAttribArray(a.Location)
		if f.Integer {
			d.VertexAttribIPointer(a.Location, f.Components, f.Type, stride, a.Offset)
		} else {
			d.VertexAttribPointer(a.Location, f.Components, f.Type, f.Normalized, stride, a.Offset)
		}
	}
}

// Validate checks that the attributes are packed end to end
// from offset zero to the stride, with unique locations.
func (l *Layout) Validate() error {
	var off uintptr
	locs := map[uint32]string{}
	for _, a := range l.Attributes {
		if a.Offset != off {
			return &LayoutError{Type: l.Name, Field: a.Name, Err: fmt.Errorf("%w: at offset %d, expected %d", ErrPadding, a.Offset, off)}
		}
		if prev, has := locs[a.Location]; has {
			return &LayoutError{Type: l.Name, Field: a.Name, Err: fmt.Errorf("%w: %d is also used by %s", ErrDuplicateLocation, a.Location, prev)}
		}
		locs[a.Location] = a.Name
		off += a.Format.Size
	}
	if off != l.Stride {
		return &LayoutError{Type: l.Name, Err: fmt.Errorf("%w: fields end at %d but the record size is %d", ErrPadding, off, l.Stride)}
	}
	return nil
}

// Errors wrapped by [LayoutError].
var (
	ErrNotStruct         = errors.New("vertex record must be a struct")
	ErrMissingLocation   = errors.New("missing location tag")
	ErrInvalidLocation   = errors.New("invalid location tag")
	ErrDuplicateLocation = errors.New("duplicate location")
	ErrNotAttrib         = errors.New("field type is not a vertex attribute type")
	ErrSizeMismatch      = errors.New("attribute format size does not match field size")
	ErrPadding           = errors.New("record has padding")
)

// LayoutError is a vertex record declaration that cannot be bound.
type LayoutError struct {

	// Type is the record type name.
	Type string

	// Field is the offending field, if any.
	Field string

	// Err is the reason.
	Err error
}

func (e *LayoutError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("vertex: layout of %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("vertex: layout of %s: field %s: %v", e.Type, e.Field, e.Err)
}

func (e *LayoutError) Unwrap() error { return e.Err }

var attribType = reflect.TypeFor[Attrib]()

// ParseLocation parses the value of a location tag.
func ParseLocation(tag string) (uint32, error) {
	loc, err := strconv.ParseUint(tag, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidLocation, tag)
	}
	return uint32(loc), nil
}

// DescribeType returns the layout of the given vertex record type.
// It walks the fields in declaration order with a running offset
// starting at zero, and fails if a field has no location tag, is not
// an [Attrib] type, or does not sit exactly at the running offset, or
// if the record size differs from the sum of the attribute sizes.
// A record with no fields is legal and binds nothing.
func DescribeType(t reflect.Type) (*Layout, error) {
	if t.Kind() != reflect.Struct {
		return nil, &LayoutError{Type: t.String(), Err: ErrNotStruct}
	}
	l := &Layout{Name: t.Name(), Stride: t.Size()}
	if l.Name == "" {
		l.Name = t.String()
	}
	for i := range t.NumField() {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup(LocationTag)
		if !ok {
			return nil, &LayoutError{Type: l.Name, Field: f.Name, Err: ErrMissingLocation}
		}
		loc, err := ParseLocation(tag)
		if err != nil {
			return nil, &LayoutError{Type: l.Name, Field: f.Name, Err: err}
		}
		if !f.Type.Implements(attribType) {
			return nil, &LayoutError{Type: l.Name, Field: f.Name, Err: fmt.Errorf("%w: %s", ErrNotAttrib, f.Type)}
		}
		format := reflect.Zero(f.Type).Interface().(Attrib).AttribFormat()
		if format.Size != f.Type.Size() {
			return nil, &LayoutError{Type: l.Name, Field: f.Name, Err: fmt.Errorf("%w: %d != %d", ErrSizeMismatch, format.Size, f.Type.Size())}
		}
		l.Attributes = append(l.Attributes, Attribute{Name: f.Name, Location: loc, Format: format, Offset: f.Offset})
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Describe returns the layout of the vertex record type T.
func Describe[T any]() (*Layout, error) {
	return DescribeType(reflect.TypeFor[T]())
}

// MustDescribe returns the layout of the vertex record type T, and
// panics if it cannot be bound. It is intended for package-level
// variables, so that a bad declaration stops the program during
// initialization:
//
//	var vertexLayout = vertex.MustDescribe[Vertex]()
func MustDescribe[T any]() *Layout {
	l, err := Describe[T]()
	if err != nil {
		panic(err)
	}
	return l
}

// Record is implemented by vertex record types with a layout
// generated by vertexgen.
type Record interface {
	VertexLayout() *Layout
}

var layouts sync.Map // reflect.Type -> *Layout

// LayoutOf returns the layout of the vertex record type T: the
// generated one if T implements [Record], otherwise the one from
// [MustDescribe]. Results are cached per type.
func LayoutOf[T any]() *Layout {
	t := reflect.TypeFor[T]()
	if l, ok := layouts.Load(t); ok {
		return l.(*Layout)
	}
	var zero T
	var l *Layout
	if r, ok := any(zero).(Record); ok {
		l = r.VertexLayout()
	} else if r, ok := any(&zero).(Record); ok {
		l = r.VertexLayout()
	} else {
		l = MustDescribe[T]()
	}
	actual, _ := layouts.LoadOrStore(t, l)
	return actual.(*Layout)
}

// FormatOf returns the binding contract of the attribute type T.
func FormatOf[T Attrib]() Format {
	var zero T
	return zero.AttribFormat()
}

// MustValidate returns l, and panics if [Layout.Validate] fails.
// Generated layouts use it so that a record changed after
// generation stops the program during initialization.
func MustValidate(l *Layout) *Layout {
	if err := l.Validate(); err != nil {
		panic(err)
	}
	return l
}
