// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertexgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"text/template"

	"cogentcore.org/glrender/base/directive"
	"cogentcore.org/glrender/vertex"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

// VertexPath is the import path of the vertex package
// that generated code refers to.
const VertexPath = "cogentcore.org/glrender/vertex"

// Generator holds the state of the generator.
// It is primarily used to buffer the output.
type Generator struct {
	Config  *Config             // The configuration information
	Buf     bytes.Buffer        // The accumulated output.
	Pkgs    []*packages.Package // The packages we are scanning.
	Pkg     *packages.Package   // The package we are currently on.
	Records []*Record           // The vertex records found in Pkg.

	imports map[string]bool
}

// Record is a vertex record type found by the generator.
type Record struct {

	// Name is the type name.
	Name string

	// Stride is the size of one record in bytes.
	Stride int64

	// Fields are the record fields in declaration order.
	Fields []*Field
}

// Field is one attribute field of a [Record].
type Field struct {

	// Name is the field name.
	Name string

	// Location is the shader input location from the field tag.
	Location uint32

	// Type is the field type expression, qualified relative to
	// the generated package.
	Type string

	// Offset is the byte offset of the field.
	Offset int64

	// Size is the size of the field in bytes.
	Size int64
}

// NewGenerator returns a new generator with the
// given configuration information and parsed packages.
func NewGenerator(config *Config, pkgs []*packages.Package) *Generator {
	return &Generator{Config: config, Pkgs: pkgs}
}

// PackageModes returns the package load modes needed for this generator
func PackageModes() packages.LoadMode {
	return packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports | packages.NeedTypes | packages.NeedTypesSizes | packages.NeedSyntax
}

// Printf prints the formatted string to the
// accumulated output in [Generator.Buf]
func (g *Generator) Printf(format string, args ...any) {
	fmt.Fprintf(&g.Buf, format, args...)
}

// Find goes through all of the type declarations in the current
// package, finds those marked with gpu:vertex, and adds them
// to [Generator.Records].
func (g *Generator) Find() error {
	return g.FindIn(g.Pkg.Syntax, g.Pkg.Types, g.Pkg.TypesSizes)
}

// FindIn is [Generator.Find] on the given syntax trees, with
// types and sizes from the given type-checked package.
func (g *Generator) FindIn(files []*ast.File, pkg *types.Package, sizes types.Sizes) error {
	g.Records = nil
	g.imports = map[string]bool{VertexPath: true}
	for _, file := range files {
		if ast.IsGenerated(file) {
			continue
		}
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				dirs, err := directive.ParseCommentGroup(doc)
				if err != nil {
					return fmt.Errorf("error parsing comment directives of %s: %w", ts.Name.Name, err)
				}
				if directive.Find(dirs, "gpu", "vertex") == nil {
					continue
				}
				rec, err := g.Analyze(pkg, ts.Name.Name, sizes)
				if err != nil {
					return err
				}
				g.Records = append(g.Records, rec)
			}
		}
	}
	return nil
}

// Analyze checks the named struct type of the given package as a vertex
// record, and returns its layout.
func (g *Generator) Analyze(pkg *types.Package, name string, sizes types.Sizes) (*Record, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, pkg.Path())
	}
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, &vertex.LayoutError{Type: name, Err: vertex.ErrNotStruct}
	}
	qual := func(p *types.Package) string {
		if p == pkg {
			return ""
		}
		g.imports[p.Path()] = true
		return p.Name()
	}
	return AnalyzeStruct(name, st, sizes, qual)
}

// AnalyzeStruct checks the given struct as a vertex record with the
// same rules as [vertex.DescribeType], using the given sizes for
// field offsets, and returns its layout.
func AnalyzeStruct(name string, st *types.Struct, sizes types.Sizes, qual types.Qualifier) (*Record, error) {
	rec := &Record{Name: name, Stride: sizes.Sizeof(st)}
	fields := make([]*types.Var, st.NumFields())
	for i := range fields {
		fields[i] = st.Field(i)
	}
	offsets := sizes.Offsetsof(fields)
	l := &vertex.Layout{Name: name, Stride: uintptr(rec.Stride)}
	for i, f := range fields {
		tag, ok := reflect.StructTag(st.Tag(i)).Lookup(vertex.LocationTag)
		if !ok {
			return nil, &vertex.LayoutError{Type: name, Field: f.Name(), Err: vertex.ErrMissingLocation}
		}
		loc, err := vertex.ParseLocation(tag)
		if err != nil {
			return nil, &vertex.LayoutError{Type: name, Field: f.Name(), Err: err}
		}
		if !IsAttrib(f.Type()) {
			return nil, &vertex.LayoutError{Type: name, Field: f.Name(), Err: fmt.Errorf("%w: %s", vertex.ErrNotAttrib, types.TypeString(f.Type(), qual))}
		}
		fd := &Field{Name: f.Name(), Location: loc, Type: types.TypeString(f.Type(), qual), Offset: offsets[i], Size: sizes.Sizeof(f.Type())}
		rec.Fields = append(rec.Fields, fd)
		l.Attributes = append(l.Attributes, vertex.Attribute{Name: fd.Name, Location: loc,
			Format: vertex.Format{Size: uintptr(fd.Size)}, Offset: uintptr(fd.Offset)})
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// IsAttrib returns whether the method set of t has an AttribFormat
// method with no parameters returning a type named Format, as the
// vertex attribute types do.
func IsAttrib(t types.Type) bool {
	sel := types.NewMethodSet(t).Lookup(nil, "AttribFormat")
	if sel == nil {
		return false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	named, ok := sig.Results().At(0).Type().(*types.Named)
	return ok && named.Obj().Name() == "Format"
}

// Generate produces the code for the records stored in
// [Generator.Records] and stores it in [Generator.Buf].
// It returns whether there were any records to generate
// layouts for, and any error that occurred.
func (g *Generator) Generate() (bool, error) {
	if len(g.Records) == 0 {
		return false, nil
	}
	g.PrintHeader()
	for _, rec := range g.Records {
		if err := g.ExecTmpl(RecordTmpl, rec); err != nil {
			return true, err
		}
	}
	return true, nil
}

// PrintHeader prints the header, package clause, and imports
// to the accumulated output.
func (g *Generator) PrintHeader() {
	g.Printf("// Code generated by \"vertexgen\"; DO NOT EDIT.\n\n")
	g.Printf("package %s\n\n", g.Pkg.Name)
	g.Printf("import (\n")
	for _, p := range slices.Sorted(maps.Keys(g.imports)) {
		g.Printf("\t%q\n", p)
	}
	g.Printf(")\n")
}

// ExecTmpl executes the given template with the given data and
// writes the result to [Generator.Buf].
func (g *Generator) ExecTmpl(t *template.Template, data any) error {
	if err := t.Execute(&g.Buf, data); err != nil {
		return fmt.Errorf("error executing template %q: %w", t.Name(), err)
	}
	return nil
}

// Write formats the data in the accumulated output buffer
// and writes it to the configuration output file in the
// directory of the current package.
func (g *Generator) Write() error {
	if len(g.Pkg.GoFiles) == 0 {
		return fmt.Errorf("package %q has no Go files", g.Pkg.PkgPath)
	}
	file := filepath.Join(filepath.Dir(g.Pkg.GoFiles[0]), g.Config.Output)
	b, err := imports.Process(file, g.Buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("error formatting generated code: %w\n%s", err, g.Buf.String())
	}
	return os.WriteFile(file, b, 0666)
}
