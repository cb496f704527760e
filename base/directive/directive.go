// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package directive parses Go comment directives of the form
// //tool:directive arg0 key0=value0, as used by the code generators.
package directive

import (
	"fmt"
	"go/ast"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

// Directive represents a comment directive
// that has been parsed or created in code.
type Directive struct {

	// Tool is the name of the tool that
	// the directive is for.
	Tool string

	// Directive is the actual directive
	// string that is placed after the
	// name of the tool and a colon.
	Directive string

	// Args are the positional arguments
	// passed to the directive.
	Args []string

	// NameValue are the key=value arguments
	// passed to the directive.
	NameValue map[string]string
}

// String returns the directive as a formatted string suitable for use in
// code. It includes two slashes (`//`) at the start. Key-value arguments
// come after positional ones, sorted by key.
func (d *Directive) String() string {
	if d == nil {
		return "<nil>"
	}
	res := "//" + d.Tool + ":" + d.Directive
	if len(d.Args) > 0 {
		res += " " + strings.Join(d.Args, " ")
	}
	for _, k := range slices.Sorted(maps.Keys(d.NameValue)) {
		res += " " + k + "=" + d.NameValue[k]
	}
	return res
}

// Is returns whether the directive is for the given tool and directive name.
func (d *Directive) Is(tool, directive string) bool {
	return d != nil && d.Tool == tool && d.Directive == directive
}

// Parse parses the given comment string and returns any [Directive] inside it.
// If no such directive is found, it returns nil. Directives are of the form:
//
//	//tool:directive arg0 key0=value0 arg1 key1=value1
//
// (the two slashes are optional, and the positional and key-value arguments
// can be in any order).
func Parse(comment string) (*Directive, error) {
	comment = strings.TrimPrefix(comment, "//")
	rs := []rune(comment)
	if len(rs) == 0 || unicode.IsSpace(rs[0]) { // directives must not have whitespace as their first character
		return nil, nil
	}
	before, after, found := strings.Cut(comment, ":")
	if !found || before == "" || strings.ContainsFunc(before, unicode.IsSpace) {
		return nil, nil
	}
	args, err := shellwords.Parse(after)
	if err != nil {
		return nil, fmt.Errorf("error parsing directive args %q: %w", after, err)
	}
	d := &Directive{Tool: before, Args: []string{}, NameValue: map[string]string{}}
	if len(args) > 0 {
		d.Directive = args[0]
		args = args[1:]
	}
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			d.NameValue[k] = v
			continue
		}
		d.Args = append(d.Args, arg)
	}
	return d, nil
}

// ParseComment parses the given AST comment
// and returns any [Directive] inside it.
func ParseComment(comment *ast.Comment) (*Directive, error) {
	return Parse(comment.Text)
}

// ParseCommentGroup parses the given AST comment
// group and returns a slice of all [Directive]s
// inside it. A nil group has no directives.
func ParseCommentGroup(group *ast.CommentGroup) ([]*Directive, error) {
	res := []*Directive{}
	if group == nil {
		return res, nil
	}
	for _, comment := range group.List {
		dir, err := ParseComment(comment)
		if err != nil {
			return nil, err
		}
		if dir != nil {
			res = append(res, dir)
		}
	}
	return res, nil
}

// Find returns the first directive in the given list for the
// given tool and directive name, or nil if there is none.
func Find(dirs []*Directive, tool, directive string) *Directive {
	for _, d := range dirs {
		if d.Is(tool, directive) {
			return d
		}
	}
	return nil
}
