// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resources loads shader text and image bytes by slash-separated
// resource name, from a root directory resolved relative to the
// executable or from configuration, or from any [fs.FS].
package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// ErrContainsNul is returned for text resources with an embedded NUL
// byte, which the driver would silently truncate.
var ErrContainsNul = errors.New("file contains nil byte")

// Error is a failure to load the named resource.
type Error struct {

	// Name is the resource name.
	Name string

	// Err is the cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resources: %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Resources is a resource root.
type Resources struct {

	// FS is the file system resources are loaded from.
	FS fs.FS

	// Dir is the directory on disk that FS is rooted at, if any.
	// It is needed to watch resources for changes.
	Dir string
}

// New returns resources loaded from the given file system.
func New(fsys fs.FS) *Resources {
	return &Resources{FS: fsys}
}

// FromDir returns resources rooted at the given directory.
// A leading ~ is expanded to the home directory.
func FromDir(dir string) (*Resources, error) {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, &Error{Name: dir, Err: err}
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, &Error{Name: dir, Err: err}
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, &Error{Name: dir, Err: err}
	}
	if !st.IsDir() {
		return nil, &Error{Name: dir, Err: fmt.Errorf("not a directory")}
	}
	return &Resources{FS: os.DirFS(dir), Dir: dir}, nil
}

// FromExePath returns resources rooted at the given path relative
// to the directory of the running executable.
func FromExePath(rel string) (*Resources, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, &Error{Name: rel, Err: fmt.Errorf("failed to get executable path: %w", err)}
	}
	return FromDir(filepath.Join(filepath.Dir(exe), filepath.FromSlash(rel)))
}

// LoadBytes returns the contents of the named resource.
func (r *Resources) LoadBytes(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &Error{Name: name, Err: fs.ErrInvalid}
	}
	b, err := fs.ReadFile(r.FS, name)
	if err != nil {
		return nil, &Error{Name: name, Err: err}
	}
	return b, nil
}

// LoadString returns the contents of the named text resource.
// Text with an embedded NUL byte is rejected with [ErrContainsNul].
func (r *Resources) LoadString(name string) (string, error) {
	b, err := r.LoadBytes(name)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return "", &Error{Name: name, Err: ErrContainsNul}
	}
	return string(b), nil
}

// Path returns the path on disk of the named resource, or ""
// if the resources are not rooted at a directory.
func (r *Resources) Path(name string) string {
	if r.Dir == "" {
		return ""
	}
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}
