// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogl

import (
	"image"
	"testing"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	for s, want := range map[string]string{
		"4.6 (Core Profile) Mesa 23.0.4": "4.6.0",
		"3.3.0 NVIDIA 535.54.03":         "3.3.0",
		"4.1 Metal - 88":                 "4.1.0",
	} {
		v, err := ParseVersion(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, want, v.String())
		}
	}
	_, err := ParseVersion("OpenGL ES")
	assert.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	d := gltest.New()
	v, err := CheckVersion(d, "3.3")
	assert.NoError(t, err)
	assert.Equal(t, "3.3.0", v.String())

	d.VersionString = "2.1 Mesa 9.0"
	_, err = CheckVersion(d, "3.3")
	assert.ErrorContains(t, err, "older than the required 3.3")

	_, err = CheckVersion(d, "three")
	assert.Error(t, err)
}

func TestNoDisplayContext(t *testing.T) {
	t.Skip("Need a display or software OpenGL on CI")
	ctx, err := NewNoDisplayContext(image.Pt(64, 64))
	if !assert.NoError(t, err) {
		return
	}
	defer ctx.Release()
	_, err = CheckVersion(ctx, "3.3")
	assert.NoError(t, err)
	gl.Check(ctx, "context")
}
