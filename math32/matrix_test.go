// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-6)

func TolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	assert.InDelta(t, vt.X, va.X, float64(tol))
	assert.InDelta(t, vt.Y, va.Y, float64(tol))
	assert.InDelta(t, vt.Z, va.Z, float64(tol))
}

func TestMatrix4(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)

	assert.Equal(t, vx, Identity4().MulVector3AsPoint(vx))
	assert.Equal(t, Vec3(2, 1, 1), Translation4(1, 1, 1).MulVector3AsPoint(vx))
	assert.Equal(t, Vec3(2, 0, 0), Scale4(2, 3, 4).MulVector3AsPoint(vx))

	TolAssertEqualVector(t, StandardTol, vy, RotationZ4(DegToRad(90)).MulVector3AsPoint(vx))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, -1), RotationY4(DegToRad(90)).MulVector3AsPoint(vx))

	// 1,0,0 -> scale(2) = 2,0,0 -> rotate 90 = 0,2,0 -> trans 1,1,0 -> 1,3,0
	// multiplication order is *reverse* of "logical" order:
	m := Translation4(1, 1, 0).Mul(RotationZ4(DegToRad(90))).Mul(Scale4(2, 2, 2))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 3, 0), m.MulVector3AsPoint(vx))

	assert.Equal(t, Translation4(1, 2, 3), Translation4(1, 2, 3).Transpose().Transpose())
	assert.Equal(t, float32(3), Translation4(1, 2, 3).At(2, 3))
}

func TestMatrix3(t *testing.T) {
	m := Matrix3FromMatrix4(Translation4(5, 5, 5).Mul(Scale4(2, 3, 4)))
	assert.Equal(t, Vec3(2, 3, 4), m.MulVector3(Vec3(1, 1, 1)))
	assert.Equal(t, Identity3(), Identity3().Mul(Identity3()))
	r := Matrix3FromMatrix4(RotationZ4(DegToRad(30)))
	id := r.Mul(r.Transpose())
	for i := range id {
		assert.InDelta(t, Identity3()[i], id[i], 1e-6)
	}
}

func TestLookAtPerspective(t *testing.T) {
	v := LookAt(Vec3(0, 0, 5), Vec3(0, 0, 0), Vec3(0, 1, 0))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, -5), v.MulVector3AsPoint(Vec3(0, 0, 0)))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 0, -5), v.MulVector3AsPoint(Vec3(1, 0, 0)))

	p := Perspective(90, 1, 1, 10)
	near := p.MulVector4(Vec4(0, 0, -1, 1))
	far := p.MulVector4(Vec4(0, 0, -10, 1))
	assert.InDelta(t, -1, near.Z/near.W, 1e-5)
	assert.InDelta(t, 1, far.Z/far.W, 1e-5)
}

func TestVector3(t *testing.T) {
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assert.Equal(t, Vec3(0, 0, 0), Vec3(0, 0, 0).Normal())
	assert.Equal(t, "(1, 2, 3)", Vec3(1, 2, 3).String())
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
	assert.Equal(t, float32(1), Clamp(7, 0, 1))
}
