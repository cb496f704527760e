// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix3 is a 3x3 matrix stored in column-major order,
// the layout expected by 3x3 matrix uniforms.
type Matrix3 [9]float32

// Matrix4 is a 4x4 matrix stored in column-major order,
// the layout expected by 4x4 matrix uniforms.
type Matrix4 [16]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Matrix3) At(row, col int) float32 {
	return m[col*3+row]
}

// Mul returns m * other.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var r Matrix3
	for c := range 3 {
		for rw := range 3 {
			var s float32
			for k := range 3 {
				s += m[k*3+rw] * other[c*3+k]
			}
			r[c*3+rw] = s
		}
	}
	return r
}

// MulVector3 returns m * v.
func (m Matrix3) MulVector3(v Vector3) Vector3 {
	return Vec3(
		m[0]*v.X+m[3]*v.Y+m[6]*v.Z,
		m[1]*v.X+m[4]*v.Y+m[7]*v.Z,
		m[2]*v.X+m[5]*v.Y+m[8]*v.Z,
	)
}

// Transpose returns the transpose of m.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Matrix3FromMatrix4 returns the upper-left 3x3 part of m,
// the rotation and scale without the translation.
func Matrix3FromMatrix4(m Matrix4) Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns m * other. Applied to a vector, other transforms first.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := range 4 {
		for rw := range 4 {
			var s float32
			for k := range 4 {
				s += m[k*4+rw] * other[c*4+k]
			}
			r[c*4+rw] = s
		}
	}
	return r
}

// MulVector4 returns m * v.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vec4(
		m[0]*v.X+m[4]*v.Y+m[8]*v.Z+m[12]*v.W,
		m[1]*v.X+m[5]*v.Y+m[9]*v.Z+m[13]*v.W,
		m[2]*v.X+m[6]*v.Y+m[10]*v.Z+m[14]*v.W,
		m[3]*v.X+m[7]*v.Y+m[11]*v.Z+m[15]*v.W,
	)
}

// MulVector3AsPoint returns m * (v, 1) with the w component dropped.
func (m Matrix4) MulVector3AsPoint(v Vector3) Vector3 {
	r := m.MulVector4(Vector4FromVector3(v, 1))
	return Vec3(r.X, r.Y, r.Z)
}

// Transpose returns the transpose of m.
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for c := range 4 {
		for rw := range 4 {
			r[rw*4+c] = m[c*4+rw]
		}
	}
	return r
}

// Translation4 returns a matrix translating by x, y, z.
func Translation4(x, y, z float32) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale4 returns a matrix scaling by x, y, z.
func Scale4(x, y, z float32) Matrix4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotationY4 returns a matrix rotating by angle radians about the Y axis.
func RotationY4(angle float32) Matrix4 {
	c, s := Cos(angle), Sin(angle)
	m := Identity4()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotationZ4 returns a matrix rotating by angle radians about the Z axis.
func RotationZ4(angle float32) Matrix4 {
	c, s := Cos(angle), Sin(angle)
	m := Identity4()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Perspective returns a perspective projection matrix for the given
// vertical field of view in degrees, aspect ratio, and clip planes.
func Perspective(fovy, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(DegToRad(fovy)/2)
	var m Matrix4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt returns a view matrix for a camera at eye looking at target,
// with the given up direction.
func LookAt(eye, target, up Vector3) Matrix4 {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	m := Identity4()
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	return m
}
