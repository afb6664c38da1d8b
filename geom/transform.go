package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ComposeTRS builds a local transform from a glTF TRS triple: scale is
// applied first, then rotation, then translation. The rotation quaternion
// is in glTF order (x, y, z, w).
func ComposeTRS(translation [3]float32, rotation [4]float32, scale [3]float32) mgl32.Mat4 {
	q := mgl32.Quat{
		V: mgl32.Vec3{rotation[0], rotation[1], rotation[2]},
		W: rotation[3],
	}
	t := mgl32.Translate3D(translation[0], translation[1], translation[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(q.Mat4()).Mul4(s)
}

// Mat4FromColumns converts a column-major [16]float32 (the glTF node
// matrix layout) into a mgl32.Mat4, which uses the same layout.
func Mat4FromColumns(m [16]float32) mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// UvTransform composes a KHR_texture_transform offset/rotation/scale
// triple into a 3x3 affine matrix: scale first, then rotation, then
// offset.
func UvTransform(offset [2]float32, rotation float32, scale [2]float32) mgl32.Mat3 {
	c := float32(math.Cos(float64(rotation)))
	s := float32(math.Sin(float64(rotation)))
	t := mgl32.Mat3{
		1, 0, 0,
		0, 1, 0,
		offset[0], offset[1], 1,
	}
	r := mgl32.Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
	sc := mgl32.Mat3{
		scale[0], 0, 0,
		0, scale[1], 0,
		0, 0, 1,
	}
	return t.Mul3(r).Mul3(sc)
}
