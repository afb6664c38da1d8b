package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Aabb is an axis-aligned bounding box. The zero value is not usable;
// use NewAabb so that the first Extend call works without special cases.
type Aabb struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAabb returns an empty box (Min=+Inf, Max=-Inf).
func NewAabb() Aabb {
	inf := float32(math.Inf(1))
	return Aabb{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (a *Aabb) IsEmpty() bool {
	return a.Min.X() > a.Max.X() || a.Min.Y() > a.Max.Y() || a.Min.Z() > a.Max.Z()
}

func (a *Aabb) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] {
			a.Min[i] = p[i]
		}
		if p[i] > a.Max[i] {
			a.Max[i] = p[i]
		}
	}
}

// Union grows a to enclose b. An empty b leaves a unchanged.
func (a *Aabb) Union(b Aabb) {
	if b.IsEmpty() {
		return
	}
	a.Extend(b.Min)
	a.Extend(b.Max)
}

// Transform returns the box enclosing all eight corners of a transformed
// by m. Transforming by the identity reproduces the box exactly.
func (a *Aabb) Transform(m mgl32.Mat4) Aabb {
	if a.IsEmpty() {
		return *a
	}
	out := NewAabb()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec4{a.Min.X(), a.Min.Y(), a.Min.Z(), 1}
		if i&1 != 0 {
			c[0] = a.Max.X()
		}
		if i&2 != 0 {
			c[1] = a.Max.Y()
		}
		if i&4 != 0 {
			c[2] = a.Max.Z()
		}
		out.Extend(m.Mul4x1(c).Vec3())
	}
	return out
}
