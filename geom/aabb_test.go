package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAabbExtendUnion(t *testing.T) {
	a := NewAabb()
	if !a.IsEmpty() {
		t.Error("new box should be empty")
	}
	a.Extend(mgl32.Vec3{1, 2, 3})
	a.Extend(mgl32.Vec3{-1, 0, 5})
	if a.Min != (mgl32.Vec3{-1, 0, 3}) || a.Max != (mgl32.Vec3{1, 2, 5}) {
		t.Error("extend: ", a.Min, a.Max)
	}

	b := NewAabb()
	b.Extend(mgl32.Vec3{10, 10, 10})
	a.Union(b)
	if a.Max != (mgl32.Vec3{10, 10, 10}) {
		t.Error("union: ", a.Max)
	}

	empty := NewAabb()
	before := a
	a.Union(empty)
	if a != before {
		t.Error("union with empty box changed bounds")
	}
}

func TestAabbTransformIdentity(t *testing.T) {
	a := NewAabb()
	a.Extend(mgl32.Vec3{-1, -2, -3})
	a.Extend(mgl32.Vec3{4, 5, 6})
	out := a.Transform(mgl32.Ident4())
	if out != a {
		t.Error("identity transform changed box: ", out)
	}
}

func TestAabbTransformTranslate(t *testing.T) {
	a := NewAabb()
	a.Extend(mgl32.Vec3{0, 0, 0})
	a.Extend(mgl32.Vec3{1, 1, 1})
	out := a.Transform(mgl32.Translate3D(2, 0, 0))
	if out.Min != (mgl32.Vec3{2, 0, 0}) || out.Max != (mgl32.Vec3{3, 1, 1}) {
		t.Error("translate: ", out)
	}
}

func TestAabbTransformRotate(t *testing.T) {
	const eps = 0.0001
	a := NewAabb()
	a.Extend(mgl32.Vec3{0, 0, 0})
	a.Extend(mgl32.Vec3{2, 1, 0})
	// 90 degrees around Z maps (2,1,0) to (-1,2,0).
	out := a.Transform(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	if out.Min.Sub(mgl32.Vec3{-1, 0, 0}).Len() > eps {
		t.Error("rotate min: ", out.Min)
	}
	if out.Max.Sub(mgl32.Vec3{0, 2, 0}).Len() > eps {
		t.Error("rotate max: ", out.Max)
	}
}
