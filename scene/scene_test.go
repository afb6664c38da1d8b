package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformWorldComposition(t *testing.T) {
	const eps = 0.000001

	e := NewEngine()
	root := e.Entities().Create()
	child := e.Entities().Create()
	grandchild := e.Entities().Create()

	e.Transforms().Create(root, 0, mgl32.Translate3D(1, 0, 0))
	e.Transforms().Create(child, root, mgl32.Translate3D(0, 2, 0))
	e.Transforms().Create(grandchild, child, mgl32.Translate3D(0, 0, 3))

	p := e.Transforms().World(grandchild).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if p.Sub(mgl32.Vec3{1, 2, 3}).Len() > eps {
		t.Error("world: ", p)
	}
	if e.Transforms().Parent(grandchild) != child {
		t.Error("parent link")
	}
	if e.Transforms().Parent(root) != 0 {
		t.Error("root should have no parent")
	}
}

func TestVertexBufferBuilder(t *testing.T) {
	e := NewEngine()
	vb := NewVertexBufferBuilder().
		BufferCount(3).
		VertexCount(12).
		Attribute(SemanticPosition, 0, AttrFloat3, 0, 12).
		Attribute(SemanticTangents, 1, AttrShort4, 0, 8).
		Normalized(SemanticTangents).
		Build(e)

	if len(vb.Slots) != 3 || vb.VertexCount != 12 {
		t.Error("layout: ", len(vb.Slots), vb.VertexCount)
	}
	if len(vb.Attributes) != 2 {
		t.Fatal("attributes: ", vb.Attributes)
	}
	if !vb.Attributes[1].Normalized || vb.Attributes[0].Normalized {
		t.Error("normalized flags: ", vb.Attributes)
	}
	if e.VertexBufferCount() != 1 {
		t.Error("engine should own the buffer")
	}
}

func TestIndexBufferBuilder(t *testing.T) {
	e := NewEngine()
	ib := NewIndexBufferBuilder().IndexCount(6).BufferType(IndexUint).Build(e)
	if len(ib.Data) != 24 {
		t.Error("uint storage: ", len(ib.Data))
	}
	ib16 := NewIndexBufferBuilder().IndexCount(6).BufferType(IndexUshort).Build(e)
	if len(ib16.Data) != 12 {
		t.Error("ushort storage: ", len(ib16.Data))
	}
}

func TestRenderableBuilder(t *testing.T) {
	e := NewEngine()
	entity := e.Entities().Create()
	mat := &Material{Name: "lit"}
	mi := mat.CreateInstance()
	vb := NewVertexBufferBuilder().BufferCount(1).VertexCount(3).Build(e)
	ib := NewIndexBufferBuilder().IndexCount(3).BufferType(IndexUshort).Build(e)

	r := NewRenderableBuilder(1).
		Geometry(0, Triangles, vb, ib).
		Material(0, mi).
		Culling(false).
		CastShadows(true).
		Skinning(4).
		Build(e, entity)

	if e.Renderable(entity) != r {
		t.Error("renderable not registered")
	}
	if r.Primitives[0].Material != mi || r.Primitives[0].Vertices != vb {
		t.Error("primitive wiring")
	}
	if r.Culling || !r.CastShadows || r.JointCount != 4 {
		t.Error("flags: ", r.Culling, r.CastShadows, r.JointCount)
	}
}

func TestMaterialInstanceParameters(t *testing.T) {
	mat := &Material{Name: "lit", Parameters: []string{"baseColorFactor"}}
	mi := mat.CreateInstance()
	mi.SetParameter("baseColorFactor", [4]float32{1, 0, 0, 1})
	if v, ok := mi.Parameter("baseColorFactor"); !ok || v.([4]float32) != [4]float32{1, 0, 0, 1} {
		t.Error("parameter: ", v)
	}
	mi.SetTexture("baseColorMap", &Texture{Name: "t"}, Sampler{WrapS: WrapRepeat})
	if _, _, ok := mi.TextureOf("baseColorMap"); !ok {
		t.Error("texture binding missing")
	}
}
