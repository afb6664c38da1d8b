package scene

import (
	"github.com/hisui/glscene/geom"
)

// PrimitiveType is the rasterization topology of one renderable piece.
type PrimitiveType uint8

const (
	Points PrimitiveType = iota
	Lines
	Triangles
)

// RenderablePrimitive binds one geometry piece to a material instance.
type RenderablePrimitive struct {
	Type     PrimitiveType
	Vertices *VertexBuffer
	Indices  *IndexBuffer
	Material *MaterialInstance
}

// Renderable is the drawable component attached to an entity.
type Renderable struct {
	Primitives     []RenderablePrimitive
	Bounds         geom.Aabb
	Culling        bool
	CastShadows    bool
	ReceiveShadows bool
	JointCount     uint32
}

// RenderableBuilder mirrors the builder object a rendering engine
// exposes for renderable components. It is sized by primitive count up
// front; Geometry and Material address pieces by index.
type RenderableBuilder struct {
	renderable Renderable
}

func NewRenderableBuilder(primitiveCount int) *RenderableBuilder {
	return &RenderableBuilder{
		renderable: Renderable{
			Primitives: make([]RenderablePrimitive, primitiveCount),
			Bounds:     geom.NewAabb(),
			Culling:    true,
		},
	}
}

func (b *RenderableBuilder) Geometry(i int, t PrimitiveType, vb *VertexBuffer, ib *IndexBuffer) *RenderableBuilder {
	b.renderable.Primitives[i].Type = t
	b.renderable.Primitives[i].Vertices = vb
	b.renderable.Primitives[i].Indices = ib
	return b
}

func (b *RenderableBuilder) Material(i int, mi *MaterialInstance) *RenderableBuilder {
	b.renderable.Primitives[i].Material = mi
	return b
}

func (b *RenderableBuilder) BoundingBox(bounds geom.Aabb) *RenderableBuilder {
	b.renderable.Bounds = bounds
	return b
}

func (b *RenderableBuilder) Culling(enabled bool) *RenderableBuilder {
	b.renderable.Culling = enabled
	return b
}

func (b *RenderableBuilder) CastShadows(enabled bool) *RenderableBuilder {
	b.renderable.CastShadows = enabled
	return b
}

func (b *RenderableBuilder) ReceiveShadows(enabled bool) *RenderableBuilder {
	b.renderable.ReceiveShadows = enabled
	return b
}

func (b *RenderableBuilder) Skinning(jointCount uint32) *RenderableBuilder {
	b.renderable.JointCount = jointCount
	return b
}

func (b *RenderableBuilder) Build(e *Engine, entity Entity) *Renderable {
	r := b.renderable
	e.renderables[entity] = &r
	return &r
}
