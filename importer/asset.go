// Package importer turns a parsed glTF document into a scene graph:
// one entity per source node with the transform hierarchy reproduced,
// renderables for mesh nodes, deduplicated vertex/index buffers and
// material instances, and a deferred binding plan describing the byte
// transfers a resource loader performs later.
package importer

import (
	"github.com/hisui/glscene/geom"
	"github.com/hisui/glscene/scene"
)

// Asset is the result of one import call. The engine owns the created
// entities and buffers; the asset keeps references so that downstream
// stages (resource loading, animation binding, tooling) can find them.
type Asset struct {
	// Root is an extra entity with an identity transform parenting all
	// scene roots, as a convenience to the client. Zero when the
	// document has no scenes.
	Root scene.Entity

	// Entities lists every created entity in depth-first pre-order.
	Entities []scene.Entity

	// NodeMap maps a source node index to its created entity. Exposed
	// for tooling and animation binding.
	NodeMap map[int]scene.Entity

	Skins             []Skin
	MaterialInstances []*scene.MaterialInstance

	// BufferBindings and TextureBindings form the deferred binding plan,
	// consumed by the resource loader.
	BufferBindings  []BufferBinding
	TextureBindings []TextureBinding

	// Bounds is the world-space union of all renderable bounds.
	Bounds geom.Aabb
}

// Skin resolves a source skin's joint node references to entities, plus
// the renderable entities the skin drives. Joints are resolved only
// after the full node traversal since a joint may be visited after the
// node referencing it.
type Skin struct {
	Name    string
	Joints  []scene.Entity
	Targets []scene.Entity
}
