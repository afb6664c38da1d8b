package importer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/hisui/glscene/geom"
	"github.com/hisui/glscene/matgen"
	"github.com/hisui/glscene/scene"
)

// ErrIncomplete is returned together with a partially built asset when
// unsupported features were skipped during the import. The caller
// decides whether the partial asset is still usable.
var ErrIncomplete = errors.New("import completed with unsupported features skipped")

// MaterialProvider resolves a material feature key into a compiled
// variant and the UV-slot assignment its textures ended up with. It may
// rewrite the key to match engine constraints (e.g. drop texture
// coordinate sets beyond the supported two).
type MaterialProvider interface {
	GetOrCreateMaterial(key *matgen.MaterialKey) (*scene.Material, matgen.UvMap)
}

// Option configures a Loader. The zero value disables shadows; use
// DefaultOption as a base.
type Option struct {
	Logger         *zap.Logger
	CastShadows    bool
	ReceiveShadows bool
}

func DefaultOption() *Option {
	return &Option{CastShadows: true, ReceiveShadows: true}
}

// Loader builds assets from glTF documents. One Loader may be reused
// across imports; all per-import state lives in a build context local
// to each Create call.
type Loader struct {
	engine    *scene.Engine
	materials MaterialProvider
	log       *zap.Logger

	castShadows    bool
	receiveShadows bool
}

func NewLoader(engine *scene.Engine, materials MaterialProvider, options *Option) *Loader {
	if options == nil {
		options = DefaultOption()
	}
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		engine:         engine,
		materials:      materials,
		log:            log,
		castShadows:    options.CastShadows,
		receiveShadows: options.ReceiveShadows,
	}
}

// buildContext holds the transient caches of one import call. It is
// discarded when Create returns, so repeated imports never share state.
type buildContext struct {
	doc   *gltf.Document
	asset *Asset

	// meshCache shares primitive buffers between nodes referencing the
	// same source mesh. Keyed by mesh index.
	meshCache map[int][]*Primitive

	// matCache deduplicates material instances by
	// (material index, vertex-color) pair. Key 0 is reserved for the
	// document's implicit default material.
	matCache map[int64]*materialEntry

	// incomplete records that at least one unsupported feature was
	// skipped.
	incomplete bool
}

type materialEntry struct {
	instance *scene.MaterialInstance
	uvmap    matgen.UvMap
}

// Create builds one asset from doc. When unsupported features were
// skipped the partial asset is returned together with ErrIncomplete;
// contract violations (such as a skin joint that resolves to no created
// node) fail the import outright.
func (l *Loader) Create(doc *gltf.Document) (*Asset, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	ctx := &buildContext{
		doc: doc,
		asset: &Asset{
			NodeMap: map[int]scene.Entity{},
			Bounds:  geom.NewAabb(),
		},
		meshCache: map[int][]*Primitive{},
		matCache:  map[int64]*materialEntry{},
	}

	// No default scene means the first one; zero scenes is not an error.
	var sc *gltf.Scene
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		sc = doc.Scenes[*doc.Scene]
	} else if len(doc.Scenes) > 0 {
		sc = doc.Scenes[0]
	}
	if sc == nil {
		return ctx.asset, nil
	}

	// A single extra root with an identity transform parents all scene
	// roots, as a convenience to the client.
	root := l.engine.Entities().Create()
	l.engine.Transforms().Create(root, 0, mgl32.Ident4())
	ctx.asset.Root = root

	for _, n := range sc.Nodes {
		l.createEntity(ctx, int(n), root)
	}

	if err := l.importSkins(ctx); err != nil {
		return nil, err
	}

	if ctx.incomplete {
		return ctx.asset, ErrIncomplete
	}
	return ctx.asset, nil
}

// createEntity visits one node in depth-first pre-order, creating its
// entity and transform before recursing into children.
func (l *Loader) createEntity(ctx *buildContext, nodeIndex int, parent scene.Entity) {
	if nodeIndex < 0 || nodeIndex >= len(ctx.doc.Nodes) {
		l.log.Error("node index out of range", zap.Int("node", nodeIndex))
		ctx.incomplete = true
		return
	}
	// Source hierarchies are trees; a node reached twice means a cycle
	// or a diamond in malformed input.
	if _, seen := ctx.asset.NodeMap[nodeIndex]; seen {
		l.log.Error("node reachable through multiple parents, skipping", zap.Int("node", nodeIndex))
		ctx.incomplete = true
		return
	}
	node := ctx.doc.Nodes[nodeIndex]

	entity := l.engine.Entities().Create()

	var local = geom.ComposeTRS(node.TranslationOrDefault(), node.RotationOrDefault(), node.ScaleOrDefault())
	if node.MatrixOrDefault() != gltf.DefaultMatrix {
		local = geom.Mat4FromColumns(node.MatrixOrDefault())
	}
	l.engine.Transforms().Create(entity, parent, local)

	ctx.asset.Entities = append(ctx.asset.Entities, entity)
	ctx.asset.NodeMap[nodeIndex] = entity

	if node.Mesh != nil {
		l.createRenderable(ctx, node, entity)
	}

	for _, child := range node.Children {
		l.createEntity(ctx, int(child), entity)
	}
}

// createRenderable attaches a renderable component for a mesh-bearing
// node, sharing buffers through the mesh cache and aggregating bounds.
func (l *Loader) createRenderable(ctx *buildContext, node *gltf.Node, entity scene.Entity) {
	meshIndex := int(*node.Mesh)
	if meshIndex >= len(ctx.doc.Meshes) {
		l.log.Error("mesh index out of range", zap.Int("mesh", meshIndex))
		ctx.incomplete = true
		return
	}
	mesh := ctx.doc.Meshes[meshIndex]
	nprims := len(mesh.Primitives)
	if nprims == 0 {
		l.log.Warn("mesh has no primitives", zap.String("mesh", mesh.Name))
		return
	}

	prims, ok := ctx.meshCache[meshIndex]
	if !ok {
		prims = make([]*Primitive, nprims)
		ctx.meshCache[meshIndex] = prims
	}

	builder := scene.NewRenderableBuilder(nprims)
	bounds := geom.NewAabb()

	for i, inPrim := range mesh.Primitives {
		primType, ok := primitiveType(inPrim.Mode)
		if !ok {
			l.log.Error("unsupported primitive type", zap.String("mesh", mesh.Name), zap.Int("primitive", i))
			ctx.incomplete = true
			continue
		}

		mi, uvmap := l.createMaterialInstance(ctx, inPrim.Material, primitiveHasVertexColor(inPrim))
		builder.Material(i, mi)

		// Buffers are built once per distinct source mesh; later nodes
		// referencing the same mesh reuse them.
		if prims[i] == nil {
			p, err := l.createPrimitive(ctx, inPrim, uvmap)
			if err != nil {
				l.log.Error("skipping primitive", zap.String("mesh", mesh.Name), zap.Int("primitive", i), zap.Error(err))
				ctx.incomplete = true
				continue
			}
			prims[i] = p
		}

		bounds.Union(prims[i].Bounds)
		builder.Geometry(i, primType, prims[i].Vertices, prims[i].Indices)
	}

	world := l.engine.Transforms().World(entity)
	ctx.asset.Bounds.Union(bounds.Transform(world))

	if node.Skin != nil && int(*node.Skin) < len(ctx.doc.Skins) {
		builder.Skinning(uint32(len(ctx.doc.Skins[*node.Skin].Joints)))
	}

	builder.
		BoundingBox(bounds).
		Culling(false).
		CastShadows(l.castShadows).
		ReceiveShadows(l.receiveShadows).
		Build(l.engine, entity)
}

func primitiveHasVertexColor(p *gltf.Primitive) bool {
	_, ok := p.Attributes[gltf.COLOR_0]
	return ok
}

func primitiveType(mode gltf.PrimitiveMode) (scene.PrimitiveType, bool) {
	switch mode {
	case gltf.PrimitivePoints:
		return scene.Points, true
	case gltf.PrimitiveLines:
		return scene.Lines, true
	case gltf.PrimitiveTriangles:
		return scene.Triangles, true
	}
	// Strips, fans and loops need index rewriting the engine does not do.
	return 0, false
}
