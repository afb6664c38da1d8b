package importer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/hisui/glscene/geom"
	"github.com/hisui/glscene/matgen"
	"github.com/hisui/glscene/scene"
)

// Primitive is one drawable piece of a mesh: a shared vertex/index
// buffer pair plus its object-space bounds.
type Primitive struct {
	Vertices *scene.VertexBuffer
	Indices  *scene.IndexBuffer
	Bounds   geom.Aabb
}

// accessorStride is the distance between elements, taking the buffer
// view's interleaving stride into account. glTF leaves the stride zero
// for tightly packed data.
func accessorStride(doc *gltf.Document, acc *gltf.Accessor) uint32 {
	if acc.BufferView != nil {
		if bv := doc.BufferViews[*acc.BufferView]; bv.ByteStride != 0 {
			return bv.ByteStride
		}
	}
	return gltf.SizeOfElement(acc.ComponentType, acc.Type)
}

// bindingSize is the exact byte span covered by an accessor. A flat
// stride*count would overshoot past the last element of interleaved
// data, so the last element contributes only its own size.
func bindingSize(doc *gltf.Document, acc *gltf.Accessor) uint32 {
	if acc.Count == 0 {
		return 0
	}
	return accessorStride(doc, acc)*(acc.Count-1) + gltf.SizeOfElement(acc.ComponentType, acc.Type)
}

func bindingOffset(doc *gltf.Document, acc *gltf.Accessor) uint32 {
	return acc.ByteOffset + doc.BufferViews[*acc.BufferView].ByteOffset
}

type plannedAttribute struct {
	accessor *gltf.Accessor
	slot     int
}

// createPrimitive builds the vertex/index buffer pair for one source
// primitive and emits the deferred buffer bindings. Validation happens
// before any buffer is created so a rejected primitive leaves no
// half-emitted bindings behind.
func (l *Loader) createPrimitive(ctx *buildContext, inPrim *gltf.Primitive, uvmap matgen.UvMap) (*Primitive, error) {
	doc := ctx.doc

	// Deterministic slot order; glTF attribute maps are unordered.
	names := make([]string, 0, len(inPrim.Attributes))
	for name := range inPrim.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.New("primitive has no attributes")
	}

	var indexAccessor *gltf.Accessor
	var indexType scene.IndexType
	var widenIndices bool
	if inPrim.Indices != nil {
		if int(*inPrim.Indices) >= len(doc.Accessors) {
			return nil, errors.Errorf("index accessor %d out of range", *inPrim.Indices)
		}
		indexAccessor = doc.Accessors[*inPrim.Indices]
		var ok bool
		indexType, widenIndices, ok = indexTypeOf(indexAccessor.ComponentType)
		if !ok {
			return nil, errors.Errorf("unrecognized index type %v", indexAccessor.ComponentType)
		}
		if indexAccessor.BufferView == nil {
			return nil, errors.New("index accessor has no buffer view")
		}
	}

	// Plan every vertex attribute before building anything.
	vbb := scene.NewVertexBufferBuilder().BufferCount(len(names))
	bounds := geom.NewAabb()
	var planned []plannedAttribute
	var vertexCount uint32
	for slot, name := range names {
		accIndex := inPrim.Attributes[name]
		if int(accIndex) >= len(doc.Accessors) {
			return nil, errors.Errorf("accessor %d out of range", accIndex)
		}
		acc := doc.Accessors[accIndex]

		// Surface orientation needs source normals, but they are stored
		// as packed quaternions computed downstream. The slot is
		// declared here and filled later; no binding is emitted.
		if name == gltf.NORMAL {
			vbb.Attribute(scene.SemanticTangents, slot, scene.AttrShort4, 0, 0)
			vbb.Normalized(scene.SemanticTangents)
			vertexCount = acc.Count
			continue
		}

		// Source tangents are honored downstream, not here.
		if name == gltf.TANGENT {
			continue
		}

		semantic, skip, err := attributeSemantic(name, uvmap)
		if err != nil {
			return nil, err
		}
		if skip {
			// Texture coordinate sets outside the UV mapping table are
			// dropped; this is common when a material binds no texture.
			continue
		}

		if acc.Sparse != nil {
			return nil, errors.New("sparse accessors are not supported")
		}
		if acc.BufferView == nil {
			return nil, errors.New("accessor has no buffer view")
		}
		attrType, ok := elementTypeOf(acc.Type, acc.ComponentType)
		if !ok {
			return nil, errors.Errorf("unsupported accessor type %v/%v", acc.Type, acc.ComponentType)
		}

		if name == gltf.POSITION && len(acc.Min) >= 3 && len(acc.Max) >= 3 {
			bounds.Extend(mgl32.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]})
			bounds.Extend(mgl32.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]})
		}

		vertexCount = acc.Count
		vbb.Attribute(semantic, slot, attrType, 0, accessorStride(doc, acc))
		if acc.Normalized {
			vbb.Normalized(semantic)
		}
		planned = append(planned, plannedAttribute{accessor: acc, slot: slot})
	}
	vbb.VertexCount(vertexCount)

	// Materialize the index buffer and its binding.
	var indices *scene.IndexBuffer
	if indexAccessor != nil {
		indices = scene.NewIndexBufferBuilder().
			IndexCount(indexAccessor.Count).
			BufferType(indexType).
			Build(l.engine)
		bv := doc.BufferViews[*indexAccessor.BufferView]
		buf := doc.Buffers[bv.Buffer]
		ctx.asset.BufferBindings = append(ctx.asset.BufferBindings, BufferBinding{
			URI:                  buf.URI,
			Buffer:               int(bv.Buffer),
			TotalSize:            buf.ByteLength,
			Offset:               bindingOffset(doc, indexAccessor),
			Size:                 bindingSize(doc, indexAccessor),
			IndexBuffer:          indices,
			ConvertBytesToShorts: widenIndices,
		})
	} else {
		// No index accessor: synthesize sequential indices later.
		indices = scene.NewIndexBufferBuilder().
			IndexCount(vertexCount).
			BufferType(scene.IndexUint).
			Build(l.engine)
		ctx.asset.BufferBindings = append(ctx.asset.BufferBindings, BufferBinding{
			Buffer:                 -1,
			Size:                   vertexCount * 4,
			IndexBuffer:            indices,
			GenerateTrivialIndices: true,
		})
	}

	vertices := vbb.Build(l.engine)
	for _, p := range planned {
		bv := doc.BufferViews[*p.accessor.BufferView]
		buf := doc.Buffers[bv.Buffer]
		ctx.asset.BufferBindings = append(ctx.asset.BufferBindings, BufferBinding{
			URI:          buf.URI,
			Buffer:       int(bv.Buffer),
			TotalSize:    buf.ByteLength,
			Offset:       bindingOffset(doc, p.accessor),
			Size:         bindingSize(doc, p.accessor),
			VertexBuffer: vertices,
			Slot:         p.slot,
		})
	}

	return &Primitive{Vertices: vertices, Indices: indices, Bounds: bounds}, nil
}

// attributeSemantic maps a glTF attribute name to an engine semantic.
// Texture coordinate sets are routed through the material's UV mapping;
// an unused set returns skip=true.
func attributeSemantic(name string, uvmap matgen.UvMap) (scene.VertexSemantic, bool, error) {
	switch {
	case name == gltf.POSITION:
		return scene.SemanticPosition, false, nil
	case strings.HasPrefix(name, "COLOR_"):
		return scene.SemanticColor, false, nil
	case strings.HasPrefix(name, "JOINTS_"):
		return scene.SemanticBoneIndices, false, nil
	case strings.HasPrefix(name, "WEIGHTS_"):
		return scene.SemanticBoneWeights, false, nil
	case strings.HasPrefix(name, "TEXCOORD_"):
		set, err := strconv.Atoi(name[len("TEXCOORD_"):])
		if err != nil || set < 0 || set >= matgen.MaxUvSets {
			return 0, false, errors.Errorf("malformed texcoord attribute %q", name)
		}
		switch uvmap[set] {
		case matgen.Uv0:
			return scene.SemanticUV0, false, nil
		case matgen.Uv1:
			return scene.SemanticUV1, false, nil
		}
		return 0, true, nil
	}
	return 0, false, errors.Errorf("unrecognized vertex semantic %q", name)
}

func indexTypeOf(c gltf.ComponentType) (scene.IndexType, bool, bool) {
	switch c {
	case gltf.ComponentUbyte:
		return scene.IndexUshort, true, true
	case gltf.ComponentUshort:
		return scene.IndexUshort, false, true
	case gltf.ComponentUint:
		return scene.IndexUint, false, true
	}
	return 0, false, false
}

func elementTypeOf(t gltf.AccessorType, c gltf.ComponentType) (scene.AttributeType, bool) {
	switch t {
	case gltf.AccessorScalar:
		switch c {
		case gltf.ComponentByte:
			return scene.AttrByte, true
		case gltf.ComponentUbyte:
			return scene.AttrUbyte, true
		case gltf.ComponentShort:
			return scene.AttrShort, true
		case gltf.ComponentUshort:
			return scene.AttrUshort, true
		case gltf.ComponentUint:
			return scene.AttrUint, true
		case gltf.ComponentFloat:
			return scene.AttrFloat, true
		}
	case gltf.AccessorVec2:
		switch c {
		case gltf.ComponentByte:
			return scene.AttrByte2, true
		case gltf.ComponentUbyte:
			return scene.AttrUbyte2, true
		case gltf.ComponentShort:
			return scene.AttrShort2, true
		case gltf.ComponentUshort:
			return scene.AttrUshort2, true
		case gltf.ComponentFloat:
			return scene.AttrFloat2, true
		}
	case gltf.AccessorVec3:
		switch c {
		case gltf.ComponentByte:
			return scene.AttrByte3, true
		case gltf.ComponentUbyte:
			return scene.AttrUbyte3, true
		case gltf.ComponentShort:
			return scene.AttrShort3, true
		case gltf.ComponentUshort:
			return scene.AttrUshort3, true
		case gltf.ComponentFloat:
			return scene.AttrFloat3, true
		}
	case gltf.AccessorVec4:
		switch c {
		case gltf.ComponentByte:
			return scene.AttrByte4, true
		case gltf.ComponentUbyte:
			return scene.AttrUbyte4, true
		case gltf.ComponentShort:
			return scene.AttrShort4, true
		case gltf.ComponentUshort:
			return scene.AttrUshort4, true
		case gltf.ComponentFloat:
			return scene.AttrFloat4, true
		}
	}
	return 0, false
}
