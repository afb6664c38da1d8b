package scene

// VertexSemantic names the role of a vertex attribute slot.
type VertexSemantic uint8

const (
	SemanticPosition VertexSemantic = iota
	// SemanticTangents carries surface orientation as packed quaternions,
	// computed downstream from source normals/tangents.
	SemanticTangents
	SemanticColor
	SemanticUV0
	SemanticUV1
	SemanticBoneIndices
	SemanticBoneWeights
)

func (s VertexSemantic) String() string {
	switch s {
	case SemanticPosition:
		return "position"
	case SemanticTangents:
		return "tangents"
	case SemanticColor:
		return "color"
	case SemanticUV0:
		return "uv0"
	case SemanticUV1:
		return "uv1"
	case SemanticBoneIndices:
		return "boneIndices"
	case SemanticBoneWeights:
		return "boneWeights"
	}
	return "unknown"
}

// AttributeType is the element layout of one vertex attribute.
type AttributeType uint8

const (
	AttrByte AttributeType = iota
	AttrByte2
	AttrByte3
	AttrByte4
	AttrUbyte
	AttrUbyte2
	AttrUbyte3
	AttrUbyte4
	AttrShort
	AttrShort2
	AttrShort3
	AttrShort4
	AttrUshort
	AttrUshort2
	AttrUshort3
	AttrUshort4
	AttrInt
	AttrUint
	AttrFloat
	AttrFloat2
	AttrFloat3
	AttrFloat4
)

// VertexAttribute describes one declared attribute of a vertex buffer.
type VertexAttribute struct {
	Semantic   VertexSemantic
	Slot       int
	Type       AttributeType
	Offset     uint32
	Stride     uint32
	Normalized bool
}

// VertexBuffer owns one byte slot per source attribute. Slot contents are
// filled later by a resource loader; only the layout is known here.
type VertexBuffer struct {
	VertexCount uint32
	Attributes  []VertexAttribute
	Slots       [][]byte
}

// VertexBufferBuilder mirrors the builder object a rendering engine
// exposes for vertex buffers.
type VertexBufferBuilder struct {
	bufferCount int
	vertexCount uint32
	attributes  []VertexAttribute
	normalized  map[VertexSemantic]bool
}

func NewVertexBufferBuilder() *VertexBufferBuilder {
	return &VertexBufferBuilder{normalized: map[VertexSemantic]bool{}}
}

func (b *VertexBufferBuilder) BufferCount(n int) *VertexBufferBuilder {
	b.bufferCount = n
	return b
}

func (b *VertexBufferBuilder) VertexCount(n uint32) *VertexBufferBuilder {
	b.vertexCount = n
	return b
}

func (b *VertexBufferBuilder) Attribute(semantic VertexSemantic, slot int, attrType AttributeType, offset, stride uint32) *VertexBufferBuilder {
	b.attributes = append(b.attributes, VertexAttribute{
		Semantic: semantic,
		Slot:     slot,
		Type:     attrType,
		Offset:   offset,
		Stride:   stride,
	})
	return b
}

func (b *VertexBufferBuilder) Normalized(semantic VertexSemantic) *VertexBufferBuilder {
	b.normalized[semantic] = true
	return b
}

func (b *VertexBufferBuilder) Build(e *Engine) *VertexBuffer {
	attrs := make([]VertexAttribute, len(b.attributes))
	copy(attrs, b.attributes)
	for i := range attrs {
		if b.normalized[attrs[i].Semantic] {
			attrs[i].Normalized = true
		}
	}
	vb := &VertexBuffer{
		VertexCount: b.vertexCount,
		Attributes:  attrs,
		Slots:       make([][]byte, b.bufferCount),
	}
	e.vertexBuffers = append(e.vertexBuffers, vb)
	return vb
}

// IndexType is the storage width of index buffer elements.
type IndexType uint8

const (
	IndexUshort IndexType = iota
	IndexUint
)

func (t IndexType) ByteSize() uint32 {
	if t == IndexUint {
		return 4
	}
	return 2
}

// IndexBuffer owns index storage. Data is filled by a resource loader.
type IndexBuffer struct {
	IndexCount uint32
	Type       IndexType
	Data       []byte
}

type IndexBufferBuilder struct {
	indexCount uint32
	indexType  IndexType
}

func NewIndexBufferBuilder() *IndexBufferBuilder {
	return &IndexBufferBuilder{}
}

func (b *IndexBufferBuilder) IndexCount(n uint32) *IndexBufferBuilder {
	b.indexCount = n
	return b
}

func (b *IndexBufferBuilder) BufferType(t IndexType) *IndexBufferBuilder {
	b.indexType = t
	return b
}

func (b *IndexBufferBuilder) Build(e *Engine) *IndexBuffer {
	ib := &IndexBuffer{
		IndexCount: b.indexCount,
		Type:       b.indexType,
		Data:       make([]byte, b.indexCount*b.indexType.ByteSize()),
	}
	e.indexBuffers = append(e.indexBuffers, ib)
	return ib
}
