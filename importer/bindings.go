package importer

import (
	"github.com/hisui/glscene/scene"
)

// BufferBinding describes one pending byte transfer from source storage
// into a vertex-buffer slot or an index buffer. The import core never
// resolves bytes itself; the resource loader executes these later, when
// external URIs have been fetched.
type BufferBinding struct {
	// URI of the source buffer; empty for GLB-embedded buffers and for
	// synthesized index data.
	URI string
	// Buffer is the source buffer index in the document, or -1 when
	// GenerateTrivialIndices is set.
	Buffer int
	// TotalSize is the declared size of the whole source buffer, kept
	// for bounds checking.
	TotalSize uint32
	Offset    uint32
	Size      uint32

	// Destination: exactly one of VertexBuffer or IndexBuffer is set.
	VertexBuffer *scene.VertexBuffer
	Slot         int
	IndexBuffer  *scene.IndexBuffer

	// ConvertBytesToShorts marks 8-bit source indices that must be
	// widened to 16 bits during transfer.
	ConvertBytesToShorts bool
	// GenerateTrivialIndices marks an index buffer with no source bytes:
	// the primitive had no index accessor, so sequential indices are
	// synthesized.
	GenerateTrivialIndices bool
}

// TextureBinding describes one pending texture upload to a material
// instance parameter.
type TextureBinding struct {
	// URI of the source image; empty when the image lives in a buffer
	// view.
	URI string
	// BufferView is the source buffer view index, or -1 when the image
	// is addressed by URI.
	BufferView int
	TotalSize  uint32
	MimeType   string

	MaterialInstance *scene.MaterialInstance
	Parameter        string

	Sampler scene.Sampler
	// SRGB is chosen per semantic slot: color-like maps are sRGB, data
	// maps (normal, occlusion, metallic-roughness) are linear.
	SRGB bool
}
