// Package resource executes the deferred binding plan emitted by the
// importer: it resolves source bytes, copies them into the destination
// vertex/index buffers, and decodes and attaches textures. This is the
// only stage that touches raw bytes; the import core stays I/O-free.
package resource

import (
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/hisui/glscene/importer"
)

// Option configures a Loader.
type Option struct {
	Logger *zap.Logger
	// Dir is the base directory relative URIs are resolved against.
	Dir string
	// ReadFile overrides how URI bytes are fetched. Defaults to reading
	// from Dir.
	ReadFile func(uri string) ([]byte, error)
}

// Loader applies BufferBindings and TextureBindings to the buffers and
// material instances they reference.
type Loader struct {
	log      *zap.Logger
	readFile func(uri string) ([]byte, error)
}

func NewLoader(options *Option) *Loader {
	if options == nil {
		options = &Option{}
	}
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
	}
	readFile := options.ReadFile
	if readFile == nil {
		dir := options.Dir
		readFile = func(uri string) ([]byte, error) {
			return os.ReadFile(filepath.Join(dir, uri))
		}
	}
	return &Loader{log: log, readFile: readFile}
}

// Load executes every binding in the asset's plan. Failing bindings are
// logged and skipped; an error summarizing the failures is returned when
// any binding could not be applied.
func (l *Loader) Load(asset *importer.Asset, doc *gltf.Document) error {
	failed := 0
	for i := range asset.BufferBindings {
		b := &asset.BufferBindings[i]
		if err := l.applyBufferBinding(doc, b); err != nil {
			l.log.Error("buffer binding failed", zap.String("uri", b.URI), zap.Error(err))
			failed++
		}
	}
	for i := range asset.TextureBindings {
		b := &asset.TextureBindings[i]
		if err := l.applyTextureBinding(doc, b); err != nil {
			l.log.Error("texture binding failed", zap.String("uri", b.URI), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d bindings failed",
			failed, len(asset.BufferBindings)+len(asset.TextureBindings))
	}
	return nil
}

func (l *Loader) applyBufferBinding(doc *gltf.Document, b *importer.BufferBinding) error {
	if b.GenerateTrivialIndices {
		ib := b.IndexBuffer
		for i := uint32(0); i < ib.IndexCount; i++ {
			binary.LittleEndian.PutUint32(ib.Data[i*4:], i)
		}
		return nil
	}

	src, err := l.bufferBytes(doc, b.Buffer, b.URI)
	if err != nil {
		return err
	}
	if b.TotalSize > 0 && uint32(len(src)) < b.TotalSize {
		return errors.Errorf("source buffer truncated: %d < %d", len(src), b.TotalSize)
	}
	end := uint64(b.Offset) + uint64(b.Size)
	if end > uint64(len(src)) {
		return errors.Errorf("binding range [%d:%d] exceeds buffer size %d", b.Offset, end, len(src))
	}
	data := src[b.Offset:end]

	switch {
	case b.IndexBuffer != nil:
		if b.ConvertBytesToShorts {
			// 8-bit indices are widened; no GPU format supports them.
			for i, v := range data {
				binary.LittleEndian.PutUint16(b.IndexBuffer.Data[i*2:], uint16(v))
			}
		} else {
			copy(b.IndexBuffer.Data, data)
		}
	case b.VertexBuffer != nil:
		if b.Slot >= len(b.VertexBuffer.Slots) {
			return errors.Errorf("slot %d out of range", b.Slot)
		}
		b.VertexBuffer.Slots[b.Slot] = append([]byte(nil), data...)
	default:
		return errors.New("binding has no destination")
	}
	return nil
}

// bufferBytes prefers bytes the parser already loaded (GLB chunks and
// data URIs) and falls back to fetching the URI.
func (l *Loader) bufferBytes(doc *gltf.Document, index int, uri string) ([]byte, error) {
	if index >= 0 && index < len(doc.Buffers) && len(doc.Buffers[index].Data) > 0 {
		return doc.Buffers[index].Data, nil
	}
	if uri != "" {
		return l.uriBytes(uri)
	}
	return nil, errors.New("no source bytes available")
}

func (l *Loader) uriBytes(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		comma := strings.IndexByte(uri, ',')
		if comma < 0 {
			return nil, errors.New("malformed data uri")
		}
		return base64.StdEncoding.DecodeString(uri[comma+1:])
	}
	return l.readFile(uri)
}
