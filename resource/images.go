package resource

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"

	"github.com/blezek/tga"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"

	"github.com/hisui/glscene/importer"
	"github.com/hisui/glscene/scene"
)

func (l *Loader) applyTextureBinding(doc *gltf.Document, b *importer.TextureBinding) error {
	data, err := l.imageBytes(doc, b)
	if err != nil {
		return err
	}
	img, err := decodeImage(data, b.URI)
	if err != nil {
		return errors.Wrapf(err, "decode image %q", b.URI)
	}
	name := b.URI
	if name == "" {
		name = b.Parameter
	}
	b.MaterialInstance.SetTexture(b.Parameter, &scene.Texture{
		Name:  name,
		Image: img,
		SRGB:  b.SRGB,
	}, b.Sampler)
	return nil
}

func (l *Loader) imageBytes(doc *gltf.Document, b *importer.TextureBinding) ([]byte, error) {
	if b.BufferView >= 0 {
		if b.BufferView >= len(doc.BufferViews) {
			return nil, errors.Errorf("buffer view %d out of range", b.BufferView)
		}
		bv := doc.BufferViews[b.BufferView]
		if int(bv.Buffer) >= len(doc.Buffers) {
			return nil, errors.Errorf("buffer %d out of range", bv.Buffer)
		}
		buf := doc.Buffers[bv.Buffer].Data
		end := uint64(bv.ByteOffset) + uint64(bv.ByteLength)
		if end > uint64(len(buf)) {
			return nil, errors.Errorf("buffer view range exceeds buffer size %d", len(buf))
		}
		return buf[bv.ByteOffset:end], nil
	}
	if b.URI == "" {
		return nil, errors.New("texture has neither buffer view nor uri")
	}
	return l.uriBytes(b.URI)
}

// decodeImage tries the registered formats first. Some TGA files carry no
// recognizable magic, so a failed sniff on a .tga name gets one retry with
// the TGA decoder directly.
func decodeImage(data []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil && strings.EqualFold(filepath.Ext(name), ".tga") {
		return tga.Decode(bytes.NewReader(data))
	}
	return img, err
}
