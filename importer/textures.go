package importer

import (
	"go.uber.org/zap"

	"github.com/qmuntal/gltf"

	"github.com/hisui/glscene/scene"
)

// defaultSampler is used when the source texture declares no sampler.
// Repeat wrapping is stipulated by the glTF spec; the mipmapped
// minification filter is our choice, since mipmaps are generated
// unconditionally downstream.
func defaultSampler() scene.Sampler {
	return scene.Sampler{
		WrapS:     scene.WrapRepeat,
		WrapT:     scene.WrapRepeat,
		MinFilter: scene.MinLinearMipmapLinear,
		MagFilter: scene.MagLinear,
	}
}

// addTextureBinding appends a deferred texture upload for one material
// parameter. A texture without an image is skipped with a warning.
func (l *Loader) addTextureBinding(ctx *buildContext, mi *scene.MaterialInstance, parameter string, textureIndex uint32, srgb bool) {
	doc := ctx.doc
	if int(textureIndex) >= len(doc.Textures) {
		l.log.Warn("texture index out of range", zap.Uint32("texture", textureIndex))
		return
	}
	texture := doc.Textures[textureIndex]
	if texture.Source == nil || int(*texture.Source) >= len(doc.Images) {
		l.log.Warn("texture is missing an image", zap.String("texture", texture.Name))
		return
	}
	img := doc.Images[*texture.Source]

	sampler := defaultSampler()
	if texture.Sampler != nil && int(*texture.Sampler) < len(doc.Samplers) {
		sampler = convertSampler(doc.Samplers[*texture.Sampler])
	}

	binding := TextureBinding{
		URI:              img.URI,
		BufferView:       -1,
		MimeType:         img.MimeType,
		MaterialInstance: mi,
		Parameter:        parameter,
		Sampler:          sampler,
		SRGB:             srgb,
	}
	if img.BufferView != nil && int(*img.BufferView) < len(doc.BufferViews) {
		bv := doc.BufferViews[*img.BufferView]
		binding.BufferView = int(*img.BufferView)
		binding.TotalSize = doc.Buffers[bv.Buffer].ByteLength
	}
	ctx.asset.TextureBindings = append(ctx.asset.TextureBindings, binding)
}

func convertSampler(s *gltf.Sampler) scene.Sampler {
	out := defaultSampler()
	switch s.WrapS {
	case gltf.WrapClampToEdge:
		out.WrapS = scene.WrapClampToEdge
	case gltf.WrapMirroredRepeat:
		out.WrapS = scene.WrapMirroredRepeat
	}
	switch s.WrapT {
	case gltf.WrapClampToEdge:
		out.WrapT = scene.WrapClampToEdge
	case gltf.WrapMirroredRepeat:
		out.WrapT = scene.WrapMirroredRepeat
	}
	switch s.MinFilter {
	case gltf.MinNearest:
		out.MinFilter = scene.MinNearest
	case gltf.MinLinear:
		out.MinFilter = scene.MinLinear
	case gltf.MinNearestMipMapNearest:
		out.MinFilter = scene.MinNearestMipmapNearest
	case gltf.MinLinearMipMapNearest:
		out.MinFilter = scene.MinLinearMipmapNearest
	case gltf.MinNearestMipMapLinear:
		out.MinFilter = scene.MinNearestMipmapLinear
	case gltf.MinLinearMipMapLinear:
		out.MinFilter = scene.MinLinearMipmapLinear
	}
	switch s.MagFilter {
	case gltf.MagNearest:
		out.MagFilter = scene.MagNearest
	case gltf.MagLinear:
		out.MagFilter = scene.MagLinear
	}
	return out
}
