package importer

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/hisui/glscene/matgen"
	"github.com/hisui/glscene/scene"
)

// keyRecorder captures the feature keys the loader derives, before the
// generator rewrites them.
type keyRecorder struct {
	gen  *matgen.Generator
	keys []matgen.MaterialKey
}

func (r *keyRecorder) GetOrCreateMaterial(key *matgen.MaterialKey) (*scene.Material, matgen.UvMap) {
	r.keys = append(r.keys, *key)
	return r.gen.GetOrCreateMaterial(key)
}

func texturedDoc() *gltf.Document {
	doc := triangleDoc()
	cutoff := float32(0.25)
	doc.Materials = []*gltf.Material{{
		Name:        "mat",
		DoubleSided: true,
		AlphaMode:   gltf.AlphaMask,
		AlphaCutoff: &cutoff,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
		NormalTexture: &gltf.NormalTexture{Index: gltf.Index(0), TexCoord: 1},
	}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0), Sampler: gltf.Index(0)}}
	doc.Images = []*gltf.Image{{URI: "checker.png"}}
	doc.Samplers = []*gltf.Sampler{{
		WrapS:     gltf.WrapClampToEdge,
		MinFilter: gltf.MinNearest,
		MagFilter: gltf.MagNearest,
	}}
	return doc
}

func TestMaterialKeyDerivation(t *testing.T) {
	rec := &keyRecorder{gen: matgen.NewGenerator()}
	engine := scene.NewEngine()
	loader := NewLoader(engine, rec, nil)

	if _, err := loader.Create(texturedDoc()); err != nil {
		t.Fatal("Create: ", err)
	}
	if len(rec.keys) != 1 {
		t.Fatal("keys: ", len(rec.keys))
	}
	key := rec.keys[0]
	if !key.DoubleSided || key.Unlit {
		t.Error("sidedness/shading: ", key.DoubleSided, key.Unlit)
	}
	if !key.HasBaseColorTexture || key.BaseColorUV != 0 {
		t.Error("base color: ", key.HasBaseColorTexture, key.BaseColorUV)
	}
	if !key.HasNormalTexture || key.NormalUV != 1 {
		t.Error("normal: ", key.HasNormalTexture, key.NormalUV)
	}
	if key.HasEmissiveTexture || key.HasOcclusionTexture || key.HasMetallicRoughnessTexture {
		t.Error("phantom textures in key")
	}
	if key.AlphaMode != matgen.AlphaMasked || key.AlphaMaskThreshold != 0.25 {
		t.Error("alpha: ", key.AlphaMode, key.AlphaMaskThreshold)
	}
}

func TestDefaultMaterial(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Material = nil
	doc.Meshes[0].Primitives[1].Material = nil

	_, loader := newTestLoader()
	asset, err := loader.Create(doc)
	if err != nil {
		t.Fatal("Create: ", err)
	}
	if len(asset.MaterialInstances) != 1 {
		t.Fatal("instances: ", len(asset.MaterialInstances))
	}
	mi := asset.MaterialInstances[0]
	v, ok := mi.Parameter("baseColorFactor")
	if !ok {
		t.Fatal("no baseColorFactor")
	}
	if v.([4]float32) != [4]float32{0, 0, 0, 1} {
		t.Error("default material color: ", v)
	}
}

func TestVertexColorVariants(t *testing.T) {
	doc := triangleDoc()
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat,
		Type: gltf.AccessorVec4, Count: 3,
	})
	doc.Meshes[0].Primitives[1].Attributes[gltf.COLOR_0] = 2

	rec := &keyRecorder{gen: matgen.NewGenerator()}
	engine := scene.NewEngine()
	loader := NewLoader(engine, rec, nil)

	asset, err := loader.Create(doc)
	if err != nil {
		t.Fatal("Create: ", err)
	}
	// Same source material, but the vertex-color bit splits the cache.
	if len(asset.MaterialInstances) != 2 {
		t.Fatal("instances: ", len(asset.MaterialInstances))
	}
	if len(rec.keys) != 2 || rec.keys[0].HasVertexColors == rec.keys[1].HasVertexColors {
		t.Error("vertex-color bit not derived per primitive")
	}
}

func TestSpecularGlossinessFallback(t *testing.T) {
	doc := triangleDoc()
	doc.Materials[0].Extensions = gltf.Extensions{
		ExtSpecularGlossiness: json.RawMessage(`{}`),
	}

	_, loader := newTestLoader()
	asset, err := loader.Create(doc)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatal("expected ErrIncomplete, got ", err)
	}
	// The metallic-roughness fallback still produces an instance.
	if len(asset.MaterialInstances) != 1 {
		t.Error("instances: ", len(asset.MaterialInstances))
	}
}

func TestTextureBindings(t *testing.T) {
	_, loader := newTestLoader()
	asset, err := loader.Create(texturedDoc())
	if err != nil {
		t.Fatal("Create: ", err)
	}
	if len(asset.TextureBindings) != 2 {
		t.Fatal("texture bindings: ", len(asset.TextureBindings))
	}
	byParam := map[string]TextureBinding{}
	for _, b := range asset.TextureBindings {
		byParam[b.Parameter] = b
	}

	base, ok := byParam["baseColorMap"]
	if !ok {
		t.Fatal("no base color binding")
	}
	if base.URI != "checker.png" || base.BufferView != -1 {
		t.Error("base color source: ", base.URI, base.BufferView)
	}
	if !base.SRGB {
		t.Error("base color must be srgb")
	}
	if base.Sampler.WrapS != scene.WrapClampToEdge ||
		base.Sampler.MinFilter != scene.MinNearest ||
		base.Sampler.MagFilter != scene.MagNearest {
		t.Error("sampler: ", base.Sampler)
	}
	// WrapT was unset in the source sampler, the glTF default applies.
	if base.Sampler.WrapT != scene.WrapRepeat {
		t.Error("wrapT: ", base.Sampler.WrapT)
	}

	normal, ok := byParam["normalMap"]
	if !ok {
		t.Fatal("no normal binding")
	}
	if normal.SRGB {
		t.Error("normal map must be linear")
	}
}

func TestTextureBindingEmbeddedImage(t *testing.T) {
	doc := texturedDoc()
	doc.Images[0] = &gltf.Image{BufferView: gltf.Index(1), MimeType: "image/png"}

	_, loader := newTestLoader()
	asset, err := loader.Create(doc)
	if err != nil {
		t.Fatal("Create: ", err)
	}
	b := asset.TextureBindings[0]
	if b.BufferView != 1 || b.URI != "" {
		t.Error("embedded image source: ", b.BufferView, b.URI)
	}
	if b.MimeType != "image/png" {
		t.Error("mime type: ", b.MimeType)
	}
}

func TestDefaultSampler(t *testing.T) {
	s := defaultSampler()
	if s.WrapS != scene.WrapRepeat || s.WrapT != scene.WrapRepeat {
		t.Error("wrap: ", s.WrapS, s.WrapT)
	}
	if s.MinFilter != scene.MinLinearMipmapLinear || s.MagFilter != scene.MagLinear {
		t.Error("filters: ", s.MinFilter, s.MagFilter)
	}
}
