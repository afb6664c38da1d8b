package importer

import (
	"go.uber.org/zap"

	"github.com/qmuntal/gltf"

	"github.com/hisui/glscene/geom"
	"github.com/hisui/glscene/matgen"
	"github.com/hisui/glscene/scene"
)

// ExtUnlit and ExtSpecularGlossiness are material extensions recognized
// by presence only.
const (
	ExtUnlit              = "KHR_materials_unlit"
	ExtSpecularGlossiness = "KHR_materials_pbrSpecularGlossiness"
)

const defaultMaterialKey = int64(0)

func materialCacheKey(matIndex *uint32, vertexColor bool) int64 {
	if matIndex == nil {
		// The implicit default material is shared regardless of vertex
		// colors; it is unlit, so colors cannot affect its variant.
		return defaultMaterialKey
	}
	key := (int64(*matIndex) + 1) << 1
	if vertexColor {
		key |= 1
	}
	return key
}

// createMaterialInstance returns the instance for (material, vertex
// color), creating and caching it on first use, together with the UV
// assignment needed to wire texture coordinate attributes.
func (l *Loader) createMaterialInstance(ctx *buildContext, matIndex *uint32, vertexColor bool) (*scene.MaterialInstance, matgen.UvMap) {
	cacheKey := materialCacheKey(matIndex, vertexColor)
	if entry, ok := ctx.matCache[cacheKey]; ok {
		return entry.instance, entry.uvmap
	}

	// The default glTF material is non-lit black.
	if matIndex == nil || int(*matIndex) >= len(ctx.doc.Materials) {
		key := matgen.MaterialKey{Unlit: true}
		material, uvmap := l.materials.GetOrCreateMaterial(&key)
		mi := material.CreateInstance()
		mi.SetParameter("baseColorFactor", [4]float32{0, 0, 0, 1})
		ctx.asset.MaterialInstances = append(ctx.asset.MaterialInstances, mi)
		ctx.matCache[cacheKey] = &materialEntry{instance: mi, uvmap: uvmap}
		return mi, uvmap
	}

	src := ctx.doc.Materials[*matIndex]

	if _, ok := src.Extensions[ExtSpecularGlossiness]; ok {
		// Fall back to the metallic-roughness fields present on the
		// same material record.
		l.log.Error("specular-glossiness workflow is not supported", zap.String("material", src.Name))
		ctx.incomplete = true
	}

	pbr := src.PBRMetallicRoughness
	if pbr == nil {
		pbr = &gltf.PBRMetallicRoughness{}
	}
	_, unlit := src.Extensions[ExtUnlit]

	baseColorTT := textureInfoTransform(pbr.BaseColorTexture)
	metallicRoughnessTT := textureInfoTransform(pbr.MetallicRoughnessTexture)
	normalTT := normalTransform(src.NormalTexture)
	occlusionTT := occlusionTransform(src.OcclusionTexture)
	emissiveTT := textureInfoTransform(src.EmissiveTexture)
	hasTransforms := baseColorTT != nil || metallicRoughnessTT != nil ||
		normalTT != nil || occlusionTT != nil || emissiveTT != nil

	key := matgen.MaterialKey{
		DoubleSided:                 src.DoubleSided,
		Unlit:                       unlit,
		HasVertexColors:             vertexColor,
		HasBaseColorTexture:         pbr.BaseColorTexture != nil,
		HasMetallicRoughnessTexture: pbr.MetallicRoughnessTexture != nil,
		HasNormalTexture:            src.NormalTexture != nil && src.NormalTexture.Index != nil,
		HasOcclusionTexture:         src.OcclusionTexture != nil && src.OcclusionTexture.Index != nil,
		HasEmissiveTexture:          src.EmissiveTexture != nil,
		HasTextureTransforms:        hasTransforms,
	}
	if key.HasBaseColorTexture {
		key.BaseColorUV = uint8(pbr.BaseColorTexture.TexCoord)
	}
	if key.HasMetallicRoughnessTexture {
		key.MetallicRoughnessUV = uint8(pbr.MetallicRoughnessTexture.TexCoord)
	}
	if key.HasNormalTexture {
		key.NormalUV = uint8(src.NormalTexture.TexCoord)
	}
	if key.HasOcclusionTexture {
		key.AoUV = uint8(src.OcclusionTexture.TexCoord)
	}
	if key.HasEmissiveTexture {
		key.EmissiveUV = uint8(src.EmissiveTexture.TexCoord)
	}
	switch src.AlphaMode {
	case gltf.AlphaMask:
		key.AlphaMode = matgen.AlphaMasked
		key.AlphaMaskThreshold = src.AlphaCutoffOrDefault()
	case gltf.AlphaBlend:
		key.AlphaMode = matgen.AlphaBlend
	default:
		key.AlphaMode = matgen.AlphaOpaque
	}

	// The generator may rewrite the key to fit engine constraints, e.g.
	// only two UV slots are supported.
	material, uvmap := l.materials.GetOrCreateMaterial(&key)
	mi := material.CreateInstance()
	ctx.asset.MaterialInstances = append(ctx.asset.MaterialInstances, mi)

	mi.SetParameter("emissiveFactor", src.EmissiveFactor)
	if src.NormalTexture != nil {
		mi.SetParameter("normalScale", float32OrDefault(src.NormalTexture.Scale, 1))
	}
	if src.OcclusionTexture != nil {
		mi.SetParameter("aoStrength", float32OrDefault(src.OcclusionTexture.Strength, 1))
	}
	mi.SetParameter("baseColorFactor", pbr.BaseColorFactorOrDefault())
	mi.SetParameter("metallicFactor", pbr.MetallicFactorOrDefault())
	mi.SetParameter("roughnessFactor", pbr.RoughnessFactorOrDefault())
	if key.AlphaMode == matgen.AlphaMasked {
		mi.SetParameter("maskThreshold", key.AlphaMaskThreshold)
	}

	if key.HasBaseColorTexture {
		l.addTextureBinding(ctx, mi, "baseColorMap", pbr.BaseColorTexture.Index, true)
		setUvMatrix(mi, "baseColorUvMatrix", baseColorTT)
	}
	if key.HasMetallicRoughnessTexture {
		l.addTextureBinding(ctx, mi, "metallicRoughnessMap", pbr.MetallicRoughnessTexture.Index, false)
		setUvMatrix(mi, "metallicRoughnessUvMatrix", metallicRoughnessTT)
	}
	if key.HasNormalTexture {
		l.addTextureBinding(ctx, mi, "normalMap", *src.NormalTexture.Index, false)
		setUvMatrix(mi, "normalUvMatrix", normalTT)
	}
	if key.HasOcclusionTexture {
		l.addTextureBinding(ctx, mi, "occlusionMap", *src.OcclusionTexture.Index, false)
		setUvMatrix(mi, "occlusionUvMatrix", occlusionTT)
	}
	if key.HasEmissiveTexture {
		l.addTextureBinding(ctx, mi, "emissiveMap", src.EmissiveTexture.Index, true)
		setUvMatrix(mi, "emissiveUvMatrix", emissiveTT)
	}

	ctx.matCache[cacheKey] = &materialEntry{instance: mi, uvmap: uvmap}
	return mi, uvmap
}

func setUvMatrix(mi *scene.MaterialInstance, name string, tt *TextureTransform) {
	if tt == nil {
		return
	}
	mi.SetParameter(name, geom.UvTransform(tt.Offset, tt.Rotation, tt.Scale))
}

func textureInfoTransform(ti *gltf.TextureInfo) *TextureTransform {
	if ti == nil {
		return nil
	}
	return textureTransformOf(ti.Extensions)
}

func normalTransform(nt *gltf.NormalTexture) *TextureTransform {
	if nt == nil {
		return nil
	}
	return textureTransformOf(nt.Extensions)
}

func occlusionTransform(ot *gltf.OcclusionTexture) *TextureTransform {
	if ot == nil {
		return nil
	}
	return textureTransformOf(ot.Extensions)
}

func float32OrDefault(v *float32, def float32) float32 {
	if v != nil {
		return *v
	}
	return def
}
