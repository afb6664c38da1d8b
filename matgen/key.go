// Package matgen resolves material feature keys into compiled shading
// variants. Variants are cached by key, so two source materials with the
// same feature set share one variant even across documents.
package matgen

// AlphaMode selects how the alpha channel affects rasterization.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMasked
	AlphaBlend
)

// MaxUvSets is the number of texture coordinate sets a source primitive
// may declare; the engine itself supports only two UV slots.
const MaxUvSets = 8

// UvSet is one engine UV slot, or UvUnused for dropped coordinate sets.
type UvSet uint8

const (
	UvUnused UvSet = iota
	Uv0
	Uv1
)

// UvMap assigns each source texture coordinate set index to an engine
// UV slot.
type UvMap [MaxUvSets]UvSet

// MaterialKey captures every feature that affects shader variant
// selection. It is a comparable value type: two materials with equal
// keys must be assigned the same variant.
type MaterialKey struct {
	DoubleSided     bool
	Unlit           bool
	HasVertexColors bool

	HasBaseColorTexture         bool
	HasMetallicRoughnessTexture bool
	HasNormalTexture            bool
	HasOcclusionTexture         bool
	HasEmissiveTexture          bool

	AlphaMode          AlphaMode
	AlphaMaskThreshold float32

	BaseColorUV         uint8
	MetallicRoughnessUV uint8
	NormalUV            uint8
	AoUV                uint8
	EmissiveUV          uint8

	HasTextureTransforms bool
}

// canonicalize zeroes the UV index of every absent texture slot so that
// materials differing only in such dead fields collapse to one key.
func (k *MaterialKey) canonicalize() {
	if !k.HasBaseColorTexture {
		k.BaseColorUV = 0
	}
	if !k.HasMetallicRoughnessTexture {
		k.MetallicRoughnessUV = 0
	}
	if !k.HasNormalTexture {
		k.NormalUV = 0
	}
	if !k.HasOcclusionTexture {
		k.AoUV = 0
	}
	if !k.HasEmissiveTexture {
		k.EmissiveUV = 0
	}
	if k.AlphaMode != AlphaMasked {
		k.AlphaMaskThreshold = 0
	}
}
