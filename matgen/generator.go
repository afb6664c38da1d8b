package matgen

import (
	"fmt"

	"github.com/hisui/glscene/scene"
)

type variant struct {
	material *scene.Material
	uvmap    UvMap
}

// Generator builds one scene.Material per distinct canonical key. It
// also constrains the key's UV assignments to the two UV slots the
// engine supports, rewriting the key in place.
type Generator struct {
	variants map[MaterialKey]*variant
}

func NewGenerator() *Generator {
	return &Generator{variants: map[MaterialKey]*variant{}}
}

// Count returns the number of compiled variants.
func (g *Generator) Count() int {
	return len(g.variants)
}

// GetOrCreateMaterial resolves key to a compiled variant and the UV-slot
// assignment its textures ended up with. The key may be rewritten:
// texture coordinate sets beyond the second are dropped and their
// presence flags cleared.
func (g *Generator) GetOrCreateMaterial(key *MaterialKey) (*scene.Material, UvMap) {
	uvmap := constrainMaterial(key)
	key.canonicalize()
	if v, ok := g.variants[*key]; ok {
		return v.material, v.uvmap
	}
	v := &variant{material: buildMaterial(key), uvmap: uvmap}
	g.variants[*key] = v
	return v.material, v.uvmap
}

// constrainMaterial assigns engine UV slots to the source texture
// coordinate sets named by the key, first come first served. Sets that
// do not fit in two slots are marked unused and the corresponding
// texture presence flag is cleared.
func constrainMaterial(key *MaterialKey) UvMap {
	var uvmap UvMap
	next := Uv0
	assign := func(set uint8) UvSet {
		if set >= MaxUvSets {
			return UvUnused
		}
		if uvmap[set] != UvUnused {
			return uvmap[set]
		}
		if next > Uv1 {
			return UvUnused
		}
		uvmap[set] = next
		next++
		return uvmap[set]
	}
	if key.HasBaseColorTexture {
		if assign(key.BaseColorUV) == UvUnused {
			key.HasBaseColorTexture = false
		}
	}
	if key.HasMetallicRoughnessTexture {
		if assign(key.MetallicRoughnessUV) == UvUnused {
			key.HasMetallicRoughnessTexture = false
		}
	}
	if key.HasNormalTexture {
		if assign(key.NormalUV) == UvUnused {
			key.HasNormalTexture = false
		}
	}
	if key.HasOcclusionTexture {
		if assign(key.AoUV) == UvUnused {
			key.HasOcclusionTexture = false
		}
	}
	if key.HasEmissiveTexture {
		if assign(key.EmissiveUV) == UvUnused {
			key.HasEmissiveTexture = false
		}
	}
	return uvmap
}

func buildMaterial(key *MaterialKey) *scene.Material {
	params := []string{"baseColorFactor"}
	name := "lit"
	if key.Unlit {
		name = "unlit"
	} else {
		params = append(params, "metallicFactor", "roughnessFactor", "emissiveFactor")
	}
	if key.HasBaseColorTexture {
		params = append(params, "baseColorMap")
	}
	if key.HasMetallicRoughnessTexture {
		params = append(params, "metallicRoughnessMap")
	}
	if key.HasNormalTexture {
		params = append(params, "normalMap", "normalScale")
	}
	if key.HasOcclusionTexture {
		params = append(params, "occlusionMap", "aoStrength")
	}
	if key.HasEmissiveTexture {
		params = append(params, "emissiveMap")
	}
	if key.HasTextureTransforms {
		params = append(params,
			"baseColorUvMatrix", "metallicRoughnessUvMatrix",
			"normalUvMatrix", "occlusionUvMatrix", "emissiveUvMatrix")
	}
	if key.AlphaMode == AlphaMasked {
		params = append(params, "maskThreshold")
	}
	return &scene.Material{
		Name:       fmt.Sprintf("%s_%d", name, key.AlphaMode),
		Parameters: params,
	}
}
