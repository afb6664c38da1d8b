package importer

import (
	"encoding/json"

	"github.com/qmuntal/gltf"
)

// ExtTextureTransform is the KHR_texture_transform extension name.
const ExtTextureTransform = "KHR_texture_transform"

func init() {
	gltf.RegisterExtension(ExtTextureTransform, UnmarshalTextureTransform)
}

// TextureTransform is the KHR_texture_transform payload attached to a
// texture info block.
type TextureTransform struct {
	Offset   [2]float32 `json:"offset"`
	Rotation float32    `json:"rotation"`
	Scale    [2]float32 `json:"scale"`
	TexCoord *uint32    `json:"texCoord,omitempty"`
}

// UnmarshalTextureTransform decodes the extension with the defaults the
// extension defines (scale 1,1).
func UnmarshalTextureTransform(data []byte) (interface{}, error) {
	tt := &TextureTransform{Scale: [2]float32{1, 1}}
	if err := json.Unmarshal(data, tt); err != nil {
		return nil, err
	}
	return tt, nil
}

func textureTransformOf(ext gltf.Extensions) *TextureTransform {
	if ext == nil {
		return nil
	}
	tt, _ := ext[ExtTextureTransform].(*TextureTransform)
	return tt
}
