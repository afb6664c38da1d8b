package scene

import "image"

// WrapMode and FilterMode follow the usual GPU sampler semantics.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

type MinFilter uint8

const (
	MinNearest MinFilter = iota
	MinLinear
	MinNearestMipmapNearest
	MinLinearMipmapNearest
	MinNearestMipmapLinear
	MinLinearMipmapLinear
)

type MagFilter uint8

const (
	MagNearest MagFilter = iota
	MagLinear
)

// Sampler is the state a texture is sampled with.
type Sampler struct {
	WrapS     WrapMode
	WrapT     WrapMode
	MinFilter MinFilter
	MagFilter MagFilter
}

// Texture is a decoded image attached to a material parameter.
type Texture struct {
	Name  string
	Image image.Image
	SRGB  bool
}

// Material is a compiled shading variant. Instances carry per-use
// parameter values; the material itself only knows which parameters
// exist.
type Material struct {
	Name       string
	Parameters []string
}

func (m *Material) CreateInstance() *MaterialInstance {
	return &MaterialInstance{
		material: m,
		params:   map[string]interface{}{},
		textures: map[string]boundTexture{},
	}
}

type boundTexture struct {
	texture *Texture
	sampler Sampler
}

// MaterialInstance is one parameterization of a Material.
type MaterialInstance struct {
	material *Material
	params   map[string]interface{}
	textures map[string]boundTexture
}

func (mi *MaterialInstance) Material() *Material {
	return mi.material
}

func (mi *MaterialInstance) SetParameter(name string, value interface{}) {
	mi.params[name] = value
}

func (mi *MaterialInstance) Parameter(name string) (interface{}, bool) {
	v, ok := mi.params[name]
	return v, ok
}

func (mi *MaterialInstance) SetTexture(name string, t *Texture, s Sampler) {
	mi.textures[name] = boundTexture{texture: t, sampler: s}
}

func (mi *MaterialInstance) TextureOf(name string) (*Texture, Sampler, bool) {
	bt, ok := mi.textures[name]
	return bt.texture, bt.sampler, ok
}
