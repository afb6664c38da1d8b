package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformManager maintains a transform component per entity: a local
// matrix and an optional parent link. World transforms are composed on
// demand by walking the parent chain.
type TransformManager struct {
	locals  map[Entity]mgl32.Mat4
	parents map[Entity]Entity
}

func NewTransformManager() *TransformManager {
	return &TransformManager{
		locals:  map[Entity]mgl32.Mat4{},
		parents: map[Entity]Entity{},
	}
}

// Create attaches a transform component. parent may be 0 for roots.
func (m *TransformManager) Create(e Entity, parent Entity, local mgl32.Mat4) {
	m.locals[e] = local
	if parent != 0 {
		m.parents[e] = parent
	}
}

func (m *TransformManager) Has(e Entity) bool {
	_, ok := m.locals[e]
	return ok
}

func (m *TransformManager) Parent(e Entity) Entity {
	return m.parents[e]
}

func (m *TransformManager) Local(e Entity) mgl32.Mat4 {
	if local, ok := m.locals[e]; ok {
		return local
	}
	return mgl32.Ident4()
}

// World composes all ancestor local transforms down to e.
func (m *TransformManager) World(e Entity) mgl32.Mat4 {
	world := m.Local(e)
	for p := m.parents[e]; p != 0; p = m.parents[p] {
		world = m.Local(p).Mul4(world)
	}
	return world
}
