// Package scene is a retained-mode scene-graph layer: entities with a
// transform hierarchy, vertex/index buffers described by builders, and
// renderable components binding geometry to material instances. It holds
// CPU-side state only; uploading buffer contents to a GPU backend is the
// responsibility of whoever consumes the graph.
package scene

// Entity identifies an object in the scene. The zero value is invalid.
type Entity uint32

// EntityManager hands out entity ids.
type EntityManager struct {
	next Entity
}

func NewEntityManager() *EntityManager {
	return &EntityManager{}
}

func (m *EntityManager) Create() Entity {
	m.next++
	return m.next
}
