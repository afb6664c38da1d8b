package scene

// Engine ties the managers together and owns every object built through
// the builders. Callers keep plain references; there is no reference
// counting.
type Engine struct {
	entities   *EntityManager
	transforms *TransformManager

	renderables   map[Entity]*Renderable
	vertexBuffers []*VertexBuffer
	indexBuffers  []*IndexBuffer
}

func NewEngine() *Engine {
	return &Engine{
		entities:    NewEntityManager(),
		transforms:  NewTransformManager(),
		renderables: map[Entity]*Renderable{},
	}
}

func (e *Engine) Entities() *EntityManager {
	return e.entities
}

func (e *Engine) Transforms() *TransformManager {
	return e.transforms
}

func (e *Engine) Renderable(entity Entity) *Renderable {
	return e.renderables[entity]
}

func (e *Engine) RenderableCount() int {
	return len(e.renderables)
}

func (e *Engine) VertexBufferCount() int {
	return len(e.vertexBuffers)
}

func (e *Engine) IndexBufferCount() int {
	return len(e.indexBuffers)
}
