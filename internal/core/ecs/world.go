package ecs

// World is the top-level ECS container: the entity pool, the component
// registry and a deferred destroy queue drained by CleanupSystem.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Despawn immediately removes id and all its components. It reports whether
// anything was removed; despawning a dead entity does nothing.
func (w *World) Despawn(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue hands each queued entity to despawn, or to Despawn when
// despawn is nil, then clears the queue. Entries queued twice or already
// gone are passed through; despawn must tolerate them.
func (w *World) FlushDestroyQueue(despawn func(EntityID)) {
	if despawn == nil {
		despawn = func(id EntityID) { w.Despawn(id) }
	}
	queue := w.destroyQueue
	w.destroyQueue = make([]EntityID, 0, cap(queue))
	for _, id := range queue {
		despawn(id)
	}
}
