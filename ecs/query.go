package ecs

import (
	"iter"
	"reflect"
)

// Query iterates every live entity that has a component of type T. Matching
// archetypes are cached and refreshed when the storage grows new ones.
type Query[T any] struct {
	storage            *Storage
	compType           reflect.Type
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	return &Query[T]{
		storage:            storage,
		compType:           reflect.TypeFor[T](),
		lastArchetypeCount: -1,
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if len(q.storage.archetypes) == q.lastArchetypeCount {
		return
	}
	q.lastArchetypeCount = len(q.storage.archetypes)

	q.cachedArchetypes = q.cachedArchetypes[:0]
	for _, archetype := range q.storage.archetypes {
		if archetype.HasComponent(q.compType) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

// Iter yields each matching entity with a pointer to its component. The
// storage must not change structurally while iterating; writing through the
// pointer is fine.
func (q *Query[T]) Iter() iter.Seq2[EntityId, *T] {
	q.ensureArchetypeCache()

	return func(yield func(EntityId, *T) bool) {
		for _, archetype := range q.cachedArchetypes {
			col := archetype.columns[archetype.columnIndex(q.compType)]
			for index := range col.Iter() {
				comp, _ := col.Get(index).(*T)
				if !yield(NewEntityId(archetype.id, uint32(index)), comp) {
					return
				}
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.ensureArchetypeCache()

	n := 0
	for _, archetype := range q.cachedArchetypes {
		n += archetype.Len()
	}
	return n
}
