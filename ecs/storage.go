package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"
	"weak"

	"github.com/rotisserie/eris"
)

// Storage is an archetype-based component store.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
}

// NewStorage creates a new storage backed by the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the EntityRef tracking id, creating it on first use.
// Only a weak pointer is kept by the storage; the caller owns the ref.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Contains(id.Index()) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current EntityId of ref, or false once the entity is gone.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Alive() {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// Archetypes returns every archetype created so far, in no particular order.
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	return out
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Spawn creates a new entity with the provided components.
// Components may be passed by value or by pointer; values are copied into storage.
func (s *Storage) Spawn(components ...any) (EntityId, error) {
	if len(components) == 0 {
		return 0, ErrNoComponents
	}

	types, err := extractComponentTypes(components)
	if err != nil {
		return 0, err
	}

	archetype, err := s.archetypeFor(types)
	if err != nil {
		return 0, err
	}

	return NewEntityId(archetype.id, archetype.spawn(components)), nil
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Contains(id.Index())
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id.Index()) {
		return
	}
	archetype.delete(id.Index())
}

// AddComponent moves the entity into the archetype that also holds component's type
// and returns the entity's new id. EntityRefs follow the move.
func (s *Storage) AddComponent(id EntityId, component any) (EntityId, error) {
	from, err := s.live(id)
	if err != nil {
		return 0, err
	}

	compType, err := validComponentType(component)
	if err != nil {
		return 0, err
	}
	if from.HasComponent(compType) {
		return 0, eris.Wrapf(ErrDuplicateComponent, "%s", compType)
	}

	newTypes := make([]reflect.Type, 0, len(from.types)+1)
	newTypes = append(newTypes, from.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, from.GetComponent(id.Index(), typ))
		}
	}

	return s.move(id, from, newTypes, components)
}

// RemoveComponent moves the entity into the archetype without compType and
// returns its new id. Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) (EntityId, error) {
	from, err := s.live(id)
	if err != nil {
		return 0, err
	}
	if !from.HasComponent(compType) {
		return id, nil
	}

	newTypes := make([]reflect.Type, 0, len(from.types)-1)
	for _, typ := range from.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		from.delete(id.Index())
		return 0, nil
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, from.GetComponent(id.Index(), typ))
	}

	return s.move(id, from, newTypes, components)
}

func (s *Storage) move(id EntityId, from *Archetype, types []reflect.Type, components []any) (EntityId, error) {
	to, err := s.archetypeFor(types)
	if err != nil {
		return 0, err
	}

	// Detach the weak ref first so deleting the old slot does not invalidate it.
	weakPtr, hasRef := from.refs.Get(id)
	if hasRef {
		from.refs.Del(id)
	}

	newId := NewEntityId(to.id, to.spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = to
			to.refs.Put(newId, weakPtr)
		}
	}

	from.delete(id.Index())
	return newId, nil
}

func (s *Storage) live(id EntityId) (*Archetype, error) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id.Index()) {
		return nil, eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	return archetype, nil
}

func (s *Storage) archetypeFor(types []reflect.Type) (*Archetype, error) {
	archetypeId := hashTypesToUint32(types)
	if archetype, ok := s.archetypes[archetypeId]; ok {
		return archetype, nil
	}

	archetype, err := newArchetype(archetypeId, types, s.registry)
	if err != nil {
		return nil, err
	}
	s.archetypes[archetypeId] = archetype
	return archetype, nil
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// ComponentTypes returns the sorted component types of a live entity, or nil.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	archetype, err := s.live(id)
	if err != nil {
		return nil
	}
	return slices.Clone(archetype.types)
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func validComponentType(comp any) (reflect.Type, error) {
	t := componentType(comp)
	if t == nil {
		return nil, ErrInvalidComponent
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		return nil, eris.Wrapf(ErrInvalidComponent, "%s", t)
	}
	return t, nil
}

// extractComponentTypes validates components and returns their types sorted by name
func extractComponentTypes(components []any) ([]reflect.Type, error) {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t, err := validComponentType(comp)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))

	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			return nil, eris.Wrapf(ErrDuplicateComponent, "%s", types[i])
		}
	}
	return types, nil
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// hashTypesToUint32 generates an FNV-1a hash over the runtime type pointers of sorted types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	// Archetype 0 would make slot 0 indistinguishable from a deleted EntityRef.
	if h == 0 {
		h = 1
	}
	return h
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the typed component for entityId, or nil when absent.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
