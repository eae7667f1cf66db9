package scene

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/scenedit/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// DefaultEntityName is used when an entity is created with an empty name.
const DefaultEntityName = "Entity"

// Scene owns a component storage and the UUID index over it.
type Scene struct {
	name     string
	storage  *ecs.Storage
	entities *intmap.Map[UUID, *ecs.EntityRef]
	cameras  *ecs.Query[Camera]
	logger   zerolog.Logger
	dirty    bool
}

type options struct {
	logger   zerolog.Logger
	register []func(*ecs.ComponentRegistry)
}

type Option func(*options)

// WithLogger sets the logger used for entity lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithComponents registers additional component types on the scene's storage.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(o *options) {
		o.register = append(o.register, register)
	}
}

func New(name string, opts ...Option) *Scene {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	for _, register := range o.register {
		register(registry)
	}

	storage := ecs.NewStorage(registry)
	return &Scene{
		name:     name,
		storage:  storage,
		entities: intmap.New[UUID, *ecs.EntityRef](256),
		cameras:  ecs.NewQuery[Camera](storage),
		logger:   o.logger.With().Str("scene", name).Logger(),
	}
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) SetName(name string) {
	s.name = name
}

// Storage exposes the backing component storage.
func (s *Scene) Storage() *ecs.Storage {
	return s.storage
}

// Dirty reports whether the scene has unsaved edits.
func (s *Scene) Dirty() bool {
	return s.dirty
}

func (s *Scene) MarkDirty() {
	s.dirty = true
}

func (s *Scene) ClearDirty() {
	s.dirty = false
}

// Entity is a handle to a live entity. Handles stay valid across component
// additions and removals but not across destruction; hold the UUID instead
// when the entity may be destroyed and re-created.
type Entity struct {
	id  UUID
	ref *ecs.EntityRef
}

func (e Entity) UUID() UUID {
	return e.id
}

// Valid reports whether the entity still exists.
func (e Entity) Valid() bool {
	return e.ref.Alive()
}

// CreateEntity creates an entity with a fresh UUID.
func (s *Scene) CreateEntity(name string) (Entity, error) {
	return s.CreateEntityWithUUID(NewUUID(), name)
}

// CreateEntityWithUUID creates an entity carrying id, a Tag and an identity Transform.
// A zero id is replaced with a fresh one.
func (s *Scene) CreateEntityWithUUID(id UUID, name string) (Entity, error) {
	if id == 0 {
		id = NewUUID()
	}
	if name == "" {
		name = DefaultEntityName
	}
	return s.spawn(id, IDComponent{ID: id}, Tag{Name: name}, Transform{Scale: unitScale})
}

func (s *Scene) spawn(id UUID, components ...any) (Entity, error) {
	if _, ok := s.Lookup(id); ok {
		return Entity{}, eris.Wrapf(ErrDuplicateUUID, "%s", id)
	}

	entityId, err := s.storage.Spawn(components...)
	if err != nil {
		return Entity{}, eris.Wrapf(err, "spawn %s", id)
	}

	ref := s.storage.CreateEntityRef(entityId)
	s.entities.Put(id, ref)
	s.logger.Debug().Stringer("entity", id).Int("components", len(components)).Msg("entity created")
	return Entity{id: id, ref: ref}, nil
}

// DestroyEntity removes a single entity. Children and the parent's child list
// are left untouched.
func (s *Scene) DestroyEntity(e Entity) error {
	if !e.Valid() {
		return eris.Wrapf(ErrEntityNotFound, "%s", e.id)
	}
	s.storage.Delete(e.ref.Id)
	s.entities.Del(e.id)
	s.logger.Debug().Stringer("entity", e.id).Msg("entity destroyed")
	return nil
}

// Lookup resolves a UUID to a live entity.
func (s *Scene) Lookup(id UUID) (Entity, bool) {
	ref, ok := s.entities.Get(id)
	if !ok || !ref.Alive() {
		return Entity{}, false
	}
	return Entity{id: id, ref: ref}, true
}

func (s *Scene) Len() int {
	return s.entities.Len()
}

// Entities returns every entity ordered by tag name, then UUID.
func (s *Scene) Entities() []Entity {
	out := make([]Entity, 0, s.entities.Len())
	s.entities.ForEach(func(id UUID, ref *ecs.EntityRef) bool {
		if ref.Alive() {
			out = append(out, Entity{id: id, ref: ref})
		}
		return true
	})
	s.sortEntities(out)
	return out
}

// Roots returns the entities without a parent, in the same order as Entities.
func (s *Scene) Roots() []Entity {
	all := s.Entities()
	roots := all[:0]
	for _, e := range all {
		if t := Get[Transform](s, e); t != nil && t.Parent == 0 {
			roots = append(roots, e)
		}
	}
	return roots
}

func (s *Scene) sortEntities(entities []Entity) {
	slices.SortFunc(entities, func(a, b Entity) int {
		if c := cmp.Compare(s.TagName(a), s.TagName(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
}

// TagName returns the entity's display name, or "" when it has no Tag.
func (s *Scene) TagName(e Entity) string {
	if tag := Get[Tag](s, e); tag != nil {
		return tag.Name
	}
	return ""
}

// Components returns pointers to every component of e, ordered by type name.
func (s *Scene) Components(e Entity) []any {
	if !e.Valid() {
		return nil
	}
	types := s.storage.ComponentTypes(e.ref.Id)
	out := make([]any, 0, len(types))
	for _, t := range types {
		out = append(out, s.storage.GetComponent(e.ref.Id, t))
	}
	return out
}

// Component returns a pointer to e's component of type t, or nil.
func (s *Scene) Component(e Entity, t reflect.Type) any {
	if !e.Valid() {
		return nil
	}
	return s.storage.GetComponent(e.ref.Id, t)
}

// CopyComponents deep-copies every component of src except IDComponent onto dst,
// overwriting components dst already has.
func (s *Scene) CopyComponents(src, dst Entity) error {
	if !src.Valid() {
		return eris.Wrapf(ErrEntityNotFound, "copy source %s", src.id)
	}
	if !dst.Valid() {
		return eris.Wrapf(ErrEntityNotFound, "copy target %s", dst.id)
	}

	idType := reflect.TypeFor[IDComponent]()
	for _, t := range s.storage.ComponentTypes(src.ref.Id) {
		if t == idType {
			continue
		}
		value := cloneValue(s.storage.GetComponent(src.ref.Id, t))
		if existing := s.storage.GetComponent(dst.ref.Id, t); existing != nil {
			reflect.ValueOf(existing).Elem().Set(reflect.ValueOf(value))
			continue
		}
		if _, err := s.storage.AddComponent(dst.ref.Id, value); err != nil {
			return eris.Wrapf(err, "copy %s", t)
		}
	}
	return nil
}

// PrimaryCamera returns the first entity, in Entities order, whose Camera is primary.
func (s *Scene) PrimaryCamera() (Entity, *Camera, bool) {
	for _, e := range s.Entities() {
		if c := Get[Camera](s, e); c != nil && c.Primary {
			return e, c, true
		}
	}
	return Entity{}, nil, false
}

// OnViewportResize updates every camera without a fixed aspect ratio.
func (s *Scene) OnViewportResize(width, height int) {
	for _, c := range s.cameras.Iter() {
		c.SetViewportSize(width, height)
	}
}

// Get returns a pointer to e's component of type T, or nil. The pointer is
// only valid until the entity's component set changes.
func Get[T any](s *Scene, e Entity) *T {
	if !e.Valid() {
		return nil
	}
	return ecs.ReadComponent[T](s.storage, e.ref.Id)
}

func Has[T any](s *Scene, e Entity) bool {
	return Get[T](s, e) != nil
}

// Add attaches value to e and returns a pointer to the stored copy.
func Add[T any](s *Scene, e Entity, value T) (*T, error) {
	if !e.Valid() {
		return nil, eris.Wrapf(ErrEntityNotFound, "%s", e.id)
	}
	if Has[T](s, e) {
		return nil, eris.Wrapf(ErrComponentExists, "%s on %s", reflect.TypeFor[T](), e.id)
	}
	if _, err := s.storage.AddComponent(e.ref.Id, value); err != nil {
		return nil, eris.Wrapf(err, "add %s", reflect.TypeFor[T]())
	}
	return Get[T](s, e), nil
}

// Remove detaches the T component from e.
func Remove[T any](s *Scene, e Entity) error {
	t := reflect.TypeFor[T]()
	if isRequired(t) {
		return eris.Wrapf(ErrRequiredComponent, "%s", t)
	}
	if !e.Valid() {
		return eris.Wrapf(ErrEntityNotFound, "%s", e.id)
	}
	if !Has[T](s, e) {
		return eris.Wrapf(ErrComponentMissing, "%s on %s", t, e.id)
	}
	_, err := s.storage.RemoveComponent(e.ref.Id, t)
	return err
}
