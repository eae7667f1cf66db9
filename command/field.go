package command

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenedit/scene"
	"github.com/rotisserie/eris"
)

// Field addresses a value inside one component of one entity. It is resolved
// against the scene every time it is used, so it survives the entity being
// destroyed and re-created under the same UUID.
type Field[T any] struct {
	Entity scene.UUID
	// Key names the component and member, e.g. "Transform.Translation".
	Key     string
	resolve func(*scene.Scene, scene.Entity) *T
}

// ComponentField builds a Field that selects a member of component C.
func ComponentField[C, T any](id scene.UUID, member string, sel func(*C) *T) Field[T] {
	return Field[T]{
		Entity: id,
		Key:    reflect.TypeFor[C]().Name() + "." + member,
		resolve: func(s *scene.Scene, e scene.Entity) *T {
			c := scene.Get[C](s, e)
			if c == nil {
				return nil
			}
			return sel(c)
		},
	}
}

// StructField builds a Field for the member at index inside the component of
// type compType, as found by reflect.Type.FieldByIndex. name labels the member
// in the Key. Resolution fails when the member is not of type T.
func StructField[T any](id scene.UUID, compType reflect.Type, name string, index []int) Field[T] {
	return Field[T]{
		Entity: id,
		Key:    compType.Name() + "." + name,
		resolve: func(s *scene.Scene, e scene.Entity) *T {
			c := s.Component(e, compType)
			if c == nil {
				return nil
			}
			member := reflect.ValueOf(c).Elem().FieldByIndex(index)
			p, _ := member.Addr().Interface().(*T)
			return p
		},
	}
}

// Resolve returns the entity and a pointer to the field's current storage.
// The pointer must not be kept past the current operation.
func (f Field[T]) Resolve(s *scene.Scene) (scene.Entity, *T, error) {
	e, ok := s.Lookup(f.Entity)
	if !ok {
		return scene.Entity{}, nil, eris.Wrapf(ErrStaleTarget, "entity %s", f.Entity)
	}
	p := f.resolve(s, e)
	if p == nil {
		return scene.Entity{}, nil, eris.Wrapf(ErrStaleTarget, "%s on %s", f.Key, f.Entity)
	}
	return e, p, nil
}

// SameTarget reports whether both fields address the same member of the same entity.
func (f Field[T]) SameTarget(other Field[T]) bool {
	return f.Entity == other.Entity && f.Key == other.Key
}

func (f Field[T]) String() string {
	return f.Key + "@" + f.Entity.String()
}

func Translation(id scene.UUID) Field[mgl32.Vec3] {
	return ComponentField(id, "Translation", func(t *scene.Transform) *mgl32.Vec3 { return &t.Translation })
}

func Rotation(id scene.UUID) Field[mgl32.Vec3] {
	return ComponentField(id, "Rotation", func(t *scene.Transform) *mgl32.Vec3 { return &t.Rotation })
}

func Scale(id scene.UUID) Field[mgl32.Vec3] {
	return ComponentField(id, "Scale", func(t *scene.Transform) *mgl32.Vec3 { return &t.Scale })
}

func TagName(id scene.UUID) Field[string] {
	return ComponentField(id, "Name", func(t *scene.Tag) *string { return &t.Name })
}

func SpriteColor(id scene.UUID) Field[mgl32.Vec4] {
	return ComponentField(id, "Color", func(r *scene.SpriteRenderer) *mgl32.Vec4 { return &r.Color })
}

func SpriteTiling(id scene.UUID) Field[float32] {
	return ComponentField(id, "TilingFactor", func(r *scene.SpriteRenderer) *float32 { return &r.TilingFactor })
}

func CircleColor(id scene.UUID) Field[mgl32.Vec4] {
	return ComponentField(id, "Color", func(r *scene.CircleRenderer) *mgl32.Vec4 { return &r.Color })
}

func CircleThickness(id scene.UUID) Field[float32] {
	return ComponentField(id, "Thickness", func(r *scene.CircleRenderer) *float32 { return &r.Thickness })
}

func CameraProjection(id scene.UUID) Field[scene.ProjectionType] {
	return ComponentField(id, "Projection", func(c *scene.Camera) *scene.ProjectionType { return &c.Projection })
}

func CameraPerspectiveFOV(id scene.UUID) Field[float32] {
	return ComponentField(id, "PerspectiveFOV", func(c *scene.Camera) *float32 { return &c.PerspectiveFOV })
}

func CameraOrthographicSize(id scene.UUID) Field[float32] {
	return ComponentField(id, "OrthographicSize", func(c *scene.Camera) *float32 { return &c.OrthographicSize })
}

func CameraPrimary(id scene.UUID) Field[bool] {
	return ComponentField(id, "Primary", func(c *scene.Camera) *bool { return &c.Primary })
}

func ScriptClass(id scene.UUID) Field[string] {
	return ComponentField(id, "ClassName", func(c *scene.Script) *string { return &c.ClassName })
}
