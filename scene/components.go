package scene

import (
	"reflect"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenedit/ecs"
)

// IDComponent carries the entity's UUID inside storage.
type IDComponent struct {
	ID UUID
}

type Tag struct {
	Name string
}

// Transform is the local transform of an entity. Rotation is in radians.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Vec3
	Scale       mgl32.Vec3
	Parent      UUID
}

var unitScale = mgl32.Vec3{1, 1, 1}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	rotation := mgl32.AnglesToQuat(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z(), mgl32.XYZ).Mat4()
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Children lists the UUIDs of an entity's direct children in display order.
// It is only present on entities that have had a child.
type Children struct {
	IDs []UUID
}

func (c Children) Count() int {
	return len(c.IDs)
}

func (c Children) CloneComponent() any {
	return Children{IDs: slices.Clone(c.IDs)}
}

// TextureID is a handle into the renderer's texture cache. Zero means untextured.
type TextureID uint32

type SpriteRenderer struct {
	Color        mgl32.Vec4
	Texture      TextureID
	TexturePath  string
	TilingFactor float32
}

type CircleRenderer struct {
	Color     mgl32.Vec4
	Thickness float32
	Fade      float32
}

type ProjectionType int

const (
	Perspective ProjectionType = iota
	Orthographic
)

func (p ProjectionType) String() string {
	if p == Perspective {
		return "Perspective"
	}
	return "Orthographic"
}

// Camera holds projection parameters and the matrix derived from them.
// ProjectionMatrix is stale until RecalculateProjection runs after a write.
type Camera struct {
	Projection       ProjectionType
	PerspectiveFOV   float32
	PerspectiveNear  float32
	PerspectiveFar   float32
	OrthographicSize float32
	OrthographicNear float32
	OrthographicFar  float32
	AspectRatio      float32
	Primary          bool
	FixedAspectRatio bool
	ProjectionMatrix mgl32.Mat4
}

// NewCamera returns an orthographic camera with editor defaults.
func NewCamera() Camera {
	c := Camera{
		Projection:       Orthographic,
		PerspectiveFOV:   mgl32.DegToRad(45),
		PerspectiveNear:  0.01,
		PerspectiveFar:   1000,
		OrthographicSize: 10,
		OrthographicNear: -1,
		OrthographicFar:  1,
		AspectRatio:      16.0 / 9.0,
		Primary:          true,
	}
	c.RecalculateProjection()
	return c
}

func (c *Camera) RecalculateProjection() {
	if c.Projection == Perspective {
		c.ProjectionMatrix = mgl32.Perspective(c.PerspectiveFOV, c.AspectRatio, c.PerspectiveNear, c.PerspectiveFar)
		return
	}
	left := -c.OrthographicSize * c.AspectRatio * 0.5
	right := c.OrthographicSize * c.AspectRatio * 0.5
	bottom := -c.OrthographicSize * 0.5
	top := c.OrthographicSize * 0.5
	c.ProjectionMatrix = mgl32.Ortho(left, right, bottom, top, c.OrthographicNear, c.OrthographicFar)
}

// SetViewportSize updates the aspect ratio unless it is fixed.
func (c *Camera) SetViewportSize(width, height int) {
	if c.FixedAspectRatio || width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
	c.RecalculateProjection()
}

type BodyType int

const (
	StaticBody BodyType = iota
	DynamicBody
	KinematicBody
)

func (b BodyType) String() string {
	switch b {
	case StaticBody:
		return "Static"
	case DynamicBody:
		return "Dynamic"
	case KinematicBody:
		return "Kinematic"
	}
	return "Unknown"
}

type Rigidbody2D struct {
	Type          BodyType
	FixedRotation bool
}

type BoxCollider2D struct {
	Offset               mgl32.Vec2
	Size                 mgl32.Vec2
	Density              float32
	Friction             float32
	Restitution          float32
	RestitutionThreshold float32
}

type CircleCollider2D struct {
	Offset               mgl32.Vec2
	Radius               float32
	Density              float32
	Friction             float32
	Restitution          float32
	RestitutionThreshold float32
}

// Script binds an entity to a script class by name.
type Script struct {
	ClassName string
}

// Cloner is implemented by components that own reference types, so that
// snapshots and copies never share backing storage with the live entity.
type Cloner interface {
	CloneComponent() any
}

// CloneComponent returns a deep copy of the component value v.
func CloneComponent[T any](v T) T {
	out, _ := cloneValue(v).(T)
	return out
}

// cloneValue dereferences pointers and deep-copies through Cloner.
func cloneValue(v any) any {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}
	if c, ok := v.(Cloner); ok {
		return c.CloneComponent()
	}
	return v
}

func registerComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[IDComponent](r)
	ecs.RegisterComponent[Tag](r)
	ecs.RegisterComponent[Transform](r)
	ecs.RegisterComponent[Children](r)
	ecs.RegisterComponent[SpriteRenderer](r)
	ecs.RegisterComponent[CircleRenderer](r)
	ecs.RegisterComponent[Camera](r)
	ecs.RegisterComponent[Rigidbody2D](r)
	ecs.RegisterComponent[BoxCollider2D](r)
	ecs.RegisterComponent[CircleCollider2D](r)
	ecs.RegisterComponent[Script](r)
}

var requiredComponents = []reflect.Type{
	reflect.TypeFor[IDComponent](),
	reflect.TypeFor[Tag](),
	reflect.TypeFor[Transform](),
}

func isRequired(t reflect.Type) bool {
	return slices.Contains(requiredComponents, t)
}
