package ui

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

// ComponentKind describes an optional component the inspector can add and remove.
type ComponentKind struct {
	Name   string
	Type   reflect.Type
	Add    func(s *scene.Scene, id scene.UUID) history.Command
	Remove func(s *scene.Scene, id scene.UUID) history.Command
}

func componentKind[T any](name string, initial func() T) ComponentKind {
	return ComponentKind{
		Name: name,
		Type: reflect.TypeFor[T](),
		Add: func(s *scene.Scene, id scene.UUID) history.Command {
			return command.NewAddComponent(s, id, initial())
		},
		Remove: func(s *scene.Scene, id scene.UUID) history.Command {
			return command.NewRemoveComponent[T](s, id)
		},
	}
}

// OptionalComponents lists the components offered by "Add Component", in menu order.
var OptionalComponents = []ComponentKind{
	componentKind("Camera", scene.NewCamera),
	componentKind("Sprite Renderer", func() scene.SpriteRenderer {
		return scene.SpriteRenderer{Color: mgl32.Vec4{1, 1, 1, 1}, TilingFactor: 1}
	}),
	componentKind("Circle Renderer", func() scene.CircleRenderer {
		return scene.CircleRenderer{Color: mgl32.Vec4{1, 1, 1, 1}, Thickness: 1, Fade: 0.005}
	}),
	componentKind("Rigidbody 2D", func() scene.Rigidbody2D { return scene.Rigidbody2D{} }),
	componentKind("Box Collider 2D", func() scene.BoxCollider2D {
		return scene.BoxCollider2D{Size: mgl32.Vec2{0.5, 0.5}, Density: 1, Friction: 0.5, RestitutionThreshold: 0.5}
	}),
	componentKind("Circle Collider 2D", func() scene.CircleCollider2D {
		return scene.CircleCollider2D{Radius: 0.5, Density: 1, Friction: 0.5, RestitutionThreshold: 0.5}
	}),
	componentKind("Script", func() scene.Script { return scene.Script{} }),
}

// MissingComponents returns the optional components e does not have yet.
func MissingComponents(s *scene.Scene, e scene.Entity) []ComponentKind {
	var out []ComponentKind
	for _, kind := range OptionalComponents {
		if s.Component(e, kind.Type) == nil {
			out = append(out, kind)
		}
	}
	return out
}

func kindOf(t reflect.Type) (ComponentKind, bool) {
	for _, kind := range OptionalComponents {
		if kind.Type == t {
			return kind, true
		}
	}
	return ComponentKind{}, false
}
