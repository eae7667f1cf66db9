package command_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

func ExampleChangeValue() {
	s := scene.New("example")
	h := history.New()
	cube, _ := s.CreateEntity("Cube")

	// Dragging the X slider emits one command per frame; they merge.
	for _, x := range []float32{0.25, 0.5, 1} {
		_ = h.AddCommand(command.NewChangeValue(s, command.Translation(cube.UUID()), mgl32.Vec3{x, 0, 0}))
	}
	fmt.Println(scene.Get[scene.Transform](s, cube).Translation.X(), h.Len())

	_ = h.Undo()
	fmt.Println(scene.Get[scene.Transform](s, cube).Translation.X())
	// Output:
	// 1 1
	// 0
}

func ExampleNewDuplicateEntity() {
	s := scene.New("example")
	h := history.New()
	light, _ := s.CreateEntity("Light")

	for range 2 {
		dup, err := command.NewDuplicateEntity(s, light.UUID())
		if err != nil {
			panic(err)
		}
		_ = h.AddCommand(dup)
	}

	for _, e := range s.Entities() {
		fmt.Println(s.TagName(e))
	}
	// Output:
	// Light
	// Light.001
	// Light.002
}
