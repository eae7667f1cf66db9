package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/scenedit/ecs"
)

// ExampleStorage shows the basic entity lifecycle. Entities with the same
// component types share an archetype.
func ExampleStorage() {
	storage := ecs.NewStorage(newTestRegistry())

	player, err := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)
	if err != nil {
		panic(err)
	}

	pos := ecs.ReadComponent[Position](storage, player)
	fmt.Printf("Player spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	storage.Delete(player)
	fmt.Println("Player alive:", storage.Alive(player))

	// Output:
	// Player spawned at (10, 20)
	// Player moved to (15, 25)
	// Player alive: false
}

// ExampleStorage_addRemoveComponents shows an entity moving between
// archetypes as its component set changes. Each move returns a new id.
func ExampleStorage_addRemoveComponents() {
	storage := ecs.NewStorage(newTestRegistry())
	velocityType := reflect.TypeFor[Velocity]()

	entity, _ := storage.Spawn(Position{X: 0, Y: 0})
	fmt.Printf("Has velocity: %v\n", storage.HasComponent(entity, velocityType))

	entity, _ = storage.AddComponent(entity, Velocity{DX: 5, DY: 3})
	vel := ecs.ReadComponent[Velocity](storage, entity)
	fmt.Printf("Has velocity: %v (%.0f, %.0f)\n", vel != nil, vel.DX, vel.DY)

	entity, _ = storage.RemoveComponent(entity, velocityType)
	fmt.Printf("Has velocity: %v\n", storage.HasComponent(entity, velocityType))

	_, err := storage.AddComponent(entity, Position{})
	fmt.Println(err != nil)

	// Output:
	// Has velocity: false
	// Has velocity: true (5, 3)
	// Has velocity: false
	// true
}
