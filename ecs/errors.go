package ecs

import "github.com/rotisserie/eris"

var (
	// ErrComponentNotRegistered is returned when a component type was never passed to RegisterComponent.
	ErrComponentNotRegistered = eris.New("ecs: component not registered")
	// ErrNoComponents is returned when spawning an entity without any components.
	ErrNoComponents = eris.New("ecs: cannot spawn entity without components")
	// ErrInvalidComponent is returned for pointers-to-pointers, maps, channels and funcs.
	ErrInvalidComponent = eris.New("ecs: components cannot be pointers, maps, channels, or functions")
	// ErrEntityNotFound is returned when an entity id does not resolve to a live archetype slot.
	ErrEntityNotFound = eris.New("ecs: entity not found")
	// ErrDuplicateComponent is returned when adding a component type the entity already has.
	ErrDuplicateComponent = eris.New("ecs: entity already has component")
)
