package ecs

import (
	"iter"
	"reflect"

	"github.com/rotisserie/eris"
)

// column is a type-erased, block-allocated store for one component type.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for a Storage.
// Each Storage has its own registry, so independent scenes never share columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a component type with the given registry.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) (column, error) {
	factory, ok := r.factories[t]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "%s", t)
	}
	return factory(), nil
}

const blockSize = 64

// typedColumn stores components of type T in fixed-size blocks. Freed slots
// are recycled LIFO, which keeps every column of an archetype in lockstep as
// long as appends and deletes are applied to all of them.
type typedColumn[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (c *typedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.nextIndex
		c.nextIndex++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	c.blocks[index/blockSize][index%blockSize] = value
	c.filled[index/blockSize][index%blockSize] = true
	c.count++
	return index
}

// Get returns a *T pointing into the column, or nil for an empty slot.
// Blocks are heap allocated individually so the pointer stays valid while the slot is live.
func (c *typedColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *typedColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	var zero T
	c.filled[index/blockSize][index%blockSize] = false
	c.blocks[index/blockSize][index%blockSize] = zero
	c.freeSlots = append(c.freeSlots, index)
	c.count--
}

func (c *typedColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.nextIndex {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *typedColumn[T]) Len() int {
	return c.count
}

func (c *typedColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			if c.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
