package scene

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// UUID is the stable 64-bit identity of an entity. It survives archetype moves,
// destruction and re-creation, unlike ecs.EntityId. Zero means "no entity".
type UUID uint64

// NewUUID folds a random v4 UUID into 64 bits. It never returns zero.
func NewUUID() UUID {
	for {
		u := uuid.New()
		if id := UUID(binary.LittleEndian.Uint64(u[:8])); id != 0 {
			return id
		}
	}
}

func (id UUID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}
