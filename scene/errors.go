package scene

import "github.com/rotisserie/eris"

var (
	ErrEntityNotFound    = eris.New("scene: entity not found")
	ErrDuplicateUUID     = eris.New("scene: uuid already in use")
	ErrComponentExists   = eris.New("scene: entity already has component")
	ErrComponentMissing  = eris.New("scene: entity does not have component")
	ErrRequiredComponent = eris.New("scene: id, tag and transform cannot be removed")
)
