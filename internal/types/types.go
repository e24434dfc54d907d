// internal/types/types.go
package types

import "fmt"

// EntityID — хэндл сущности: индекс слота в младших 32 битах, поколение в старших.
// Поколение растёт при удалении, поэтому старый хэндл перестаёт быть валидным.
// Нулевой хэндл никогда не выдаётся (поколения начинаются с 1).
type EntityID uint64

func NewEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}
