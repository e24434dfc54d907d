package entity

import "go-path-defense/internal/types"

type slot[T any] struct {
	generation uint32
	value      *T
}

// Arena — типизированное хранилище сущностей одного вида с хэндлами,
// проверяемыми по поколению. Обход идёт в порядке слотов, поэтому
// результат не зависит от порядка обхода map.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, capacity),
		free:  make([]uint32, 0, capacity/4),
	}
}

// Insert кладёт значение в свободный слот и возвращает его хэндл.
func (a *Arena[T]) Insert(v *T) types.EntityID {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx].value = v
		return types.NewEntityID(idx, a.slots[idx].generation)
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{generation: 1, value: v})
	return types.NewEntityID(idx, 1)
}

// Get возвращает значение по хэндлу; false, если сущность уже удалена.
func (a *Arena[T]) Get(id types.EntityID) (*T, bool) {
	idx := id.Index()
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[idx]
	if s.value == nil || s.generation != id.Generation() {
		return nil, false
	}
	return s.value, true
}

// Alive сообщает, существует ли ещё сущность с этим хэндлом.
func (a *Arena[T]) Alive(id types.EntityID) bool {
	_, ok := a.Get(id)
	return ok
}

// Remove удаляет сущность. Повторное удаление или устаревший хэндл: no-op.
func (a *Arena[T]) Remove(id types.EntityID) bool {
	if !a.Alive(id) {
		return false
	}
	idx := id.Index()
	a.slots[idx].value = nil
	a.slots[idx].generation++
	a.free = append(a.free, idx)
	a.live--
	return true
}

// Each обходит живые сущности в порядке слотов. Удалять текущую сущность
// внутри fn можно; вставки в эту же арену во время обхода запрещены.
func (a *Arena[T]) Each(fn func(id types.EntityID, v *T)) {
	for i := range a.slots {
		s := a.slots[i]
		if s.value == nil {
			continue
		}
		fn(types.NewEntityID(uint32(i), s.generation), s.value)
	}
}

// Len возвращает число живых сущностей.
func (a *Arena[T]) Len() int {
	return a.live
}

// Clear удаляет всё и делает недействительными все выданные хэндлы.
func (a *Arena[T]) Clear() {
	a.free = a.free[:0]
	for i := range a.slots {
		if a.slots[i].value != nil {
			a.slots[i].value = nil
			a.slots[i].generation++
		}
		a.free = append(a.free, uint32(len(a.slots)-1-i))
	}
	a.live = 0
}
