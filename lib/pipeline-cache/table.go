package pipelinecache

import (
	"sync"
	"time"
)

type Record interface {
	GetID() string
	GetUpdatedAt() time.Time
}

// Table набор записей по id, конфликты решаются по updated_at (последняя запись побеждает)
type Table[T Record] struct {
	mu        sync.RWMutex
	items     map[string]T
	normalize func(T) T
}

func NewTable[T Record](normalize func(T) T) *Table[T] {
	return &Table[T]{
		items:     map[string]T{},
		normalize: normalize,
	}
}

func (t *Table[T]) Reset(list []T) {
	items := make(map[string]T, len(list))
	for _, rec := range list {
		rec = t.prepare(rec)
		items[rec.GetID()] = rec
	}
	t.mu.Lock()
	t.items = items
	t.mu.Unlock()
}

// Upsert сохраняет запись, если она не старше уже имеющейся
func (t *Table[T]) Upsert(rec T) bool {
	rec = t.prepare(rec)
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.items[rec.GetID()]
	if ok && old.GetUpdatedAt().After(rec.GetUpdatedAt()) {
		return false
	}
	t.items[rec.GetID()] = rec
	return true
}

// Insert добавляет запись, повторная вставка с тем же id игнорируется
func (t *Table[T]) Insert(rec T) bool {
	rec = t.prepare(rec)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[rec.GetID()]; ok {
		return false
	}
	t.items[rec.GetID()] = rec
	return true
}

func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	return true
}

func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.items[id]
	return rec, ok
}

func (t *Table[T]) Filter(fn func(rec T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]T, 0)
	for _, rec := range t.items {
		if fn == nil || fn(rec) {
			result = append(result, rec)
		}
	}
	return result
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *Table[T]) prepare(rec T) T {
	if t.normalize == nil {
		return rec
	}
	return t.normalize(rec)
}
