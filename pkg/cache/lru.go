package cache

import (
	"container/list"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU keeps keys ordered from most recently used (front) to least recently
// used (back). Lookups go through an index so moves are O(1).
// It is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	lruList *list.List
	index   map[K]*list.Element
}

func NewLRU[K comparable, V any]() *LRU[K, V] {
	return &LRU[K, V]{
		lruList: list.New(),
		index:   make(map[K]*list.Element),
	}
}

// Get returns a pointer to the value stored for key without touching the order.
func (l *LRU[K, V]) Get(key K) (*V, bool) {
	elem, ok := l.index[key]
	if !ok {
		return nil, false
	}
	return &elem.Value.(*entry[K, V]).value, true
}

// MoveToFront marks key as most recently used. Other keys keep their relative order.
func (l *LRU[K, V]) MoveToFront(key K) bool {
	elem, ok := l.index[key]
	if !ok {
		return false
	}
	l.lruList.MoveToFront(elem)
	return true
}

// PushFront inserts key as most recently used. An existing key is replaced and moved.
func (l *LRU[K, V]) PushFront(key K, value V) {
	if elem, ok := l.index[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		l.lruList.MoveToFront(elem)
		return
	}
	l.index[key] = l.lruList.PushFront(&entry[K, V]{key: key, value: value})
}

// Back returns the least recently used key.
func (l *LRU[K, V]) Back() (K, V, bool) {
	elem := l.lruList.Back()
	if elem == nil {
		var (
			k K
			v V
		)
		return k, v, false
	}
	e := elem.Value.(*entry[K, V])
	return e.key, e.value, true
}

// RemoveBack pops the least recently used key.
func (l *LRU[K, V]) RemoveBack() (K, V, bool) {
	k, v, ok := l.Back()
	if ok {
		l.Remove(k)
	}
	return k, v, ok
}

func (l *LRU[K, V]) Remove(key K) bool {
	elem, ok := l.index[key]
	if !ok {
		return false
	}
	l.lruList.Remove(elem)
	delete(l.index, key)
	return true
}

func (l *LRU[K, V]) Len() int {
	return l.lruList.Len()
}

// Each visits entries from most to least recently used until fn returns false.
func (l *LRU[K, V]) Each(fn func(key K, value V) bool) {
	for elem := l.lruList.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(*entry[K, V])
		if !fn(e.key, e.value) {
			return
		}
	}
}
