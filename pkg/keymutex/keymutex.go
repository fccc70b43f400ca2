// Package keymutex serializes operations that share a string key while
// letting operations on different keys run concurrently.
package keymutex

import "sync"

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*keyLock)}
}

func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()

	lock, ok := k.locks[key]
	if !ok {
		lock = &keyLock{}
		k.locks[key] = lock
	}
	lock.refs++

	k.mu.Unlock()

	lock.mu.Lock()
}

func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()

	lock, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unheld key " + key)
	}

	lock.refs--
	if lock.refs == 0 {
		delete(k.locks, key)
	}

	k.mu.Unlock()

	lock.mu.Unlock()
}
