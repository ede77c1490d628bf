package app

import "sync"

// keyLock не даёт одновременно запустить два заполнения базы одного вида:
// второй запрос дождётся первого и увидит уже готовое состояние.
type keyLock struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{byKey: make(map[string]*sync.Mutex)}
}

func (l *keyLock) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.byKey[key]
	if !ok {
		m = &sync.Mutex{}
		l.byKey[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}
