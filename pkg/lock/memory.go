package lock

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local lock table used when Redis is unavailable.
type Memory struct {
	mu    sync.Mutex
	held  map[string]memoryLease
	seq   uint64
	clock func() time.Time
}

type memoryLease struct {
	token   uint64
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{
		held:  make(map[string]memoryLease),
		clock: time.Now,
	}
}

func (m *Memory) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	if lease, ok := m.held[key]; ok && now.Before(lease.expires) {
		return nil, false, nil
	}

	m.seq++
	token := m.seq
	m.held[key] = memoryLease{token: token, expires: now.Add(ttl)}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// An expired lease may have been taken over by another holder
			if lease, ok := m.held[key]; ok && lease.token == token {
				delete(m.held, key)
			}
		})
	}
	return unlock, true, nil
}

func (m *Memory) IsLocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lease, ok := m.held[key]
	if !ok {
		return false, nil
	}
	if !m.clock().Before(lease.expires) {
		delete(m.held, key)
		return false, nil
	}
	return true, nil
}
