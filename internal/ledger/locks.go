package ledger

import (
	"hubrwa/pkg/domain"

	"github.com/sasha-s/go-deadlock"
)

// lockTable hands out one mutex per address. Callers must pass addresses in
// lockOrder so two instructions never wait on each other in opposite order.
type lockTable struct {
	mu    deadlock.Mutex
	locks map[domain.Address]*deadlock.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[domain.Address]*deadlock.Mutex)}
}

func (t *lockTable) get(addr domain.Address) *deadlock.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.locks[addr]
	if !ok {
		m = &deadlock.Mutex{}
		t.locks[addr] = m
	}
	return m
}

// lock acquires every address and returns the matching release func.
func (t *lockTable) lock(addrs []domain.Address) func() {
	held := make([]*deadlock.Mutex, 0, len(addrs))
	for _, addr := range addrs {
		m := t.get(addr)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
