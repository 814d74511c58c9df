package services

import (
	"sort"
	"sync"
)

// AccountLocker serializes balance mutations per account. The transaction
// engine and the interest accrual job share one instance so that a balance
// check and the mutation that follows it are never interleaved with another
// writer on the same account.
type AccountLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewAccountLocker creates a new AccountLocker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[uint]*sync.Mutex)}
}

func (l *AccountLocker) lockFor(accountID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountID] = lock
	}
	return lock
}

// Lock acquires the locks for the given account IDs in ascending ID order,
// so two transfers touching the same pair of accounts cannot deadlock.
// It returns a function releasing all acquired locks.
func (l *AccountLocker) Lock(accountIDs ...uint) (unlock func()) {
	ids := make([]uint, 0, len(accountIDs))
	seen := make(map[uint]bool, len(accountIDs))
	for _, id := range accountIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	acquired := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		lock := l.lockFor(id)
		lock.Lock()
		acquired = append(acquired, lock)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
