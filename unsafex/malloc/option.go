package malloc

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cloudwego/heapx/concurrency/spinlock"
	"github.com/cloudwego/heapx/container/chunkstore"
)

// LockKind selects the lock guarding a Heap.
type LockKind int

const (
	// LockMutex guards the heap with a sync.Mutex. Waiters block.
	LockMutex LockKind = iota
	// LockSpin guards the heap with a spinlock.SpinLock. Waiters busy-poll.
	LockSpin
)

func (k LockKind) String() string {
	switch k {
	case LockMutex:
		return "mutex"
	case LockSpin:
		return "spin"
	}
	return fmt.Sprintf("LockKind(%d)", int(k))
}

// ParseLockKind is the inverse of LockKind.String.
func ParseLockKind(s string) (LockKind, error) {
	switch s {
	case "mutex":
		return LockMutex, nil
	case "spin":
		return LockSpin, nil
	}
	return 0, fmt.Errorf("malloc: unknown lock kind %q", s)
}

func (k LockKind) locker() sync.Locker {
	if k == LockSpin {
		return &spinlock.SpinLock{}
	}
	return &sync.Mutex{}
}

// Option ...
type Option struct {
	// Lock is the lock policy.
	Lock LockKind

	// Store is the chunk container.
	Store chunkstore.Kind

	// Splitter carves an allocation out of a free chunk.
	// nil means ForwardSplitter.
	Splitter Splitter

	// Coalescer merges a freed chunk with its free neighbours.
	// nil means AdjacentCoalescer.
	Coalescer Coalescer

	// Logger receives provider and invariant failures.
	// nil means the package logger of heapx.
	Logger *logrus.Logger
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		Lock:      LockMutex,
		Store:     chunkstore.KindSlice,
		Splitter:  ForwardSplitter{},
		Coalescer: AdjacentCoalescer{},
	}
}
