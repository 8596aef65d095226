/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package spinlock implements a busy-waiting sync.Locker.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// spins is the number of relaxed loads before yielding the processor.
const spins = 64

// SpinLock is a test-and-test-and-set lock.
// The zero value is unlocked. It must not be copied after first use.
//
// There is no fairness guarantee. A waiter keeps polling the state and calls
// runtime.Gosched after every spins failed loads, so a holder that was
// preempted can still make progress with GOMAXPROCS=1.
type SpinLock struct {
	state int32
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	for n := 0; ; n++ {
		if atomic.LoadInt32(&l.state) == 0 && atomic.CompareAndSwapInt32(&l.state, 0, 1) {
			return
		}
		if n >= spins {
			runtime.Gosched()
			n = 0
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapInt32(&l.state, 0, 1)
}

// Unlock releases the lock. Unlocking an unlocked SpinLock panics.
func (l *SpinLock) Unlock() {
	if !atomic.CompareAndSwapInt32(&l.state, 1, 0) {
		panic("spinlock: unlock of unlocked lock")
	}
}
