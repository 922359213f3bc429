package my

/*
 * providing drop-in replacement for sync.Mutex & sync.RWMutex
 * in "development" env, using go-deadlock
 */

import (
	"sync"
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"
)

// shouldn't race (init only)
var deadlockDetection = false

// number of locks
var locknum int64

func EnableDeadlockDetection() {
	deadlockDetection = true
}

/*
 * RWMutex is a drop-in RWMutex replacement
 *  with alternate deadlock detection.
 *
 * fixme: check memory footprint
 */
type RWMutex struct {
	sync.RWMutex
	alt deadlock.RWMutex // alternate debug mutex
}

func (o *RWMutex) Lock() {
	if deadlockDetection {
		atomic.AddInt64(&locknum, 1)
		o.alt.Lock()
	} else {
		o.RWMutex.Lock()
	}
}

func (o *RWMutex) Unlock() {
	if deadlockDetection {
		o.alt.Unlock()
		atomic.AddInt64(&locknum, -1)
	} else {
		o.RWMutex.Unlock()
	}
}

func (o *RWMutex) RLock() {
	if deadlockDetection {
		atomic.AddInt64(&locknum, 1)
		o.alt.RLock()
	} else {
		o.RWMutex.RLock()
	}
}

func (o *RWMutex) RUnlock() {
	if deadlockDetection {
		o.alt.RUnlock()
		atomic.AddInt64(&locknum, -1)
	} else {
		o.RWMutex.RUnlock()
	}
}

/*
 * Mutex is a drop-in Mutex replacement
 *  with alternate deadlock detection.
 */
type Mutex struct {
	sync.Mutex
	alt deadlock.Mutex // alternate debug mutex
}

func (o *Mutex) Lock() {
	if deadlockDetection {
		atomic.AddInt64(&locknum, 1)
		o.alt.Lock()
	} else {
		o.Mutex.Lock()
	}
}

func (o *Mutex) Unlock() {
	if deadlockDetection {
		o.alt.Unlock()
		atomic.AddInt64(&locknum, -1)
	} else {
		o.Mutex.Unlock()
	}
}
