package syncs

import "sync"

type Semaphore chan bool

var _ sync.Locker = Semaphore(nil)

func NewSemaphore(n int) Semaphore {
	return make(chan bool, n)
}

func (s Semaphore) Acquire() {
	s <- true
}

func (s Semaphore) Release() {
	<-s
}

// Lock and Unlock make a semaphore of capacity 1 usable as an exclusive lock.

func (s Semaphore) Lock() {
	s.Acquire()
}

func (s Semaphore) Unlock() {
	s.Release()
}
