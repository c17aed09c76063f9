package ui

import "time"

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop prevents any further runs. It reports whether the timer was still active.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Dispatcher moves work on and off the UI thread.
type Dispatcher interface {
	// Post queues fn to run on the UI thread.
	Post(fn func())
	// Spawn runs fn off the UI thread.
	Spawn(fn func())
}

type Runtime interface {
	Dispatcher
	Scheduler
}

// Await runs call off the UI thread and hands its outcome to then on the UI thread.
func Await[T any](d Dispatcher, call func() (T, error), then func(T, error)) {
	d.Spawn(func() {
		v, err := call()
		d.Post(func() {
			then(v, err)
		})
	})
}
