package engine

import (
	"sync/atomic"
	"time"
)

// Dispatch wraps b so every callback runs through post. The UI passes a post
// function that hands the callback to its event loop, which keeps all core
// state mutations on one goroutine.
//
// A callback that is still queued when a newer Load is issued is dropped
// when it reaches the loop, so a superseded load never reports.
func Dispatch(b Backend, post func(func())) Backend {
	if pb, ok := b.(poster); ok {
		pb.setPost(post)
		return b
	}
	return &dispatched{Backend: b, post: post}
}

// poster is a backend that posts its own callbacks and checks its load
// generation when they run.
type poster interface {
	setPost(post func(func()))
}

type dispatched struct {
	Backend
	post  func(func())
	loads atomic.Uint64
}

func (d *dispatched) Load(src string) {
	d.loads.Add(1)
	d.Backend.Load(src)
}

func (d *dispatched) deliver(cb func()) {
	load := d.loads.Load()
	d.post(func() {
		if d.loads.Load() == load {
			cb()
		}
	})
}

func (d *dispatched) OnEnded(cb func()) {
	d.Backend.OnEnded(func() { d.deliver(cb) })
}

func (d *dispatched) OnLoadedMetadata(cb func(time.Duration)) {
	d.Backend.OnLoadedMetadata(func(dur time.Duration) {
		d.deliver(func() { cb(dur) })
	})
}

func (d *dispatched) OnError(cb func(error)) {
	d.Backend.OnError(func(err error) {
		d.deliver(func() { cb(err) })
	})
}
