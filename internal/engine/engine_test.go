package engine

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
)

func TestCodeExtractsWrappedMediaError(t *testing.T) {
	err := fmt.Errorf("loading: %w", &MediaError{Code: CodeDecode, Src: "a.mp3", Err: io.ErrUnexpectedEOF})
	if got := Code(err); got != CodeDecode {
		t.Fatalf("Code() = %v, want %v", got, CodeDecode)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("errors.Is(err, ErrUnexpectedEOF) = false, want true")
	}
	if got := Code(errors.New("plain")); got != 0 {
		t.Fatalf("Code(plain) = %v, want 0", got)
	}
}

func TestErrorCodeValuesMatchMediaElement(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeAborted, 1},
		{CodeNetwork, 2},
		{CodeDecode, 3},
		{CodeSrcNotSupported, 4},
	}
	for _, tt := range tests {
		if int(tt.code) != tt.want {
			t.Fatalf("%v = %d, want %d", tt.code, int(tt.code), tt.want)
		}
	}
}

type callbackBackend struct {
	Backend
	loads  []string
	ended  func()
	loaded func(time.Duration)
	failed func(error)
}

func (b *callbackBackend) Load(src string)                         { b.loads = append(b.loads, src) }
func (b *callbackBackend) OnEnded(fn func())                       { b.ended = fn }
func (b *callbackBackend) OnLoadedMetadata(fn func(time.Duration)) { b.loaded = fn }
func (b *callbackBackend) OnError(fn func(error))                  { b.failed = fn }

func TestDispatchRoutesCallbacksThroughPost(t *testing.T) {
	inner := &callbackBackend{}
	var queue []func()
	b := Dispatch(inner, func(fn func()) { queue = append(queue, fn) })

	var events []string
	b.OnEnded(func() { events = append(events, "ended") })
	b.OnLoadedMetadata(func(d time.Duration) { events = append(events, "loaded "+d.String()) })
	b.OnError(func(err error) { events = append(events, "error "+err.Error()) })

	inner.ended()
	inner.loaded(3 * time.Second)
	inner.failed(errors.New("boom"))

	if len(events) != 0 {
		t.Fatalf("callbacks ran before post drained: %v", events)
	}
	for _, fn := range queue {
		fn()
	}

	want := []string{"ended", "loaded 3s", "error boom"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestDispatchDropsCallbacksQueuedBeforeNewerLoad(t *testing.T) {
	inner := &callbackBackend{}
	var queue []func()
	b := Dispatch(inner, func(fn func()) { queue = append(queue, fn) })

	var events []string
	b.OnEnded(func() { events = append(events, "ended") })
	b.OnLoadedMetadata(func(d time.Duration) { events = append(events, "loaded "+d.String()) })

	b.Load("a.mp3")
	inner.ended()
	b.Load("b.mp3")
	inner.loaded(2 * time.Second)
	for _, fn := range queue {
		fn()
	}

	if len(events) != 1 || events[0] != "loaded 2s" {
		t.Fatalf("events = %v, want only the newer load's metadata", events)
	}
	if len(inner.loads) != 2 {
		t.Fatalf("inner loads = %v, want both forwarded", inner.loads)
	}
}
