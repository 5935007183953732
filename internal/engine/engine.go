// Package engine is the playback engine adapter: the only component that
// touches real-time media state. The core drives it through Backend and
// learns about media events through the registered callbacks.
package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoSource is returned by Play when nothing has been loaded.
	ErrNoSource = errors.New("no media loaded")
	// ErrNotLoaded is returned by Seek while media is still loading.
	ErrNotLoaded = errors.New("media not loaded yet")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine closed")
)

// Backend is an audio playback handle.
//
// Load is asynchronous: it returns immediately and later reports either
// OnLoadedMetadata or OnError for that load. A newer Load supersedes an older
// one and callbacks of superseded loads are never delivered. Play issued
// before metadata arrives is remembered and honoured once loading finishes.
//
// Callbacks may be invoked from any goroutine; wrap the backend with Dispatch
// to move them onto a single event loop.
type Backend interface {
	Load(src string)
	Play() error
	Pause()
	Seek(t time.Duration) error
	Duration() time.Duration
	CurrentTime() time.Duration
	SetVolume(v float64)

	OnEnded(func())
	OnLoadedMetadata(func(time.Duration))
	OnError(func(error))

	Close() error
}

// ErrorCode classifies media failures the way HTML media elements do.
type ErrorCode int

const (
	CodeAborted ErrorCode = iota + 1
	CodeNetwork
	CodeDecode
	CodeSrcNotSupported
)

func (c ErrorCode) String() string {
	switch c {
	case CodeAborted:
		return "aborted"
	case CodeNetwork:
		return "network"
	case CodeDecode:
		return "decode"
	case CodeSrcNotSupported:
		return "unsupported source"
	default:
		return "unknown"
	}
}

// MediaError is a failure reported by a backend for a specific source.
type MediaError struct {
	Code ErrorCode
	Src  string
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error: %s", e.Code, e.Src)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Code, e.Src, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }

// Code extracts the media error class from err, or 0 if err is not a MediaError.
func Code(err error) ErrorCode {
	var me *MediaError
	if errors.As(err, &me) {
		return me.Code
	}
	return 0
}
