package engine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/olivier-w/ampdeck/internal/media"
)

const monitorInterval = 100 * time.Millisecond

// track is one opened source. The streamer is shared between the oto
// reader goroutine and seeks, so all access goes through mu.
type track struct {
	src      string
	file     *os.File
	pcm      *pcmStreamer
	rate     beep.SampleRate
	duration time.Duration

	mu     sync.Mutex
	reader *pcmReader
}

func (t *track) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reader.Read(p)
}

func (t *track) rewire() {
	t.reader = &pcmReader{src: beep.Resample(4, t.rate, DeviceRate, t.pcm)}
}

// Player is the device-backed Backend.
type Player struct {
	newDevice func(io.Reader) devicePlayer

	mu        sync.Mutex
	gen       uint64
	src       string
	cur       *track
	player    devicePlayer
	post      func(func())
	loadErr   error
	loading   bool
	wantPlay  bool
	playing   bool
	volume    float64
	closed    bool
	onEnded   func()
	onLoaded  func(time.Duration)
	onErr     func(error)
	stopWatch chan struct{}
}

// NewPlayer returns a Player writing to out.
func NewPlayer(out *Output) *Player {
	return newPlayer(func(r io.Reader) devicePlayer { return out.NewPlayer(r) })
}

func newPlayer(newDevice func(io.Reader) devicePlayer) *Player {
	return &Player{newDevice: newDevice, volume: 1}
}

func (p *Player) OnEnded(fn func())                       { p.mu.Lock(); p.onEnded = fn; p.mu.Unlock() }
func (p *Player) OnLoadedMetadata(fn func(time.Duration)) { p.mu.Lock(); p.onLoaded = fn; p.mu.Unlock() }
func (p *Player) OnError(fn func(error))                  { p.mu.Lock(); p.onErr = fn; p.mu.Unlock() }

func (p *Player) setPost(post func(func())) { p.mu.Lock(); p.post = post; p.mu.Unlock() }

// Load discards the current track and opens src in the background.
func (p *Player) Load(src string) {
	p.mu.Lock()
	if p.closed {
		onErr := p.onErr
		p.mu.Unlock()
		if onErr != nil {
			err := &MediaError{Code: CodeAborted, Src: src, Err: ErrClosed}
			p.emit(0, func() { onErr(err) })
		}
		return
	}
	p.loadLocked(src, false)
	p.mu.Unlock()
}

func (p *Player) loadLocked(src string, play bool) {
	p.gen++
	p.releaseLocked()
	p.src = src
	p.loading = true
	p.loadErr = nil
	p.wantPlay = play
	go p.open(p.gen, src)
}

// emit runs fn through the posting function, or directly without one. For
// a non-zero gen, fn is dropped if a newer load or Close has superseded gen
// by the time it runs.
func (p *Player) emit(gen uint64, fn func()) {
	run := fn
	if gen != 0 {
		run = func() {
			if p.current(gen) {
				fn()
			}
		}
	}
	p.mu.Lock()
	post := p.post
	p.mu.Unlock()
	if post == nil {
		run()
		return
	}
	post(run)
}

func (p *Player) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.gen && !p.closed
}

func (p *Player) open(gen uint64, src string) {
	t, err := openTrack(src)

	p.mu.Lock()
	if gen != p.gen || p.closed {
		p.mu.Unlock()
		if t != nil {
			t.file.Close()
		}
		slog.Debug("dropped superseded load", "src", src)
		return
	}
	p.loading = false
	if err != nil {
		p.loadErr = err
		p.wantPlay = false
		onErr := p.onErr
		p.mu.Unlock()
		slog.Warn("load failed", "src", src, "err", err)
		if onErr != nil {
			p.emit(gen, func() { onErr(err) })
		}
		return
	}

	p.cur = t
	p.player = p.newDevice(t)
	p.player.SetVolume(p.volume)
	if p.wantPlay {
		p.wantPlay = false
		p.startLocked()
	}
	onLoaded := p.onLoaded
	p.mu.Unlock()

	slog.Debug("loaded", "src", src, "duration", t.duration)
	if onLoaded != nil {
		p.emit(gen, func() { onLoaded(t.duration) })
	}
}

func openTrack(src string) (*track, error) {
	if media.IsRemote(src) {
		return nil, &MediaError{Code: CodeSrcNotSupported, Src: src, Err: errors.New("remote sources are not supported")}
	}
	if !media.IsSupportedExt(src) {
		return nil, &MediaError{Code: CodeSrcNotSupported, Src: src, Err: fmt.Errorf("unsupported format (supported: %s)", media.SupportedExtsList())}
	}

	f, err := os.Open(src)
	if err != nil {
		code := CodeNetwork
		if errors.Is(err, fs.ErrNotExist) {
			code = CodeSrcNotSupported
		}
		return nil, &MediaError{Code: code, Src: src, Err: err}
	}

	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, &MediaError{Code: CodeDecode, Src: src, Err: err}
	}
	if dec.SampleRate() <= 0 {
		f.Close()
		return nil, &MediaError{Code: CodeDecode, Src: src, Err: errors.New("invalid sample rate")}
	}

	pcm := newPCMStreamer(dec)
	rate := beep.SampleRate(dec.SampleRate())
	t := &track{
		src:      src,
		file:     f,
		pcm:      pcm,
		rate:     rate,
		duration: rate.D(pcm.Len()),
	}
	t.rewire()
	return t, nil
}

// Play starts or resumes playback. Called during loading it records the
// intent; called after a failed load it loads the source again and plays it
// once that succeeds.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.closed:
		return &MediaError{Code: CodeAborted, Err: ErrClosed}
	case p.loadErr != nil:
		slog.Debug("retrying failed load", "src", p.src)
		p.loadLocked(p.src, true)
		return nil
	case p.loading:
		p.wantPlay = true
		return nil
	case p.cur == nil:
		return ErrNoSource
	}
	p.startLocked()
	return nil
}

func (p *Player) startLocked() {
	if p.ended() {
		p.seekLocked(0)
	}
	p.player.Play()
	p.playing = true
	p.watchLocked()
}

// Pause halts playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantPlay = false
	if p.player != nil {
		p.player.Pause()
	}
	p.playing = false
	p.unwatchLocked()
}

// Seek moves playback to t, clamped to the track.
func (p *Player) Seek(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.cur == nil {
		return ErrNotLoaded
	}
	return p.seekLocked(t)
}

func (p *Player) seekLocked(t time.Duration) error {
	cur := p.cur
	frame := cur.rate.N(max(0, min(t, cur.duration)))

	cur.mu.Lock()
	err := cur.pcm.Seek(frame)
	if err == nil {
		cur.rewire()
	}
	cur.mu.Unlock()
	if err != nil {
		return &MediaError{Code: CodeDecode, Src: cur.src, Err: err}
	}

	// A fresh oto player drops whatever the old one buffered.
	p.player.Pause()
	p.player = p.newDevice(cur)
	p.player.SetVolume(p.volume)
	if p.playing {
		p.player.Play()
	}
	return nil
}

// Duration is zero until metadata has loaded.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0
	}
	return p.cur.duration
}

// CurrentTime is the audible position: decoded frames minus what the
// device still has buffered.
func (p *Player) CurrentTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.cur == nil {
		return 0
	}
	p.cur.mu.Lock()
	pos := p.cur.rate.D(p.cur.pcm.Position())
	p.cur.mu.Unlock()

	buffered := time.Duration(float64(p.player.BufferedSize()) / float64(bytesPerSec) * float64(time.Second))
	return max(0, min(pos-buffered, p.cur.duration))
}

func (p *Player) ended() bool {
	p.cur.mu.Lock()
	drained := p.cur.reader.done || p.cur.pcm.Position() >= p.cur.pcm.Len()
	p.cur.mu.Unlock()
	return drained && !p.player.IsPlaying()
}

// SetVolume sets the output gain, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = max(0, min(v, 1))
	if p.player != nil {
		p.player.SetVolume(p.volume)
	}
}

func (p *Player) watchLocked() {
	if p.stopWatch != nil {
		return
	}
	stop := make(chan struct{})
	p.stopWatch = stop
	go p.monitor(p.gen, stop)
}

func (p *Player) unwatchLocked() {
	if p.stopWatch != nil {
		close(p.stopWatch)
		p.stopWatch = nil
	}
}

// monitor reports the end of playback or a mid-stream decode failure for
// the track that was current when it started.
func (p *Player) monitor(gen uint64, stop chan struct{}) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if gen != p.gen || p.closed || p.cur == nil {
			p.mu.Unlock()
			return
		}
		p.cur.mu.Lock()
		streamErr := p.cur.pcm.Err()
		p.cur.mu.Unlock()

		var fire func()
		switch {
		case streamErr != nil:
			err := &MediaError{Code: CodeDecode, Src: p.cur.src, Err: streamErr}
			p.player.Pause()
			p.playing = false
			p.stopWatch = nil
			if onErr := p.onErr; onErr != nil {
				fire = func() { onErr(err) }
			}
		case p.playing && p.ended():
			p.playing = false
			p.stopWatch = nil
			fire = p.onEnded
		}
		p.mu.Unlock()

		if fire != nil {
			p.emit(gen, fire)
			return
		}
		if !p.isWatching(stop) {
			return
		}
	}
}

func (p *Player) isWatching(stop chan struct{}) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopWatch == stop
}

func (p *Player) releaseLocked() {
	p.unwatchLocked()
	if p.player != nil {
		p.player.Pause()
		p.player = nil
	}
	if p.cur != nil {
		p.cur.file.Close()
		p.cur = nil
	}
	p.playing = false
}

// Close stops playback and releases the current track.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.gen++
	p.releaseLocked()
	return nil
}

var _ Backend = (*Player)(nil)
