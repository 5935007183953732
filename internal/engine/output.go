package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
)

const (
	// DeviceRate is the output sample rate every stream is resampled to.
	DeviceRate   = beep.SampleRate(44100)
	channelCount = 2
	bytesPerSec  = int(DeviceRate) * channelCount * 2
)

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// Output is the process-wide audio device. oto allows a single context per
// process, so every Output shares it.
type Output struct {
	ctx *oto.Context
}

// OpenOutput initialises the audio device on first use.
func OpenOutput() (*Output, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(DeviceRate),
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		})
		if otoInitErr == nil {
			<-ready
		}
	})
	if otoInitErr != nil {
		return nil, fmt.Errorf("opening audio device: %w", otoInitErr)
	}
	return &Output{ctx: otoCtx}, nil
}

// devicePlayer is the part of an oto player the engine drives.
type devicePlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	BufferedSize() int
	SetVolume(v float64)
}

var _ devicePlayer = (*oto.Player)(nil)

// NewPlayer returns a paused device player reading s16le stereo frames at
// DeviceRate from r.
func (o *Output) NewPlayer(r io.Reader) *oto.Player {
	return o.ctx.NewPlayer(r)
}

// PlayStreamer starts a fire-and-forget player for a short streamer.
func (o *Output) PlayStreamer(s beep.Streamer, volume float64) {
	p := o.ctx.NewPlayer(NewPCMReader(s))
	p.SetVolume(volume)
	p.Play()
}
