package engine

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
)

// pcmStreamer adapts a pcmDecoder to beep.StreamSeeker. Mono sources are
// duplicated onto both channels. Positions are in source frames.
type pcmStreamer struct {
	dec      pcmDecoder
	channels int
	frame    int
	pos      int
	buf      []byte
	err      error
}

func newPCMStreamer(dec pcmDecoder) *pcmStreamer {
	channels := max(dec.ChannelCount(), 1)
	return &pcmStreamer{dec: dec, channels: channels, frame: channels * 2}
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	want := len(samples) * s.frame
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	buf := s.buf[:want]

	n, err := io.ReadFull(s.dec, buf)
	frames := n / s.frame
	for i := 0; i < frames; i++ {
		b := buf[i*s.frame:]
		l := float64(int16(binary.LittleEndian.Uint16(b))) / 32768
		r := l
		if s.channels > 1 {
			r = float64(int16(binary.LittleEndian.Uint16(b[2:]))) / 32768
		}
		samples[i] = [2]float64{l, r}
	}
	s.pos += frames

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
	}
	return frames, frames > 0
}

func (s *pcmStreamer) Err() error { return s.err }

func (s *pcmStreamer) Len() int { return int(s.dec.Length() / int64(s.frame)) }

func (s *pcmStreamer) Position() int { return s.pos }

func (s *pcmStreamer) Seek(p int) error {
	p = max(0, min(p, s.Len()))
	if _, err := s.dec.Seek(int64(p)*int64(s.frame), io.SeekStart); err != nil {
		return err
	}
	s.pos = p
	s.err = nil
	return nil
}

var _ beep.StreamSeeker = (*pcmStreamer)(nil)

// pcmReader renders a beep.Streamer as stereo s16le bytes for oto.
type pcmReader struct {
	src     beep.Streamer
	samples [][2]float64
	done    bool
}

// NewPCMReader returns an io.Reader producing the streamer's output at
// the output device format.
func NewPCMReader(src beep.Streamer) io.Reader {
	return &pcmReader{src: src}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.samples) < frames {
		r.samples = make([][2]float64, frames)
	}
	samples := r.samples[:frames]

	n, ok := r.src.Stream(samples)
	if !ok || n == 0 {
		r.done = true
		if err := r.src.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i, s := range samples[:n] {
		binary.LittleEndian.PutUint16(p[i*4:], uint16(toInt16(s[0])))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(toInt16(s[1])))
	}
	return n * 4, nil
}

func toInt16(v float64) int16 {
	return int16(max(-1, min(v, 1)) * 32767)
}
