package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// pcmDecoder yields interleaved signed 16-bit little-endian PCM.
// Length and seek offsets are in output bytes.
type pcmDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

// newDecoder picks a decoder by file extension.
func newDecoder(f *os.File) (pcmDecoder, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// pending holds converted bytes that did not fit the caller's buffer.
type pending struct {
	buf []byte
	pos int64
}

func (p *pending) drain(dst []byte) int {
	n := copy(dst, p.buf)
	p.buf = p.buf[n:]
	p.pos += int64(n)
	return n
}

func (p *pending) fill(dst, raw []byte) int {
	n := copy(dst, raw)
	if n < len(raw) {
		p.buf = raw[n:]
	}
	p.pos += int64(n)
	return n
}

// seekTarget resolves a seek request to an absolute output byte offset
// clamped to [0, length].
func seekTarget(offset int64, whence int, cur, length int64) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = cur + offset
	case io.SeekEnd:
		pos = length + offset
	default:
		return cur, fmt.Errorf("invalid seek whence: %d", whence)
	}
	return max(0, min(pos, length)), nil
}

func clamp16(s int) int16 {
	return int16(max(-32768, min(s, 32767)))
}

// --- MP3 ---

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.dec.Seek(offset, whence)
}
func (d *mp3Decoder) Length() int64     { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- WAV ---

type wavDecoder struct {
	pending
	file         *os.File
	totalBytes   int64
	pcmStart     int64
	sampleRate   int
	channels     int
	srcBitDepth  int
	srcFrameSize int64
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || bitDepth%8 != 0 || bitDepth == 0 {
		return nil, fmt.Errorf("unsupported WAV layout: %d channels, %d bits", channels, bitDepth)
	}
	srcFrameSize := int64(channels) * int64(bitDepth) / 8

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("getting PCM start position: %w", err)
	}

	return &wavDecoder{
		file:         f,
		sampleRate:   int(dec.SampleRate),
		channels:     channels,
		srcBitDepth:  bitDepth,
		srcFrameSize: srcFrameSize,
		totalBytes:   dec.PCMLen() / srcFrameSize * int64(channels) * 2,
		pcmStart:     pcmStart,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		return d.drain(p), nil
	}

	width := d.srcBitDepth / 8
	samples := min(max(len(p)/2, 1), int((d.totalBytes-d.pos)/2))
	if samples <= 0 {
		return 0, io.EOF
	}
	src := make([]byte, samples*width)
	n, err := io.ReadFull(d.file, src)
	got := n / width
	if got == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, got*2)
	for i := 0; i < got; i++ {
		b := src[i*width:]
		var s int
		switch d.srcBitDepth {
		case 8:
			s = (int(b[0]) - 128) << 8
		case 16:
			s = int(int16(binary.LittleEndian.Uint16(b)))
		case 24:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			s = int(v >> 8)
		case 32:
			s = int(int32(binary.LittleEndian.Uint32(b)) >> 16)
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(clamp16(s)))
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.fill(p, raw), err
}

func (d *wavDecoder) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekTarget(offset, whence, d.pos, d.totalBytes)
	if err != nil {
		return d.pos, err
	}
	frame := pos / (int64(d.channels) * 2)
	if _, err := d.file.Seek(d.pcmStart+frame*d.srcFrameSize, io.SeekStart); err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = pos
	return pos, nil
}

func (d *wavDecoder) Length() int64     { return d.totalBytes }
func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// --- FLAC ---

type flacDecoder struct {
	pending
	stream     *flac.Stream
	totalBytes int64
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
		totalBytes: int64(info.NSamples) * int64(channels) * 2,
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		return d.drain(p), nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	n := int(frame.Subframes[0].NSamples)
	raw := make([]byte, n*d.channels*2)
	for i := 0; i < n; i++ {
		for ch := 0; ch < d.channels; ch++ {
			s := int(frame.Subframes[ch].Samples[i])
			if d.bps > 16 {
				s >>= d.bps - 16
			} else if d.bps < 16 {
				s <<= 16 - d.bps
			}
			binary.LittleEndian.PutUint16(raw[(i*d.channels+ch)*2:], uint16(clamp16(s)))
		}
	}
	return d.fill(p, raw), nil
}

func (d *flacDecoder) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekTarget(offset, whence, d.pos, d.totalBytes)
	if err != nil {
		return d.pos, err
	}
	if _, err := d.stream.Seek(uint64(pos / (int64(d.channels) * 2))); err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = pos
	return pos, nil
}

func (d *flacDecoder) Length() int64     { return d.totalBytes }
func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- OGG Vorbis ---

type oggDecoder struct {
	pending
	reader     *oggvorbis.Reader
	totalBytes int64
	sampleRate int
	channels   int
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	channels := reader.Channels()
	return &oggDecoder{
		reader:     reader,
		sampleRate: reader.SampleRate(),
		channels:   channels,
		totalBytes: reader.Length() * int64(channels) * 2,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		return d.drain(p), nil
	}

	samples := make([]float32, max(len(p)/2, d.channels))
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i, s := range samples[:n] {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(max(-1, min(s, 1))*32767)))
	}
	return d.fill(p, raw), err
}

func (d *oggDecoder) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekTarget(offset, whence, d.pos, d.totalBytes)
	if err != nil {
		return d.pos, err
	}
	if err := d.reader.SetPosition(pos / (int64(d.channels) * 2)); err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = pos
	return pos, nil
}

func (d *oggDecoder) Length() int64     { return d.totalBytes }
func (d *oggDecoder) SampleRate() int   { return d.sampleRate }
func (d *oggDecoder) ChannelCount() int { return d.channels }
