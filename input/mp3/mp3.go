// Package mp3 decodes MPEG-1/2 layer III files.
package mp3

import (
	"encoding/binary"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
)

// go-mp3 always produces 16 bit little endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

func init() {
	input.RegisterDecoder("mp3", []string{"mp3"}, Decoder{})
}

// reader is the part of gomp3.Decoder we use.
type reader interface {
	io.Reader
	SampleRate() int
}

type source struct {
	dec reader
	buf []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }

func (s *source) ReadSamples(dst []input.SampleType) (int, error) {
	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	samples := n / bytesPerSample
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = input.SampleType(v) / 32768.0
	}

	if err != nil && err != io.EOF {
		return samples, errors.Wrap(err, "failed to read mp3 frame")
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (input.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mp3 stream")
	}

	return &source{dec: dec}, nil
}
