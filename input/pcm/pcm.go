// Package pcm adapts go-audio integer PCM decoders to input.Source.
package pcm

import (
	"bytes"
	"io"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
)

// Reader is the part of the go-audio wav and aiff decoders we use.
type Reader interface {
	PCMBuffer(buf *audio.IntBuffer) (int, error)
}

// Source reads integer PCM from a go-audio decoder and scales it to [-1, 1].
type Source struct {
	dec      Reader
	rate     int
	channels int
	offset   int
	scale    float64
	buf      *audio.IntBuffer
}

var _ input.Source = &Source{}

// NewSource returns a Source reading from dec. Samples are signed unless
// unsigned is set, in which case they are centered on half of full scale.
func NewSource(dec Reader, format *audio.Format, bitDepth int, unsigned bool) (*Source, error) {
	if format == nil {
		return nil, errors.New("missing pcm format")
	}

	if bitDepth <= 0 || bitDepth > 32 {
		return nil, errors.Errorf("unsupported bit depth: %d", bitDepth)
	}

	src := &Source{
		dec:      dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		scale:    1.0 / float64(int64(1)<<uint(bitDepth-1)),
		buf: &audio.IntBuffer{
			Format: format,
		},
	}

	if unsigned {
		src.offset = 1 << uint(bitDepth-1)
	}

	return src, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) ReadSamples(dst []input.SampleType) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "failed to read pcm data")
	}

	if n == 0 {
		// go-audio reports the end of the data chunk with an empty read.
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = input.SampleType(float64(v-s.offset) * s.scale)
	}

	return n, nil
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when r
// cannot seek. go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to buffer audio data")
	}

	return bytes.NewReader(data), nil
}
