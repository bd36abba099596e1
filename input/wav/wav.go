// Package wav decodes RIFF/WAVE integer PCM files.
package wav

import (
	"io"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/input/pcm"
)

// WAVE format tags we can read.
const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

var (
	ErrNotWavFile        = errors.New("not a valid wav file")
	ErrUnsupportedFormat = errors.New("only integer pcm wav files are supported")
)

func init() {
	input.RegisterDecoder("wav", []string{"wav", "wave"}, Decoder{})
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (input.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format tag %d", dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, errors.Wrap(err, "failed to find pcm data")
	}

	// 8 bit wav data is unsigned.
	src, err := pcm.NewSource(dec, dec.Format(), int(dec.BitDepth), dec.BitDepth == 8)
	if err != nil {
		return nil, err
	}

	return src, nil
}
