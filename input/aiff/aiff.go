// Package aiff decodes AIFF integer PCM files.
package aiff

import (
	"io"

	"github.com/go-audio/aiff"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/input/pcm"
)

var ErrNotAiffFile = errors.New("not a valid aiff file")

func init() {
	input.RegisterDecoder("aiff", []string{"aiff", "aif"}, Decoder{})
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (input.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read aiff header")
	}

	src, err := pcm.NewSource(dec, dec.Format(), int(dec.BitDepth), false)
	if err != nil {
		return nil, err
	}

	return src, nil
}
