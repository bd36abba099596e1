// Package vorbis decodes Ogg Vorbis files.
package vorbis

import (
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
)

func init() {
	input.RegisterDecoder("vorbis", []string{"ogg", "oga"}, Decoder{})
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (input.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ogg vorbis stream")
	}

	// oggvorbis already reads interleaved float32 in [-1, 1].
	return source{dec}, nil
}

type source struct {
	*oggvorbis.Reader
}

func (s source) ReadSamples(dst []input.SampleType) (int, error) {
	// Read only fills whole frames.
	whole := len(dst) - len(dst)%s.Channels()
	return s.Read(dst[:whole])
}
