package input

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// readSize is the number of frames requested from a source per read.
const readSize = 4096

// maxIdleReads bounds how many empty reads in a row we tolerate before giving
// up on a source that never reports EOF.
const maxIdleReads = 64

var (
	// ErrUnknownFormat is returned when no decoder handles a file extension.
	ErrUnknownFormat = errors.New("unknown audio format")
	// ErrNoAudio is returned when a stream has no audio channels.
	ErrNoAudio = errors.New("no audio track found")
	// ErrUnknownSampleRate is returned when a stream does not report a usable
	// sample rate.
	ErrUnknownSampleRate = errors.New("unknown sample rate")
)

// Source is an open, decoded audio stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels is the number of interleaved channels.
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1, 1] and returns the
	// number of values written. The end of the stream is reported with io.EOF.
	ReadSamples(dst []SampleType) (int, error)
}

// Decoder opens a Source from an encoded stream.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// NamedDecoder is a registered decoder and the file extensions it handles.
type NamedDecoder struct {
	Name       string
	Extensions []string
	Decoder
}

// Decoders holds every registered decoder.
var Decoders []NamedDecoder

// RegisterDecoder registers a decoder globally. This function is not
// thread-safe, and most packages should call it on init().
func RegisterDecoder(name string, exts []string, d Decoder) {
	clean := make([]string, len(exts))
	for i, ext := range exts {
		clean[i] = normalizeExt(ext)
	}

	Decoders = append(Decoders, NamedDecoder{
		Name:       name,
		Extensions: clean,
		Decoder:    d,
	})
}

// GetAllDecoderNames returns the names of all installed decoders.
func GetAllDecoderNames() []string {
	out := make([]string, len(Decoders))
	for i, dec := range Decoders {
		out[i] = dec.Name
	}
	return out
}

// FindDecoder returns the decoder registered for ext, or nil.
func FindDecoder(ext string) *NamedDecoder {
	ext = normalizeExt(ext)
	for i := range Decoders {
		for _, e := range Decoders[i].Extensions {
			if e == ext {
				return &Decoders[i]
			}
		}
	}
	return nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DecodeFile decodes the file at path into mono samples, choosing a decoder by
// the file extension.
func DecodeFile(path string) (Samples, error) {
	ext := filepath.Ext(path)

	dec := FindDecoder(ext)
	if dec == nil {
		return Samples{}, errors.Wrapf(ErrUnknownFormat, "%q (decoders: %s)",
			ext, strings.Join(GetAllDecoderNames(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return Samples{}, errors.Wrap(err, "failed to open audio file")
	}
	defer f.Close()

	samples, err := Decode(dec, f)
	if err != nil {
		return Samples{}, errors.Wrapf(err, "%s", path)
	}

	return samples, nil
}

// Decode reads every sample from r with d and mixes them down to mono.
func Decode(d Decoder, r io.Reader) (Samples, error) {
	src, err := d.Decode(r)
	if err != nil {
		return Samples{}, errors.Wrap(err, "failed to probe audio format")
	}

	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	return ReadAll(src)
}

// ReadAll drains src and returns its contents as mono samples. Channels are
// averaged together.
func ReadAll(src Source) (Samples, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return Samples{}, ErrUnknownSampleRate
	}

	channels := src.Channels()
	if channels <= 0 {
		return Samples{}, errors.Wrapf(ErrNoAudio, "%d channels", channels)
	}

	buf := make([]SampleType, readSize*channels)
	mix := monoMixer{channels: channels}

	for idle := 0; ; {
		n, err := src.ReadSamples(buf)
		mix.write(buf[:n])

		if err == io.EOF {
			break
		}

		if err != nil {
			return Samples{}, errors.Wrap(err, "failed to decode audio")
		}

		if n > 0 {
			idle = 0
			continue
		}

		if idle++; idle > maxIdleReads {
			return Samples{}, errors.Wrap(io.ErrNoProgress, "failed to decode audio")
		}
	}

	return NewSamples(mix.out, rate), nil
}

// monoMixer averages interleaved frames into a mono buffer. Values that do not
// complete a frame are carried into the next write.
type monoMixer struct {
	channels int
	carry    []SampleType
	out      []float64
}

func (m *monoMixer) write(src []SampleType) {
	if len(m.carry) > 0 {
		need := m.channels - len(m.carry)
		if len(src) < need {
			m.carry = append(m.carry, src...)
			return
		}

		m.carry = append(m.carry, src[:need]...)
		m.mix(m.carry)
		m.carry = m.carry[:0]
		src = src[need:]
	}

	whole := len(src) - len(src)%m.channels
	m.mix(src[:whole])
	m.carry = append(m.carry, src[whole:]...)
}

func (m *monoMixer) mix(src []SampleType) {
	if m.channels == 1 {
		for _, v := range src {
			m.out = append(m.out, float64(v))
		}
		return
	}

	inv := 1.0 / float64(m.channels)
	for f := 0; f+m.channels <= len(src); f += m.channels {
		sum := 0.0
		for _, v := range src[f : f+m.channels] {
			sum += float64(v)
		}
		m.out = append(m.out, sum*inv)
	}
}
