package output

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/dsp"
	"github.com/noriah/sonica/uniform"
)

// StreamVersion is the current frame stream layout.
const StreamVersion = 1

var (
	// StreamMagic starts every frame stream.
	StreamMagic = [4]byte{'S', 'N', 'C', 'A'}

	ErrBadMagic   = errors.New("not a frame stream")
	ErrBadVersion = errors.New("unsupported frame stream version")
)

// Header describes a frame stream. Every frame that follows is a uniform
// block, BinCount float32 spectrum values and WaveformLen float32 waveform
// values, all little endian.
type Header struct {
	Magic       [4]byte
	Version     uint32
	FrameCount  uint32
	BinCount    uint32
	WaveformLen uint32
	FPS         uint32
	Width       uint32
	Height      uint32
}

// FrameSize returns the length in bytes of one frame record.
func (h Header) FrameSize() int {
	return uniform.Size + 4*int(h.BinCount) + 4*int(h.WaveformLen)
}

// ReadHeader reads and checks a stream header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, errors.Wrap(err, "failed to read stream header")
	}

	if h.Magic != StreamMagic {
		return Header{}, ErrBadMagic
	}

	if h.Version != StreamVersion {
		return Header{}, errors.Wrapf(ErrBadVersion, "version %d", h.Version)
	}

	return h, nil
}

// UniformWriter writes frames as a binary stream for renderers.
type UniformWriter struct {
	w        *bufio.Writer
	hdr      Header
	duration float64
	spectrum []float64
	waveform []float64
}

var _ Output = &UniformWriter{}

// NewUniformWriter writes the stream header to w and returns a writer for
// frameCount frames of a track duration seconds long.
func NewUniformWriter(w io.Writer, frameCount, fps, width, height int, duration float64) (*UniformWriter, error) {
	uw := &UniformWriter{
		w: bufio.NewWriter(w),
		hdr: Header{
			Magic:       StreamMagic,
			Version:     StreamVersion,
			FrameCount:  uint32(frameCount),
			BinCount:    dsp.FFTSize / 2,
			WaveformLen: dsp.WaveformSize,
			FPS:         uint32(fps),
			Width:       uint32(width),
			Height:      uint32(height),
		},
		duration: duration,
	}

	uw.spectrum = make([]float64, uw.hdr.BinCount)
	uw.waveform = make([]float64, uw.hdr.WaveformLen)

	if err := binary.Write(uw.w, binary.LittleEndian, uw.hdr); err != nil {
		return nil, errors.Wrap(err, "failed to write stream header")
	}

	return uw, nil
}

// Header returns the header written at the start of the stream.
func (uw *UniformWriter) Header() Header {
	return uw.hdr
}

func (uw *UniformWriter) Write(idx int, frame *dsp.SmoothedFrame) error {
	u := uniform.New(frame, uint32(idx),
		int(uw.hdr.Width), int(uw.hdr.Height), int(uw.hdr.FPS), uw.duration)

	block, err := u.MarshalBinary()
	if err != nil {
		return errors.Wrapf(err, "frame %d", idx)
	}

	// short frames are zero padded so every record has the same size
	fit(uw.spectrum, frame.Bins)
	fit(uw.waveform, frame.Waveform)

	for _, chunk := range [][]byte{
		block,
		uniform.Float32s(uw.spectrum),
		uniform.Float32s(uw.waveform),
	} {
		if _, err := uw.w.Write(chunk); err != nil {
			return errors.Wrapf(err, "frame %d", idx)
		}
	}

	return nil
}

func (uw *UniformWriter) Flush() error {
	return errors.Wrap(uw.w.Flush(), "failed to flush frame stream")
}

func fit(dst, src []float64) {
	n := copy(dst, src)
	for i := range dst[n:] {
		dst[n+i] = 0
	}
}
