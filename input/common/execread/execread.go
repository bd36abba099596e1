// Package execread reads raw floating-point samples from the stdout of a
// command.
package execread

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
)

// Source is a running command whose stdout is interleaved little endian
// float samples.
type Source struct {
	cmd    *exec.Cmd
	out    io.ReadCloser
	stderr bytes.Buffer

	rate     int
	channels int

	reader floatReader
	raw    []byte
	done   bool
}

var _ input.Source = &Source{}

// Start runs argv with stdin as its input. Samples are float32 when f32mode is
// set and float64 otherwise.
func Start(argv []string, stdin io.Reader, rate, channels int, f32mode bool) (*Source, error) {
	if len(argv) < 1 {
		return nil, errors.New("argv has no arg0")
	}

	s := &Source{
		cmd:      exec.Command(argv[0], argv[1:]...),
		rate:     rate,
		channels: channels,
		reader: floatReader{
			order: binary.LittleEndian,
			f64:   !f32mode,
		},
	}

	s.cmd.Stdin = stdin
	s.cmd.Stderr = &s.stderr

	o, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := s.cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start "+argv[0])
	}

	s.out = o

	return s, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) ReadSamples(dst []input.SampleType) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	size := s.reader.size()
	if need := len(dst) * size; cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	s.raw = s.raw[:len(dst)*size]

	n, err := io.ReadFull(s.out, s.raw)

	// a trailing partial sample is dropped
	count := n / size
	s.reader.reset(s.raw[:count*size])
	for i := range dst[:count] {
		dst[i] = input.SampleType(s.reader.next())
	}

	switch {
	case err == nil:
		return count, nil

	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if werr := s.wait(); werr != nil {
			return count, werr
		}
		return count, io.EOF

	default:
		return count, errors.Wrap(err, "failed to read samples")
	}
}

// Close stops the command if it is still running.
func (s *Source) Close() error {
	if s.done {
		return nil
	}

	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}

	s.done = true
	s.cmd.Wait()

	return nil
}

func (s *Source) wait() error {
	s.done = true

	if err := s.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
			return errors.Wrap(err, msg)
		}
		return errors.Wrap(err, s.cmd.Path)
	}

	return nil
}

type floatReader struct {
	order binary.ByteOrder
	buf   []byte
	f64   bool
}

func (f *floatReader) size() int {
	if f.f64 {
		return 8
	}
	return 4
}

func (f *floatReader) reset(b []byte) {
	f.buf = b
}

func (f *floatReader) next() float64 {
	if f.f64 {
		b := f.buf[:8]
		f.buf = f.buf[8:]
		return math.Float64frombits(f.order.Uint64(b))
	}

	b := f.buf[:4]
	f.buf = f.buf[4:]
	return float64(math.Float32frombits(f.order.Uint32(b)))
}
