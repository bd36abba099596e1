package wav

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
)

func writeWav(t *testing.T, rate, bitDepth int, data []int, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bitDepth, channels, formatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDecodeStereo16(t *testing.T) {
	t.Parallel()

	const frames = 1000

	data := make([]int, 0, frames*2)
	for i := 0; i < frames; i++ {
		data = append(data, 16384, 0)
	}

	samples, err := input.DecodeFile(writeWav(t, 8000, 16, data, 2))
	if err != nil {
		t.Fatal(err)
	}

	if samples.Len() != frames || samples.SampleRate != 8000 {
		t.Fatalf("got %d samples at %d Hz, want %d at 8000", samples.Len(), samples.SampleRate, frames)
	}

	for i, v := range samples.Data {
		if math.Abs(v-0.25) > 1e-6 {
			t.Fatalf("sample %d = %g, want 0.25", i, v)
		}
	}
}

func TestDecodeNotWav(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("this is certainly not a riff wave file")

	if _, err := input.Decode(Decoder{}, r); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("err = %v, want %v", err, ErrNotWavFile)
	}
}
