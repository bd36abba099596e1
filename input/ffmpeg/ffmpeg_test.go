package ffmpeg

import (
	"bytes"
	"math"
	"os/exec"
	"strings"
	"testing"

	"github.com/noriah/sonica/input"
)

// wavBytes builds a 16 bit mono wav file by hand.
func wavBytes(rate int, data []int16) []byte {
	var buf bytes.Buffer

	le32 := func(v uint32) { buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}) }
	le16 := func(v uint16) { buf.Write([]byte{byte(v), byte(v >> 8)}) }

	buf.WriteString("RIFF")
	le32(uint32(36 + 2*len(data)))
	buf.WriteString("WAVEfmt ")
	le32(16)
	le16(1)
	le16(1)
	le32(uint32(rate))
	le32(uint32(rate * 2))
	le16(2)
	le16(16)
	buf.WriteString("data")
	le32(uint32(2 * len(data)))
	for _, v := range data {
		le16(uint16(v))
	}

	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found")
	}

	data := make([]int16, 8000)
	for i := range data {
		data[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/8000))
	}

	samples, err := input.Decode(Decoder{SampleRate: 16000}, bytes.NewReader(wavBytes(8000, data)))
	if err != nil {
		t.Fatal(err)
	}

	if samples.SampleRate != 16000 {
		t.Errorf("rate = %d, want 16000", samples.SampleRate)
	}

	if d := samples.Duration(); math.Abs(d-1) > 0.05 {
		t.Errorf("duration = %gs, want about 1s", d)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found")
	}

	_, err := input.Decode(Decoder{}, strings.NewReader("definitely not audio"))
	if err == nil {
		t.Error("expected an error for garbage input")
	}
}

func TestRegistered(t *testing.T) {
	if dec := input.FindDecoder(".flac"); dec == nil || dec.Name != "ffmpeg" {
		t.Errorf("flac decoder = %v", dec)
	}
}
