// Package ffmpeg decodes anything ffmpeg can read by running it as a
// subprocess. ffmpeg must be on the PATH.
package ffmpeg

import (
	"fmt"
	"io"

	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/input/common/execread"
)

// DefaultSampleRate is the rate ffmpeg resamples to when none is set.
const DefaultSampleRate = 44100

func init() {
	input.RegisterDecoder("ffmpeg",
		[]string{"flac", "m4a", "aac", "opus", "webm", "mka", "mp4", "wma"},
		Decoder{})
}

// Decoder pipes the stream through ffmpeg, which downmixes it to mono and
// resamples it to SampleRate.
type Decoder struct {
	SampleRate int
}

func (d Decoder) Decode(r io.Reader) (input.Source, error) {
	rate := d.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-ar", fmt.Sprintf("%d", rate),
		"-ac", "1",
		"-f", "f32le",
		"-",
	}

	src, err := execread.Start(args, r, rate, 1, true)
	if err != nil {
		return nil, err
	}

	return src, nil
}
