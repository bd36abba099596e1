// Package all imports all decoders implemented by the input package.
package all

import (
	_ "github.com/noriah/sonica/input/aiff"
	_ "github.com/noriah/sonica/input/ffmpeg"
	_ "github.com/noriah/sonica/input/mp3"
	_ "github.com/noriah/sonica/input/vorbis"
	_ "github.com/noriah/sonica/input/wav"
)
