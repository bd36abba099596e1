package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/noriah/sonica"
	"github.com/noriah/sonica/graphic"
	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/output"
	"github.com/noriah/sonica/processor"

	_ "github.com/noriah/sonica/input/all"
)

// AppName is the app name
const AppName = "sonica"

// AppDesc is the app description
const AppDesc = "Per frame audio features for audio reactive video"

// AppSite is the app website
const AppSite = "https://github.com/noriah/sonica"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	if doFlags(&cfg) {
		return
	}

	chk(cfg.Sanitize(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(run(ctx, &cfg), "failed to run sonica")
}

func run(ctx context.Context, cfg *config) error {
	if cfg.verbose {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}

	var progress *mpb.Progress
	var bar *mpb.Bar

	if !cfg.quiet {
		progress = mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(os.Stderr))

		// the frame count is only known once the file is decoded
		var once sync.Once
		cfg.Progress = func(_, total int) {
			once.Do(func() {
				bar = progress.AddBar(int64(total),
					mpb.PrependDecorators(
						decor.Name("Analyzing: "),
						decor.CountersNoUnit("%d / %d"),
					),
					mpb.AppendDecorators(
						decor.Percentage(),
						decor.AverageETA(decor.ET_STYLE_GO),
					),
				)
			})
			bar.Increment()
		}
	}

	res, samples, err := sonica.AnalyzeFile(ctx, &cfg.Config)

	if progress != nil {
		if err != nil && bar != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}

	if err != nil {
		return err
	}

	if !cfg.quiet {
		printSummary(os.Stderr, cfg, samples, res)
	}

	return writeOutputs(ctx, cfg, samples, res)
}

func writeOutputs(ctx context.Context, cfg *config, samples input.Samples, res *processor.Result) error {
	if cfg.output != "" {
		f, err := os.Create(cfg.output)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}

		uw, err := output.NewUniformWriter(f, len(res.Frames),
			cfg.FrameRate, cfg.Width, cfg.Height, samples.Duration())

		if err == nil {
			err = output.WriteAll(uw, res.Frames)
		}

		if cerr := f.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return errors.Wrapf(err, "failed to write %s", cfg.output)
		}

		if cfg.Logger != nil {
			hdr := uw.Header()
			cfg.Logger.Printf("wrote %s: %d frames of %d bytes",
				cfg.output, hdr.FrameCount, hdr.FrameSize())
		}
	}

	if cfg.raw {
		rw := output.NewRawWriter(os.Stdout, cfg.binCount, float64(samples.SampleRate))

		if cfg.Logger != nil {
			cfg.Logger.Printf("raw output: %d spectrum bars", rw.Bins())
		}

		if err := output.WriteAll(rw, res.Frames); err != nil {
			return err
		}
	}

	if cfg.preview {
		display := &graphic.Display{}
		if err := display.Init(float64(samples.SampleRate)); err != nil {
			return err
		}
		defer display.Close()

		display.SetMonstercat(cfg.monstercat)

		return display.Play(ctx, res.Frames, cfg.FrameRate)
	}

	return nil
}

func doFlags(cfg *config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listFormatsCmd := flaggy.Subcommand{
		Name:        "list-formats",
		ShortName:   "lf",
		Description: "list all supported audio formats",
	}

	parser.AttachSubcommand(&listFormatsCmd, 1)

	parser.AddPositionalValue(&cfg.Input, "input", 1, false, "audio file to analyze")

	parser.Int(&cfg.FrameRate, "f", "fps", "output frames per second")
	parser.Float64(&cfg.SmoothingFactor, "sf", "smoothing", "smooth factor [0, 0.99]")
	parser.Int(&cfg.Workers, "w", "workers", "frame workers (0 for one per cpu)")
	parser.Int(&cfg.Width, "W", "width", "render width handed to the renderer")
	parser.Int(&cfg.Height, "H", "height", "render height handed to the renderer")
	parser.String(&cfg.output, "o", "output", "write the frame stream to this file")
	parser.Int(&cfg.binCount, "b", "bins", "spectrum columns in raw mode")
	parser.Bool(&cfg.raw, "r", "raw", "print frames as numbers on stdout")
	parser.Bool(&cfg.preview, "p", "preview", "play the frames back in the terminal")
	parser.Float64(&cfg.monstercat, "m", "monstercat", "monstercat factor for the preview (0 to disable)")
	parser.Bool(&cfg.quiet, "q", "quiet", "no summary or progress bar")
	parser.Bool(&cfg.verbose, "v", "verbose", "log each analysis pass")

	chk(parser.Parse(), "failed to parse arguments")

	if listFormatsCmd.Used {
		for _, dec := range input.Decoders {
			fmt.Printf("- %s %v\n", dec.Name, dec.Extensions)
		}

		return true
	}

	if cfg.Input == "" {
		parser.ShowHelpAndExit("no input file given")
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
