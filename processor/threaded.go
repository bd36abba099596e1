package processor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/dsp"
	"github.com/noriah/sonica/fft"
)

// FrameFunc computes the raw features of frame idx. plan belongs to the
// calling worker alone.
type FrameFunc func(idx int, plan *fft.Plan) dsp.FrameFeatures

// ProgressFunc is told how many frames are done. It is called from many
// goroutines at once.
type ProgressFunc func(done, total int)

type threadedExtractor struct {
	total    int
	fn       FrameFunc
	progress ProgressFunc

	// each worker writes only the slots of the indexes it was handed
	frames []dsp.FrameFeatures

	done   atomic.Int64
	failed atomic.Bool

	errOnce sync.Once
	err     error

	wg sync.WaitGroup
}

// Extract computes total frames with fn on a pool of workers, each owning
// its own FFT plan. Frames are returned in index order. A panic in fn or a
// cancelled context stops the whole run.
func Extract(ctx context.Context, total, workers int, fn FrameFunc, progress ProgressFunc) ([]dsp.FrameFeatures, error) {
	if total <= 0 {
		return nil, nil
	}

	if workers < 1 {
		workers = 1
	}

	if workers > total {
		workers = total
	}

	te := &threadedExtractor{
		total:    total,
		fn:       fn,
		progress: progress,
		frames:   make([]dsp.FrameFeatures, total),
	}

	jobs := make(chan int, workers)

	te.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go te.worker(jobs)
	}

	for idx := 0; idx < total; idx++ {
		if te.failed.Load() {
			break
		}

		if err := ctx.Err(); err != nil {
			te.fail(errors.Wrap(err, "frame extraction"))
			break
		}

		jobs <- idx
	}

	close(jobs)
	te.wg.Wait()

	if te.failed.Load() {
		return nil, te.err
	}

	return te.frames, nil
}

func (te *threadedExtractor) worker(jobs <-chan int) {
	defer te.wg.Done()

	plan := fft.NewPlan(dsp.FFTSize)

	// keep draining after a failure so the feeder never blocks
	for idx := range jobs {
		if te.failed.Load() {
			continue
		}

		te.run(idx, plan)
	}
}

func (te *threadedExtractor) run(idx int, plan *fft.Plan) {
	defer func() {
		if r := recover(); r != nil {
			te.fail(errors.Errorf("frame %d: panic: %v", idx, r))
		}
	}()

	te.frames[idx] = te.fn(idx, plan)

	n := te.done.Add(1)
	if te.progress != nil {
		te.progress(int(n), te.total)
	}
}

func (te *threadedExtractor) fail(err error) {
	te.errOnce.Do(func() {
		te.err = err
		te.failed.Store(true)
	})
}
