package sim

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Job is one runner and the number of ticks to run it for.
type Job struct {
	Runner *Runner
	Ticks  int
}

// RunBatch runs independent jobs concurrently. Jobs must not share a
// playground. Results are returned in job order; errors from all jobs are
// combined.
func RunBatch(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			results[idx], errs[idx] = job.Runner.Run(ctx, job.Ticks)
		}(i, job)
	}
	wg.Wait()

	var err error
	for i, e := range errs {
		if e != nil {
			err = multierr.Append(err, errors.WithMessagef(e, "job %d", i))
		}
	}
	return results, err
}
