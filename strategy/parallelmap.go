package strategy

import "golang.org/x/sync/errgroup"

// ParallelMap abstracts over how a strategy fans independent work (mainly
// rule searching) across threads. All user-facing operations are invoked
// from a single driver goroutine; ParallelMap.Run is the only place
// concurrency happens, matching the "parallelism applies to searching, not
// to application" scheduling model.
type ParallelMap interface {
	// Run invokes f(i) for every i in [0, n), returning the first error
	// encountered (if any). Implementations decide how many of these run
	// concurrently.
	Run(n int, f func(i int) error) error
}

// Sequential runs every task on the calling goroutine, in order. It is the
// default: deterministic, and the right choice for small rule sets where
// thread hand-off would cost more than the work itself.
type Sequential struct{}

func (Sequential) Run(n int, f func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := f(i); err != nil {
			return err
		}
	}
	return nil
}

// FixedThreadParallel runs tasks across a pool capped at width concurrent
// goroutines, built on golang.org/x/sync/errgroup's SetLimit. width <= 0 is
// treated as unbounded (one goroutine per task).
type FixedThreadParallel struct {
	Width int
}

func (p FixedThreadParallel) Run(n int, f func(i int) error) error {
	g := new(errgroup.Group)
	if p.Width > 0 {
		g.SetLimit(p.Width)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return f(i) })
	}
	return g.Wait()
}

// MapParallel applies f to every element of inputs using pm for scheduling,
// returning results in input order. The first error short-circuits and is
// returned; results for tasks that hadn't completed are undefined.
func MapParallel[T, R any](pm ParallelMap, inputs []T, f func(T) (R, error)) ([]R, error) {
	out := make([]R, len(inputs))
	err := pm.Run(len(inputs), func(i int) error {
		r, err := f(inputs[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
