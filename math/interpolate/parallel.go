package interpolate

import (
	"runtime"
	"sync"
)

type biParams struct {
	threads int
	warn    bool
}

// Option configures the construction and evaluation of a BiPCHIP or a
// DerivativeField.
type Option func(*biParams)

// Threads sets the number of goroutines used to build derivative fields and
// evaluate grids of points. Values less than one select runtime.NumCPU().
func Threads(n int) Option {
	return func(p *biParams) { p.threads = n }
}

// WarnOutOfDomain controls whether EvalGrid logs a warning when query points
// fall outside the sampled domain. The default is true.
func WarnOutOfDomain(warn bool) Option {
	return func(p *biParams) { p.warn = warn }
}

func loadBiOptions(opts []Option) biParams {
	p := biParams{threads: runtime.NumCPU(), warn: true}
	for _, opt := range opts {
		opt(&p)
	}
	if p.threads < 1 {
		p.threads = runtime.NumCPU()
	}
	return p
}

// parallelRange executes fn for each i in [start, end). The range is split
// into contiguous chunks among at most workers goroutines.
func parallelRange(start, end, workers int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (total + workers - 1) / workers
	for s := start; s < end; s += chunk {
		e := s + chunk
		if e > end {
			e = end
		}
		wg.Add(1)
		go func(ss, ee int) {
			defer wg.Done()
			for i := ss; i < ee; i++ {
				fn(i)
			}
		}(s, e)
	}
	wg.Wait()
}
