package domain

import "errors"

// Failure is one path a batch operation could not process.
type Failure struct {
	Path string
	Err  error
}

// Report is the outcome of a batch operation over an ordered list of paths.
// Batch operations never return an error; failures are collected here instead.
type Report struct {
	Created  []string  // Paths created by this run
	Existing []string  // Paths that were already present
	Skipped  []string  // Repeated entries that were not processed again
	Failed   []Failure // Paths that could not be processed
}

// OK reports whether every path was processed without failure.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Err joins the failures into a single error, or returns nil when there are none.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// FailedPaths lists the paths that could not be processed, in input order.
func (r Report) FailedPaths() []string {
	paths := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		paths = append(paths, f.Path)
	}
	return paths
}
