package archive

import (
	"context"

	"uxfomo/internal/export"
	"uxfomo/internal/profile"
)

// Job is one archive assembly running in the background.
type Job struct {
	done   chan struct{}
	bundle Bundle
	err    error
}

// Start assembles rec on a new goroutine. rec is copied before Start returns,
// so the caller may keep editing it.
func (a *Assembler) Start(rec profile.Record, opts export.Options, sections map[string]any) *Job {
	snapshot := rec.Clone()
	job := &Job{done: make(chan struct{})}
	go func() {
		defer close(job.done)
		job.bundle, job.err = a.Assemble(snapshot, opts, sections)
	}()
	return job
}

// Done is closed when the assembly finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the assembly finishes or ctx is done. Returning early does
// not stop the build.
func (j *Job) Wait(ctx context.Context) (Bundle, error) {
	select {
	case <-j.done:
		return j.bundle, j.err
	case <-ctx.Done():
		return Bundle{}, ctx.Err()
	}
}
