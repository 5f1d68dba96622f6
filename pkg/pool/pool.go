package pool

import (
	"io"
	"runtime"
	"sync"
)

// task is a single evaluation handed to a worker.
type task struct {
	run  func()
	done *sync.WaitGroup
}

// worker runs tasks until the pool is torn down.
func worker(tasks <-chan task) {
	for t := range tasks {
		t.run()
		t.done.Done()
	}
}

// Pool is a fixed set of workers used to spread independent computations,
// such as batches of proof verifications, over the available CPUs.
//
// A nil *Pool is valid and does all the work on the calling goroutine.
type Pool struct {
	tasks chan task
}

// NewPool starts a pool with count workers, or one per CPU if count <= 0.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{tasks: make(chan task, count)}
	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}
	return p
}

// TearDown stops the workers. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Parallelize returns [f(0), f(1), ..., f(count - 1)], computed on the workers of p.
func Parallelize[T any](p *Pool, count int, f func(int) T) []T {
	results := make([]T, count)
	if p == nil {
		for i := range results {
			results[i] = f(i)
		}
		return results
	}

	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		i := i
		p.tasks <- task{run: func() { results[i] = f(i) }, done: &wg}
	}
	wg.Wait()
	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// Reads are serialized: concurrent callers never observe the same bytes, but
// which caller gets which bytes is raced.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
