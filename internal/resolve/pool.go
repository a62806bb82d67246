package resolve

import (
	"sync"

	"github.com/google/uuid"
)

// workerPool bounds how many employee months resolve concurrently. Work for
// one employee is a single task, so the ordered day-by-day resolution inside
// a month is never split across goroutines.
type workerPool struct {
	sem chan struct{}
	wg  sync.WaitGroup

	mu      sync.Mutex
	results []MonthResult
	errs    map[uuid.UUID]error
}

func newWorkerPool(size int) *workerPool {
	if size < 1 {
		size = 1
	}
	return &workerPool{
		sem:  make(chan struct{}, size),
		errs: map[uuid.UUID]error{},
	}
}

func (p *workerPool) submit(employeeID uuid.UUID, task func() (MonthResult, error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()

		result, err := task()

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.errs[employeeID] = err
			return
		}
		p.results = append(p.results, result)
	}()
}

func (p *workerPool) wait() ([]MonthResult, map[uuid.UUID]error) {
	p.wg.Wait()
	return p.results, p.errs
}
