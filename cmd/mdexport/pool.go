package main

import (
	"errors"
	"runtime"
	"sync"

	mdexport "github.com/alnah/go-mdexport"
)

// ErrPoolClosed reports an Acquire on a closed pool.
var ErrPoolClosed = errors.New("exporter pool closed")

// ExporterPool manages a pool of prepared Exporters for parallel batch
// exports. Each exporter owns its own render backend, so documents export
// in true parallel while the one-export-per-exporter invariant holds.
// Exporters are created and prepared lazily on first acquire.
type ExporterPool struct {
	size    int
	newFn   func() (*mdexport.Exporter, error)
	sem     chan *mdexport.Exporter
	mu      sync.Mutex
	created int
	all     []*mdexport.Exporter
	closed  bool
}

// NewExporterPool creates a pool with capacity for n exporters, each built
// and prepared by newFn.
func NewExporterPool(n int, newFn func() (*mdexport.Exporter, error)) *ExporterPool {
	if n < 1 {
		n = 1
	}
	return &ExporterPool{
		size:  n,
		newFn: newFn,
		sem:   make(chan *mdexport.Exporter, n),
		all:   make([]*mdexport.Exporter, 0, n),
	}
}

// Acquire gets a prepared exporter from the pool, creating one if capacity
// allows. Blocks if all exporters are in use.
func (p *ExporterPool) Acquire() (*mdexport.Exporter, error) {
	select {
	case exp, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return exp, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		exp, err := p.newFn()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.all = append(p.all, exp)
		p.mu.Unlock()
		return exp, nil
	}
	p.mu.Unlock()

	exp, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return exp, nil
}

// Release returns an exporter to the pool.
func (p *ExporterPool) Release(exp *mdexport.Exporter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.sem <- exp
	}
}

// Close tears down every exporter created by the pool.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	all := p.all
	p.mu.Unlock()

	var lastErr error
	for _, exp := range all {
		if err := exp.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// resolvePoolSize determines the pool size: an explicit flag wins,
// otherwise half of GOMAXPROCS clamped to [1, 8].
func resolvePoolSize(flagWorkers, inputs int) int {
	n := flagWorkers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0) / 2
	}
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	if inputs > 0 && n > inputs {
		n = inputs
	}
	return n
}
