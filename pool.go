package chordsheet

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ConverterPool hands out Converters for parallel batch work.
// Each Converter owns its own browser; Converters are created lazily on
// Acquire with the pool's options.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n Converters built
// with opts.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
}

// Acquire returns an idle Converter, creating one if capacity remains,
// and blocks otherwise. After Close it returns ErrPoolClosed.
func (p *ConverterPool) Acquire() (*Converter, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	select {
	case conv := <-p.sem:
		p.mu.Unlock()
		return conv, nil
	default:
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return p.create()
	}
	p.mu.Unlock()

	conv, ok := <-p.sem
	if !ok || p.isClosed() {
		// Close owns conv and closes it.
		return nil, ErrPoolClosed
	}
	return conv, nil
}

// create builds a Converter for a slot reserved by Acquire. A Converter
// finished after Close is closed here, since Close never saw it.
func (p *ConverterPool) create() (*Converter, error) {
	conv, err := NewConverter(p.opts...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.created--
		return nil, err
	}
	if p.closed {
		_ = conv.Close()
		return nil, ErrPoolClosed
	}
	p.converters = append(p.converters, conv)
	return conv, nil
}

func (p *ConverterPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Release returns a Converter to the pool. It is a no-op after Close,
// which has already closed every Converter the pool created.
func (p *ConverterPool) Release(conv *Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- conv
}

// Close releases every browser. Idle Converters are drained first so no
// later Acquire can receive one. Errors from individual Converters are joined.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for drained := false; !drained; {
		select {
		case <-p.sem:
		default:
			drained = true
		}
	}
	close(p.sem)
	converters := p.converters
	p.converters = nil
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
