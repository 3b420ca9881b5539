package main

import (
	"context"

	chordsheet "github.com/alnah/go-chordsheet"
)

// CLIConverter is the part of chordsheet.Converter the batch runner uses.
type CLIConverter interface {
	Convert(ctx context.Context, input chordsheet.Input) (*chordsheet.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*chordsheet.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes a chordsheet.ConverterPool as a Pool.
type poolAdapter struct {
	pool *chordsheet.ConverterPool
}

// newConverterPool builds the production pool.
func newConverterPool(size int, opts ...chordsheet.Option) Pool {
	return &poolAdapter{pool: chordsheet.NewConverterPool(size, opts...)}
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release ignores converters that did not come from a chordsheet pool.
func (a *poolAdapter) Release(c CLIConverter) {
	if conv, ok := c.(*chordsheet.Converter); ok {
		a.pool.Release(conv)
	}
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
