package main

// Notes:
// - poolAdapter is tested without acquiring: Acquire would launch a browser
//   only when converting, but NewConverter resolves styles and chords, which
//   is cheap, so one acquire/release round trip is covered too.

import (
	"context"
	"errors"
	"testing"

	chordsheet "github.com/alnah/go-chordsheet"
)

// foreignConverter is a CLIConverter that no chordsheet pool handed out.
type foreignConverter struct{}

func (foreignConverter) Convert(context.Context, chordsheet.Input) (*chordsheet.ConvertResult, error) {
	return nil, errors.New("not implemented")
}

func TestPoolAdapter(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(2, chordsheet.WithStyle(""))
	t.Cleanup(func() { _ = pool.Close() })

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, ok := conv.(*chordsheet.Converter); !ok {
		t.Errorf("Acquire() returned %T", conv)
	}
	pool.Release(conv)

	// A converter from elsewhere is ignored.
	pool.Release(foreignConverter{})
}

func TestPoolAdapter_AcquireError(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1, chordsheet.WithStyle("no-such-style"))
	t.Cleanup(func() { _ = pool.Close() })

	conv, err := pool.Acquire()
	if !errors.Is(err, chordsheet.ErrStyleNotFound) {
		t.Errorf("Acquire() error = %v, want ErrStyleNotFound", err)
	}
	if conv != nil {
		t.Errorf("Acquire() returned %v on error", conv)
	}
}

func TestPoolAdapter_Closed(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := pool.Acquire(); !errors.Is(err, chordsheet.ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}
