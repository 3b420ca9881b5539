package main

// Notes:
// - Test doubles shared by the command tests. The mock pool hands out one
//   mock converter so batch runs never start a browser.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"strings"
	"sync"

	chordsheet "github.com/alnah/go-chordsheet"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter returns HTML derived from the input and a fixed PDF.
type mockConverter struct {
	mu     sync.Mutex
	inputs []chordsheet.Input
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input chordsheet.Input) (*chordsheet.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	result := &chordsheet.ConvertResult{HTML: []byte("<html>" + input.Markdown + "</html>")}
	if !input.HTMLOnly {
		result.PDF = []byte("%PDF-1.4 mock")
	}
	return result, nil
}

func (m *mockConverter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// mockPool serves a single mockConverter.
type mockPool struct {
	conv       *mockConverter
	acquireErr error
	size       int
	opts       int
	closed     bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}

func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Environment helpers
// ---------------------------------------------------------------------------

// testEnv captures output and injects pool.
func testEnv(stdin string, pool *mockPool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(size int, opts ...chordsheet.Option) Pool {
			if pool == nil {
				pool = &mockPool{conv: &mockConverter{}}
			}
			pool.size = size
			pool.opts = len(opts)
			return pool
		},
	}
	return env, &stdout, &stderr
}
