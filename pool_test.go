package chordsheet

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(3); got != 3 {
		t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
	}

	want := runtime.GOMAXPROCS(0) / cpuDivisor
	if want < MinPoolSize {
		want = MinPoolSize
	}
	if want > MaxPoolSize {
		want = MaxPoolSize
	}
	for _, workers := range []int{0, -2} {
		if got := ResolvePoolSize(workers); got != want {
			t.Errorf("ResolvePoolSize(%d) = %d, want %d", workers, got, want)
		}
	}
}

func TestConverterPool_LazyCreationAndReuse(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, WithDictionary(songDict), withPDF(&fakePDF{}))
	defer pool.Close()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}
	if len(pool.converters) != 0 {
		t.Fatalf("converters created eagerly: %d", len(pool.converters))
	}

	first, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	pool.Release(first)

	again, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if again != first {
		t.Error("released converter was not reused")
	}
	pool.Release(again)

	if len(pool.converters) != 1 {
		t.Errorf("created %d converters, want 1", len(pool.converters))
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, WithDictionary(songDict), WithStyle(""), func(c *Converter) { c.pdfConverter = &fakePDF{} })
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			defer pool.Release(conv)
			if _, err := Chordify("C G", conv.Dictionary()); err != nil {
				t.Errorf("Chordify: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := len(pool.converters); n > 2 {
		t.Errorf("created %d converters, cap is 2", n)
	}
}

func TestConverterPool_AcquireError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithStyle("nonexistent"), withPDF(&fakePDF{}))
	defer pool.Close()

	if _, err := pool.Acquire(); !errors.Is(err, ErrStyleNotFound) {
		t.Fatalf("error = %v, want ErrStyleNotFound", err)
	}
	// The failed slot is returned so a later Acquire can retry.
	if pool.created != 0 {
		t.Errorf("created = %d after failure, want 0", pool.created)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{}
	pool := NewConverterPool(1, WithDictionary(songDict), withPDF(fake))

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	pool.Release(conv)

	if err := pool.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !fake.closed {
		t.Error("converter not closed")
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire after Close error = %v, want ErrPoolClosed", err)
	}
	pool.Release(conv)
}

func TestConverterPool_CloseWakesWaiter(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithDictionary(songDict), withPDF(&fakePDF{}))
	held, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := pool.Acquire()
		done <- err
	}()

	if err := pool.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := <-done; !errors.Is(err, ErrPoolClosed) {
		t.Errorf("waiting Acquire error = %v, want ErrPoolClosed", err)
	}
	pool.Release(held)
	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire after Release on closed pool error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_CloseDuringCreate(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{}
	var pool *ConverterPool
	closeMidway := func(*Converter) { _ = pool.Close() }
	pool = NewConverterPool(1, WithDictionary(songDict), withPDF(fake), closeMidway)

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("Acquire error = %v, want ErrPoolClosed", err)
	}
	if !fake.closed {
		t.Error("converter built after Close was not closed")
	}
	if len(pool.converters) != 0 {
		t.Errorf("closed pool tracks %d converters", len(pool.converters))
	}
}

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	if got := NewConverterPool(0).Size(); got != MinPoolSize {
		t.Errorf("Size() = %d, want %d", got, MinPoolSize)
	}
}
