package main

import (
	"errors"
	"testing"

	mdexport "github.com/alnah/go-mdexport"
)

func newPoolExporter() (*mdexport.Exporter, error) {
	e := mdexport.NewExporter(mdexport.WithBackendFactory(mdexport.NewLocalBackend))
	opts := mdexport.ExportOptions{
		Format: mdexport.FormatHTML,
		HTML:   &mdexport.HTMLExportOptions{EmbedStyles: true},
	}
	if err := e.Prepare(opts); err != nil {
		return nil, err
	}
	return e, nil
}

func TestExporterPool(t *testing.T) {
	t.Parallel()

	t.Run("creates lazily and reuses", func(t *testing.T) {
		t.Parallel()

		created := 0
		pool := NewExporterPool(1, func() (*mdexport.Exporter, error) {
			created++
			return newPoolExporter()
		})
		defer func() { _ = pool.Close() }()

		first, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		pool.Release(first)

		second, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Error("released exporter not reused")
		}
		if created != 1 {
			t.Errorf("created = %d, want 1", created)
		}
		pool.Release(second)
	})

	t.Run("creation failure surfaces", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		pool := NewExporterPool(1, func() (*mdexport.Exporter, error) {
			return nil, boom
		})
		defer func() { _ = pool.Close() }()

		if _, err := pool.Acquire(); !errors.Is(err, boom) {
			t.Errorf("got %v, want creation error", err)
		}
	})

	t.Run("acquire after close fails", func(t *testing.T) {
		t.Parallel()

		pool := NewExporterPool(1, newPoolExporter)
		exp, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		pool.Release(exp)

		if err := pool.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("got %v, want ErrPoolClosed", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		pool := NewExporterPool(2, newPoolExporter)
		exp, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		pool.Release(exp)

		if err := pool.Close(); err != nil {
			t.Fatal(err)
		}
		if err := pool.Close(); err != nil {
			t.Fatal(err)
		}
	})
}
