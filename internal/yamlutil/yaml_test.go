package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := Unmarshal([]byte("name: x\ncount: 3\n"), &got); err != nil {
			t.Fatal(err)
		}
		if got.Name != "x" || got.Count != 3 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := Unmarshal([]byte("name: x\nextra: y\n"), &got); err != nil {
			t.Errorf("got %v", err)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := Unmarshal(nil, &got); !errors.Is(err, ErrNilData) {
			t.Errorf("got %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := Unmarshal([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("got %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		big := []byte("name: " + strings.Repeat("a", MaxInputSize))
		var got sample
		if err := Unmarshal(big, &got); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("got %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := Unmarshal([]byte("name: [unclosed"), &got); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := UnmarshalStrict([]byte("name: x\n"), &got); err != nil {
			t.Fatal(err)
		}
		if got.Name != "x" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()

		var got sample
		if err := UnmarshalStrict([]byte("name: x\nextra: y\n"), &got); err == nil {
			t.Error("expected error for unknown field")
		}
	})
}
