package otpcode

import (
	"errors"
	"testing"
)

func TestNewNumeric_RejectsBadLength(t *testing.T) {
	for _, length := range []int{0, 3, 11} {
		if _, err := NewNumeric(length); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("length %d: got %v, want ErrInvalidLength", length, err)
		}
	}
}

func TestNumeric_Generate(t *testing.T) {
	gen, err := NewNumeric(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit %q", code, c)
			}
		}
		seen[code] = struct{}{}
	}

	// 100 draws from a million possibilities should essentially never collapse
	// to a handful of values.
	if len(seen) < 50 {
		t.Fatalf("only %d distinct codes out of 100 draws", len(seen))
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestNumeric_UsesInjectedSource(t *testing.T) {
	gen, err := NewNumeric(6, WithSource(zeroReader{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "000000" {
		t.Fatalf("code = %q, want %q", code, "000000")
	}
}
