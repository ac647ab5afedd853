package rotor

import (
	"testing"
)

func TestRotorPermutationInvariant(t *testing.T) {
	r, err := NewRotor()
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	var seen [TableSize]bool
	for b := 0; b < TableSize; b++ {
		v := r.encode[b]
		if seen[v] {
			t.Fatalf("encode table is not a permutation: duplicate %d", v)
		}
		seen[v] = true
		if got := r.decode[v]; got != byte(b) {
			t.Fatalf("decode[encode[%d]] = %d, want %d", b, got, b)
		}
	}
}

func TestRotorRotationArithmetic(t *testing.T) {
	r, err := NewRotor()
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	var offset byte
	for step := 0; step < 10; step++ {
		for b := 0; b < TableSize; b++ {
			want := r.encode[b] + offset
			if got := r.Encode(byte(b)); got != want {
				t.Fatalf("step %d: Encode(%d) = %d, want %d", step, b, got, want)
			}
			if got := r.Decode(want); got != byte(b) {
				t.Fatalf("step %d: Decode(Encode(%d)) = %d", step, b, got)
			}
		}
		r.Rotate()
		offset += r.distance
	}
}

func TestRotorReset(t *testing.T) {
	r, err := NewRotor()
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	r.distance = 37 // ensure rotation actually moves
	r.Rotate()
	r.Rotate()
	if r.offset == 0 {
		t.Fatalf("expected nonzero offset after rotation")
	}
	r.Reset()
	if r.offset != 0 {
		t.Fatalf("offset = %d after Reset, want 0", r.offset)
	}
}

func TestRotorCopyIndependence(t *testing.T) {
	r, err := NewRotor()
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	r.distance = 11
	r.Rotate()

	c := r.Copy()
	if c.offset != r.offset {
		t.Fatalf("copy offset = %d, want source offset %d", c.offset, r.offset)
	}
	if c.encode != r.encode || c.decode != r.decode {
		t.Fatalf("copy tables differ from source")
	}

	c.Rotate()
	if c.offset == r.offset {
		t.Fatalf("rotating the copy moved the source")
	}
	c.encode[0]++
	if c.encode[0] == r.encode[0] {
		t.Fatalf("mutating the copy's table reached the source")
	}
}

func TestRotorWipe(t *testing.T) {
	r, err := NewRotor()
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	r.Wipe()
	for i := 0; i < TableSize; i++ {
		if r.encode[i] != 0 || r.decode[i] != 0 {
			t.Fatalf("table entry %d survived Wipe", i)
		}
	}
}

func BenchmarkRotorEncode(b *testing.B) {
	r, err := NewRotor()
	if err != nil {
		b.Fatalf("NewRotor: %v", err)
	}
	b.SetBytes(1)
	for i := 0; i < b.N; i++ {
		_ = r.Encode(byte(i))
		r.Rotate()
	}
}
