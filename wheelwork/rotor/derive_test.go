package rotor

import (
	"bytes"
	"testing"
)

func TestDeriveSecretDeterministic(t *testing.T) {
	a, err := DeriveSecret("shared", 4, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}
	b, err := DeriveSecret("shared", 4, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}

	recA, err := a.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	recB, err := b.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(recA, recB) {
		t.Fatalf("same passphrase produced different rotor material")
	}
}

func TestDeriveSecretPassphraseSensitivity(t *testing.T) {
	a, err := DeriveSecret("shared", 0, []byte("passphrase one"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}
	b, err := DeriveSecret("shared", 0, []byte("passphrase two"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}
	for i := range a.rotors {
		if a.rotors[i].encode != b.rotors[i].encode {
			return
		}
	}
	t.Fatalf("different passphrases produced identical rotor tables")
}

func TestDeriveSecretTablesAreValid(t *testing.T) {
	s, err := DeriveSecret("valid", 0, []byte("any key material"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}
	for i, r := range s.rotors {
		var seen [TableSize]bool
		for b := 0; b < TableSize; b++ {
			v := r.encode[b]
			if seen[v] {
				t.Fatalf("rotor %d: duplicate table entry %d", i, v)
			}
			seen[v] = true
			if r.decode[v] != byte(b) {
				t.Fatalf("rotor %d: decode is not the inverse at %d", i, b)
			}
		}
	}
}
