package rotor

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBadRecord = errors.New("rotor: malformed secret record")

// secretRecord is the persisted form of a Secret. Only the key definition
// is stored: encode tables, rotation distances, noise flags, prefix length,
// and name. Inverse tables are derived on load and rotation state always
// starts at zero for a freshly loaded secret.
type secretRecord struct {
	Name         string        `json:"name"`
	PrefixLength int           `json:"prefix_length"`
	Rotors       []rotorRecord `json:"rotors"`
}

type rotorRecord struct {
	Encodes          []int `json:"encodes"`
	RotationDistance int   `json:"rotation_distance"`
	Noisey           bool  `json:"noisey"`
}

// Marshal serializes the secret's key definition. Transient rotation state
// (offsets, active index) is intentionally not part of the record.
func (s *Secret) Marshal() ([]byte, error) {
	rec := secretRecord{
		Name:         s.name,
		PrefixLength: s.prefixLen,
		Rotors:       make([]rotorRecord, 0, NumRotors),
	}
	for _, r := range s.rotors {
		rr := rotorRecord{
			Encodes:          make([]int, TableSize),
			RotationDistance: int(r.distance),
			Noisey:           r.noisey,
		}
		for i, v := range r.encode {
			rr.Encodes[i] = int(v)
		}
		rec.Rotors = append(rec.Rotors, rr)
	}
	return json.Marshal(rec)
}

// UnmarshalSecret parses a persisted secret record. It fails closed: any
// structural defect returns an error and no partially constructed secret.
func UnmarshalSecret(data []byte) (*Secret, error) {
	var rec secretRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if rec.PrefixLength < 0 {
		return nil, fmt.Errorf("%w: negative prefix_length %d", ErrBadRecord, rec.PrefixLength)
	}
	if len(rec.Rotors) != NumRotors {
		return nil, fmt.Errorf("%w: expected %d rotors, got %d", ErrBadRecord, NumRotors, len(rec.Rotors))
	}

	s := &Secret{name: rec.Name, prefixLen: rec.PrefixLength}
	for i, rr := range rec.Rotors {
		r, err := rotorFromRecord(rr)
		if err != nil {
			return nil, fmt.Errorf("rotor %d: %w", i, err)
		}
		s.rotors[i] = r
	}
	return s, nil
}

func rotorFromRecord(rr rotorRecord) (*Rotor, error) {
	if len(rr.Encodes) != TableSize {
		return nil, fmt.Errorf("%w: encode table has %d entries", ErrBadRecord, len(rr.Encodes))
	}
	if rr.RotationDistance < 0 || rr.RotationDistance > 255 {
		return nil, fmt.Errorf("%w: rotation_distance %d out of range", ErrBadRecord, rr.RotationDistance)
	}

	r := &Rotor{
		distance: byte(rr.RotationDistance),
		noisey:   rr.Noisey,
	}
	var seen [TableSize]bool
	for i, v := range rr.Encodes {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: encode entry %d out of range", ErrBadRecord, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: encode table is not a permutation (duplicate %d)", ErrBadRecord, v)
		}
		seen[v] = true
		r.encode[i] = byte(v)
	}
	r.rebuildDecode()
	return r, nil
}
