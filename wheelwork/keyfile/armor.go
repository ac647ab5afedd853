package keyfile

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/reedsolomon"

	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

var armorMagic = [4]byte{'W', 'K', 'A', '1'}

var (
	ErrBadArmor    = errors.New("keyfile: malformed armor container")
	ErrTooManyBad  = errors.New("keyfile: too many corrupted shards, cannot recover")
	ErrArmorConfig = errors.New("keyfile: invalid shard configuration")
)

// DefaultDataShards is the data shard count used by WriteArmored.
const DefaultDataShards = 4

// Armor splits data into dataShards Reed-Solomon data shards plus
// parityShards parity shards and packs them with per-shard SHA-256
// digests. Up to parityShards corrupted shards can be reconstructed by
// Unarmor.
//
// Layout:
//
//	4 bytes: magic "WKA1"
//	1 byte:  data shard count
//	1 byte:  parity shard count
//	4 bytes: original data length (big endian)
//	4 bytes: shard size (big endian)
//	per shard: 32-byte SHA-256 digest, then shard bytes
func Armor(data []byte, dataShards, parityShards int) ([]byte, error) {
	if dataShards <= 0 || dataShards > 255 || parityShards <= 0 || parityShards > 255 {
		return nil, ErrArmorConfig
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	shards, err := enc.Split(data)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	shardSize := len(shards[0])
	out := make([]byte, 0, 14+len(shards)*(sha256.Size+shardSize))
	out = append(out, armorMagic[:]...)
	out = append(out, byte(dataShards), byte(parityShards))
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = binary.BigEndian.AppendUint32(out, uint32(shardSize))
	for _, shard := range shards {
		sum := sha256.Sum256(shard)
		out = append(out, sum[:]...)
		out = append(out, shard...)
	}
	return out, nil
}

// Unarmor unpacks an armor container, reconstructing shards whose digest
// does not match. It returns ErrTooManyBad when more shards are corrupted
// than the parity can recover.
func Unarmor(data []byte) ([]byte, error) {
	if len(data) < 14 {
		return nil, ErrBadArmor
	}
	if !bytes.Equal(data[:4], armorMagic[:]) {
		return nil, ErrBadArmor
	}
	dataShards := int(data[4])
	parityShards := int(data[5])
	origLen := int(binary.BigEndian.Uint32(data[6:10]))
	shardSize := int(binary.BigEndian.Uint32(data[10:14]))
	if dataShards == 0 || parityShards == 0 {
		return nil, ErrBadArmor
	}

	total := dataShards + parityShards
	body := data[14:]
	if len(body) != total*(sha256.Size+shardSize) {
		return nil, fmt.Errorf("%w: body size %d", ErrBadArmor, len(body))
	}
	if origLen > dataShards*shardSize {
		return nil, ErrBadArmor
	}

	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		off := i * (sha256.Size + shardSize)
		digest := body[off : off+sha256.Size]
		shard := body[off+sha256.Size : off+sha256.Size+shardSize]
		sum := sha256.Sum256(shard)
		if bytes.Equal(sum[:], digest) {
			shards[i] = append([]byte(nil), shard...)
		}
		// A nil shard marks corruption for reconstruction.
	}

	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	if err := enc.Reconstruct(shards); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return nil, ErrTooManyBad
		}
		return nil, err
	}

	out := make([]byte, 0, origLen)
	for i := 0; i < dataShards && len(out) < origLen; i++ {
		remaining := origLen - len(out)
		if remaining >= len(shards[i]) {
			out = append(out, shards[i]...)
		} else {
			out = append(out, shards[i][:remaining]...)
		}
	}
	return out, nil
}

// WriteArmored writes s as an armored container on w.
func WriteArmored(w io.Writer, s *rotor.Secret, parityShards int) error {
	plain, err := Bytes(s)
	if err != nil {
		return err
	}
	armored, err := Armor(plain, DefaultDataShards, parityShards)
	if err != nil {
		return err
	}
	_, err = w.Write(armored)
	return err
}

// ReadArmored reads an armored container from r and reconstructs the
// secret, surviving up to the container's parity count of bad shards.
func ReadArmored(r io.Reader) (*rotor.Secret, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	plain, err := Unarmor(data)
	if err != nil {
		return nil, err
	}
	return Parse(plain)
}
