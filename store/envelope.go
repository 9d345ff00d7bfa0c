package store

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	envelopeVersion = 1
	headerSize      = 4 + 1 + 1 + 8 + 8
	// maxBody bounds the declared raw length so a corrupt header cannot
	// request an arbitrary allocation.
	maxBody = 1 << 30
)

var magic = [4]byte{'E', 'N', 'Z', 'F'}

// Seal compresses raw with c and prepends the envelope header.
func Seal(c Codec, raw []byte) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%s: %w", c, ErrCodec)
	}
	if len(raw) > maxBody {
		return nil, fmt.Errorf("body of %d bytes: %w", len(raw), ErrFormat)
	}
	body, err := c.compress(raw)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, magic[:])
	out[4] = envelopeVersion
	out[5] = byte(c)
	binary.BigEndian.PutUint64(out[6:], uint64(len(raw)))
	binary.BigEndian.PutUint64(out[14:], xxhash.Sum64(raw))

	return append(out, body...), nil
}

// Open verifies an envelope and returns the raw payload and its codec.
func Open(blob []byte) ([]byte, Codec, error) {
	if len(blob) < headerSize {
		return nil, CodecNone, fmt.Errorf("%d bytes: %w", len(blob), ErrFormat)
	}
	if [4]byte(blob[:4]) != magic {
		return nil, CodecNone, fmt.Errorf("bad magic %q: %w", blob[:4], ErrFormat)
	}
	if blob[4] != envelopeVersion {
		return nil, CodecNone, fmt.Errorf("version %d: %w", blob[4], ErrFormat)
	}
	c := Codec(blob[5])
	if !c.Valid() {
		return nil, c, fmt.Errorf("%s: %w", c, ErrCodec)
	}
	size := binary.BigEndian.Uint64(blob[6:])
	if size > maxBody {
		return nil, c, fmt.Errorf("declared length %d: %w", size, ErrFormat)
	}
	sum := binary.BigEndian.Uint64(blob[14:])

	raw, err := c.decompress(blob[headerSize:], int(size))
	if err != nil {
		return nil, c, err
	}
	if got := xxhash.Sum64(raw); got != sum {
		return nil, c, fmt.Errorf("%016x != %016x: %w", got, sum, ErrChecksum)
	}

	return raw, c, nil
}
