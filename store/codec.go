package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression applied to an encoded project.
type Codec uint8

const (
	// CodecNone stores the JSON payload as is.
	CodecNone Codec = iota
	// CodecZstd uses Zstandard at the default level.
	CodecZstd
	// CodecS2 uses S2, the Snappy-compatible format from klauspost/compress.
	CodecS2
	// CodecLZ4 uses LZ4 block compression.
	CodecLZ4

	codecCount
)

var codecNames = [codecCount]string{"none", "zstd", "s2", "lz4"}

// String returns the lower-case codec name.
func (c Codec) String() string {
	if c >= codecCount {
		return fmt.Sprintf("codec(%d)", uint8(c))
	}

	return codecNames[c]
}

// ParseCodec is the case-insensitive inverse of Codec.String.
// The empty string selects CodecZstd.
func ParseCodec(s string) (Codec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CodecZstd, nil
	}
	for i, n := range codecNames {
		if n == s {
			return Codec(i), nil
		}
	}

	return CodecNone, fmt.Errorf("%q: %w", s, ErrCodec)
}

// Valid reports whether c is a known codec.
func (c Codec) Valid() bool { return c < codecCount }

var zstdDecoders = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("store: zstd decoder: %v", err))
		}

		return d
	},
}

var zstdEncoders = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("store: zstd encoder: %v", err))
		}

		return e
	},
}

var lz4Compressors = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// compress encodes src. Empty input yields empty output for every codec.
func (c Codec) compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	switch c {
	case CodecNone:
		return append([]byte(nil), src...), nil
	case CodecZstd:
		e := zstdEncoders.Get().(*zstd.Encoder)
		defer zstdEncoders.Put(e)

		return e.EncodeAll(src, nil), nil
	case CodecS2:
		return s2.Encode(nil, src), nil
	case CodecLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(src)))
		lc := lz4Compressors.Get().(*lz4.Compressor)
		defer lz4Compressors.Put(lc)
		n, err := lc.CompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("store: lz4: %w", err)
		}

		return dst[:n], nil
	}

	return nil, fmt.Errorf("%s: %w", c, ErrCodec)
}

// decompress decodes src, which must expand to exactly size bytes.
func (c Codec) decompress(src []byte, size int) ([]byte, error) {
	if size == 0 {
		if len(src) != 0 {
			return nil, fmt.Errorf("%d payload bytes for empty body: %w", len(src), ErrFormat)
		}

		return nil, nil
	}

	var (
		out []byte
		err error
	)
	switch c {
	case CodecNone:
		out = append([]byte(nil), src...)
	case CodecZstd:
		d := zstdDecoders.Get().(*zstd.Decoder)
		out, err = d.DecodeAll(src, make([]byte, 0, size))
		zstdDecoders.Put(d)
	case CodecS2:
		var n int
		if n, err = s2.DecodedLen(src); err == nil && n != size {
			return nil, fmt.Errorf("s2 length %d, want %d: %w", n, size, ErrFormat)
		}
		if err == nil {
			out, err = s2.Decode(nil, src)
		}
	case CodecLZ4:
		buf := make([]byte, size)
		var n int
		n, err = lz4.UncompressBlock(src, buf)
		out = buf[:max(n, 0)]
	default:
		return nil, fmt.Errorf("%s: %w", c, ErrCodec)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", c, ErrFormat, err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("%s: decoded %d bytes, want %d: %w", c, len(out), size, ErrFormat)
	}

	return out, nil
}
