package compress

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// SnappyCompressor compresses with snappy block encoding.
// Captures are mostly repeated Battle snapshots, which Snappy handles quickly.
type SnappyCompressor struct{}

// Kind implements Compressor.
func (s *SnappyCompressor) Kind() Kind {
	return Snappy
}

// Compress implements Compressor.
func (s *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress implements Compressor.
func (s *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > MaxDecoded {
		return nil, errors.Wrapf(ErrTooLarge, "snappy block of %d bytes", n)
	}
	return snappy.Decode(make([]byte, n), data)
}
