package compress

import (
	"github.com/gostdlib/base/concurrency/sync"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ZstdCompressor compresses with Zstandard. This is what archived regression fixtures use.
// The encoder and decoder are built on first use and shared, EncodeAll and DecodeAll are safe
// for concurrent use.
type ZstdCompressor struct {
	// Level is the encoder level, 0 means zstd.SpeedDefault.
	Level zstd.EncoderLevel

	mu  sync.Mutex
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Kind implements Compressor.
func (z *ZstdCompressor) Kind() Kind {
	return Zstd
}

func (z *ZstdCompressor) coders() (*zstd.Encoder, *zstd.Decoder, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.enc != nil {
		return z.enc, z.dec, nil
	}
	level := z.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecoded), zstd.WithDecoderConcurrency(0))
	if err != nil {
		enc.Close()
		return nil, nil, err
	}
	z.enc, z.dec = enc, dec
	return enc, dec, nil
}

// Compress implements Compressor.
func (z *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, _, err := z.coders()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// Decompress implements Compressor.
func (z *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	_, dec, err := z.coders()
	if err != nil {
		return nil, err
	}
	out, err := dec.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, errors.Wrapf(ErrTooLarge, "zstd")
	}
	return out, err
}
