// Package compress provides the compression used for capture files. It includes built-in
// compressors for gzip, snappy, and zstd, and supports custom compressor registration.
package compress

import (
	"fmt"

	"github.com/gostdlib/base/concurrency/sync"
	"github.com/pkg/errors"
)

// MaxDecoded is the largest output Decompress produces.
const MaxDecoded = 64 << 20

// ErrTooLarge is returned when decompressed data would pass MaxDecoded.
var ErrTooLarge = errors.New("decompressed data too large")

// Kind is the compression algorithm. It is stored as a single byte ahead of compressed
// capture data, so values must never be renumbered.
type Kind uint8

const (
	// None leaves the data as is.
	None Kind = 0
	// Gzip is compress/gzip.
	Gzip Kind = 1
	// Snappy is github.com/golang/snappy.
	Snappy Kind = 2
	// Zstd is github.com/klauspost/compress/zstd.
	Zstd Kind = 3
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Compress compresses data. Returns compressed data or error.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data. Returns original data or error.
	Decompress(data []byte) ([]byte, error)

	// Kind returns the compression kind recorded alongside the data.
	Kind() Kind
}

var (
	registry   = map[Kind]Compressor{}
	registryMu sync.RWMutex
)

// Register adds a compressor to the registry. This can be used to register
// custom compressors or override built-in compressors. Thread-safe.
func Register(c Compressor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.Kind()] = c
}

// Get returns the compressor for the given kind, or nil if not found.
func Get(k Kind) Compressor {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[k]
}

// Compress compresses data using the specified algorithm.
// Returns original data unchanged if kind is None.
// Returns an error if the compressor is not registered.
func Compress(k Kind, data []byte) ([]byte, error) {
	if k == None || len(data) == 0 {
		return data, nil
	}
	c := Get(k)
	if c == nil {
		return nil, errors.Errorf("compressor not registered for kind %s", k)
	}
	return c.Compress(data)
}

// Decompress decompresses data using the specified algorithm.
// Returns original data unchanged if kind is None.
// Returns an error if the compressor is not registered.
func Decompress(k Kind, data []byte) ([]byte, error) {
	if k == None || len(data) == 0 {
		return data, nil
	}
	c := Get(k)
	if c == nil {
		return nil, errors.Errorf("compressor not registered for kind %s", k)
	}
	return c.Decompress(data)
}

func init() {
	Register(&GzipCompressor{})
	Register(&SnappyCompressor{})
	Register(&ZstdCompressor{})
}
