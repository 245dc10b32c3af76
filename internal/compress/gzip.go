package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// GzipCompressor compresses with gzip. Captures written with it can be read with any gzip tool.
type GzipCompressor struct {
	// Level is a gzip level between gzip.BestSpeed and gzip.BestCompression. 0 means
	// gzip.DefaultCompression.
	Level int
}

// Kind implements Compressor.
func (g *GzipCompressor) Kind() Kind {
	return Gzip
}

// Compress implements Compressor.
func (g *GzipCompressor) Compress(data []byte) ([]byte, error) {
	level := g.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)/4))
	w, err := gzip.NewWriterLevel(buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress implements Compressor. It fails once the output passes MaxDecoded.
func (g *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, MaxDecoded+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecoded {
		return nil, errors.Wrapf(ErrTooLarge, "gzip")
	}
	return out, nil
}
