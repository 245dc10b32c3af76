/*
Package capture reads and writes battle captures: a Battle snapshot followed by one frame per
engine update, recorded for debugging and replay.

The layout is:

	[showdown u8][gen u8][logSize i16][extra i32]  header, little endian
	[Battle]                                       initial snapshot
	[log][extra][Battle][Result][c1][c2]           one frame per update

A positive logSize is the size of a fixed log region per frame, shorter logs are padded with
zero bytes. A negative logSize means the log is only as long as its records (found by decoding
them) and 0 means no log. A negative extra means each frame's extra bytes run through a zero
byte, otherwise extra is their size.

A capture cut short keeps whatever its last frame managed to record.
*/
package capture

import (
	"bytes"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/battle"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/internal/binary"
	"github.com/bearlytools/pkmn/internal/compress"
	"github.com/bearlytools/pkmn/protocol"
	"github.com/pkg/errors"
)

// ErrInvalid is returned for data that is not a capture.
var ErrInvalid = errors.New("invalid capture")

// HeaderSize is the size in bytes of the capture header.
const HeaderSize = 8

// Header describes how the rest of a capture is laid out.
type Header struct {
	Showdown bool
	Gen      pkmn.Gen
	LogSize  int16
	Extra    int32
}

// Frame is one engine update. A complete frame has every field set. The last frame of a
// capture that was cut short has nil for everything it did not record.
type Frame struct {
	Log    []byte
	Extra  []byte
	Battle []byte
	Result *pkmn.Result
	C1     *pkmn.Choice
	C2     *pkmn.Choice
}

// Complete reports if every part of the frame was recorded.
func (f Frame) Complete() bool {
	return f.Battle != nil && f.Result != nil && f.C1 != nil && f.C2 != nil
}

// Capture is a decoded capture.
type Capture struct {
	Header
	// Battle is the snapshot before the first update.
	Battle []byte
	Frames []Frame
}

// Encode writes c in the capture layout.
func (c *Capture) Encode() ([]byte, error) {
	size, err := battle.Size(c.Gen)
	if err != nil {
		return nil, err
	}
	if len(c.Battle) != size {
		return nil, errors.Wrapf(ErrInvalid, "initial battle is %d bytes, want %d", len(c.Battle), size)
	}

	buf := make([]byte, 0, HeaderSize+size*(len(c.Frames)+1))
	buf = append(buf, boolByte(c.Showdown), byte(c.Gen))
	buf = binary.Append(buf, c.LogSize)
	buf = binary.Append(buf, c.Extra)
	buf = append(buf, c.Battle...)

	for i, f := range c.Frames {
		last := i == len(c.Frames)-1
		if !f.Complete() && !last {
			return nil, errors.Wrapf(ErrInvalid, "frame %d is incomplete and not the last frame", i)
		}
		if buf, err = c.appendFrame(buf, f, size); err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}
	}
	return buf, nil
}

func (c *Capture) appendFrame(buf []byte, f Frame, size int) ([]byte, error) {
	switch {
	case c.LogSize > 0:
		if len(f.Log) > int(c.LogSize) {
			return nil, errors.Wrapf(ErrInvalid, "log is %d bytes, region is %d", len(f.Log), c.LogSize)
		}
		buf = append(buf, f.Log...)
		if f.Battle != nil || len(f.Extra) > 0 {
			buf = append(buf, make([]byte, int(c.LogSize)-len(f.Log))...)
		}
	case c.LogSize < 0:
		if (f.Battle != nil || len(f.Extra) > 0) && (len(f.Log) == 0 || f.Log[len(f.Log)-1] != 0) {
			return nil, errors.Wrap(ErrInvalid, "a variable size log must end with its terminator")
		}
		buf = append(buf, f.Log...)
	case len(f.Log) > 0:
		return nil, errors.Wrap(ErrInvalid, "frame has a log but the capture has none")
	}

	switch {
	case c.Extra < 0:
		if i := bytes.IndexByte(f.Extra, 0); i >= 0 && i != len(f.Extra)-1 {
			return nil, errors.Wrap(ErrInvalid, "extra bytes must end at their only zero byte")
		}
	case f.Battle != nil && len(f.Extra) != int(c.Extra):
		return nil, errors.Wrapf(ErrInvalid, "extra is %d bytes, want %d", len(f.Extra), c.Extra)
	}
	buf = append(buf, f.Extra...)

	if f.Battle == nil {
		return buf, nil
	}
	if len(f.Battle) != size {
		return nil, errors.Wrapf(ErrInvalid, "battle is %d bytes, want %d", len(f.Battle), size)
	}
	buf = append(buf, f.Battle...)
	if f.Result == nil {
		return buf, nil
	}
	buf = append(buf, f.Result.Encode())
	if f.C1 == nil {
		return buf, nil
	}
	buf = append(buf, f.C1.Encode())
	if f.C2 == nil {
		return buf, nil
	}
	return append(buf, f.C2.Encode()), nil
}

// Decode reads a capture written by Encode.
func Decode(b []byte) (*Capture, error) {
	if len(b) < HeaderSize {
		return nil, errors.Wrapf(ErrInvalid, "%d bytes is shorter than the header", len(b))
	}
	c := &Capture{
		Header: Header{
			Showdown: b[0] != 0,
			Gen:      pkmn.Gen(b[1]),
			LogSize:  binary.Get[int16](b[2:]),
			Extra:    binary.Get[int32](b[4:]),
		},
	}
	if b[0] > 1 {
		return nil, errors.Wrapf(ErrInvalid, "showdown flag is %d", b[0])
	}
	size, err := battle.Size(c.Gen)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "%s", err)
	}

	off := HeaderSize
	if len(b) < off+size {
		return nil, errors.Wrap(ErrInvalid, "missing the initial battle")
	}
	c.Battle = b[off : off+size]
	off += size

	var logs *protocol.Log
	if c.LogSize < 0 {
		lookup, err := data.Get(c.Gen)
		if err != nil {
			return nil, err
		}
		if logs, err = protocol.New(c.Gen, lookup, protocol.Info{}); err != nil {
			return nil, err
		}
	}

	for off < len(b) {
		f, n, err := c.decodeFrame(b[off:], size, logs)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d at byte %d", len(c.Frames), off)
		}
		c.Frames = append(c.Frames, f)
		off += n
	}
	return c, nil
}

// decodeFrame reads one frame from the start of b and returns how many bytes it used.
func (c *Capture) decodeFrame(b []byte, size int, logs *protocol.Log) (Frame, int, error) {
	f := Frame{}
	off := 0

	switch {
	case c.LogSize > 0:
		n := min(int(c.LogSize), len(b))
		f.Log = b[:n]
		off = n
	case c.LogSize < 0:
		s := logs.Parse(b)
		for range s.All() {
		}
		if err := s.Err(); err != nil {
			if !errors.Is(err, protocol.ErrTruncated) {
				return f, 0, errors.Wrapf(ErrInvalid, "%s", err)
			}
			// The capture ends inside a log record.
			return Frame{Log: b}, len(b), nil
		}
		f.Log = b[:s.N()]
		off = s.N()
	}
	if off >= len(b) {
		return f, off, nil
	}

	switch {
	case c.Extra < 0:
		i := bytes.IndexByte(b[off:], 0)
		if i < 0 {
			f.Extra = b[off:]
			return f, len(b), nil
		}
		f.Extra = b[off : off+i+1]
		off += i + 1
	case c.Extra > 0:
		n := min(int(c.Extra), len(b)-off)
		f.Extra = b[off : off+n]
		off += n
	}
	if off >= len(b) {
		return f, off, nil
	}

	if len(b)-off < size {
		return f, 0, errors.Wrapf(ErrInvalid, "%d trailing bytes are not a battle", len(b)-off)
	}
	f.Battle = b[off : off+size]
	off += size

	if off < len(b) {
		r := pkmn.DecodeResult(b[off])
		f.Result = &r
		off++
	}
	if off < len(b) {
		c1 := pkmn.DecodeChoice(b[off])
		f.C1 = &c1
		off++
	}
	if off < len(b) {
		c2 := pkmn.DecodeChoice(b[off])
		f.C2 = &c2
		off++
	}
	return f, off, nil
}

// Compress encodes c and compresses it with kind. The first byte of the output is kind.
func (c *Capture) Compress(kind compress.Kind) ([]byte, error) {
	b, err := c.Encode()
	if err != nil {
		return nil, err
	}
	z, err := compress.Compress(kind, b)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(kind)}, z...), nil
}

// Read decodes the output of Compress.
func Read(b []byte) (*Capture, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrInvalid, "empty data")
	}
	kind := compress.Kind(b[0])
	raw, err := compress.Decompress(kind, b[1:])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "%s: %s", kind, err)
	}
	return Decode(raw)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
