// Package wire implements the binary encoding used to serialize shares,
// ciphertexts and keys for transport between parties: a Writer/Reader pair
// that avoids a per-field allocation when the underlying
// io.Writer/io.Reader already satisfies the richer interface, and falls
// back to a small bufio-backed adapter otherwise.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Writer is the interface types in this module serialize against. It is
// satisfied directly by *Buffer, and by any io.Writer wrapped in an
// adapter by NewWriter.
type Writer interface {
	io.Writer
	WriteUint8(uint8) (int64, error)
	WriteUint64(uint64) (int64, error)
	WriteUint64Slice([]uint64) (int64, error)
}

// Reader is the read-side counterpart of Writer.
type Reader interface {
	io.Reader
	ReadUint8(*uint8) (int64, error)
	ReadUint64(*uint64) (int64, error)
	ReadUint64Slice([]uint64) (int64, error)
}

// Buffer is an in-memory Writer/Reader backed by a byte slice: passing
// one to a WriteTo/ReadFrom method avoids the io.Writer/io.Reader
// indirection entirely.
type Buffer struct {
	Bytes []byte
	pos   int
}

// NewBuffer wraps buf for reading and, if buf is non-nil, for appending
// writes after its current contents.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{Bytes: buf}
}

// NewBufferSize allocates a Buffer with size bytes of backing capacity,
// ready for writing from position zero.
func NewBufferSize(size int) *Buffer {
	return &Buffer{Bytes: make([]byte, 0, size)}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.Bytes = append(b.Bytes, p...)
	return len(p), nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	n := copy(p, b.Bytes[b.pos:])
	b.pos += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) WriteUint8(v uint8) (int64, error) {
	b.Bytes = append(b.Bytes, v)
	return 1, nil
}

func (b *Buffer) ReadUint8(v *uint8) (int64, error) {
	if b.pos >= len(b.Bytes) {
		return 0, io.EOF
	}
	*v = b.Bytes[b.pos]
	b.pos++
	return 1, nil
}

func (b *Buffer) WriteUint64(v uint64) (int64, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.Bytes = append(b.Bytes, tmp[:]...)
	return 8, nil
}

func (b *Buffer) ReadUint64(v *uint64) (int64, error) {
	if b.pos+8 > len(b.Bytes) {
		return 0, io.EOF
	}
	*v = binary.LittleEndian.Uint64(b.Bytes[b.pos : b.pos+8])
	b.pos += 8
	return 8, nil
}

func (b *Buffer) WriteUint64Slice(v []uint64) (int64, error) {
	var total int64
	n, err := b.WriteUint64(uint64(len(v)))
	total += n
	if err != nil {
		return total, err
	}
	for _, x := range v {
		n, err = b.WriteUint64(x)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (b *Buffer) ReadUint64Slice(v []uint64) (int64, error) {
	var total int64
	var length uint64
	n, err := b.ReadUint64(&length)
	total += n
	if err != nil {
		return total, err
	}
	if int(length) != len(v) {
		return total, io.ErrUnexpectedEOF
	}
	for i := range v {
		n, err = b.ReadUint64(&v[i])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// genericWriter adapts a plain io.Writer to the Writer interface via a
// small bufio.Writer.
type genericWriter struct {
	w *bufio.Writer
}

// NewWriter returns w itself if it already implements Writer, otherwise
// wraps it in a bufio-backed adapter.
func NewWriter(w io.Writer) Writer {
	if wr, ok := w.(Writer); ok {
		return wr
	}
	return &genericWriter{w: bufio.NewWriter(w)}
}

func (g *genericWriter) Write(p []byte) (int, error) { return g.w.Write(p) }

func (g *genericWriter) WriteUint8(v uint8) (int64, error) {
	if err := g.w.WriteByte(v); err != nil {
		return 0, err
	}
	return 1, nil
}

func (g *genericWriter) WriteUint64(v uint64) (int64, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	n, err := g.w.Write(tmp[:])
	return int64(n), err
}

func (g *genericWriter) WriteUint64Slice(v []uint64) (int64, error) {
	var total int64
	n, err := g.WriteUint64(uint64(len(v)))
	total += n
	if err != nil {
		return total, err
	}
	for _, x := range v {
		n, err = g.WriteUint64(x)
		total += n
		if err != nil {
			return total, err
		}
	}
	if err = g.w.Flush(); err != nil {
		return total, err
	}
	return total, nil
}

type genericReader struct {
	r *bufio.Reader
}

// NewReader returns r itself if it already implements Reader, otherwise
// wraps it in a bufio-backed adapter.
func NewReader(r io.Reader) Reader {
	if rd, ok := r.(Reader); ok {
		return rd
	}
	return &genericReader{r: bufio.NewReader(r)}
}

func (g *genericReader) Read(p []byte) (int, error) { return g.r.Read(p) }

func (g *genericReader) ReadUint8(v *uint8) (int64, error) {
	b, err := g.r.ReadByte()
	if err != nil {
		return 0, err
	}
	*v = b
	return 1, nil
}

func (g *genericReader) ReadUint64(v *uint64) (int64, error) {
	var tmp [8]byte
	n, err := io.ReadFull(g.r, tmp[:])
	if err != nil {
		return int64(n), err
	}
	*v = binary.LittleEndian.Uint64(tmp[:])
	return int64(n), nil
}

func (g *genericReader) ReadUint64Slice(v []uint64) (int64, error) {
	var total int64
	var length uint64
	n, err := g.ReadUint64(&length)
	total += n
	if err != nil {
		return total, err
	}
	if int(length) != len(v) {
		return total, io.ErrUnexpectedEOF
	}
	for i := range v {
		n, err = g.ReadUint64(&v[i])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
