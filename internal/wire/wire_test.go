package wire_test

import (
	"io"
	"testing"

	"github.com/latticefhe/mpctfhe/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestBufferUint64RoundTrip(t *testing.T) {
	b := wire.NewBufferSize(64)
	_, err := b.WriteUint64(0xdeadbeef)
	require.NoError(t, err)
	_, err = b.WriteUint64(7)
	require.NoError(t, err)

	rb := wire.NewBuffer(b.Bytes)
	var a, c uint64
	_, err = rb.ReadUint64(&a)
	require.NoError(t, err)
	_, err = rb.ReadUint64(&c)
	require.NoError(t, err)
	require.Equal(t, uint64(0xdeadbeef), a)
	require.Equal(t, uint64(7), c)
}

func TestBufferUint64SliceRoundTrip(t *testing.T) {
	in := []uint64{1, 2, 3, 4, 5}
	b := wire.NewBufferSize(64)
	_, err := b.WriteUint64Slice(in)
	require.NoError(t, err)

	out := make([]uint64, len(in))
	rb := wire.NewBuffer(b.Bytes)
	_, err = rb.ReadUint64Slice(out)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestGenericReaderWriterRoundTrip(t *testing.T) {
	var buf bytesBuffer
	w := wire.NewWriter(&buf)
	_, err := w.WriteUint64Slice([]uint64{9, 8, 7})
	require.NoError(t, err)

	r := wire.NewReader(&buf)
	out := make([]uint64, 3)
	_, err = r.ReadUint64Slice(out)
	require.NoError(t, err)
	require.Equal(t, []uint64{9, 8, 7}, out)
}

// bytesBuffer is a minimal io.Writer+io.Reader that does NOT itself
// implement wire.Writer/wire.Reader, exercising the bufio fallback path.
type bytesBuffer struct {
	data []byte
	pos  int
}

func (b *bytesBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bytesBuffer) Read(p []byte) (int, error) {
	n := copy(p, b.data[b.pos:])
	b.pos += n
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
