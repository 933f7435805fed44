package bmpfilter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4FrameMagic is the little-endian LZ4 frame magic number 0x184D2204.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// openStream returns a reader over the bitmap bytes in r, unwrapping an
// LZ4 frame when the stream starts with one.
func openStream(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	head, _ := br.Peek(len(lz4FrameMagic))
	if bytes.Equal(head, lz4FrameMagic) {
		return bufio.NewReader(lz4.NewReader(br))
	}

	return br
}

// compressedWriter wraps w in an LZ4 frame writer. The returned close
// function flushes the frame footer and must be called before w is closed.
func compressedWriter(w io.Writer) (io.Writer, func() error, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level5)); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCompressStream, err)
	}

	return zw, func() error {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrCompressStream, err)
		}
		return nil
	}, nil
}
