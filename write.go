package bmpfilter

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOptions configures bitmap writing.
type WriteOptions struct {
	// Compress wraps the bitmap in an LZ4 frame. Decode unwraps it transparently.
	Compress bool
}

// Write writes img as an uncompressed 24-bit bitmap file.
func Write(img *Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithOptions writes img to path. Nil opts writes a plain bitmap.
func WriteWithOptions(img *Image, path string, opts *WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w: %q: %v", ErrFileOpen, ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	finish := func() error { return nil }
	if opts != nil && opts.Compress {
		w, finish, err = compressedWriter(bw)
		if err != nil {
			return err
		}
	}

	if err := Encode(w, img); err != nil {
		return err
	}
	if err := finish(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePixelData, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWritePixelData, path, err)
	}

	return nil
}

// Encode writes img to w as an uncompressed 24-bit bitmap: both headers, then
// rows bottom-up in B,G,R order, each padded with zeros to a multiple of 4 bytes.
// Channels are narrowed by truncation without clamping.
func Encode(w io.Writer, img *Image) error {
	if err := checkSource(img); err != nil {
		return err
	}

	fh, ih, err := makeHeaders(img.width, img.height)
	if err != nil {
		return err
	}

	fb, _ := fh.MarshalBinary()
	ib, _ := ih.MarshalBinary()
	if _, err := w.Write(fb); err != nil {
		return fmt.Errorf("%w: file header: %v", ErrWriteHeader, err)
	}
	if _, err := w.Write(ib); err != nil {
		return fmt.Errorf("%w: info header: %v", ErrWriteHeader, err)
	}

	// The padding tail stays zero because only pixel bytes are overwritten.
	row := make([]byte, rowStride(img.width))
	for y := img.height - 1; y >= 0; y-- {
		for x := 0; x < img.width; x++ {
			c := img.at(x, y)
			i := x * bytesPerPixel
			row[i] = channelToByte(c.B)
			row[i+1] = channelToByte(c.G)
			row[i+2] = channelToByte(c.R)
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrWritePixelData, y, err)
		}
	}

	return nil
}
