package bmpfilter

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// ReadConfig reads bitmap dimensions without decoding pixel data.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrFileOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	_, ih, err := readHeaders(openStream(f))
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(ih.Width),
		Height:     int(ih.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// Read reads and decodes a bitmap file.
func Read(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFileOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an uncompressed 24-bit bitmap from r. A stream wrapped in an
// LZ4 frame is decompressed transparently.
func Decode(r io.Reader) (*Image, error) {
	src := openStream(r)

	fh, ih, err := readHeaders(src)
	if err != nil {
		return nil, err
	}

	width, height := int(ih.Width), int(ih.Height)
	if _, err := pixelCount(width, height); err != nil {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrInvalidFormat, err, width, height)
	}

	// Some writers put extra header bytes or a palette between the headers and the rows.
	if skip := int64(fh.DataOffset) - PixelDataOffset; skip > 0 {
		if _, err := io.CopyN(io.Discard, src, skip); err != nil {
			return nil, readError(ErrPixelDataRead, err)
		}
	}

	// The header alone must not size an allocation: the rows are read first and
	// the raster is only built once every byte is in hand.
	stride := rowStride(width)
	data, err := readFull(src, int64(stride)*int64(height))
	if err != nil {
		return nil, readError(ErrPixelDataRead, fmt.Errorf("row %d: %w", height-1-len(data)/max(stride, 1), err))
	}

	img, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	// Rows are stored bottom-up; the padding tail of each row is ignored.
	for y := height - 1; y >= 0; y-- {
		row := data[(height-1-y)*stride:]
		for x := 0; x < width; x++ {
			p := row[x*bytesPerPixel : x*bytesPerPixel+bytesPerPixel]
			img.set(x, y, Color{R: byteToChannel(p[2]), G: byteToChannel(p[1]), B: byteToChannel(p[0])})
		}
	}

	return img, nil
}

// readFull reads exactly n bytes from r. The buffer grows with the data
// actually received, so a stream shorter than n never costs n bytes.
// A short stream returns the bytes read together with io.ErrUnexpectedEOF.
func readFull(r io.Reader, n int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return data, err
	}
	if int64(len(data)) < n {
		return data, io.ErrUnexpectedEOF
	}

	return data, nil
}
