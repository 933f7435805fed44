package bmpfilter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// FileHeaderSize is the size of the BITMAPFILEHEADER block.
	FileHeaderSize = 14
	// InfoHeaderSize is the size of the BITMAPINFOHEADER block.
	InfoHeaderSize = 40
	// PixelDataOffset is where pixel rows start in files written by this package.
	PixelDataOffset = FileHeaderSize + InfoHeaderSize

	// BitsPerPixel is the only supported depth.
	BitsPerPixel = 24

	bytesPerPixel = BitsPerPixel / 8
)

// Signature is the two byte magic at the start of every bitmap.
var Signature = [2]byte{'B', 'M'}

// FileHeader is the 14-byte bitmap file header.
//
//	offset size field
//	0      2    signature "BM"
//	2      4    file size
//	6      4    reserved (0)
//	10     4    pixel data offset
type FileHeader struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
//
//	offset size field
//	0      4    header size (40)
//	4      4    width
//	8      4    height
//	12     2    planes (1)
//	14     2    bits per pixel (24)
//	16     4    compression (0)
//	20     20   image size, x/y pixels per meter, colors used, important colors (all 0)
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// rowPadding returns the number of zero bytes that pad a row to 4 bytes.
func rowPadding(width int) int {
	return (4 - (width*bytesPerPixel)%4) % 4
}

// rowStride returns the on-disk length of one row including padding.
func rowStride(width int) int {
	return width*bytesPerPixel + rowPadding(width)
}

// makeHeaders builds the headers for an image of the given size.
func makeHeaders(width, height int) (FileHeader, InfoHeader, error) {
	w32, err := i32FromInt(width)
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}
	h32, err := i32FromInt(height)
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	if height != 0 && rowStride(width) > (maxInt32-PixelDataOffset)/height {
		return FileHeader{}, InfoHeader{}, ErrSizeOverflow
	}
	fileSize, err := u32FromInt(PixelDataOffset + rowStride(width)*height)
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	fh := FileHeader{
		Signature:  Signature,
		FileSize:   fileSize,
		DataOffset: PixelDataOffset,
	}
	ih := InfoHeader{
		Size:         InfoHeaderSize,
		Width:        w32,
		Height:       h32,
		Planes:       1,
		BitsPerPixel: BitsPerPixel,
	}

	return fh, ih, nil
}

// MarshalBinary encodes the header field by field in little-endian order.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, FileHeaderSize)
	buf[0], buf[1] = h.Signature[0], h.Signature[1]
	binary.LittleEndian.PutUint32(buf[2:], h.FileSize)
	binary.LittleEndian.PutUint32(buf[6:], h.Reserved)
	binary.LittleEndian.PutUint32(buf[10:], h.DataOffset)
	return buf, nil
}

// UnmarshalBinary decodes a 14-byte file header.
func (h *FileHeader) UnmarshalBinary(buf []byte) error {
	if len(buf) < FileHeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrFileHeaderRead, FileHeaderSize, len(buf))
	}

	h.Signature = [2]byte{buf[0], buf[1]}
	h.FileSize = binary.LittleEndian.Uint32(buf[2:])
	h.Reserved = binary.LittleEndian.Uint32(buf[6:])
	h.DataOffset = binary.LittleEndian.Uint32(buf[10:])
	return nil
}

// MarshalBinary encodes the header field by field in little-endian order.
func (h InfoHeader) MarshalBinary() ([]byte, error) {
	le := binary.LittleEndian
	buf := make([]byte, InfoHeaderSize)
	le.PutUint32(buf[0:], h.Size)
	le.PutUint32(buf[4:], uint32(h.Width))
	le.PutUint32(buf[8:], uint32(h.Height))
	le.PutUint16(buf[12:], h.Planes)
	le.PutUint16(buf[14:], h.BitsPerPixel)
	le.PutUint32(buf[16:], h.Compression)
	le.PutUint32(buf[20:], h.ImageSize)
	le.PutUint32(buf[24:], uint32(h.XPixelsPerMeter))
	le.PutUint32(buf[28:], uint32(h.YPixelsPerMeter))
	le.PutUint32(buf[32:], h.ColorsUsed)
	le.PutUint32(buf[36:], h.ColorsImportant)
	return buf, nil
}

// UnmarshalBinary decodes a 40-byte info header.
func (h *InfoHeader) UnmarshalBinary(buf []byte) error {
	if len(buf) < InfoHeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrInfoHeaderRead, InfoHeaderSize, len(buf))
	}

	le := binary.LittleEndian
	h.Size = le.Uint32(buf[0:])
	h.Width = int32(le.Uint32(buf[4:]))
	h.Height = int32(le.Uint32(buf[8:]))
	h.Planes = le.Uint16(buf[12:])
	h.BitsPerPixel = le.Uint16(buf[14:])
	h.Compression = le.Uint32(buf[16:])
	h.ImageSize = le.Uint32(buf[20:])
	h.XPixelsPerMeter = int32(le.Uint32(buf[24:]))
	h.YPixelsPerMeter = int32(le.Uint32(buf[28:]))
	h.ColorsUsed = le.Uint32(buf[32:])
	h.ColorsImportant = le.Uint32(buf[36:])
	return nil
}

// readHeaders reads and validates both headers from r.
func readHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader

	buf := make([]byte, FileHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fh, ih, readError(ErrFileHeaderRead, err)
	}
	_ = fh.UnmarshalBinary(buf)
	if fh.Signature != Signature {
		return fh, ih, fmt.Errorf("%w: %w: %q", ErrInvalidFormat, ErrInvalidSignature, fh.Signature[:])
	}

	buf = make([]byte, InfoHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fh, ih, readError(ErrInfoHeaderRead, err)
	}
	_ = ih.UnmarshalBinary(buf)
	if ih.BitsPerPixel != BitsPerPixel {
		return fh, ih, fmt.Errorf("%w: %w: %d", ErrInvalidFormat, ErrUnsupportedBitCount, ih.BitsPerPixel)
	}
	if ih.Width < 0 || ih.Height < 0 {
		return fh, ih, fmt.Errorf("%w: %w: %dx%d", ErrInvalidFormat, ErrInvalidDimensions, ih.Width, ih.Height)
	}

	return fh, ih, nil
}

// readError classifies a failed read: a short stream is a malformed bitmap,
// anything else means the source itself could not be read.
func readError(stage error, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidFormat, stage, err)
	}

	return fmt.Errorf("%w: %w: %v", ErrFileOpen, stage, err)
}
