package bmpfilter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/bcn"
)

// TextureOptions configures DDS texture export.
type TextureOptions struct {
	// EncodeOptions are passed to the BCn encoder (quality, workers).
	EncodeOptions *bcn.EncodeOptions
	// Format is the payload format; zero value means BGRA8.
	Format bcn.Format
	// MaxMipMaps limits the mip chain; 0 means the full chain.
	MaxMipMaps int
}

func (o *TextureOptions) format() bcn.Format {
	if o == nil || o.Format == bcn.FormatUnknown {
		return bcn.FormatBGRA8
	}

	return o.Format
}

// WriteTexture writes img as a DDS texture file.
func WriteTexture(img *Image, path string, opts *TextureOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w: %q: %v", ErrFileOpen, ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := EncodeTexture(bw, img, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTexture, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteTexture, path, err)
	}

	return nil
}

// EncodeTexture writes img to w as a DDS stream: magic, header, then every
// mip level from largest to smallest.
func EncodeTexture(w io.Writer, img *Image, opts *TextureOptions) error {
	if err := checkSource(img); err != nil {
		return err
	}
	if img.width == 0 || img.height == 0 {
		return fmt.Errorf("%w: empty texture %dx%d", ErrInvalidParameter, img.width, img.height)
	}

	format := opts.format()
	levels, err := mipLevelCount(img.width, img.height)
	if err != nil {
		return err
	}
	if opts != nil && opts.MaxMipMaps > 0 {
		levels = min(levels, opts.MaxMipMaps)
	}

	var encOpts *bcn.EncodeOptions
	if opts != nil {
		encOpts = opts.EncodeOptions
	}

	mips := bcn.GenerateMipmaps(img.NRGBA(), false)
	if len(mips) > levels {
		mips = mips[:levels]
	}

	payloads := make([][]byte, len(mips))
	for i, mip := range mips {
		data, _, _, err := bcn.EncodeImageWithOptions(mip, format, encOpts)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeTexture, i, err)
		}
		want := textureDataLength(format, mipDimension(img.width, i), mipDimension(img.height, i))
		if len(data) != want {
			return fmt.Errorf("%w: mipmap %d: expected %d bytes, got %d", ErrEncodeTexture, i, want, len(data))
		}
		payloads[i] = data
	}

	w32, err := u32FromInt(img.width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(img.height)
	if err != nil {
		return err
	}
	n32, err := u32FromInt(len(payloads))
	if err != nil {
		return err
	}

	header, err := makeDDSHeader(w32, h32, n32, format)
	if err != nil {
		return err
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: magic: %v", ErrWriteTexture, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrWriteTexture, err)
	}
	for i, p := range payloads {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteTexture, i, err)
		}
	}

	return nil
}

// ReadTexture reads the largest mip level of a DDS texture file.
func ReadTexture(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFileOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeTexture(bufio.NewReader(f))
}

// DecodeTexture decodes the largest mip level of a DDS stream.
func DecodeTexture(r io.Reader) (*Image, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidFormat, ErrDDSHeaderRead, err)
	}
	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: DX10: %v", ErrInvalidFormat, ErrDDSHeaderRead, err)
	}

	format := detectFormat(header, dx10)
	width, height := int(header.Width), int(header.Height)
	if _, err := pixelCount(width, height); err != nil {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrInvalidFormat, err, width, height)
	}
	size := textureDataLength(format, width, height)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidFormat, ErrUnknownTextureFormat, format)
	}

	data, err := readFull(r, int64(size))
	if err != nil {
		return nil, readError(ErrTextureDataRead, err)
	}

	decoded, err := bcn.DecodeImageWithOptions(data, width, height, format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeTexture, err)
	}

	return FromImage(decoded)
}
