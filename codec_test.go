package bmpfilter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = RGB(1, 0, 0)
	green = RGB(0, 1, 0)
	blue  = RGB(0, 0, 1)
)

// quad is the 2x2 image red, green / blue, white.
func quad(t *testing.T) *Image {
	t.Helper()

	return newTestImage(t, 2, 2, func(x, y int) Color {
		return [2][2]Color{{red, green}, {blue, White}}[y][x]
	})
}

func encodeBytes(t *testing.T, img *Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	return buf.Bytes()
}

func TestWriteReadQuad(t *testing.T) {
	t.Parallel()

	img := quad(t)
	path := filepath.Join(t.TempDir(), "quad.bmp")
	if err := Write(img, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	assertPixels(t, got, img, 0)
}

func TestEncodeLayout(t *testing.T) {
	t.Parallel()

	// 3 pixels per row = 9 bytes + 3 padding
	img := newTestImage(t, 3, 2, func(x, y int) Color {
		if y == 0 {
			return red
		}
		return blue
	})
	data := encodeBytes(t, img)

	if len(data) != 54+12*2 {
		t.Fatalf("len = %d, want %d", len(data), 54+24)
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"file size", le.Uint32(data[2:]), 78},
		{"reserved", le.Uint32(data[6:]), 0},
		{"data offset", le.Uint32(data[10:]), 54},
		{"header size", le.Uint32(data[14:]), 40},
		{"width", le.Uint32(data[18:]), 3},
		{"height", le.Uint32(data[22:]), 2},
		{"planes", uint32(le.Uint16(data[26:])), 1},
		{"bpp", uint32(le.Uint16(data[28:])), 24},
		{"compression", le.Uint32(data[30:]), 0},
		{"image size", le.Uint32(data[34:]), 0},
		{"colors important", le.Uint32(data[50:]), 0},
	}
	if string(data[:2]) != "BM" {
		t.Fatalf("signature = %q", data[:2])
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	// bottom row (blue) comes first, stored B,G,R, then zero padding
	wantRows := []byte{
		255, 0, 0, 255, 0, 0, 255, 0, 0, 0, 0, 0,
		0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0, 0,
	}
	if !bytes.Equal(data[54:], wantRows) {
		t.Fatalf("pixel rows = %v, want %v", data[54:], wantRows)
	}
}

func TestRowPadding(t *testing.T) {
	t.Parallel()

	for width, want := range map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 0, 5: 1, 7: 3, 8: 0} {
		if got := rowPadding(width); got != want {
			t.Errorf("rowPadding(%d) = %d, want %d", width, got, want)
		}
	}
}

func TestChannelToByteTruncates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want byte
	}{
		{0, 0},
		{1, 255},
		{0.999, 254},
		{0.5, 127},
		{1.5, 126},  // 382 wraps
		{-0.5, 129}, // -127 wraps
	}
	for _, tc := range tests {
		if got := channelToByte(tc.in); got != tc.want {
			t.Errorf("channelToByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRoundTripWithinQuantization(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]int{{1, 1}, {5, 3}, {4, 4}, {17, 9}} {
		img := newTestImage(t, size[0], size[1], func(x, y int) Color {
			return Color{
				R: float32(x+1) / float32(size[0]+1),
				G: float32(y) / float32(size[1]),
				B: float32((x*7+y*3)%10) / 9,
			}
		})

		got, err := Decode(bytes.NewReader(encodeBytes(t, img)))
		if err != nil {
			t.Fatalf("Decode %v: %v", size, err)
		}
		assertPixels(t, got, img, 1.0/255+1e-6)
	}
}

func TestEncodeMatchesReferenceDecoder(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, 7, 5, gradient)
	ref, err := bmp.Decode(bytes.NewReader(encodeBytes(t, img)))
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if ref.Bounds().Dx() != 7 || ref.Bounds().Dy() != 5 {
		t.Fatalf("reference size = %v", ref.Bounds())
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			c := mustPixel(t, img, x, y)
			want := color.NRGBA{R: channelToByte(c.R), G: channelToByte(c.G), B: channelToByte(c.B), A: 255}
			got := color.NRGBAModel.Convert(ref.At(x, y)).(color.NRGBA)
			if got != want {
				t.Fatalf("(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestGrayscaleExportHasEqualChannels(t *testing.T) {
	t.Parallel()

	gray, err := Grayscale{}.Apply(quad(t))
	if err != nil {
		t.Fatalf("Grayscale: %v", err)
	}

	data := encodeBytes(t, gray)
	stride := rowStride(2)
	for row := 0; row < 2; row++ {
		for x := 0; x < 2; x++ {
			p := data[PixelDataOffset+row*stride+x*3:]
			if p[0] != p[1] || p[1] != p[2] {
				t.Fatalf("row %d pixel %d = %v, want equal channels", row, x, p[:3])
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	valid := encodeBytes(t, quad(t))

	withBPP := func(bpp uint16) []byte {
		data := bytes.Clone(valid)
		binary.LittleEndian.PutUint16(data[28:], bpp)
		return data
	}
	negativeWidth := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(negativeWidth[18:], 0xffffffff)

	// headerOnly declares width x height but carries no pixel rows.
	headerOnly := func(width, height uint32) []byte {
		data := bytes.Clone(valid[:PixelDataOffset])
		binary.LittleEndian.PutUint32(data[18:], width)
		binary.LittleEndian.PutUint32(data[22:], height)
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr []error
	}{
		{name: "empty", data: nil, wantErr: []error{ErrInvalidFormat, ErrFileHeaderRead}},
		{name: "signature", data: append([]byte("XX"), valid[2:]...), wantErr: []error{ErrInvalidFormat, ErrInvalidSignature}},
		{name: "bpp-32", data: withBPP(32), wantErr: []error{ErrInvalidFormat, ErrUnsupportedBitCount}},
		{name: "bpp-8", data: withBPP(8), wantErr: []error{ErrInvalidFormat, ErrUnsupportedBitCount}},
		{name: "short-info-header", data: valid[:30], wantErr: []error{ErrInvalidFormat, ErrInfoHeaderRead}},
		{name: "truncated-pixels", data: valid[:len(valid)-3], wantErr: []error{ErrInvalidFormat, ErrPixelDataRead}},
		{name: "negative-width", data: negativeWidth, wantErr: []error{ErrInvalidFormat, ErrInvalidDimensions}},
		{name: "header-only-huge", data: headerOnly(30000, 30000), wantErr: []error{ErrInvalidFormat, ErrPixelDataRead}},
		{name: "one-row-of-many", data: append(headerOnly(4000, 4000), make([]byte, rowStride(4000))...), wantErr: []error{ErrInvalidFormat, ErrPixelDataRead}},
		{name: "pixel-count-overflow", data: headerOnly(65536, 65536), wantErr: []error{ErrInvalidFormat, ErrSizeOverflow}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(bytes.NewReader(tc.data))
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v, got %v", want, err)
				}
			}
		})
	}
}

func TestDecodeHonorsDataOffset(t *testing.T) {
	t.Parallel()

	img := quad(t)
	data := encodeBytes(t, img)

	// move the rows 16 bytes further and point the header at them
	shifted := append(bytes.Clone(data[:PixelDataOffset]), make([]byte, 16)...)
	shifted = append(shifted, data[PixelDataOffset:]...)
	binary.LittleEndian.PutUint32(shifted[10:], PixelDataOffset+16)

	got, err := Decode(bytes.NewReader(shifted))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertPixels(t, got, img, 0)
}

func TestFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "missing.bmp")); !errors.Is(err, ErrFileOpen) {
		t.Fatalf("Read missing: expected ErrFileOpen, got %v", err)
	}
	if _, err := ReadConfig(filepath.Join(dir, "missing.bmp")); !errors.Is(err, ErrFileOpen) {
		t.Fatalf("ReadConfig missing: expected ErrFileOpen, got %v", err)
	}

	err := Write(quad(t), filepath.Join(dir, "no", "such", "dir.bmp"))
	if !errors.Is(err, ErrFileOpen) || !errors.Is(err, ErrCreateFile) {
		t.Fatalf("Write: expected ErrFileOpen and ErrCreateFile, got %v", err)
	}

	notBMP := filepath.Join(dir, "text.bmp")
	if err := os.WriteFile(notBMP, []byte("definitely not a bitmap header"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Read(notBMP); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Read text: expected ErrInvalidFormat, got %v", err)
	}
}

func TestReadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.bmp")
	if err := Write(newTestImage(t, 9, 4, gradient), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Width != 9 || cfg.Height != 4 {
		t.Fatalf("config = %dx%d, want 9x4", cfg.Width, cfg.Height)
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, 64, 48, gradient)
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.bmp")
	packed := filepath.Join(dir, "packed.bmp.lz4")

	if err := Write(img, plain); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := WriteWithOptions(img, packed, &WriteOptions{Compress: true}); err != nil {
		t.Fatalf("WriteWithOptions: %v", err)
	}

	raw, err := os.ReadFile(packed)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(raw, lz4FrameMagic) {
		t.Fatalf("compressed file does not start with the LZ4 frame magic: % x", raw[:4])
	}

	want, err := Read(plain)
	if err != nil {
		t.Fatalf("Read plain: %v", err)
	}
	got, err := Read(packed)
	if err != nil {
		t.Fatalf("Read packed: %v", err)
	}
	assertPixels(t, got, want, 0)

	cfg, err := ReadConfig(packed)
	if err != nil {
		t.Fatalf("ReadConfig packed: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Fatalf("config = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEncodeEmptyImage(t *testing.T) {
	t.Parallel()

	img, err := New(0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := Decode(bytes.NewReader(encodeBytes(t, img)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Width() != 0 || got.Height() != 0 {
		t.Fatalf("size = %dx%d", got.Width(), got.Height())
	}
}

func TestEncodeNilImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes for a nil image", buf.Len())
	}
}
