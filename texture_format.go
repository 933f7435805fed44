package bmpfilter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/woozymasta/bcn"
)

// textureFormat describes one DDS payload format this package can write and
// how it is recognized when read back.
type textureFormat struct {
	name   string
	format bcn.Format
	// dxgi is the DXGI_FORMAT value used by DX10 extended headers.
	dxgi uint32
	// fourCCs are the legacy pixel format codes; the first one is written.
	// Empty for uncompressed formats.
	fourCCs []string
	// blockBytes is the size of one 4x4 block; 0 for uncompressed formats.
	blockBytes int
	// rgbMasks are the R, G, B bit masks of uncompressed 32-bit formats.
	rgbMasks [3]uint32
}

var textureFormats = []textureFormat{
	{name: "bgra8", format: bcn.FormatBGRA8, dxgi: 87, rgbMasks: [3]uint32{0x00ff0000, 0x0000ff00, 0x000000ff}},
	{name: "rgba8", format: bcn.FormatRGBA8, dxgi: 28, rgbMasks: [3]uint32{0x000000ff, 0x0000ff00, 0x00ff0000}},
	{name: "dxt1", format: bcn.FormatDXT1, dxgi: 71, fourCCs: []string{"DXT1"}, blockBytes: 8},
	{name: "dxt3", format: bcn.FormatDXT3, dxgi: 74, fourCCs: []string{"DXT3", "DXT2"}, blockBytes: 16},
	{name: "dxt5", format: bcn.FormatDXT5, dxgi: 77, fourCCs: []string{"DXT5", "DXT4"}, blockBytes: 16},
	{name: "bc4", format: bcn.FormatBC4, dxgi: 80, fourCCs: []string{"ATI1", "BC4U", "BC4S"}, blockBytes: 8},
	{name: "bc5", format: bcn.FormatBC5, dxgi: 83, fourCCs: []string{"ATI2", "BC5U", "BC5S"}, blockBytes: 16},
}

func lookupFormat(match func(textureFormat) bool) (textureFormat, bool) {
	return lo.Find(textureFormats, match)
}

func (t textureFormat) compressed() bool { return t.blockBytes > 0 }

// TextureFormatNames lists the names accepted by ParseTextureFormat, sorted.
func TextureFormatNames() []string {
	names := lo.Map(textureFormats, func(t textureFormat, _ int) string { return t.name })
	slices.Sort(names)
	return names
}

// ParseTextureFormat resolves a case-insensitive texture format name.
func ParseTextureFormat(name string) (bcn.Format, error) {
	t, ok := lookupFormat(func(t textureFormat) bool { return strings.EqualFold(t.name, name) })
	if !ok {
		return bcn.FormatUnknown, fmt.Errorf("%w: %q (want one of %s)",
			ErrUnknownTextureFormat, name, strings.Join(TextureFormatNames(), ", "))
	}

	return t.format, nil
}

// detectFormat identifies the payload format of a DDS header. Formats not in
// textureFormats come back as bcn.FormatUnknown.
func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) bcn.Format {
	var (
		t  textureFormat
		ok bool
	)

	pf := header.PixelFormat
	switch {
	case dx10 != nil:
		t, ok = lookupFormat(func(t textureFormat) bool { return t.dxgi == dx10.DXGIFormat })
	case pf.Flags&bcn.DDSPFFourCC != 0:
		code := fourCCString(pf.FourCC)
		t, ok = lookupFormat(func(t textureFormat) bool { return lo.Contains(t.fourCCs, code) })
	case pf.Flags&bcn.DDSPFRGB != 0 && pf.RGBBitCount == 32:
		masks := [3]uint32{pf.RBitMask, pf.GBitMask, pf.BBitMask}
		t, ok = lookupFormat(func(t textureFormat) bool { return !t.compressed() && t.rgbMasks == masks })
	}
	if !ok {
		return bcn.FormatUnknown
	}

	return t.format
}

func fourCC(code string) uint32 {
	return uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// textureDataLength returns the payload size of one level, or -1 for unknown formats.
func textureDataLength(format bcn.Format, width, height int) int {
	t, ok := lookupFormat(func(t textureFormat) bool { return t.format == format })
	switch {
	case !ok:
		return -1
	case t.compressed():
		return ((width + 3) / 4) * ((height + 3) / 4) * t.blockBytes
	default:
		return width * height * 4
	}
}

// makeDDSHeader builds a legacy (non-DX10) DDS header for a texture with
// mipMapCount levels.
func makeDDSHeader(width, height, mipMapCount uint32, format bcn.Format) (*bcn.DDSHeader, error) {
	t, ok := lookupFormat(func(t textureFormat) bool { return t.format == format })
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTextureFormat, format)
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        bcn.DDSCapsTexture,
	}
	if mipMapCount > 1 {
		hdr.Flags |= bcn.DDSFlagMipmapCount
		hdr.Caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	pf := &hdr.PixelFormat
	pf.Size = bcn.DDSPixelFormatSize
	if t.compressed() {
		hdr.Flags |= bcn.DDSFlagLinearSize
		pf.Flags = bcn.DDSPFFourCC
		pf.FourCC = fourCC(t.fourCCs[0])
		return hdr, nil
	}

	hdr.Flags |= bcn.DDSFlagPitch
	hdr.PitchOrLinearSize = width * 4
	pf.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
	pf.RGBBitCount = 32
	pf.RBitMask, pf.GBitMask, pf.BBitMask = t.rgbMasks[0], t.rgbMasks[1], t.rgbMasks[2]
	pf.ABitMask = 0xff000000

	return hdr, nil
}
