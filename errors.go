package bmpfilter

import "errors"

var (
	// ErrFileOpen indicates the source or destination could not be opened or read.
	ErrFileOpen = errors.New("file open failed")
	// ErrInvalidFormat indicates data that is not a supported bitmap.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrIndexOutOfBounds indicates pixel access outside the image.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrInvalidParameter indicates a filter or image parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidDimensions indicates negative image dimensions.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidSignature indicates the file does not start with "BM".
	ErrInvalidSignature = errors.New("signature is not BM")
	// ErrUnsupportedBitCount indicates a bit depth other than 24.
	ErrUnsupportedBitCount = errors.New("unsupported bits per pixel")
	// ErrFileHeaderRead indicates the file header could not be read.
	ErrFileHeaderRead = errors.New("reading file header failed")
	// ErrInfoHeaderRead indicates the info header could not be read.
	ErrInfoHeaderRead = errors.New("reading info header failed")
	// ErrPixelDataRead indicates the pixel rows could not be read.
	ErrPixelDataRead = errors.New("reading pixel data failed")
	// ErrCreateFile indicates output file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrWriteHeader indicates writing the bitmap headers failed.
	ErrWriteHeader = errors.New("writing header failed")
	// ErrWritePixelData indicates writing the pixel rows failed.
	ErrWritePixelData = errors.New("writing pixel data failed")
	// ErrCompressStream indicates the LZ4 frame could not be written.
	ErrCompressStream = errors.New("LZ4 compression failed")

	// ErrUnknownTextureFormat indicates an unsupported DDS pixel format.
	ErrUnknownTextureFormat = errors.New("unknown texture format")
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrTextureDataRead indicates DDS payload read failed.
	ErrTextureDataRead = errors.New("reading texture data failed")
	// ErrEncodeTexture indicates encoding a mip level failed.
	ErrEncodeTexture = errors.New("encode texture failed")
	// ErrDecodeTexture indicates decoding the texture payload failed.
	ErrDecodeTexture = errors.New("decode texture failed")
	// ErrWriteTexture indicates writing the DDS stream failed.
	ErrWriteTexture = errors.New("writing texture failed")
)
