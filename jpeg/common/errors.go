package common

import "errors"

// Common errors
var (
	ErrInvalidMarker     = errors.New("invalid JPEG marker")
	ErrInvalidSOI        = errors.New("missing SOI marker")
	ErrInvalidSOF        = errors.New("invalid Start of Frame")
	ErrInvalidDHT        = errors.New("invalid Huffman table")
	ErrInvalidDQT        = errors.New("invalid Quantization table")
	ErrInvalidSOS        = errors.New("invalid Start of Scan")
	ErrInvalidDRI        = errors.New("invalid restart interval")
	ErrInvalidRestart    = errors.New("missing or misplaced restart marker")
	ErrUnsupportedFormat = errors.New("unsupported JPEG format")
	ErrInvalidData       = errors.New("invalid JPEG data")
	ErrUnexpectedEOF     = errors.New("unexpected end of file")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidComponents = errors.New("invalid number of components")
	ErrInvalidBitDepth   = errors.New("invalid bit depth")
	ErrInvalidQuality    = errors.New("invalid quality factor")
	ErrInvalidMethod     = errors.New("invalid DCT method")
	ErrHuffmanDecode     = errors.New("Huffman decode error")
	ErrHuffmanEncode     = errors.New("no Huffman code for symbol")
	ErrBufferTooSmall    = errors.New("buffer too small")
	ErrCoefficientRange  = errors.New("coefficient out of baseline range")
	ErrImageTooLarge     = errors.New("image too large")
)
