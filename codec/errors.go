package codec

import "errors"

var (
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter reports options of a type the codec does not accept
	ErrInvalidParameter = errors.New("invalid parameter")

	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidFrame reports a frame whose geometry does not match its pixels
	ErrInvalidFrame = errors.New("invalid frame")
)
