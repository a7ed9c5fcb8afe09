package codec

import "fmt"

// Codec turns frames of 8-bit samples into a codestream and back. Codecs are
// looked up by name or by DICOM transfer syntax UID.
type Codec interface {
	Encode(frame Frame, opts Options) ([]byte, error)
	Decode(data []byte) (Frame, error)

	// UID returns the DICOM transfer syntax UID the codestream conforms to
	UID() string

	Name() string
}

// Frame is one image of interleaved samples
type Frame struct {
	Pixels     []byte
	Width      int
	Height     int
	Components int // 1 for grayscale, 3 for RGB
	BitDepth   int // 0 selects the codec's native depth
}

// Validate checks the frame geometry against its pixel buffer
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrame, f.Width, f.Height)
	}
	if f.Components < 1 {
		return fmt.Errorf("%w: %d components", ErrInvalidFrame, f.Components)
	}
	if need := f.Width * f.Height * f.Components; len(f.Pixels) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrInvalidFrame, len(f.Pixels), need)
	}
	return nil
}

// Options holds codec-specific encoding options. A nil Options selects the
// codec's defaults.
type Options interface {
	Validate() error
}
