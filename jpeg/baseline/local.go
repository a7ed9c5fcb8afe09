package baseline

import (
	"fmt"

	"github.com/cocosip/go-jpeg-dct/codec"
)

// UID is the DICOM transfer syntax UID of JPEG Baseline (Process 1)
const UID = "1.2.840.10008.1.2.4.50"

// Codec adapts Encode and Decode to the project codec registry
type Codec struct{}

// NewCodec creates a new JPEG Baseline codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode compresses one frame. opts must be nil, for DefaultOptions, or
// *Options.
func (c *Codec) Encode(frame codec.Frame, opts codec.Options) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 0 && frame.BitDepth != 8 {
		return nil, fmt.Errorf("%w: %d-bit samples", codec.ErrUnsupportedFormat, frame.BitDepth)
	}

	o := DefaultOptions()
	if opts != nil {
		p, ok := opts.(*Options)
		if !ok {
			return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, opts)
		}
		o = *p
	}

	return EncodeWithOptions(frame.Pixels, frame.Width, frame.Height, frame.Components, o)
}

// Decode decompresses a codestream into an 8-bit frame
func (c *Codec) Decode(data []byte) (codec.Frame, error) {
	pixels, width, height, components, err := Decode(data)
	if err != nil {
		return codec.Frame{}, err
	}
	return codec.Frame{
		Pixels:     pixels,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8,
	}, nil
}

func (c *Codec) UID() string {
	return UID
}

func (c *Codec) Name() string {
	return "jpeg-baseline"
}

func init() {
	codec.Register(NewCodec())
}
