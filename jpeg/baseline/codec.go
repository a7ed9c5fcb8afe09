package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
)

var _ codec.Codec = (*BaselineCodec)(nil)

// BaselineCodec implements the external codec.Codec interface for JPEG
// Baseline (Process 1)
type BaselineCodec struct {
	transferSyntax *transfer.Syntax
	defaults       Options // Used when a call carries no parameters
}

// NewBaselineCodec creates a new JPEG Baseline codec with the given default
// quality (1-100) and the accurate forward DCT
func NewBaselineCodec(quality int) *BaselineCodec {
	return NewBaselineCodecWithOptions(Options{Quality: quality, Method: common.DCTAccurate})
}

// NewBaselineCodecWithOptions creates a JPEG Baseline codec whose defaults
// are opts
func NewBaselineCodecWithOptions(opts Options) *BaselineCodec {
	return &BaselineCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
		defaults:       opts,
	}
}

// Name returns the codec name
func (c *BaselineCodec) Name() string {
	return fmt.Sprintf("JPEG Baseline (Process 1, Quality %d, %s DCT)", c.defaults.Quality, c.defaults.Method)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *BaselineCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *BaselineCodec) GetDefaultParameters() codec.Parameters {
	return NewBaselineParameters().
		WithQuality(c.defaults.Quality).
		WithMethod(c.defaults.Method).
		WithRestartInterval(c.defaults.RestartInterval)
}

// parameters resolves typed or generic parameters into encoder options
func (c *BaselineCodec) parameters(parameters codec.Parameters) Options {
	bp, ok := parameters.(*JPEGBaselineParameters)
	if !ok {
		bp = c.GetDefaultParameters().(*JPEGBaselineParameters)
		if parameters != nil {
			// Generic parameters override the defaults by name
			for _, name := range []string{"quality", "method", "restartInterval"} {
				if v := parameters.GetParameter(name); v != nil {
					bp.SetParameter(name, v)
				}
			}
		}
	}

	bp.Validate()
	return bp.Options()
}

// Encode encodes pixel data to JPEG Baseline format
func (c *BaselineCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	if frameInfo.BitsAllocated != 8 || frameInfo.BitsStored > 8 {
		return fmt.Errorf("%w: BitsAllocated=%d BitsStored=%d (JPEG Baseline is 8-bit only)",
			common.ErrInvalidBitDepth, frameInfo.BitsAllocated, frameInfo.BitsStored)
	}

	opts := c.parameters(parameters)

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		// Signed samples are coded in the unsigned domain
		if frameInfo.PixelRepresentation == 1 {
			frameData = common.SignedToUnsigned8(frameData)
		}

		jpegData, err := EncodeWithOptions(
			frameData,
			int(frameInfo.Width),
			int(frameInfo.Height),
			int(frameInfo.SamplesPerPixel),
			opts,
		)
		if err != nil {
			return fmt.Errorf("JPEG Baseline encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(jpegData); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decodes JPEG Baseline data to uncompressed pixel data
func (c *BaselineCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		pixelData, width, height, components, err := Decode(frameData)
		if err != nil {
			return fmt.Errorf("JPEG Baseline decode failed for frame %d: %w", frameIndex, err)
		}

		if width != int(frameInfo.Width) || height != int(frameInfo.Height) {
			return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
				width, height, frameInfo.Width, frameInfo.Height)
		}

		if components != int(frameInfo.SamplesPerPixel) {
			return fmt.Errorf("decoded components (%d) don't match expected (%d)",
				components, frameInfo.SamplesPerPixel)
		}

		if frameInfo.PixelRepresentation == 1 {
			pixelData = common.UnsignedToSigned8(pixelData)
		}

		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the global registry
func RegisterBaselineCodec(quality int) {
	RegisterBaselineCodecWithOptions(Options{Quality: quality, Method: common.DCTAccurate})
}

// RegisterBaselineCodecWithOptions registers a JPEG Baseline codec with
// default options opts, replacing any codec registered for the transfer
// syntax
func RegisterBaselineCodecWithOptions(opts Options) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewBaselineCodecWithOptions(opts))
}

func init() {
	RegisterBaselineCodec(85)
}
