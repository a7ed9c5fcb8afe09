package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// TestPixelData is an in-memory imagetypes.PixelData for codec tests and
// examples
type TestPixelData struct {
	frames    [][]byte
	frameInfo *imagetypes.FrameInfo
}

// NewTestPixelData creates pixel data described by frameInfo holding frames
func NewTestPixelData(frameInfo *imagetypes.FrameInfo, frames ...[]byte) *TestPixelData {
	return &TestPixelData{frames: frames, frameInfo: frameInfo}
}

// GetFrame returns frame frameIndex (0-based)
func (p *TestPixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, fmt.Errorf("frame %d out of range [0,%d)", frameIndex, len(p.frames))
	}
	return p.frames[frameIndex], nil
}

// AddFrame appends a frame
func (p *TestPixelData) AddFrame(frameData []byte) error {
	p.frames = append(p.frames, frameData)
	return nil
}

func (p *TestPixelData) FrameCount() int {
	return len(p.frames)
}

func (p *TestPixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

// IsEncapsulated reports false; frames are stored as given
func (p *TestPixelData) IsEncapsulated() bool {
	return false
}
