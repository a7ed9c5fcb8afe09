package common

// Baseline JPEG codes unsigned 8-bit samples. DICOM frames tagged
// PixelRepresentation=1 hold two's complement samples instead; these helpers
// move them into and out of the unsigned range by adding or removing 128.

// SignedToUnsigned8 returns a copy of two's complement 8-bit samples shifted
// into [0, 255] (-128 becomes 0, 127 becomes 255)
func SignedToUnsigned8(pixelData []byte) []byte {
	out := make([]byte, len(pixelData))
	for i, b := range pixelData {
		out[i] = b ^ 0x80
	}
	return out
}

// UnsignedToSigned8 reverses SignedToUnsigned8. Flipping the top bit is its
// own inverse, so the same XOR undoes it.
func UnsignedToSigned8(pixelData []byte) []byte {
	return SignedToUnsigned8(pixelData)
}
