package common

// JPEG marker constants
const (
	// Start of Image
	MarkerSOI = 0xFFD8

	// End of Image
	MarkerEOI = 0xFFD9

	// Start of Frame markers. Only SOF0 is decoded; the rest are recognised
	// so they can be rejected with ErrUnsupportedFormat.
	MarkerSOF0  = 0xFFC0 // Baseline DCT
	MarkerSOF1  = 0xFFC1 // Extended Sequential DCT
	MarkerSOF2  = 0xFFC2 // Progressive DCT
	MarkerSOF3  = 0xFFC3 // Lossless (Sequential)
	MarkerSOF5  = 0xFFC5
	MarkerSOF7  = 0xFFC7
	MarkerSOF9  = 0xFFC9
	MarkerSOF11 = 0xFFCB
	MarkerSOF13 = 0xFFCD
	MarkerSOF15 = 0xFFCF

	// Define Huffman Table
	MarkerDHT = 0xFFC4

	// Define Quantization Table
	MarkerDQT = 0xFFDB

	// Define Restart Interval
	MarkerDRI = 0xFFDD

	// Start of Scan
	MarkerSOS = 0xFFDA

	// Application segments
	MarkerAPP0  = 0xFFE0
	MarkerAPP15 = 0xFFEF

	// Comment
	MarkerCOM = 0xFFFE

	// Restart markers RST0..RST7
	MarkerRST0 = 0xFFD0
	MarkerRST7 = 0xFFD7
)

// IsSOF returns true if the marker is a Start of Frame marker
func IsSOF(marker uint16) bool {
	return (marker >= MarkerSOF0 && marker <= MarkerSOF3) ||
		(marker >= MarkerSOF5 && marker <= MarkerSOF7) ||
		(marker >= MarkerSOF9 && marker <= MarkerSOF11) ||
		(marker >= MarkerSOF13 && marker <= MarkerSOF15)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(marker uint16) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}

// RST returns the restart marker used after the n-th restart interval
func RST(n int) uint16 {
	return uint16(MarkerRST0 + n&7)
}

// HasLength returns true if the marker is followed by a length field
func HasLength(marker uint16) bool {
	// Markers without length: SOI, EOI, RSTn
	if marker == MarkerSOI || marker == MarkerEOI {
		return false
	}
	return !IsRST(marker)
}
