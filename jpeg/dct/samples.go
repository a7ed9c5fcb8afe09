package dct

// CenterSample is the level shift between unsigned 8-bit samples and the
// signed values the transforms work on
const CenterSample = 128

// storeSamples packs eight rows of signed results to bytes and writes them
// into output at column col. Rows are packed two at a time with signed
// saturation, then biased by CenterSample with 8-bit wraparound, which maps
// [-128, 127] onto [0, 255].
func storeSamples(rows [8]Vec, output [][]byte, col int) {
	for i := 0; i < 8; i += 2 {
		packed := packSigned(rows[i], rows[i+1])
		top := output[i][col : col+BlockSize]
		bottom := output[i+1][col : col+BlockSize]
		for j := 0; j < BlockSize; j++ {
			top[j] = byte(packed[j]) + CenterSample
			bottom[j] = byte(packed[BlockSize+j]) + CenterSample
		}
	}
}

// LoadSamples reads the 8x8 patch of samples at column col of input[0]
// through input[7] into b, subtracting CenterSample from each. The result
// is ready for ForwardFast or ForwardAccurate.
func LoadSamples(input [][]byte, col int, b *Block) {
	for i := 0; i < BlockSize; i++ {
		row := input[i][col : col+BlockSize]
		for j, s := range row {
			b[i*BlockSize+j] = int16(s) - CenterSample
		}
	}
}
