package baseline

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
	"github.com/cocosip/go-jpeg-dct/jpeg/dct"
)

// Options controls JPEG Baseline encoding
type Options struct {
	// Quality is the IJG quality factor (1-100)
	Quality int
	// Method selects the forward transform. The fast transform is used only
	// up to quality 95; above that its integer divisors round too coarsely
	// and the encoder uses the accurate one
	Method common.DCTMethod
	// RestartInterval is the number of MCUs between restart markers,
	// 0 to disable them
	RestartInterval int
}

// fastMaxQuality is the highest quality coded with the fast transform
const fastMaxQuality = 95

// DefaultOptions returns quality 85, the accurate transform and no restart
// markers
func DefaultOptions() Options {
	return Options{Quality: 85, Method: common.DCTAccurate}
}

// Validate checks the options
func (o *Options) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("%w: %d", common.ErrInvalidQuality, o.Quality)
	}
	if o.Method != common.DCTAccurate && o.Method != common.DCTFast {
		return fmt.Errorf("%w: %v", common.ErrInvalidMethod, o.Method)
	}
	if o.RestartInterval < 0 || o.RestartInterval > 0xFFFF {
		return fmt.Errorf("%w: %d", common.ErrInvalidDRI, o.RestartInterval)
	}
	return nil
}

// Encoder represents a JPEG Baseline encoder
type Encoder struct {
	width      int
	height     int
	components int
	opts       Options

	forward  func(*dct.Block)
	qtables  [2][64]int32
	divisors [2][64]int32
	// Accurate-transform divisors for blocks too wide for the fast one
	wideDivisors [2][64]int32
	dcTables [2]*common.HuffmanTable
	acTables [2]*common.HuffmanTable
	dcCodes  [2][]common.HuffmanCode
	acCodes  [2][]common.HuffmanCode

	// Sample planes padded to whole blocks by edge replication
	planes [][][]byte
}

// Encode encodes pixel data to JPEG Baseline format with the accurate
// transform
// components: 1 for grayscale, 3 for RGB
// quality: 1-100, where 100 is best quality
func Encode(pixelData []byte, width, height, components, quality int) ([]byte, error) {
	opts := DefaultOptions()
	opts.Quality = quality
	return EncodeWithOptions(pixelData, width, height, components, opts)
}

// EncodeWithOptions encodes pixel data to JPEG Baseline format
func EncodeWithOptions(pixelData []byte, width, height, components int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("%w: %dx%d", common.ErrInvalidDimensions, width, height)
	}

	if components != 1 && components != 3 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidComponents, components)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if len(pixelData) < width*height*components {
		return nil, fmt.Errorf("%w: have %d bytes, need %d",
			common.ErrBufferTooSmall, len(pixelData), width*height*components)
	}

	if opts.Method == common.DCTFast && opts.Quality > fastMaxQuality {
		opts.Method = common.DCTAccurate
	}

	enc := &Encoder{
		width:      width,
		height:     height,
		components: components,
		opts:       opts,
		forward:    opts.Method.Forward(),
	}

	enc.qtables[0] = common.ScaleQuantTable(common.DefaultLuminanceQuantTable, opts.Quality)
	enc.qtables[1] = common.ScaleQuantTable(common.DefaultChrominanceQuantTable, opts.Quality)
	for i := range enc.qtables {
		enc.divisors[i] = common.ForwardDivisors(&enc.qtables[i], opts.Method)
		enc.wideDivisors[i] = common.ForwardDivisors(&enc.qtables[i], common.DCTAccurate)
	}

	enc.dcTables[0] = common.BuildStandardHuffmanTable(
		common.StandardDCLuminanceBits,
		common.StandardDCLuminanceValues,
	)
	enc.acTables[0] = common.BuildStandardHuffmanTable(
		common.StandardACLuminanceBits,
		common.StandardACLuminanceValues,
	)
	enc.dcTables[1] = common.BuildStandardHuffmanTable(
		common.StandardDCChrominanceBits,
		common.StandardDCChrominanceValues,
	)
	enc.acTables[1] = common.BuildStandardHuffmanTable(
		common.StandardACChrominanceBits,
		common.StandardACChrominanceValues,
	)
	for i := range enc.dcTables {
		enc.dcCodes[i] = common.BuildHuffmanCodes(enc.dcTables[i])
		enc.acCodes[i] = common.BuildHuffmanCodes(enc.acTables[i])
	}

	enc.buildPlanes(pixelData)

	var buf bytes.Buffer
	writer := common.NewWriter(&buf)

	if err := writer.WriteMarker(common.MarkerSOI); err != nil {
		return nil, err
	}
	if err := enc.writeDQT(writer); err != nil {
		return nil, err
	}
	if err := enc.writeSOF0(writer); err != nil {
		return nil, err
	}
	if err := enc.writeDHT(writer); err != nil {
		return nil, err
	}
	if err := enc.writeDRI(writer); err != nil {
		return nil, err
	}
	if err := enc.writeSOS(writer); err != nil {
		return nil, err
	}
	if err := writer.WriteMarker(common.MarkerEOI); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// tableIndex returns the quantization and Huffman table set of component c
func tableIndex(c int) int {
	if c == 0 {
		return 0
	}
	return 1
}

// buildPlanes splits the pixels into one plane per component (YCbCr for
// color input), padded to whole blocks by repeating the last column and row
func (enc *Encoder) buildPlanes(pixelData []byte) {
	paddedW := common.DivCeil(enc.width, dct.BlockSize) * dct.BlockSize
	paddedH := common.DivCeil(enc.height, dct.BlockSize) * dct.BlockSize

	enc.planes = make([][][]byte, enc.components)
	for c := range enc.planes {
		buf := make([]byte, paddedW*paddedH)
		rows := make([][]byte, paddedH)
		for y := range rows {
			rows[y] = buf[y*paddedW : (y+1)*paddedW]
		}
		enc.planes[c] = rows
	}

	for y := 0; y < enc.height; y++ {
		for x := 0; x < enc.width; x++ {
			if enc.components == 1 {
				enc.planes[0][y][x] = pixelData[y*enc.width+x]
				continue
			}
			offset := (y*enc.width + x) * 3
			yy, cb, cr := rgbToYCbCr(pixelData[offset], pixelData[offset+1], pixelData[offset+2])
			enc.planes[0][y][x] = yy
			enc.planes[1][y][x] = cb
			enc.planes[2][y][x] = cr
		}
	}

	for _, rows := range enc.planes {
		for y := 0; y < paddedH; y++ {
			row := rows[y]
			if y >= enc.height {
				copy(row, rows[enc.height-1])
				continue
			}
			for x := enc.width; x < paddedW; x++ {
				row[x] = row[enc.width-1]
			}
		}
	}
}

// rgbToYCbCr converts one RGB pixel to full-range YCbCr
func rgbToYCbCr(r8, g8, b8 byte) (byte, byte, byte) {
	r, g, b := int(r8), int(g8), int(b8)

	yy := (19595*r + 38470*g + 7471*b + 32768) >> 16
	cb := (-11056*r - 21712*g + 32768*b + 8421376) >> 16
	cr := (32768*r - 27440*g - 5328*b + 8421376) >> 16

	return byte(common.Clamp(yy, 0, 255)),
		byte(common.Clamp(cb, 0, 255)),
		byte(common.Clamp(cr, 0, 255))
}

// writeDQT writes Define Quantization Table segments
func (enc *Encoder) writeDQT(writer *common.Writer) error {
	numTables := 1
	if enc.components == 3 {
		numTables = 2
	}

	for i := 0; i < numTables; i++ {
		data := make([]byte, 1+64)
		data[0] = byte(i) // Precision=0 (8-bit), Table ID=i

		for j := 0; j < 64; j++ {
			data[1+j] = byte(enc.qtables[i][common.ZigZag[j]])
		}

		if err := writer.WriteSegment(common.MarkerDQT, data); err != nil {
			return err
		}
	}

	return nil
}

// writeSOF0 writes Start of Frame (Baseline DCT), 1x1 sampling on every
// component
func (enc *Encoder) writeSOF0(writer *common.Writer) error {
	data := make([]byte, 6+enc.components*3)

	data[0] = 8 // Precision: 8 bits
	data[1] = byte(enc.height >> 8)
	data[2] = byte(enc.height)
	data[3] = byte(enc.width >> 8)
	data[4] = byte(enc.width)
	data[5] = byte(enc.components)

	for c := 0; c < enc.components; c++ {
		data[6+c*3] = byte(c + 1)         // Component ID
		data[7+c*3] = 0x11                // Sampling factors: 1x1
		data[8+c*3] = byte(tableIndex(c)) // Quantization table
	}

	return writer.WriteSegment(common.MarkerSOF0, data)
}

// writeDHT writes all Huffman tables in one Define Huffman Table segment
func (enc *Encoder) writeDHT(writer *common.Writer) error {
	numTables := 1
	if enc.components == 3 {
		numTables = 2
	}

	var defs []common.HuffmanTableDef
	for i := 0; i < numTables; i++ {
		defs = append(defs,
			common.HuffmanTableDef{Class: 0, ID: byte(i), Table: enc.dcTables[i]},
			common.HuffmanTableDef{Class: 1, ID: byte(i), Table: enc.acTables[i]},
		)
	}
	return common.WriteHuffmanTables(writer, defs...)
}

// writeDRI writes Define Restart Interval when restart markers are enabled
func (enc *Encoder) writeDRI(writer *common.Writer) error {
	if enc.opts.RestartInterval == 0 {
		return nil
	}
	ri := enc.opts.RestartInterval
	return writer.WriteSegment(common.MarkerDRI, []byte{byte(ri >> 8), byte(ri)})
}

// writeSOS writes Start of Scan and scan data
func (enc *Encoder) writeSOS(writer *common.Writer) error {
	data := make([]byte, 1+enc.components*2+3)
	data[0] = byte(enc.components)

	for c := 0; c < enc.components; c++ {
		t := byte(tableIndex(c))
		data[1+c*2] = byte(c + 1) // Component ID
		data[2+c*2] = t<<4 | t    // DC and AC table selectors
	}

	data[1+enc.components*2] = 0  // Start of spectral selection
	data[2+enc.components*2] = 63 // End of spectral selection
	data[3+enc.components*2] = 0  // Successive approximation

	if err := writer.WriteSegment(common.MarkerSOS, data); err != nil {
		return err
	}

	return enc.encodeScan(writer)
}

// encodeScan encodes every MCU of the interleaved scan. With 1x1 sampling
// an MCU is one block from each component.
func (enc *Encoder) encodeScan(writer *common.Writer) error {
	var scanBuf bytes.Buffer
	huffEnc := common.NewHuffmanEncoder(&scanBuf)

	blocksWide := common.DivCeil(enc.width, dct.BlockSize)
	blocksHigh := common.DivCeil(enc.height, dct.BlockSize)
	total := blocksWide * blocksHigh

	dcPred := make([]int, enc.components)
	var block dct.Block
	restarts := 0

	for mcu := 0; mcu < total; mcu++ {
		if ri := enc.opts.RestartInterval; ri > 0 && mcu > 0 && mcu%ri == 0 {
			if err := huffEnc.Restart(restarts); err != nil {
				return err
			}
			restarts++
			clear(dcPred)
		}

		by, bx := mcu/blocksWide, mcu%blocksWide
		for c, rows := range enc.planes {
			t := tableIndex(c)
			dct.LoadSamples(rows[by*dct.BlockSize:], bx*dct.BlockSize, &block)
			enc.transform(&block, t)
			if err := enc.encodeBlock(huffEnc, &block, &dcPred[c], t); err != nil {
				return err
			}
		}
	}

	if err := huffEnc.Flush(); err != nil {
		return err
	}

	_, err := writer.Write(scanBuf.Bytes())
	return err
}

// transform runs the forward DCT and quantizes. Under the fast method a block
// whose spread would wrap the 16-bit intermediates goes through the accurate
// transform instead; both produce coefficients on the same scale once
// quantized.
func (enc *Encoder) transform(block *dct.Block, t int) {
	if enc.opts.Method == common.DCTFast && !dct.FitsFast(block) {
		dct.ForwardAccurate(block)
		common.Quantize(block, &enc.wideDivisors[t])
		return
	}
	enc.forward(block)
	common.Quantize(block, &enc.divisors[t])
}

// Baseline limits on coefficient magnitude categories
const (
	maxDCCategory = 11
	maxACCategory = 10
)

// encodeBlock Huffman codes one block of quantized coefficients
func (enc *Encoder) encodeBlock(huffEnc *common.HuffmanEncoder, coef *dct.Block, dcPred *int, tableIdx int) error {
	// DC coefficient as a difference from the previous block
	dcDiff := int(coef[0]) - *dcPred
	*dcPred = int(coef[0])

	cat, bits := common.EncodeCategory(dcDiff)
	if cat > maxDCCategory {
		return fmt.Errorf("%w: DC difference %d", common.ErrCoefficientRange, dcDiff)
	}
	if err := huffEnc.Encode(enc.dcCodes[tableIdx], byte(cat)); err != nil {
		return fmt.Errorf("DC category %d: %w", cat, err)
	}
	if err := huffEnc.WriteBits(bits, cat); err != nil {
		return err
	}

	// AC coefficients in zig-zag order as (run, size) pairs
	acCode := enc.acCodes[tableIdx]
	zeroRun := 0

	for k := 1; k < 64; k++ {
		val := int(coef[common.ZigZag[k]])

		if val == 0 {
			zeroRun++
			continue
		}

		for zeroRun >= 16 {
			// ZRL: 16 zeros
			if err := huffEnc.Encode(acCode, 0xF0); err != nil {
				return err
			}
			zeroRun -= 16
		}

		cat, bits := common.EncodeCategory(val)
		if cat > maxACCategory {
			return fmt.Errorf("%w: AC coefficient %d", common.ErrCoefficientRange, val)
		}
		rs := byte((zeroRun << 4) | cat)
		if err := huffEnc.Encode(acCode, rs); err != nil {
			return fmt.Errorf("AC symbol 0x%02X: %w", rs, err)
		}
		if err := huffEnc.WriteBits(bits, cat); err != nil {
			return err
		}

		zeroRun = 0
	}

	// EOB if there are trailing zeros
	if zeroRun > 0 {
		if err := huffEnc.Encode(acCode, 0x00); err != nil {
			return err
		}
	}

	return nil
}
