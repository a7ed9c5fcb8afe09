package baseline

import (
	"fmt"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
	"github.com/cocosip/go-jpeg-dct/jpeg/dct"
)

// Component represents a color component in the image
type Component struct {
	ID              byte // Component identifier
	H               int  // Horizontal sampling factor
	V               int  // Vertical sampling factor
	Tq              int  // Quantization table selector
	blocksWide      int  // Blocks per row covering the component
	blocksHigh      int  // Block rows covering the component
	dcTableSelector int  // DC Huffman table selector
	acTableSelector int  // AC Huffman table selector
	dcPred          int  // DC prediction value
	scanned         bool // Coded in a scan already

	// Decoded samples, one slice per row; InverseFast writes 8x8 patches
	// straight into these rows
	rows [][]byte
}

// Decoder represents a JPEG Baseline decoder
type Decoder struct {
	width      int                     // Image width
	height     int                     // Image height
	components []*Component            // Color components
	qtables    [4][64]int32            // Quantization tables, natural order
	qdefined   [4]bool                 // Quantization tables seen in DQT
	dcTables   [4]*common.HuffmanTable // DC Huffman tables
	acTables   [4]*common.HuffmanTable // AC Huffman tables
	maxH       int                     // Largest horizontal sampling factor
	maxV       int                     // Largest vertical sampling factor
	mcuCols    int                     // MCUs per row
	mcuRows    int                     // MCU rows
	restartInt int                     // Restart interval in MCUs
	scans      int                     // Scans decoded so far
	dataLen    int                     // Length of the whole stream
}

// Decode decodes JPEG Baseline data. Color images are returned as
// interleaved RGB.
func Decode(jpegData []byte) (pixelData []byte, width, height, components int, err error) {
	reader := common.NewReader(jpegData)
	decoder := &Decoder{dataLen: len(jpegData)}

	marker, err := reader.ReadMarker()
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if marker != common.MarkerSOI {
		return nil, 0, 0, 0, common.ErrInvalidSOI
	}

	for {
		marker, err := reader.ReadMarker()
		if err != nil {
			// Tolerate a missing EOI once the image data is complete
			if decoder.scans > 0 {
				break
			}
			return nil, 0, 0, 0, err
		}

		switch {
		case marker == common.MarkerSOF0:
			if err := decoder.parseSOF(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case common.IsSOF(marker):
			return nil, 0, 0, 0, fmt.Errorf("%w: SOF marker 0x%04X", common.ErrUnsupportedFormat, marker)

		case marker == common.MarkerDQT:
			if err := decoder.parseDQT(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerDHT:
			if err := decoder.parseDHT(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerDRI:
			if err := decoder.parseDRI(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerSOS:
			scan, err := decoder.parseSOS(reader)
			if err != nil {
				return nil, 0, 0, 0, err
			}
			if err := decoder.decodeScan(reader, scan); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerEOI:
			if decoder.scans == 0 {
				return nil, 0, 0, 0, fmt.Errorf("%w: no scan before EOI", common.ErrInvalidData)
			}
			return decoder.convertToPixels(), decoder.width, decoder.height, len(decoder.components), nil

		default:
			// Skip APPn, COM and anything else with a length
			if common.HasLength(marker) {
				if _, err := reader.ReadSegment(); err != nil {
					return nil, 0, 0, 0, err
				}
			}
		}
	}

	return decoder.convertToPixels(), decoder.width, decoder.height, len(decoder.components), nil
}

// parseSOF parses Start of Frame marker
func (d *Decoder) parseSOF(reader *common.Reader) error {
	if d.components != nil {
		return fmt.Errorf("%w: more than one frame header", common.ErrInvalidSOF)
	}

	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	if len(data) < 6 {
		return common.ErrInvalidSOF
	}

	if precision := int(data[0]); precision != 8 {
		return fmt.Errorf("%w: precision %d (only 8-bit supported for baseline)", common.ErrInvalidBitDepth, precision)
	}

	d.height = int(data[1])<<8 | int(data[2])
	d.width = int(data[3])<<8 | int(data[4])
	numComponents := int(data[5])

	if d.width <= 0 || d.height <= 0 {
		return common.ErrInvalidDimensions
	}

	if numComponents != 1 && numComponents != 3 {
		return common.ErrInvalidComponents
	}

	if len(data) < 6+numComponents*3 {
		return common.ErrInvalidSOF
	}

	d.maxH, d.maxV = 1, 1
	d.components = make([]*Component, numComponents)

	for i := 0; i < numComponents; i++ {
		offset := 6 + i*3
		comp := &Component{
			ID: data[offset],
			H:  int(data[offset+1] >> 4),
			V:  int(data[offset+1] & 0x0F),
			Tq: int(data[offset+2]),
		}

		if comp.H <= 0 || comp.H > 4 || comp.V <= 0 || comp.V > 4 || comp.Tq > 3 {
			return common.ErrInvalidSOF
		}

		d.maxH = max(d.maxH, comp.H)
		d.maxV = max(d.maxV, comp.V)
		d.components[i] = comp
	}

	d.mcuCols = common.DivCeil(d.width, d.maxH*dct.BlockSize)
	d.mcuRows = common.DivCeil(d.height, d.maxV*dct.BlockSize)

	// Each coded block takes at least two bits (a DC code and an EOB), so
	// the stream length caps the blocks the first component can declare
	first := d.components[0]
	coded := common.DivCeil(common.DivCeil(d.width*first.H, d.maxH), dct.BlockSize) *
		common.DivCeil(common.DivCeil(d.height*first.V, d.maxV), dct.BlockSize)
	if coded > 4*d.dataLen {
		return fmt.Errorf("%w: %dx%d frame in a %d byte stream",
			common.ErrImageTooLarge, d.width, d.height, d.dataLen)
	}

	// Planes cover whole MCUs, so every block of an interleaved scan has a
	// patch to land in
	for _, comp := range d.components {
		comp.blocksWide = d.mcuCols * comp.H
		comp.blocksHigh = d.mcuRows * comp.V

		stride := comp.blocksWide * dct.BlockSize
		rowCount := comp.blocksHigh * dct.BlockSize
		buf := make([]byte, stride*rowCount)
		comp.rows = make([][]byte, rowCount)
		for y := range comp.rows {
			comp.rows[y] = buf[y*stride : (y+1)*stride]
		}
	}

	return nil
}

// parseDQT parses Define Quantization Table marker
func (d *Decoder) parseDQT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		pqTq := data[offset]
		pq := pqTq >> 4   // Precision (0=8-bit, 1=16-bit)
		tq := pqTq & 0x0F // Table ID

		if tq > 3 || pq > 1 {
			return common.ErrInvalidDQT
		}

		offset++

		// Entries arrive in zig-zag order
		if pq == 0 {
			if offset+64 > len(data) {
				return common.ErrInvalidDQT
			}
			for i := 0; i < 64; i++ {
				d.qtables[tq][common.ZigZag[i]] = int32(data[offset+i])
			}
			offset += 64
		} else {
			if offset+128 > len(data) {
				return common.ErrInvalidDQT
			}
			for i := 0; i < 64; i++ {
				d.qtables[tq][common.ZigZag[i]] = int32(data[offset+i*2])<<8 | int32(data[offset+i*2+1])
			}
			offset += 128
		}
		d.qdefined[tq] = true
	}

	return nil
}

// parseDHT parses Define Huffman Table marker
func (d *Decoder) parseDHT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		tcTh := data[offset]
		tc := tcTh >> 4   // Table class (0=DC, 1=AC)
		th := tcTh & 0x0F // Table ID

		if th > 3 || tc > 1 {
			return common.ErrInvalidDHT
		}

		offset++

		table := &common.HuffmanTable{}
		totalCodes := 0
		for i := 0; i < 16; i++ {
			if offset >= len(data) {
				return common.ErrInvalidDHT
			}
			table.Bits[i] = int(data[offset])
			totalCodes += table.Bits[i]
			offset++
		}

		if offset+totalCodes > len(data) {
			return common.ErrInvalidDHT
		}
		table.Values = make([]byte, totalCodes)
		copy(table.Values, data[offset:offset+totalCodes])
		offset += totalCodes

		if err := table.Build(); err != nil {
			return err
		}

		if tc == 0 {
			d.dcTables[th] = table
		} else {
			d.acTables[th] = table
		}
	}

	return nil
}

// parseDRI parses Define Restart Interval marker
func (d *Decoder) parseDRI(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	if len(data) != 2 {
		return common.ErrInvalidDRI
	}

	d.restartInt = int(data[0])<<8 | int(data[1])
	return nil
}

// parseSOS parses Start of Scan marker and returns the scan's components
// in scan order
func (d *Decoder) parseSOS(reader *common.Reader) ([]*Component, error) {
	if d.components == nil {
		return nil, fmt.Errorf("%w: scan before frame header", common.ErrInvalidSOS)
	}

	data, err := reader.ReadSegment()
	if err != nil {
		return nil, err
	}

	if len(data) < 1 {
		return nil, common.ErrInvalidSOS
	}

	ns := int(data[0]) // Number of components in scan
	if ns < 1 || ns > len(d.components) || len(data) < 1+ns*2+3 {
		return nil, common.ErrInvalidSOS
	}

	scan := make([]*Component, 0, ns)
	for i := 0; i < ns; i++ {
		cs := data[1+i*2]      // Component selector
		tdTa := data[1+i*2+1]  // DC and AC table selectors
		td := int(tdTa >> 4)   // DC table
		ta := int(tdTa & 0x0F) // AC table

		var comp *Component
		for _, c := range d.components {
			if c.ID == cs {
				comp = c
				break
			}
		}

		if comp == nil || comp.scanned || td > 3 || ta > 3 {
			return nil, common.ErrInvalidSOS
		}

		comp.dcTableSelector = td
		comp.acTableSelector = ta
		comp.scanned = true
		scan = append(scan, comp)
	}

	// Spectral selection and successive approximation are fixed in
	// sequential mode
	tail := data[1+ns*2:]
	if tail[0] != 0 || tail[1] != 63 || tail[2] != 0 {
		return nil, fmt.Errorf("%w: spectral selection %d..%d, approximation 0x%02X",
			common.ErrInvalidSOS, tail[0], tail[1], tail[2])
	}

	return scan, nil
}

// decodeScan decodes the entropy-coded data of one scan and leaves reader
// at the marker that follows it
func (d *Decoder) decodeScan(reader *common.Reader, scan []*Component) error {
	var mult [4]dct.QuantTable
	for _, comp := range scan {
		if !d.qdefined[comp.Tq] {
			return fmt.Errorf("%w: quantization table %d not defined", common.ErrInvalidDQT, comp.Tq)
		}
		if d.dcTables[comp.dcTableSelector] == nil || d.acTables[comp.acTableSelector] == nil {
			return fmt.Errorf("%w: Huffman table for component %d not defined", common.ErrInvalidDHT, comp.ID)
		}
		mult[comp.Tq] = common.FastInverseMultipliers(&d.qtables[comp.Tq])
		comp.dcPred = 0
	}

	huffDec := common.NewHuffmanDecoder(reader.Remaining())

	// A single-component scan is not interleaved: its MCU is one block and
	// it covers only the blocks the component needs
	var mcuCols, mcuRows int
	if len(scan) == 1 {
		comp := scan[0]
		mcuCols = common.DivCeil(common.DivCeil(d.width*comp.H, d.maxH), dct.BlockSize)
		mcuRows = common.DivCeil(common.DivCeil(d.height*comp.V, d.maxV), dct.BlockSize)
	} else {
		mcuCols, mcuRows = d.mcuCols, d.mcuRows
	}

	var coef dct.Block
	total := mcuCols * mcuRows
	restarts := 0

	for mcu := 0; mcu < total; mcu++ {
		if d.restartInt > 0 && mcu > 0 && mcu%d.restartInt == 0 {
			if err := huffDec.Restart(restarts); err != nil {
				return fmt.Errorf("MCU %d: %w", mcu, err)
			}
			restarts++
			for _, comp := range scan {
				comp.dcPred = 0
			}
		}

		mcuY, mcuX := mcu/mcuCols, mcu%mcuCols

		if len(scan) == 1 {
			comp := scan[0]
			if err := d.decodeBlock(huffDec, comp, &coef); err != nil {
				return fmt.Errorf("MCU %d: %w", mcu, err)
			}
			d.storeBlock(comp, &mult[comp.Tq], &coef, mcuX, mcuY)
			continue
		}

		for _, comp := range scan {
			for v := 0; v < comp.V; v++ {
				for h := 0; h < comp.H; h++ {
					if err := d.decodeBlock(huffDec, comp, &coef); err != nil {
						return fmt.Errorf("MCU %d: %w", mcu, err)
					}
					d.storeBlock(comp, &mult[comp.Tq], &coef, mcuX*comp.H+h, mcuY*comp.V+v)
				}
			}
		}
	}

	d.scans++
	return reader.Skip(huffDec.End())
}

// decodeBlock Huffman decodes one block into coef, natural order, still
// quantized
func (d *Decoder) decodeBlock(huffDec *common.HuffmanDecoder, comp *Component, coef *dct.Block) error {
	*coef = dct.Block{}

	s, err := huffDec.Decode(d.dcTables[comp.dcTableSelector])
	if err != nil {
		return err
	}
	if s > 11 {
		return fmt.Errorf("%w: DC category %d", common.ErrHuffmanDecode, s)
	}

	diff, err := huffDec.ReceiveExtend(int(s))
	if err != nil {
		return err
	}

	comp.dcPred += diff
	coef[0] = int16(common.Clamp(comp.dcPred, -32768, 32767))

	acTable := d.acTables[comp.acTableSelector]

	k := 1
	for k < 64 {
		rs, err := huffDec.Decode(acTable)
		if err != nil {
			return err
		}

		r := int(rs >> 4)   // Run length of zeros
		s := int(rs & 0x0F) // Coefficient size

		if s == 0 {
			if r != 15 {
				break // EOB
			}
			k += 16 // ZRL
			continue
		}

		k += r
		if k >= 64 {
			return fmt.Errorf("%w: coefficient run past end of block", common.ErrInvalidData)
		}

		val, err := huffDec.ReceiveExtend(s)
		if err != nil {
			return err
		}

		coef[common.ZigZag[k]] = int16(val)
		k++
	}

	return nil
}

// storeBlock runs the inverse transform of coef into the component plane at
// block (blockX, blockY)
func (d *Decoder) storeBlock(comp *Component, mult *dct.QuantTable, coef *dct.Block, blockX, blockY int) {
	if blockX >= comp.blocksWide || blockY >= comp.blocksHigh {
		return
	}
	rows := comp.rows[blockY*dct.BlockSize : (blockY+1)*dct.BlockSize]
	dct.InverseFast(mult, coef, rows, blockX*dct.BlockSize)
}

// convertToPixels converts the component planes to interleaved pixel data,
// upsampling subsampled components by repetition
func (d *Decoder) convertToPixels() []byte {
	numComponents := len(d.components)
	pixelData := make([]byte, d.width*d.height*numComponents)

	sample := func(comp *Component, x, y int) byte {
		return comp.rows[y*comp.V/d.maxV][x*comp.H/d.maxH]
	}

	switch numComponents {
	case 1:
		comp := d.components[0]
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				pixelData[y*d.width+x] = sample(comp, x, y)
			}
		}
	case 3:
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				r, g, b := ycbcrToRGB(
					sample(d.components[0], x, y),
					sample(d.components[1], x, y),
					sample(d.components[2], x, y),
				)

				offset := (y*d.width + x) * 3
				pixelData[offset+0] = r
				pixelData[offset+1] = g
				pixelData[offset+2] = b
			}
		}
	}

	return pixelData
}

// ycbcrToRGB converts YCbCr to RGB
func ycbcrToRGB(yy, cb, cr byte) (byte, byte, byte) {
	y := int(yy)
	cbVal := int(cb) - 128
	crVal := int(cr) - 128

	r := y + (91881*crVal+32768)>>16
	g := y - ((22554*cbVal + 46802*crVal + 32768) >> 16)
	b := y + (116130*cbVal+32768)>>16

	return byte(common.Clamp(r, 0, 255)),
		byte(common.Clamp(g, 0, 255)),
		byte(common.Clamp(b, 0, 255))
}
