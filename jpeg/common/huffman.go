package common

import "fmt"

// HuffmanTable represents a Huffman coding table
type HuffmanTable struct {
	// Number of codes of each length (1-16 bits)
	Bits [16]int
	// Values for each code, in order of code length
	Values []byte
	// Canonical code ranges per length
	minCode [16]int32
	maxCode [16]int32
	valPtr  [16]int32
	// Lookup table for codes up to 8 bits
	lookupTable [256]int16 // value: (nbits << 8) | value, -1 if not found
}

// Build checks the table and builds the decoding lookup tables
func (h *HuffmanTable) Build() error {
	total := 0
	for _, n := range h.Bits {
		total += n
	}
	if total > 256 || total > len(h.Values) {
		return ErrInvalidDHT
	}

	for i := range h.lookupTable {
		h.lookupTable[i] = -1
	}

	code := int32(0)
	p := 0
	for l := 0; l < 16; l++ {
		if h.Bits[l] == 0 {
			h.maxCode[l] = -1
			code <<= 1
			continue
		}

		h.valPtr[l] = int32(p)
		h.minCode[l] = code
		for i := 0; i < h.Bits[l]; i++ {
			if code >= 1<<uint(l+1) {
				return ErrInvalidDHT
			}
			// Short codes fill every 8-bit prefix they start
			if l < 8 {
				prefix := int(code) << uint(7-l)
				for j := 0; j < 1<<uint(7-l); j++ {
					h.lookupTable[prefix+j] = int16((l+1)<<8 | int(h.Values[p]))
				}
			}
			code++
			p++
		}
		h.maxCode[l] = code - 1
		code <<= 1
	}

	return nil
}

// HuffmanDecoder reads Huffman-coded entropy data from a scan.
//
// Stuffed 0xFF00 pairs are unescaped. Any other marker stops the bit
// stream: reading past it is an error until Restart consumes it.
type HuffmanDecoder struct {
	data   []byte
	pos    int
	bits   uint32 // Bit buffer
	nBits  int    // Number of bits in buffer
	marker byte   // Marker that ended the bit stream, 0 if none
}

// NewHuffmanDecoder creates a decoder over the entropy-coded bytes that
// follow an SOS header
func NewHuffmanDecoder(data []byte) *HuffmanDecoder {
	return &HuffmanDecoder{data: data}
}

// Offset returns the number of input bytes consumed, including any marker
// that ended the bit stream
func (d *HuffmanDecoder) Offset() int {
	return d.pos
}

// End returns the offset of the marker that follows the entropy-coded
// data, skipping restart markers and any unread padding
func (d *HuffmanDecoder) End() int {
	pos := d.pos
	if d.marker != 0 && !IsRST(uint16(0xFF00)|uint16(d.marker)) {
		// The marker itself was consumed; back up to its 0xFF prefix
		return pos - 2
	}
	for pos+1 < len(d.data) {
		if d.data[pos] == 0xFF {
			next := d.data[pos+1]
			if next != 0x00 && next != 0xFF && !IsRST(uint16(0xFF00)|uint16(next)) {
				return pos
			}
		}
		pos++
	}
	return len(d.data)
}

// readByte returns the next unstuffed data byte
func (d *HuffmanDecoder) readByte() (byte, error) {
	if d.marker != 0 {
		return 0, fmt.Errorf("%w: marker 0xFF%02X inside entropy-coded data", ErrInvalidData, d.marker)
	}
	if d.pos >= len(d.data) {
		return 0, ErrUnexpectedEOF
	}

	b := d.data[d.pos]
	d.pos++
	if b != 0xFF {
		return b, nil
	}

	// 0xFF may be followed by fill bytes before the marker code
	for d.pos < len(d.data) && d.data[d.pos] == 0xFF {
		d.pos++
	}
	if d.pos >= len(d.data) {
		return 0, ErrUnexpectedEOF
	}

	next := d.data[d.pos]
	d.pos++
	if next == 0x00 {
		return 0xFF, nil
	}
	d.marker = next
	return 0, fmt.Errorf("%w: marker 0xFF%02X inside entropy-coded data", ErrInvalidData, next)
}

// ReadBit reads a single bit
func (d *HuffmanDecoder) ReadBit() (bool, error) {
	v, err := d.ReadBits(1)
	return v == 1, err
}

// ReadBits reads n bits (n <= 16) as an unsigned integer
func (d *HuffmanDecoder) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}

	for d.nBits < n {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		d.bits = (d.bits << 8) | uint32(b)
		d.nBits += 8
	}

	d.nBits -= n
	return (d.bits >> uint(d.nBits)) & ((1 << uint(n)) - 1), nil
}

// Decode decodes the next Huffman symbol
func (d *HuffmanDecoder) Decode(table *HuffmanTable) (byte, error) {
	// Fast path for codes up to 8 bits
	if d.nBits >= 8 {
		peek := (d.bits >> uint(d.nBits-8)) & 0xFF
		if entry := table.lookupTable[peek]; entry >= 0 {
			d.nBits -= int(entry >> 8)
			return byte(entry & 0xFF), nil
		}
	}

	// Slow path: one bit at a time
	code := int32(0)
	for l := 0; l < 16; l++ {
		bit, err := d.ReadBits(1)
		if err != nil {
			return 0, err
		}
		code = code<<1 | int32(bit)

		if table.maxCode[l] >= 0 && code <= table.maxCode[l] {
			idx := table.valPtr[l] + code - table.minCode[l]
			if idx >= 0 && int(idx) < len(table.Values) {
				return table.Values[idx], nil
			}
		}
	}

	return 0, ErrHuffmanDecode
}

// ReceiveExtend reads ssss magnitude bits and sign-extends them
// (RECEIVE followed by EXTEND)
func (d *HuffmanDecoder) ReceiveExtend(ssss int) (int, error) {
	if ssss == 0 {
		return 0, nil
	}
	if ssss > 16 {
		return 0, ErrHuffmanDecode
	}

	bits, err := d.ReadBits(ssss)
	if err != nil {
		return 0, err
	}

	val := int(bits)
	if val < 1<<uint(ssss-1) {
		val += (-1 << uint(ssss)) + 1
	}
	return val, nil
}

// Restart discards the bits left in the current interval and consumes the
// restart marker RSTn that must follow it
func (d *HuffmanDecoder) Restart(n int) error {
	d.bits, d.nBits = 0, 0

	if d.marker == 0 {
		// Skip to the marker; only 1-bit padding should precede it
		for d.pos+1 < len(d.data) {
			if d.data[d.pos] == 0xFF && d.data[d.pos+1] != 0x00 && d.data[d.pos+1] != 0xFF {
				d.marker = d.data[d.pos+1]
				d.pos += 2
				break
			}
			d.pos++
		}
	}

	want := byte(RST(n) & 0xFF)
	if d.marker != want {
		return fmt.Errorf("%w: want RST%d, found 0xFF%02X", ErrInvalidRestart, n&7, d.marker)
	}
	d.marker = 0
	return nil
}
