package common

import "io"

// HuffmanEncoder writes Huffman-coded entropy data with byte stuffing
type HuffmanEncoder struct {
	w     io.Writer
	bits  uint32 // Bit buffer
	nBits int    // Number of bits in buffer
	one   [1]byte
}

// NewHuffmanEncoder creates a new Huffman encoder
func NewHuffmanEncoder(w io.Writer) *HuffmanEncoder {
	return &HuffmanEncoder{w: w}
}

// WriteBits writes the low n bits of bits (n <= 16)
func (e *HuffmanEncoder) WriteBits(bits uint32, n int) error {
	if n == 0 {
		return nil
	}

	e.bits = (e.bits << uint(n)) | (bits & ((1 << uint(n)) - 1))
	e.nBits += n

	for e.nBits >= 8 {
		b := byte(e.bits >> uint(e.nBits-8))
		if err := e.writeByte(b); err != nil {
			return err
		}
		e.nBits -= 8
	}

	return nil
}

// writeByte writes a byte with byte stuffing
func (e *HuffmanEncoder) writeByte(b byte) error {
	e.one[0] = b
	if _, err := e.w.Write(e.one[:]); err != nil {
		return err
	}

	// Byte stuffing: if we write 0xFF, follow with 0x00
	if b == 0xFF {
		e.one[0] = 0x00
		if _, err := e.w.Write(e.one[:]); err != nil {
			return err
		}
	}

	return nil
}

// Flush pads the last partial byte with 1 bits and writes it
func (e *HuffmanEncoder) Flush() error {
	if e.nBits > 0 {
		b := byte((e.bits << uint(8-e.nBits)) | ((1 << uint(8-e.nBits)) - 1))
		if err := e.writeByte(b); err != nil {
			return err
		}
	}
	e.nBits = 0
	e.bits = 0
	return nil
}

// Restart ends the current restart interval: it flushes the bit buffer and
// writes marker RSTn unstuffed
func (e *HuffmanEncoder) Restart(n int) error {
	if err := e.Flush(); err != nil {
		return err
	}
	m := RST(n)
	_, err := e.w.Write([]byte{byte(m >> 8), byte(m)})
	return err
}

// Encode writes the code of symbol from codes
func (e *HuffmanEncoder) Encode(codes []HuffmanCode, symbol byte) error {
	c := codes[symbol]
	if c.Len == 0 {
		return ErrHuffmanEncode
	}
	return e.WriteBits(uint32(c.Code), c.Len)
}

// HuffmanCode represents a Huffman code
type HuffmanCode struct {
	Code uint16 // The Huffman code
	Len  int    // Code length in bits, 0 if the symbol has no code
}

// BuildHuffmanCodes builds the canonical code for every symbol of a table
func BuildHuffmanCodes(table *HuffmanTable) []HuffmanCode {
	codes := make([]HuffmanCode, 256)

	code := uint16(0)
	p := 0

	for l := 0; l < 16; l++ {
		for i := 0; i < table.Bits[l]; i++ {
			if p < len(table.Values) {
				codes[table.Values[p]] = HuffmanCode{
					Code: code,
					Len:  l + 1,
				}
				code++
				p++
			}
		}
		code <<= 1
	}

	return codes
}

// EncodeCategory returns the magnitude category of val and the cat low
// bits that represent it (one's complement for negative values)
func EncodeCategory(val int) (cat int, bits uint32) {
	if val == 0 {
		return 0, 0
	}

	absVal := val
	if absVal < 0 {
		absVal = -absVal
	}

	cat = 1
	for (1 << uint(cat)) <= absVal {
		cat++
	}

	if val > 0 {
		bits = uint32(val)
	} else {
		bits = uint32((1 << uint(cat)) + val - 1)
	}

	return cat, bits
}
