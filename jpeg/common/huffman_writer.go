package common

import "fmt"

// HuffmanTableDef identifies one table of a DHT segment
type HuffmanTableDef struct {
	Class byte // 0 for DC, 1 for AC
	ID    byte // Destination 0..3
	Table *HuffmanTable
}

// WriteHuffmanTables writes the tables as a single DHT segment
func WriteHuffmanTables(writer *Writer, defs ...HuffmanTableDef) error {
	var data []byte
	for _, s := range defs {
		if s.Class > 1 || s.ID > 3 {
			return fmt.Errorf("%w: class %d, destination %d", ErrInvalidDHT, s.Class, s.ID)
		}

		total := 0
		for _, n := range s.Table.Bits {
			total += n
		}
		if total > len(s.Table.Values) || total > 256 {
			return fmt.Errorf("%w: %d codes for %d values", ErrInvalidDHT, total, len(s.Table.Values))
		}

		data = append(data, s.Class<<4|s.ID)
		for _, n := range s.Table.Bits {
			data = append(data, byte(n))
		}
		data = append(data, s.Table.Values[:total]...)
	}
	return writer.WriteSegment(MarkerDHT, data)
}
