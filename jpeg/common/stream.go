package common

import (
	"encoding/binary"
	"io"
)

// Reader provides utilities for reading JPEG segments from an in-memory
// codestream
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new JPEG reader
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadMarker reads the next JPEG marker, including its 0xFF prefix
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, ErrInvalidMarker
	}

	// Skip any padding 0xFF bytes
	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			break
		}
	}

	// 0x00 is a stuffed byte (escaped 0xFF in data), not a marker
	if b == 0x00 {
		return 0, ErrInvalidMarker
	}

	return uint16(0xFF00) | uint16(b), nil
}

// ReadSegment reads a segment with its length
// Returns the segment data (without the length field)
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	// Length includes itself (2 bytes)
	if length < 2 {
		return nil, ErrInvalidData
	}

	n := int(length) - 2
	if r.pos+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	data := r.data[r.pos : r.pos+n]
	r.pos += n
	return data, nil
}

// Remaining returns the unread bytes without consuming them
func (r *Reader) Remaining() []byte {
	return r.data[r.pos:]
}

// Skip skips n bytes
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.pos = len(r.data)
		return ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

// Writer provides utilities for writing JPEG data
type Writer struct {
	w   io.Writer
	buf [2]byte
}

// NewWriter creates a new JPEG writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteByte writes a single byte
func (w *Writer) WriteByte(b byte) error {
	w.buf[0] = b
	_, err := w.w.Write(w.buf[:1])
	return err
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, err := w.w.Write(w.buf[:2])
	return err
}

// WriteMarker writes a JPEG marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a segment with length
// The length field is automatically calculated and includes itself (2 bytes)
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	if len(data)+2 > 0xFFFF {
		return ErrBufferTooSmall
	}
	if err := w.WriteMarker(marker); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(len(data) + 2)); err != nil {
		return err
	}
	_, err := w.w.Write(data)
	return err
}

// Write writes raw bytes
func (w *Writer) Write(data []byte) (int, error) {
	return w.w.Write(data)
}
