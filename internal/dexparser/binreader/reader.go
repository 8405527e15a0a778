// Package binreader implements a forward-only, bounds-checked cursor over a
// byte buffer, used to decode the little-endian Anchor event payloads emitted
// by Pumpfun and Pumpswap.
package binreader

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/mr-tron/base58"
)

// Reader is a stateful cursor over buffer. It never reads past the end of
// buffer and never retries a failed read; callers decide how to recover.
type Reader struct {
	buffer []byte
	offset int
}

// New wraps data in a Reader starting at offset 0.
func New(data []byte) *Reader {
	return &Reader{buffer: data}
}

// Remaining returns the number of unread bytes left in the buffer.
func (r *Reader) Remaining() int {
	n := len(r.buffer) - r.offset
	if n < 0 {
		return 0
	}
	return n
}

func (r *Reader) checkBounds(n int) error {
	if r.offset+n > len(r.buffer) {
		return &BufferOverrunError{Requested: n, Offset: r.offset, BufferLen: len(r.buffer)}
	}
	return nil
}

// BufferOverrunError is returned whenever a read requests more bytes than
// remain in the buffer.
type BufferOverrunError struct {
	Requested int
	Offset    int
	BufferLen int
}

func (e *BufferOverrunError) Error() string {
	return fmt.Sprintf("buffer overrun: requested %d bytes at offset %d from buffer of length %d",
		e.Requested, e.Offset, e.BufferLen)
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (byte, error) {
	if err := r.checkBounds(1); err != nil {
		return 0, err
	}
	v := r.buffer[r.offset]
	r.offset++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.checkBounds(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buffer[r.offset : r.offset+2])
	r.offset += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.checkBounds(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buffer[r.offset : r.offset+4])
	r.offset += 4
	return v, nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.checkBounds(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buffer[r.offset : r.offset+8])
	r.offset += 8
	return v, nil
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	u, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// ReadFixed reads exactly n raw bytes.
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	if err := r.checkBounds(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buffer[r.offset:r.offset+n])
	r.offset += n
	return out, nil
}

// ReadPubkey reads a fixed 32-byte public key and renders it as base58.
func (r *Reader) ReadPubkey() (string, error) {
	raw, err := r.ReadFixed(32)
	if err != nil {
		return "", err
	}
	return base58.Encode(raw), nil
}

// Utf8Error is returned when a length-prefixed string is not valid UTF-8.
type Utf8Error struct {
	Cause error
}

func (e *Utf8Error) Error() string { return fmt.Sprintf("invalid utf8 string: %s", e.Cause) }
func (e *Utf8Error) Unwrap() error { return e.Cause }

// ReadString reads a u32 length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	raw, err := r.ReadFixed(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", &Utf8Error{Cause: fmt.Errorf("byte sequence is not valid utf-8")}
	}
	return string(raw), nil
}
