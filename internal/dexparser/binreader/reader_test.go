package binreader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mr-tron/base58"
)

func TestReadU8U16U32U64(t *testing.T) {
	buf := []byte{0x7B, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x10, 0x11, 0x12, 0x13, 0x14}
	r := New(buf)

	u8, err := r.ReadU8()
	if err != nil || u8 != 0x7B {
		t.Fatalf("ReadU8 = %v, %v", u8, err)
	}

	u16, err := r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16 error: %v", err)
	}
	if want := binary.LittleEndian.Uint16(buf[1:3]); u16 != want {
		t.Fatalf("ReadU16 = %d, want %d", u16, want)
	}

	u32, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32 error: %v", err)
	}
	if want := binary.LittleEndian.Uint32(buf[3:7]); u32 != want {
		t.Fatalf("ReadU32 = %d, want %d", u32, want)
	}

	u64, err := r.ReadU64()
	if err != nil {
		t.Fatalf("ReadU64 error: %v", err)
	}
	if want := binary.LittleEndian.Uint64(buf[7:15]); u64 != want {
		t.Fatalf("ReadU64 = %d, want %d", u64, want)
	}
}

func TestReadI64Negative(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(int64(-42)))
	r := New(buf)
	v, err := r.ReadI64()
	if err != nil {
		t.Fatalf("ReadI64 error: %v", err)
	}
	if v != -42 {
		t.Fatalf("ReadI64 = %d, want -42", v)
	}
}

func TestReadPubkey(t *testing.T) {
	raw := bytes.Repeat([]byte{0x01}, 32)
	r := New(raw)
	pk, err := r.ReadPubkey()
	if err != nil {
		t.Fatalf("ReadPubkey error: %v", err)
	}
	if want := base58.Encode(raw); pk != want {
		t.Fatalf("ReadPubkey = %s, want %s", pk, want)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReadStringLengthPrefixed(t *testing.T) {
	var buf bytes.Buffer
	payload := "pepe coin"
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(payload)))
	buf.Write(lenBuf)
	buf.WriteString(payload)
	buf.WriteString("trailing")

	r := New(buf.Bytes())
	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if s != payload {
		t.Fatalf("ReadString = %q, want %q", s, payload)
	}
	if r.Remaining() != len("trailing") {
		t.Fatalf("Remaining = %d, want %d", r.Remaining(), len("trailing"))
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, 2)
	buf.Write(lenBuf)
	buf.Write([]byte{0xff, 0xfe})

	r := New(buf.Bytes())
	if _, err := r.ReadString(); err == nil {
		t.Fatalf("expected utf8 error, got nil")
	} else {
		var uerr *Utf8Error
		if !errors.As(err, &uerr) {
			t.Fatalf("expected *Utf8Error, got %T (%v)", err, err)
		}
	}
}

func TestBufferOverrun(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	_, err := r.ReadU64()
	if err == nil {
		t.Fatalf("expected buffer overrun error")
	}
	var boErr *BufferOverrunError
	if !errors.As(err, &boErr) {
		t.Fatalf("expected *BufferOverrunError, got %T", err)
	}
	if boErr.Requested != 8 || boErr.Offset != 0 || boErr.BufferLen != 2 {
		t.Fatalf("unexpected error fields: %+v", boErr)
	}
}

func TestReadFixedExact(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})
	got, err := r.ReadFixed(4)
	if err != nil {
		t.Fatalf("ReadFixed error: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("ReadFixed = %v", got)
	}
	if _, err := r.ReadU8(); err == nil {
		t.Fatalf("expected overrun after exhausting buffer")
	}
}
