package pumpfun

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
)

func pubkeyBytes(fill byte) []byte { return bytes.Repeat([]byte{fill}, 32) }

func TestDecodeTradeEventCore(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pubkeyBytes(1)) // mint
	writeU64(&buf, 1_000_000_000)
	writeU64(&buf, 500_000)
	buf.WriteByte(1) // is_buy
	buf.Write(pubkeyBytes(2))
	writeI64(&buf, 1700000000)
	writeU64(&buf, 30_000_000_000)
	writeU64(&buf, 1_000_000_000_000)

	ev, err := DecodeTradeEvent(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTradeEvent error: %v", err)
	}
	if !ev.IsBuy || ev.SolAmount != 1_000_000_000 || ev.TokenAmount != 500_000 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.HasExtended {
		t.Fatalf("expected no extended fields, got %+v", ev)
	}
	if want := base58.Encode(pubkeyBytes(1)); ev.Mint != want {
		t.Fatalf("Mint = %q, want %q", ev.Mint, want)
	}
}

func TestDecodeTradeEventExtended(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pubkeyBytes(1))
	writeU64(&buf, 1)
	writeU64(&buf, 2)
	buf.WriteByte(0)
	buf.Write(pubkeyBytes(2))
	writeI64(&buf, -5) // negative timestamp normalizes to 0
	writeU64(&buf, 3)
	writeU64(&buf, 4)
	writeU64(&buf, 5) // real_sol_reserves
	writeU64(&buf, 6) // real_token_reserves
	buf.Write(pubkeyBytes(3))
	writeU16(&buf, 100)
	writeU64(&buf, 7)
	buf.Write(pubkeyBytes(4))
	writeU16(&buf, 50)
	writeU64(&buf, 8)

	ev, err := DecodeTradeEvent(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTradeEvent error: %v", err)
	}
	if ev.Timestamp != 0 {
		t.Fatalf("Timestamp = %d, want 0", ev.Timestamp)
	}
	if !ev.HasExtended || ev.Fee != 7 || ev.CreatorFee != 8 {
		t.Fatalf("unexpected extended fields: %+v", ev)
	}
}

func TestDiscriminatorsAreDistinct(t *testing.T) {
	all := [][]byte{TradeDiscriminator, CreateDiscriminator, CompleteDiscriminator, MigrateDiscriminator}
	for i := range all {
		for j := range all {
			if i == j {
				continue
			}
			if bytes.Equal(all[i], all[j]) {
				t.Fatalf("discriminators %d and %d collide: %x", i, j, all[i])
			}
		}
	}
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeI64(buf *bytes.Buffer, v int64) {
	writeU64(buf, uint64(v))
}
