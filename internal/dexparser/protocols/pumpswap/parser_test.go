package pumpswap

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func ptrInt(v int) *int { return &v }

func rawDataJSON(b []byte) json.RawMessage {
	enc, _ := json.Marshal(base64.StdEncoding.EncodeToString(b))
	return enc
}

// TestSellFeeSumsProtocolAndCreator grounds the end-to-end fee-attribution
// scenario: protocol_fee=100, coin_creator_fee=50 must yield
// fee.amount_raw="150" and a second fees[] entry tagged "coinCreator".
func TestSellFeeSumsProtocolAndCreator(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(SellDiscriminator)
	writeBuySell(&buf, 100, 50, true)

	raw := &adapter.RawTransaction{
		Slot:      1,
		Signature: "sig-sell",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", "ammProgram"},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{
					ProgramIDIndex: ptrInt(1),
					Accounts:       json.RawMessage(`[0]`),
					Data:           rawDataJSON(buf.Bytes()),
				},
			},
		},
		Meta: adapter.RawMeta{Err: json.RawMessage(`null`)},
	}

	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}

	ci := types.ClassifiedInstruction{
		ProgramID:  "ammProgram",
		OuterIndex: 0,
		Instruction: types.SolanaInstruction{
			ProgramID: "ammProgram",
			Accounts:  []string{"signer"},
			Data:      buf.Bytes(),
		},
	}
	p := New(a, []types.ClassifiedInstruction{ci})
	trades := p.ParseTrades()
	if len(trades) != 1 {
		t.Fatalf("ParseTrades() returned %d trades, want 1", len(trades))
	}
	trade := trades[0]
	if trade.Fee == nil || trade.Fee.AmountRaw != "150" {
		t.Fatalf("Fee = %+v, want amountRaw 150", trade.Fee)
	}
	if len(trade.Fees) != 2 || trade.Fees[1].FeeType != "coinCreator" {
		t.Fatalf("Fees = %+v, want 2 entries with second tagged coinCreator", trade.Fees)
	}
}
