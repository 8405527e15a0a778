package orca

import (
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func ptrInt(v int) *int { return &v }

func testAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	raw := &adapter.RawTransaction{
		Slot:      9,
		Signature: "sig-orca",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", "orcaProgram"},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{ProgramIDIndex: ptrInt(1), Accounts: json.RawMessage(`[0]`), Data: json.RawMessage(`""`)},
			},
		},
		Meta: adapter.RawMeta{Err: json.RawMessage(`null`)},
	}
	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}
	return a
}

func TestParseTradesUsesFirstAndLastTransfer(t *testing.T) {
	a := testAdapter(t)
	transfers := []types.TransferData{
		{Amount: types.TokenAmount{Mint: "mintIn", Amount: "10", Decimals: 6}, Idx: "1-0"},
		{Amount: types.TokenAmount{Mint: "mintOut", Amount: "20", Decimals: 6}, Idx: "1-1"},
	}
	p := New(a, nil, transfers)
	trades := p.ParseTrades()
	if len(trades) != 1 {
		t.Fatalf("ParseTrades() returned %d trades, want 1", len(trades))
	}
	if trades[0].InputToken.Mint != "mintIn" || trades[0].OutputToken.Mint != "mintOut" {
		t.Fatalf("trade = %+v", trades[0])
	}
}

func TestParseLiquidityClassifiesRemoveViaBurnSignal(t *testing.T) {
	a := testAdapter(t)
	ci := types.ClassifiedInstruction{
		ProgramID:   "orcaProgram",
		OuterIndex:  2,
		Instruction: types.SolanaInstruction{ProgramID: "orcaProgram", Accounts: []string{"mintA", "mintB"}},
	}
	transfers := []types.TransferData{
		{Idx: "2-0", From: "vault", To: "", Amount: types.TokenAmount{Amount: "500"}},
	}
	p := New(a, []types.ClassifiedInstruction{ci}, transfers)
	events := p.ParseLiquidity()
	if len(events) != 1 {
		t.Fatalf("ParseLiquidity() returned %d events, want 1", len(events))
	}
	if events[0].EventType != types.PoolEventRemove {
		t.Fatalf("EventType = %v, want RemoveLiquidity", events[0].EventType)
	}
}
