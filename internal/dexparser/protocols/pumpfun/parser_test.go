package pumpfun

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func ptrInt(v int) *int { return &v }

func rawDataJSON(b []byte) json.RawMessage {
	enc, _ := json.Marshal(base64.StdEncoding.EncodeToString(b))
	return enc
}

// TestParseTradesBuyMatchesEndToEndScenario grounds spec §8 scenario 1: a
// single outer Pumpfun instruction whose data begins with the Trade
// discriminator, is_buy=1, sol_amount=1_000_000_000, token_amount=500_000,
// quote=SOL. Expect trade_type=Buy, input SOL with amountRaw "1000000000",
// output decimals 6 with amountRaw "500000".
func TestParseTradesBuyMatchesEndToEndScenario(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(TradeDiscriminator)
	buf.Write(pubkeyBytes(9)) // mint
	writeU64(&buf, 1_000_000_000)
	writeU64(&buf, 500_000)
	buf.WriteByte(1) // is_buy
	buf.Write(pubkeyBytes(2))
	writeI64(&buf, 1700000000)
	writeU64(&buf, 30_000_000_000)
	writeU64(&buf, 1_000_000_000_000)

	raw := &adapter.RawTransaction{
		Slot:      1,
		Signature: "sig-pf-buy",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", registry.PumpfunProgramID},
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
		ProgramID:  registry.PumpfunProgramID,
		OuterIndex: 0,
		Instruction: types.SolanaInstruction{
			ProgramID: registry.PumpfunProgramID,
			Accounts:  []string{"signer"},
			Data:      buf.Bytes(),
		},
	}
	all := []types.ClassifiedInstruction{ci}
	p := New(a, all)
	trades := p.ParseTrades(all)
	if len(trades) != 1 {
		t.Fatalf("ParseTrades() returned %d trades, want 1", len(trades))
	}

	trade := trades[0]
	if trade.TradeType != types.TradeBuy {
		t.Fatalf("TradeType = %q, want Buy", trade.TradeType)
	}
	if trade.InputToken.Mint != registry.NativeSOLMint || trade.InputToken.Amount != "1000000000" {
		t.Fatalf("InputToken = %+v, want SOL/1000000000", trade.InputToken)
	}
	if trade.OutputToken.Decimals != 6 || trade.OutputToken.Amount != "500000" {
		t.Fatalf("OutputToken = %+v, want decimals 6 amount 500000", trade.OutputToken)
	}
}

// TestParseMemeEventsEmitsBuyForTradeEvent checks the Trade event also
// surfaces as a Buy MemeEvent alongside the TradeInfo.
func TestParseMemeEventsEmitsBuyForTradeEvent(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(TradeDiscriminator)
	buf.Write(pubkeyBytes(9))
	writeU64(&buf, 1_000_000_000)
	writeU64(&buf, 500_000)
	buf.WriteByte(1)
	buf.Write(pubkeyBytes(2))
	writeI64(&buf, 1700000000)
	writeU64(&buf, 30_000_000_000)
	writeU64(&buf, 1_000_000_000_000)

	raw := &adapter.RawTransaction{
		Slot:      1,
		Signature: "sig-pf-meme",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", registry.PumpfunProgramID},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{ProgramIDIndex: ptrInt(1), Accounts: json.RawMessage(`[0]`), Data: rawDataJSON(buf.Bytes())},
			},
		},
		Meta: adapter.RawMeta{Err: json.RawMessage(`null`)},
	}
	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}
	ci := types.ClassifiedInstruction{
		ProgramID:  registry.PumpfunProgramID,
		OuterIndex: 0,
		Instruction: types.SolanaInstruction{ProgramID: registry.PumpfunProgramID, Data: buf.Bytes()},
	}
	p := New(a, []types.ClassifiedInstruction{ci})
	events := p.ParseMemeEvents()
	if len(events) != 1 || events[0].EventType != types.MemeBuy {
		t.Fatalf("ParseMemeEvents() = %+v, want one Buy event", events)
	}
}
