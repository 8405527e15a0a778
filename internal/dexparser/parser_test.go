package dexparser

import (
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func TestSplitIdxHandlesSignerPrefix(t *testing.T) {
	outer, inner := splitIdx("5Q7xYz9bKp-3-2")
	if outer != 3 || inner != 2 {
		t.Fatalf("splitIdx() = (%d,%d), want (3,2)", outer, inner)
	}
}

func TestSplitIdxPlainForm(t *testing.T) {
	outer, inner := splitIdx("1-4")
	if outer != 1 || inner != 4 {
		t.Fatalf("splitIdx() = (%d,%d), want (1,4)", outer, inner)
	}
}

func TestSortByIdxOrdersAcrossSignerPrefixedAndPlainIdx(t *testing.T) {
	events := []types.PoolEvent{
		{Idx: "signerX-2-0"},
		{Idx: "0-1"},
		{Idx: "signerX-0-0"},
	}
	sortByIdx(events, func(e types.PoolEvent) string { return e.Idx })
	want := []string{"signerX-0-0", "0-1", "signerX-2-0"}
	for i, w := range want {
		if events[i].Idx != w {
			t.Fatalf("events[%d].Idx = %q, want %q", i, events[i].Idx, w)
		}
	}
}

func TestAggregateTradesFoldsSameMintPair(t *testing.T) {
	trades := []types.TradeInfo{
		{InputToken: types.TokenAmount{Mint: "SOL", Amount: "100", Decimals: 9}, OutputToken: types.TokenAmount{Mint: "USDC", Amount: "200", Decimals: 6}, AMM: "Pumpswap", Idx: "0-0"},
		{InputToken: types.TokenAmount{Mint: "SOL", Amount: "50", Decimals: 9}, OutputToken: types.TokenAmount{Mint: "USDC", Amount: "90", Decimals: 6}, AMM: "Pumpswap", Idx: "1-0"},
	}
	agg := aggregateTrades(trades)
	if agg == nil {
		t.Fatalf("aggregateTrades() = nil, want a folded trade")
	}
	if agg.InputToken.Amount != "150" || agg.OutputToken.Amount != "290" {
		t.Fatalf("agg = %+v", agg)
	}
	if len(agg.AMMs) != 1 || agg.AMMs[0] != "Pumpswap" {
		t.Fatalf("agg.AMMs = %v, want [Pumpswap]", agg.AMMs)
	}
}

func TestAggregateTradesNoPairReturnsNil(t *testing.T) {
	trades := []types.TradeInfo{
		{InputToken: types.TokenAmount{Mint: "SOL"}, OutputToken: types.TokenAmount{Mint: "USDC"}, Idx: "0-0"},
		{InputToken: types.TokenAmount{Mint: "SOL"}, OutputToken: types.TokenAmount{Mint: "USDT"}, Idx: "1-0"},
	}
	if agg := aggregateTrades(trades); agg != nil {
		t.Fatalf("aggregateTrades() = %+v, want nil", agg)
	}
}

func legacyTxJSON(programID string) []byte {
	tx := map[string]any{
		"slot":      uint64(1),
		"signature": "sig-e2e",
		"blockTime": int64(1700000000),
		"version":   "legacy",
		"message": map[string]any{
			"accountKeys": []string{"signer", programID},
			"header":      map[string]any{"numRequiredSignatures": 1},
			"instructions": []map[string]any{
				{"programIdIndex": 1, "accounts": []int{0}, "data": ""},
			},
		},
		"innerInstructions": []any{},
		"meta": map[string]any{
			"fee":          5000,
			"err":          nil,
			"preBalances":  []uint64{1_000_000_000, 0},
			"postBalances": []uint64{994_995_000, 0},
		},
	}
	data, _ := json.Marshal(tx)
	return data
}

func TestParseAllUnknownDexFallbackOffYieldsEmptyTradesButPopulatedMeta(t *testing.T) {
	p := New()
	data := legacyTxJSON("someUnknownProgram11111111111111111111111")
	result, err := p.ParseAll(data, types.ParseConfig{TryUnknownDex: false})
	if err != nil {
		t.Fatalf("ParseAll error: %v", err)
	}
	if len(result.Trades) != 0 {
		t.Fatalf("Trades = %v, want empty", result.Trades)
	}
	if result.Signature != "sig-e2e" || result.Slot != 1 {
		t.Fatalf("result = %+v, want populated signature/slot", result)
	}
	if len(result.Signer) == 0 || result.Signer[0] != "signer" {
		t.Fatalf("Signer = %v, want [signer]", result.Signer)
	}
}

func TestParseAllSchemaMismatchWithoutThrowErrorCapturesFailure(t *testing.T) {
	p := New()
	result, err := p.ParseAll([]byte(`not json`), types.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseAll error: %v, want nil (ThrowError=false)", err)
	}
	if result.State {
		t.Fatalf("State = true, want false")
	}
	if result.Msg == "" {
		t.Fatalf("Msg = %q, want non-empty", result.Msg)
	}
}

func TestParseAllSchemaMismatchWithThrowErrorPropagates(t *testing.T) {
	p := New()
	if _, err := p.ParseAll([]byte(`not json`), types.ParseConfig{ThrowError: true}); err == nil {
		t.Fatalf("expected error when ThrowError=true")
	}
}

func TestParseBlockRawKeepsMalformedEntryWithoutAbortingBlock(t *testing.T) {
	p := New()
	block := []json.RawMessage{
		legacyTxJSON("programA1111111111111111111111111111111111"),
		json.RawMessage(`"not a transaction"`),
		legacyTxJSON("programB1111111111111111111111111111111111"),
	}
	data, _ := json.Marshal(block)
	result, err := p.ParseBlockRaw(data, types.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseBlockRaw error: %v", err)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("Transactions = %d, want 3", len(result.Transactions))
	}
	if result.Transactions[1].State {
		t.Fatalf("middle transaction State = true, want false")
	}
	if result.Transactions[1].Msg == "" {
		t.Fatalf("middle transaction Msg = %q, want non-empty", result.Transactions[1].Msg)
	}
}
