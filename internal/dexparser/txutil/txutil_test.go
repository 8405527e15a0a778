package txutil

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/classifier"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func intPtr(v int) *int { return &v }

func buildRaydiumSwap(t *testing.T) (*adapter.Adapter, *classifier.Classifier) {
	t.Helper()
	// data byte 0 = 3 (Transfer), bytes 1..9 = amount (LE 1_000_000).
	amountBytes := []byte{0x40, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00}
	transferData := append([]byte{3}, amountBytes...)

	raw := &adapter.RawTransaction{
		Slot:      9,
		Signature: "sig-raydium",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{
				"signer", registry.RaydiumProgramID, registry.SPLTokenProgramID,
				"userSrc", "poolDst",
			},
			Header: adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{ProgramIDIndex: intPtr(1), Accounts: json.RawMessage(`[0,3,4]`), Data: json.RawMessage(`""`)},
			},
		},
		InnerInstructions: []adapter.RawInnerInstructionGroup{
			{
				Index: 0,
				Instructions: []adapter.RawInstruction{
					{
						ProgramIDIndex: intPtr(2),
						Accounts:       json.RawMessage(`[3,4]`),
						Data:           json.RawMessage(rawBytesToJSON(transferData)),
					},
				},
			},
		},
		Meta: adapter.RawMeta{
			Err: json.RawMessage(`null`),
			PostTokenBalances: []adapter.RawTokenBalance{
				{AccountIndex: intPtr(4), Mint: "MintPool", Owner: "poolOwner",
					UITokenAmount: adapter.RawUITokenAmount{Amount: "1000000", Decimals: 6}},
			},
		},
	}
	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}
	c := classifier.New(a)
	return a, c
}

// rawBytesToJSON encodes raw bytes as a JSON string via base64 so
// decodeInstructionData round-trips it exactly.
func rawBytesToJSON(b []byte) string {
	encoded, _ := json.Marshal(base64.StdEncoding.EncodeToString(b))
	return string(encoded)
}

func TestGetTransferActionsAttributesToOuterProgram(t *testing.T) {
	a, c := buildRaydiumSwap(t)
	actions := GetTransferActions(a, c)
	transfers, ok := actions[registry.RaydiumProgramID]
	if !ok || len(transfers) != 1 {
		t.Fatalf("actions[Raydium] = %+v", actions)
	}
	if transfers[0].Amount.Amount != "1000000" {
		t.Fatalf("transfer amount = %+v", transfers[0].Amount)
	}
}

func TestProcessSwapDataRequiresTwoTransfers(t *testing.T) {
	a, _ := buildRaydiumSwap(t)
	if trade := ProcessSwapData(a, nil, types.DexInfo{}); trade != nil {
		t.Fatalf("expected nil trade for empty transfers")
	}
}

func TestAttachTradeFeeSkipsTradeWithExistingFee(t *testing.T) {
	raw := &adapter.RawTransaction{
		Slot:      1,
		Signature: "sig-fee",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer"},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
		},
		Meta: adapter.RawMeta{Err: json.RawMessage(`null`), Fee: 5000},
	}
	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}

	existing := &types.FeeInfo{Mint: "mintX", AmountRaw: "42"}
	trade := &types.TradeInfo{Fee: existing}
	AttachTradeFee(a, trade)
	if trade.Fee != existing || trade.Fee.AmountRaw != "42" {
		t.Fatalf("AttachTradeFee overwrote an existing Fee: %+v", trade.Fee)
	}

	tradeWithFees := &types.TradeInfo{Fees: []types.FeeInfo{{Mint: "mintY", AmountRaw: "7"}}}
	AttachTradeFee(a, tradeWithFees)
	if tradeWithFees.Fee != nil {
		t.Fatalf("AttachTradeFee should not set Fee when Fees is already populated: %+v", tradeWithFees.Fee)
	}

	tradeNoFee := &types.TradeInfo{}
	AttachTradeFee(a, tradeNoFee)
	if tradeNoFee.Fee == nil || tradeNoFee.Fee.AmountRaw != "5000" {
		t.Fatalf("AttachTradeFee should fall back to tx fee when none set: %+v", tradeNoFee.Fee)
	}
}

func TestAttachUserBalanceToLPsPrefixesIdx(t *testing.T) {
	pools := []types.PoolEvent{{Idx: "0-1"}}
	AttachUserBalanceToLPs("signerX", pools)
	if pools[0].Idx != "signerX-0-1" {
		t.Fatalf("Idx = %q", pools[0].Idx)
	}
}
