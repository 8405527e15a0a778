// Package txutil holds the cross-cutting helpers TransactionUtils exposes
// (spec §4.5): dominant-DEX identification, transfer-action assembly, swap
// synthesis, and fee/user attribution.
package txutil

import (
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/classifier"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// GetDexInfo chooses the first non-system program ID as the transaction's
// DEX identity.
func GetDexInfo(c *classifier.Classifier) types.DexInfo {
	ids := c.GetAllProgramIDs()
	if len(ids) == 0 {
		return types.DexInfo{}
	}
	return types.DexInfo{ProgramID: ids[0], AMM: registry.Name(ids[0])}
}

// ProcessSwapData synthesizes a generic Swap TradeInfo out of the first two
// transfers of a program's transfer list (spec §4.5), when no
// protocol-specific decoder claimed the instruction.
func ProcessSwapData(a *adapter.Adapter, transfers []types.TransferData, dex types.DexInfo) *types.TradeInfo {
	if len(transfers) < 2 {
		return nil
	}
	in, out := transfers[0], transfers[1]

	programID := dex.ProgramID
	amm := dex.AMM
	if programID == "" {
		programID = in.ProgramID
		amm = registry.Name(programID)
	}

	return &types.TradeInfo{
		TradeType:   types.TradeSwap,
		InputToken:  in.Amount,
		OutputToken: out.Amount,
		ProgramID:   programID,
		AMM:         amm,
		Slot:        a.Slot(),
		Timestamp:   a.BlockTime(),
		Signature:   a.Signature(),
		Idx:         in.Idx,
		Signer:      a.Signers(),
	}
}

// AttachTradeFee attaches the transaction-level SOL fee to trade as a
// fallback, only when no protocol-specific decoder has already populated a
// fee (spec §4.5; §3's fee invariant frames this as a last resort).
func AttachTradeFee(a *adapter.Adapter, trade *types.TradeInfo) {
	if trade.Fee != nil || len(trade.Fees) > 0 {
		return
	}
	fee := a.Fee()
	if fee.Amount == "" || fee.Amount == "0" {
		return
	}
	trade.Fee = &types.FeeInfo{
		Mint:      fee.Mint,
		AmountRaw: fee.Amount,
		AmountUI:  fee.UIAmount,
		Decimals:  fee.Decimals,
	}
}

// AttachUserBalanceToLPs prefixes each pool event's idx with "<signer>-"
// (spec §4.5).
func AttachUserBalanceToLPs(signer string, pools []types.PoolEvent) {
	for i := range pools {
		pools[i].Idx = signer + "-" + pools[i].Idx
	}
}
