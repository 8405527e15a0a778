// Package simple implements the §4.7 fallback parsers: SimpleLiquidityParser
// and SimpleMemeParser. These only run when no protocol-specific decoder
// claims a program's instructions (orchestrator's try_unknown_dex path).
package simple

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// LiquidityParser emits one PoolEvent per classified instruction, pulling
// the first two accounts as mint_a/mint_b and summing the owning program's
// transfer amounts as liquidity (spec §4.7).
type LiquidityParser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
	transfers    []types.TransferData
}

// NewLiquidityParser builds a LiquidityParser over programID's classified
// instructions and the transfers TransactionUtils attributed to it.
func NewLiquidityParser(a *adapter.Adapter, instructions []types.ClassifiedInstruction, transfers []types.TransferData) *LiquidityParser {
	return &LiquidityParser{a: a, instructions: instructions, transfers: transfers}
}

// ParseLiquidity emits one PoolEvent per classified instruction.
func (p *LiquidityParser) ParseLiquidity() []types.PoolEvent {
	var totalLiquidity uint64
	for _, t := range p.transfers {
		raw, _ := strconv.ParseUint(t.Amount.Amount, 10, 64)
		totalLiquidity += raw
	}
	liquidity := strconv.FormatUint(totalLiquidity, 10)

	var events []types.PoolEvent
	for _, ci := range p.instructions {
		accounts := ci.Instruction.Accounts
		var mintA, mintB string
		if len(accounts) > 0 {
			mintA = accounts[0]
		}
		if len(accounts) > 1 {
			mintB = accounts[1]
		}
		events = append(events, types.PoolEvent{
			ProgramID: ci.ProgramID,
			EventType: types.PoolEventAdd,
			MintA:     mintA,
			MintB:     mintB,
			Liquidity: liquidity,
			Signature: p.a.Signature(),
			Idx:       ci.Idx(),
			User:      p.a.Signer(),
		})
	}
	return events
}

// MemeParser emits one Buy MemeEvent per transfer, carrying the sender as
// user plus the transfer's mint and raw amount; the destination account is
// not recorded.
type MemeParser struct {
	a         *adapter.Adapter
	transfers []types.TransferData
}

// NewMemeParser builds a MemeParser over the transfers TransactionUtils
// attributed to programID.
func NewMemeParser(a *adapter.Adapter, transfers []types.TransferData) *MemeParser {
	return &MemeParser{a: a, transfers: transfers}
}

// ParseMemeEvents emits one MemeEvent per transfer.
func (p *MemeParser) ParseMemeEvents() []types.MemeEvent {
	var events []types.MemeEvent
	for _, t := range p.transfers {
		events = append(events, types.MemeEvent{
			EventType: types.MemeBuy,
			BaseMint:  t.Amount.Mint,
			User:      t.From,
			BaseTokens: t.Amount.Amount,
			Signature: p.a.Signature(),
			Slot:      p.a.Slot(),
			Timestamp: p.a.BlockTime(),
			Idx:       t.Idx,
		})
	}
	return events
}
