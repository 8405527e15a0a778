// Package orca decodes Orca Whirlpool instructions into trades and
// liquidity events, using the same transfer-flow/ammops approach as
// raydium (spec §4.6 gives no bit-exact layout for Orca).
package orca

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/ammops"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser decodes Orca's classified instructions into trades and liquidity
// events.
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
	transfers    []types.TransferData
}

// New builds a Parser over the Orca-owned classified instructions and the
// transfer legs TransactionUtils attributed to Orca's outer instruction.
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction, transfers []types.TransferData) *Parser {
	return &Parser{a: a, instructions: instructions, transfers: transfers}
}

// ParseTrades synthesizes a single Swap TradeInfo out of the first and last
// transfer legs CPI'd under Orca (txutil.ProcessSwapData, by contrast,
// pairs the first two).
func (p *Parser) ParseTrades() []types.TradeInfo {
	if len(p.transfers) < 2 {
		return nil
	}
	in, out := p.transfers[0], p.transfers[len(p.transfers)-1]
	return []types.TradeInfo{{
		TradeType:   types.TradeSwap,
		InputToken:  in.Amount,
		OutputToken: out.Amount,
		ProgramID:   registry.OrcaProgramID,
		AMM:         registry.Name(registry.OrcaProgramID),
		Slot:        p.a.Slot(),
		Timestamp:   p.a.BlockTime(),
		Signature:   p.a.Signature(),
		Idx:         in.Idx,
		Signer:      p.a.Signers(),
	}}
}

// ParseLiquidity classifies each of Orca's classified instructions as
// Add/Remove liquidity via ammops.Classify and builds a PoolEvent from its
// first two accounts and the summed transfer amount at that idx.
func (p *Parser) ParseLiquidity() []types.PoolEvent {
	var events []types.PoolEvent
	for _, ci := range p.instructions {
		dir := ammops.Classify(ci, p.transfers)
		if dir == ammops.DirectionNone {
			continue
		}
		events = append(events, buildPoolEvent(p.a, ci, p.transfers, dir))
	}
	return events
}

func buildPoolEvent(a *adapter.Adapter, ci types.ClassifiedInstruction, transfers []types.TransferData, dir ammops.Direction) types.PoolEvent {
	accounts := ci.Instruction.Accounts
	var mintA, mintB string
	if len(accounts) > 0 {
		mintA = accounts[0]
	}
	if len(accounts) > 1 {
		mintB = accounts[1]
	}

	var liquidity uint64
	for _, t := range transfers {
		if t.Idx != ci.Idx() {
			continue
		}
		raw, _ := strconv.ParseUint(t.Amount.Amount, 10, 64)
		liquidity += raw
	}

	eventType := types.PoolEventAdd
	if dir == ammops.DirectionRemove {
		eventType = types.PoolEventRemove
	}

	return types.PoolEvent{
		ProgramID: ci.ProgramID,
		EventType: eventType,
		MintA:     mintA,
		MintB:     mintB,
		Liquidity: strconv.FormatUint(liquidity, 10),
		Signature: a.Signature(),
		Idx:       ci.Idx(),
		User:      a.Signer(),
	}
}
