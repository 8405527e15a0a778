// Package raydium decodes Raydium AMM instructions into trades and
// liquidity events. Spec §4.6 only specifies bit-exact Anchor event layouts
// for Pumpfun/Pumpswap; Raydium has no such layout here, so trades are
// synthesized from the first and last SPL-token transfer legs and
// liquidity direction comes from the shared
// mint/burn + Anchor-discriminator heuristic in ammops (grounded on the
// teacher's liquidity_ops.go).
package raydium

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/ammops"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser decodes Raydium's classified instructions into trades and
// liquidity events.
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
	transfers    []types.TransferData
}

// New builds a Parser over the Raydium-owned classified instructions and
// the transfer legs TransactionUtils attributed to Raydium's outer
// instruction.
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction, transfers []types.TransferData) *Parser {
	return &Parser{a: a, instructions: instructions, transfers: transfers}
}

// ParseTrades synthesizes a single Swap TradeInfo out of the first and last
// transfer legs CPI'd under Raydium (txutil.ProcessSwapData, by contrast,
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
		ProgramID:   registry.RaydiumProgramID,
		AMM:         registry.Name(registry.RaydiumProgramID),
		Slot:        p.a.Slot(),
		Timestamp:   p.a.BlockTime(),
		Signature:   p.a.Signature(),
		Idx:         in.Idx,
		Signer:      p.a.Signers(),
	}}
}

// ParseLiquidity classifies each of Raydium's classified instructions as
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
