// Package meteora decodes instructions of the Meteora program
// (registry.MeteoraProgramID) into trades and liquidity events; other
// Meteora pool programs are not dispatched here. It uses the same transfer-flow/ammops
// approach as raydium and orca, plus the teacher's weak "assume remove"
// fallback for the Meteora family when no stronger signal matched
// (liquidity_ops.go's hasMeteoraRemoveContext).
package meteora

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/ammops"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser decodes Meteora's classified instructions into trades and
// liquidity events.
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
	transfers    []types.TransferData
}

// New builds a Parser over the Meteora-owned classified instructions and
// the transfer legs TransactionUtils attributed to Meteora's outer
// instruction.
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction, transfers []types.TransferData) *Parser {
	return &Parser{a: a, instructions: instructions, transfers: transfers}
}

// ParseTrades synthesizes a single Swap TradeInfo out of the first and last
// transfer legs CPI'd under Meteora (txutil.ProcessSwapData, by contrast,
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
		ProgramID:   registry.MeteoraProgramID,
		AMM:         registry.Name(registry.MeteoraProgramID),
		Slot:        p.a.Slot(),
		Timestamp:   p.a.BlockTime(),
		Signature:   p.a.Signature(),
		Idx:         in.Idx,
		Signer:      p.a.Signers(),
	}}
}

// ParseLiquidity classifies each of Meteora's classified instructions as
// Add/Remove liquidity via ammops.Classify, falling back to Remove when the
// Meteora family is present but no stronger signal matched (the teacher's
// weak hasMeteoraRemoveContext parity rule).
func (p *Parser) ParseLiquidity() []types.PoolEvent {
	var events []types.PoolEvent
	for _, ci := range p.instructions {
		dir := ammops.Classify(ci, p.transfers)
		if dir == ammops.DirectionNone {
			if !ammops.IsMeteoraFamily(ci.ProgramID) {
				continue
			}
			dir = ammops.DirectionRemove
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
