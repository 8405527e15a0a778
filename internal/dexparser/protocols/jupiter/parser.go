package jupiter

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser assembles a single aggregated TradeInfo out of every Jupiter route
// leg in a transaction (spec.md is silent on Jupiter internals; see
// SPEC_FULL.md's Jupiter supplement).
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
	transfers    []types.TransferData
}

// New builds a Parser over the Jupiter-owned classified instructions plus
// the transfer legs TransactionUtils already attributed to Jupiter's outer
// instruction (used as the CPI-sweep fallback).
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction, transfers []types.TransferData) *Parser {
	return &Parser{a: a, instructions: instructions, transfers: transfers}
}

type leg struct {
	inputMint, outputMint         string
	inputAmount, outputAmount     uint64
	inputDecimals, outputDecimals uint8
	idx                           string
}

func (p *Parser) decodeRouteEvents() []leg {
	var legs []leg
	disc := RouteEventDiscriminator[:]
	for _, ci := range p.instructions {
		data := ci.Instruction.Data
		if len(data) < 16 || !bytes.Equal(data[:16], disc) {
			continue
		}
		ev, err := DecodeSwapEvent(data[16:])
		if err != nil {
			continue
		}
		legs = append(legs, leg{
			inputMint:      ev.InputMint.String(),
			outputMint:     ev.OutputMint.String(),
			inputAmount:    ev.InputAmount,
			outputAmount:   ev.OutputAmount,
			inputDecimals:  p.a.TokenDecimals(ev.InputMint.String()),
			outputDecimals: p.a.TokenDecimals(ev.OutputMint.String()),
			idx:            ci.Idx(),
		})
	}
	return legs
}

// transferLegs builds a single leg from the first and last SPL transfers
// CPI'd under the route instruction: the first leg is conventionally the
// user-to-pool input, the last the pool-to-user output (mirrors the
// teacher's raw-transfer harvest, simplified into the same leg shape the
// route-event path produces so both feed the same aggregation).
func (p *Parser) transferLegs() []leg {
	if len(p.transfers) < 2 {
		return nil
	}
	first, last := p.transfers[0], p.transfers[len(p.transfers)-1]
	return []leg{{
		inputMint:      first.Info.Mint,
		outputMint:     last.Info.Mint,
		inputAmount:    mustUint64(first.Amount.Amount),
		outputAmount:   mustUint64(last.Amount.Amount),
		inputDecimals:  first.Amount.Decimals,
		outputDecimals: last.Amount.Decimals,
		idx:            first.Idx,
	}}
}

func mustUint64(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseTrades decodes RouteV2 events into legs when present; otherwise it
// uses the single first/last-transfer leg from transferLegs. The legs are
// then aggregated into net per-mint flow, mirroring the teacher's two-path
// processJupiterSwaps.
func (p *Parser) ParseTrades() []types.TradeInfo {
	legs := p.decodeRouteEvents()
	if len(legs) == 0 {
		legs = p.transferLegs()
	}
	if len(legs) == 0 {
		return nil
	}

	type agg struct {
		inSum, outSum uint64
		decimals      uint8
	}
	perMint := make(map[string]*agg)
	ensure := func(mint string, decimals uint8) *agg {
		a, ok := perMint[mint]
		if !ok {
			a = &agg{decimals: decimals}
			perMint[mint] = a
		} else if a.decimals == 0 && decimals != 0 {
			a.decimals = decimals
		}
		return a
	}

	minIdx := legs[0].idx
	for _, l := range legs {
		ensure(l.inputMint, l.inputDecimals).inSum += l.inputAmount
		ensure(l.outputMint, l.outputDecimals).outSum += l.outputAmount
		if lessIdx(l.idx, minIdx) {
			minIdx = l.idx
		}
	}
	if len(perMint) < 2 {
		return nil
	}

	type netRow struct {
		mint     string
		decimals uint8
		amount   uint64
		net      int64
	}
	rows := make([]netRow, 0, len(perMint))
	for mint, a := range perMint {
		rows = append(rows, netRow{mint: mint, decimals: a.decimals, net: int64(a.outSum) - int64(a.inSum)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].net < rows[j].net })
	inRow := rows[0]
	inRow.amount = perMint[inRow.mint].inSum
	outRow := rows[len(rows)-1]
	outRow.amount = perMint[outRow.mint].outSum

	if inRow.mint == outRow.mint {
		mints := make([]string, 0, len(perMint))
		for m := range perMint {
			mints = append(mints, m)
		}
		sort.Strings(mints)
		if len(mints) < 2 {
			return nil
		}
		inRow = netRow{mint: mints[0], decimals: perMint[mints[0]].decimals, amount: perMint[mints[0]].inSum}
		outRow = netRow{mint: mints[len(mints)-1], decimals: perMint[mints[len(mints)-1]].decimals, amount: perMint[mints[len(mints)-1]].outSum}
	}

	trade := types.TradeInfo{
		TradeType: types.TradeSwap,
		InputToken: types.TokenAmount{Mint: inRow.mint, Decimals: inRow.decimals,
			Amount: strconv.FormatUint(inRow.amount, 10), UIAmount: ui(inRow.amount, inRow.decimals)},
		OutputToken: types.TokenAmount{Mint: outRow.mint, Decimals: outRow.decimals,
			Amount: strconv.FormatUint(outRow.amount, 10), UIAmount: ui(outRow.amount, outRow.decimals)},
		ProgramID: registry.JupiterProgramID,
		AMM:       registry.Name(registry.JupiterProgramID),
		Slot:      p.a.Slot(),
		Timestamp: p.a.BlockTime(),
		Signature: p.a.Signature(),
		Idx:       minIdx,
		Signer:    p.a.Signers(),
	}
	return []types.TradeInfo{trade}
}

// lessIdx compares two "outer-inner" idx strings by the numeric (outer,
// inner) order defined in spec §4.8.
func lessIdx(a, b string) bool {
	ao, ai := splitIdx(a)
	bo, bi := splitIdx(b)
	if ao != bo {
		return ao < bo
	}
	return ai < bi
}

func splitIdx(s string) (outer, inner int) {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			outer, _ = strconv.Atoi(s[:i])
			inner, _ = strconv.Atoi(s[i+1:])
			return outer, inner
		}
	}
	outer, _ = strconv.Atoi(s)
	return outer, 0
}

func ui(raw uint64, decimals uint8) float64 {
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}
