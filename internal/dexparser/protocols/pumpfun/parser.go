package pumpfun

import (
	"bytes"
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// solDecimals / tokenDecimals are the fixed decimal counts the bonding
// curve uses regardless of on-chain mint metadata (spec §4.6).
const (
	solDecimals   = 9
	tokenDecimals = 6
)

// Parser decodes Pumpfun's classified instructions into trades and meme
// events.
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
}

// New builds a Parser over the Pumpfun-owned classified instructions.
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction) *Parser {
	return &Parser{a: a, instructions: instructions}
}

type decodedEvent struct {
	kind     string // "trade", "create", "complete", "migrate"
	ci       types.ClassifiedInstruction
	trade    TradeEvent
	create   CreateEvent
	complete CompleteEvent
	migrate  MigrateEvent
}

func (p *Parser) decodeAll() []decodedEvent {
	var out []decodedEvent
	for _, ci := range p.instructions {
		data := ci.Instruction.Data
		if len(data) < 16 {
			continue
		}
		disc := data[:16]
		payload := data[16:]
		switch {
		case bytes.Equal(disc, TradeDiscriminator):
			ev, err := DecodeTradeEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "trade", ci: ci, trade: ev})
		case bytes.Equal(disc, CreateDiscriminator):
			ev, err := DecodeCreateEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "create", ci: ci, create: ev})
		case bytes.Equal(disc, CompleteDiscriminator):
			ev, err := DecodeCompleteEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "complete", ci: ci, complete: ev})
		case bytes.Equal(disc, MigrateDiscriminator):
			ev, err := DecodeMigrateEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "migrate", ci: ci, migrate: ev})
		default:
			continue // UnknownDiscriminator: silent skip, not an error
		}
	}
	return out
}

// bondingCurveFor looks up the previous classified instruction sharing the
// same (outer_index, inner_index) and returns its 4th account, when present
// (spec §4.6).
func bondingCurveFor(all []types.ClassifiedInstruction, target types.ClassifiedInstruction) string {
	for i, ci := range all {
		if ci.OuterIndex != target.OuterIndex || !sameInner(ci.InnerIndex, target.InnerIndex) {
			continue
		}
		if i == 0 {
			continue
		}
		prev := all[i-1]
		if len(prev.Instruction.Accounts) >= 4 {
			return prev.Instruction.Accounts[3]
		}
	}
	return ""
}

func sameInner(a, b *int) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ParseTrades decodes Buy/Sell trades from the Trade events present among
// this parser's classified instructions.
func (p *Parser) ParseTrades(all []types.ClassifiedInstruction) []types.TradeInfo {
	var trades []types.TradeInfo
	for _, d := range p.decodeAll() {
		if d.kind != "trade" {
			continue
		}
		trades = append(trades, p.buildTrade(d.ci, d.trade, all))
	}
	return trades
}

func (p *Parser) buildTrade(ci types.ClassifiedInstruction, ev TradeEvent, all []types.ClassifiedInstruction) types.TradeInfo {
	quote := types.TokenAmount{Mint: registry.NativeSOLMint, Decimals: solDecimals,
		Amount: strconv.FormatUint(ev.SolAmount, 10), UIAmount: ui(ev.SolAmount, solDecimals)}
	base := types.TokenAmount{Mint: ev.Mint, Decimals: tokenDecimals,
		Amount: strconv.FormatUint(ev.TokenAmount, 10), UIAmount: ui(ev.TokenAmount, tokenDecimals)}

	var input, output types.TokenAmount
	var tradeType types.TradeType
	if ev.IsBuy {
		input, output = quote, base
		tradeType = types.TradeBuy
	} else {
		input, output = base, quote
		tradeType = types.TradeSell
	}
	if input.Mint != registry.NativeSOLMint && output.Mint != registry.NativeSOLMint {
		tradeType = types.TradeSwap
	}

	trade := types.TradeInfo{
		TradeType:   tradeType,
		InputToken:  input,
		OutputToken: output,
		User:        ev.User,
		ProgramID:   registry.PumpfunProgramID,
		AMM:         registry.Name(registry.PumpfunProgramID),
		Slot:        p.a.Slot(),
		Timestamp:   p.a.BlockTime(),
		Signature:   p.a.Signature(),
		Idx:         ci.Idx(),
		Signer:      p.a.Signers(),
	}
	if bc := bondingCurveFor(all, ci); bc != "" {
		trade.Pool = []string{bc}
	}
	if ev.HasExtended && ev.Fee > 0 {
		trade.Fee = &types.FeeInfo{
			Mint:      registry.NativeSOLMint,
			AmountRaw: strconv.FormatUint(ev.Fee, 10),
			AmountUI:  ui(ev.Fee, solDecimals),
			Decimals:  solDecimals,
			Dex:       registry.Name(registry.PumpfunProgramID),
			FeeType:   "protocol",
		}
	}
	return trade
}

// ParseMemeEvents decodes Create/Complete/Migrate/Trade(Buy/Sell) events
// into the unified MemeEvent shape.
func (p *Parser) ParseMemeEvents() []types.MemeEvent {
	var events []types.MemeEvent
	for _, d := range p.decodeAll() {
		switch d.kind {
		case "create":
			events = append(events, types.MemeEvent{
				EventType:    types.MemeCreate,
				BaseMint:     d.create.Mint,
				User:         d.create.User,
				BondingCurve: d.create.BondingCurve,
				Signature:    p.a.Signature(),
				Slot:         p.a.Slot(),
				Timestamp:    d.create.Timestamp,
				Idx:          d.ci.Idx(),
			})
		case "complete":
			events = append(events, types.MemeEvent{
				EventType:    types.MemeComplete,
				BaseMint:     d.complete.Mint,
				User:         d.complete.User,
				BondingCurve: d.complete.BondingCurve,
				Signature:    p.a.Signature(),
				Slot:         p.a.Slot(),
				Timestamp:    d.complete.Timestamp,
				Idx:          d.ci.Idx(),
			})
		case "migrate":
			events = append(events, types.MemeEvent{
				EventType:    types.MemeMigrate,
				BaseMint:     d.migrate.Mint,
				QuoteMint:    registry.NativeSOLMint,
				User:         d.migrate.User,
				BondingCurve: d.migrate.BondingCurve,
				Pool:         d.migrate.Pool,
				BaseTokens:   strconv.FormatUint(d.migrate.MintAmount, 10),
				QuoteTokens:  strconv.FormatUint(d.migrate.SOLAmount, 10),
				Signature:    p.a.Signature(),
				Slot:         p.a.Slot(),
				Timestamp:    d.migrate.Timestamp,
				Idx:          d.ci.Idx(),
			})
		case "trade":
			eventType := types.MemeBuy
			if !d.trade.IsBuy {
				eventType = types.MemeSell
			}
			events = append(events, types.MemeEvent{
				EventType:   eventType,
				BaseMint:    d.trade.Mint,
				QuoteMint:   registry.NativeSOLMint,
				User:        d.trade.User,
				BaseTokens:  strconv.FormatUint(d.trade.TokenAmount, 10),
				QuoteTokens: strconv.FormatUint(d.trade.SolAmount, 10),
				VirtualSOL:  strconv.FormatUint(d.trade.VirtualSOLReserves, 10),
				VirtualToken: strconv.FormatUint(d.trade.VirtualTokenReserves, 10),
				RealSOL:     strconv.FormatUint(d.trade.RealSOLReserves, 10),
				RealToken:   strconv.FormatUint(d.trade.RealTokenReserves, 10),
				Signature:   p.a.Signature(),
				Slot:        p.a.Slot(),
				Timestamp:   d.trade.Timestamp,
				Idx:         d.ci.Idx(),
			})
		}
	}
	return events
}

func ui(raw uint64, decimals uint8) float64 {
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}
