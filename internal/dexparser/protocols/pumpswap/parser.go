package pumpswap

import (
	"bytes"
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser decodes Pumpswap's classified instructions into trades and
// liquidity events.
type Parser struct {
	a            *adapter.Adapter
	instructions []types.ClassifiedInstruction
}

// New builds a Parser over the Pumpswap-owned classified instructions.
func New(a *adapter.Adapter, instructions []types.ClassifiedInstruction) *Parser {
	return &Parser{a: a, instructions: instructions}
}

type decodedEvent struct {
	kind       string // "buy", "sell", "createPool", "addLiquidity", "removeLiquidity"
	ci         types.ClassifiedInstruction
	buySell    BuySellEvent
	createPool CreatePoolEvent
	liquidity  LiquidityEvent
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
		case bytes.Equal(disc, BuyDiscriminator):
			ev, err := DecodeBuyEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "buy", ci: ci, buySell: ev})
		case bytes.Equal(disc, SellDiscriminator):
			ev, err := DecodeSellEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "sell", ci: ci, buySell: ev})
		case bytes.Equal(disc, CreatePoolDiscriminator):
			ev, err := DecodeCreatePoolEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "createPool", ci: ci, createPool: ev})
		case bytes.Equal(disc, AddLiquidityDiscriminator):
			ev, err := DecodeAddLiquidityEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "addLiquidity", ci: ci, liquidity: ev})
		case bytes.Equal(disc, RemoveLiquidityDiscriminator):
			ev, err := DecodeRemoveLiquidityEvent(payload)
			if err != nil {
				continue
			}
			out = append(out, decodedEvent{kind: "removeLiquidity", ci: ci, liquidity: ev})
		default:
			continue // UnknownDiscriminator: silent skip, not an error
		}
	}
	return out
}

// resolveToken looks up a token account's mint via splTokenMap; decimals
// come from splDecimalsMap for that mint, falling back to the token-info
// decimals. An account missing from splTokenMap is returned as its own
// mint, with TokenDecimals of that key.
func (p *Parser) resolveToken(tokenAccount string) (mint string, decimals uint8) {
	if info, ok := p.a.SPLTokenMap()[tokenAccount]; ok {
		mint = info.Mint
		decimals = info.Decimals
		if d, ok := p.a.SPLDecimalsMap()[mint]; ok {
			decimals = d
		}
		return mint, decimals
	}
	return tokenAccount, p.a.TokenDecimals(tokenAccount)
}

// ParseTrades decodes Buy/Sell trades from the Buy/Sell events present among
// this parser's classified instructions (spec §4.6 trade assembly).
func (p *Parser) ParseTrades() []types.TradeInfo {
	var trades []types.TradeInfo
	for _, d := range p.decodeAll() {
		switch d.kind {
		case "buy":
			trades = append(trades, p.buildTrade(d.ci, d.buySell, true))
		case "sell":
			trades = append(trades, p.buildTrade(d.ci, d.buySell, false))
		}
	}
	return trades
}

func (p *Parser) buildTrade(ci types.ClassifiedInstruction, ev BuySellEvent, isBuy bool) types.TradeInfo {
	baseMint, baseDecimals := p.resolveToken(ev.UserBaseTokenAccount)
	quoteMint, quoteDecimals := p.resolveToken(ev.UserQuoteTokenAccount)

	var inputRaw, outputRaw uint64
	var inputMint, outputMint string
	var inputDecimals, outputDecimals uint8
	var tradeType types.TradeType
	if isBuy {
		// input_amount = quote_amount_in_with_lp_fee, output_amount = base_amount_out
		inputRaw, outputRaw = ev.QuoteAmountAdjusted, ev.BaseAmount
		inputMint, outputMint = quoteMint, baseMint
		inputDecimals, outputDecimals = quoteDecimals, baseDecimals
		tradeType = types.TradeBuy
	} else {
		// input_amount = base_amount_in, output_amount = user_quote_amount_out
		inputRaw, outputRaw = ev.BaseAmount, ev.UserQuoteAmount
		inputMint, outputMint = baseMint, quoteMint
		inputDecimals, outputDecimals = baseDecimals, quoteDecimals
		tradeType = types.TradeSell
	}

	input := types.TokenAmount{Mint: inputMint, Decimals: inputDecimals,
		Amount: strconv.FormatUint(inputRaw, 10), UIAmount: ui(inputRaw, inputDecimals)}
	output := types.TokenAmount{Mint: outputMint, Decimals: outputDecimals,
		Amount: strconv.FormatUint(outputRaw, 10), UIAmount: ui(outputRaw, outputDecimals)}

	trade := types.TradeInfo{
		TradeType:   tradeType,
		Pool:        []string{ev.Pool},
		InputToken:  input,
		OutputToken: output,
		User:        ev.User,
		ProgramID:   registry.PumpswapProgramID,
		AMM:         registry.Name(registry.PumpswapProgramID),
		Slot:        p.a.Slot(),
		Timestamp:   p.a.BlockTime(),
		Signature:   p.a.Signature(),
		Idx:         ci.Idx(),
		Signer:      p.a.Signers(),
	}
	attachFees(&trade, ev, quoteMint, quoteDecimals)
	return trade
}

// attachFees builds the protocol/coinCreator fee entries. The spec's trade
// assembly rule (§4.6) and its end-to-end fee scenario both define
// amount_raw as the sum of protocol_fee and coin_creator_fee for both Buy
// and Sell; the asymmetric handling hinted at in the source material is not
// reproduced here.
func attachFees(trade *types.TradeInfo, ev BuySellEvent, quoteMint string, quoteDecimals uint8) {
	total := ev.ProtocolFee + ev.CoinCreatorFee
	dex := registry.Name(registry.PumpswapProgramID)

	fees := []types.FeeInfo{{
		Mint:      quoteMint,
		AmountRaw: strconv.FormatUint(ev.ProtocolFee, 10),
		AmountUI:  ui(ev.ProtocolFee, quoteDecimals),
		Decimals:  quoteDecimals,
		Dex:       dex,
		FeeType:   "protocol",
	}}
	if ev.CoinCreatorFee > 0 {
		fees = append(fees, types.FeeInfo{
			Mint:      quoteMint,
			AmountRaw: strconv.FormatUint(ev.CoinCreatorFee, 10),
			AmountUI:  ui(ev.CoinCreatorFee, quoteDecimals),
			Decimals:  quoteDecimals,
			Dex:       dex,
			FeeType:   "coinCreator",
			Recipient: ev.CoinCreator,
		})
	}
	trade.Fees = fees
	trade.Fee = &types.FeeInfo{
		Mint:      quoteMint,
		AmountRaw: strconv.FormatUint(total, 10),
		AmountUI:  ui(total, quoteDecimals),
		Decimals:  quoteDecimals,
		Dex:       dex,
		FeeType:   "protocol",
	}
}

// ParseLiquidity decodes CreatePool/AddLiquidity/RemoveLiquidity events into
// PoolEvent records.
func (p *Parser) ParseLiquidity() []types.PoolEvent {
	var events []types.PoolEvent
	for _, d := range p.decodeAll() {
		switch d.kind {
		case "createPool":
			ev := d.createPool
			events = append(events, types.PoolEvent{
				ProgramID: registry.PumpswapProgramID,
				EventType: types.PoolEventCreate,
				MintA:     ev.BaseMint,
				MintB:     ev.QuoteMint,
				Liquidity: strconv.FormatUint(ev.LPTokenAmountOut, 10),
				Signature: p.a.Signature(),
				Idx:       d.ci.Idx(),
				User:      ev.Creator,
			})
		case "addLiquidity":
			events = append(events, p.buildLiquidityEvent(d.ci, d.liquidity, types.PoolEventAdd))
		case "removeLiquidity":
			events = append(events, p.buildLiquidityEvent(d.ci, d.liquidity, types.PoolEventRemove))
		}
	}
	return events
}

func (p *Parser) buildLiquidityEvent(ci types.ClassifiedInstruction, ev LiquidityEvent, kind types.PoolEventType) types.PoolEvent {
	baseMint, _ := p.resolveToken(ev.UserBaseTokenAccount)
	quoteMint, _ := p.resolveToken(ev.UserQuoteTokenAccount)
	return types.PoolEvent{
		ProgramID: registry.PumpswapProgramID,
		EventType: kind,
		MintA:     baseMint,
		MintB:     quoteMint,
		Liquidity: strconv.FormatUint(ev.LPAmount, 10),
		Signature: p.a.Signature(),
		Idx:       ci.Idx(),
		User:      ev.User,
	}
}

func ui(raw uint64, decimals uint8) float64 {
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}
