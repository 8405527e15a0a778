// Package dexparser implements the top-level DexParser orchestrator (spec
// §4.8): given a transaction and a ParseConfig, it builds the adapter and
// classifier, selects and invokes the applicable protocol parsers, merges
// and orders their output, and assembles the final ParseResult.
package dexparser

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/classifier"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/dexerr"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/jupiter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/meteora"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/orca"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/pumpfun"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/pumpswap"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/raydium"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/protocols/simple"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/txutil"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Parser is the DexParser orchestrator. It owns one logger, mirroring the
// teacher's Parser.Log field; only the orchestrator itself logs, and the
// adapter, classifier and protocol parsers are not given the logger.
type Parser struct {
	log *logrus.Logger
}

// New builds a Parser with a logrus logger configured the way the
// teacher's NewTransactionParserFromTransaction does (TextFormatter,
// FullTimestamp).
func New() *Parser {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Parser{log: log}
}

// ParseAll decodes one transaction's raw JSON and returns the full
// ParseResult (spec §4.8 parse_all). On a transaction-level failure, the
// result carries state=false and msg, unless cfg.ThrowError is set, in
// which case the error is returned instead.
func (p *Parser) ParseAll(data []byte, cfg types.ParseConfig) (types.ParseResult, error) {
	raw, err := decodeRawTransaction(data)
	if err != nil {
		return p.failureOrPropagate(raw, cfg, err)
	}
	result, err := p.parseOne(raw, cfg)
	if err != nil {
		return p.failureOrPropagate(raw, cfg, err)
	}
	return result, nil
}

// ParseTrades returns only the decoded trades (spec §4.8 parse_trades).
func (p *Parser) ParseTrades(data []byte, cfg types.ParseConfig) ([]types.TradeInfo, error) {
	result, err := p.ParseAll(data, cfg)
	if err != nil {
		return nil, err
	}
	return result.Trades, nil
}

// ParseLiquidity returns only the decoded liquidity events (spec §4.8
// parse_liquidity).
func (p *Parser) ParseLiquidity(data []byte, cfg types.ParseConfig) ([]types.PoolEvent, error) {
	result, err := p.ParseAll(data, cfg)
	if err != nil {
		return nil, err
	}
	return result.Liquidities, nil
}

// ParseTransfers returns only the materialized transfers (spec §4.8
// parse_transfers).
func (p *Parser) ParseTransfers(data []byte, cfg types.ParseConfig) ([]types.TransferData, error) {
	result, err := p.ParseAll(data, cfg)
	if err != nil {
		return nil, err
	}
	return result.Transfers, nil
}

func decodeRawTransaction(data []byte) (*adapter.RawTransaction, error) {
	var raw adapter.RawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, dexerr.SchemaMismatch("transaction", err)
	}
	return &raw, nil
}

// failureOrPropagate implements the §7 escalation policy: when
// cfg.ThrowError is set the error propagates to the caller; otherwise it is
// captured into a failed ParseResult carrying whatever signature is known.
func (p *Parser) failureOrPropagate(raw *adapter.RawTransaction, cfg types.ParseConfig, err error) (types.ParseResult, error) {
	if cfg.ThrowError {
		return types.ParseResult{}, err
	}
	sig := ""
	if raw != nil {
		sig = raw.Signature
	}
	p.log.WithError(err).WithField("signature", sig).Warn("transaction parse failed")
	return types.ParseResult{
		State:     false,
		Msg:       err.Error(),
		Signature: sig,
		TxStatus:  types.TxUnknown,
		Trades:    []types.TradeInfo{},
		Liquidities: []types.PoolEvent{},
		Transfers:   []types.TransferData{},
		MemeEvents:  []types.MemeEvent{},
	}, nil
}

// parseOne runs the full pipeline over an already-decoded transaction:
// adapter -> classifier -> per-protocol parsers -> merge -> ParseResult.
func (p *Parser) parseOne(raw *adapter.RawTransaction, cfg types.ParseConfig) (types.ParseResult, error) {
	a, err := adapter.New(raw, cfg)
	if err != nil {
		return types.ParseResult{}, err
	}
	c := classifier.New(a)
	dex := txutil.GetDexInfo(c)
	transfersByProgram := txutil.GetTransferActions(a, c)

	var allTransfers []types.TransferData
	for _, list := range transfersByProgram {
		allTransfers = append(allTransfers, list...)
	}
	sortByIdx(allTransfers, func(t types.TransferData) string { return t.Idx })

	var trades []types.TradeInfo
	var liquidities []types.PoolEvent
	var memeEvents []types.MemeEvent

	for _, programID := range p.resolvePrograms(c, cfg) {
		instructions := c.GetInstructions(programID)
		transfers := transfersByProgram[programID]

		switch programID {
		case registry.PumpfunProgramID:
			pf := pumpfun.New(a, instructions)
			trades = append(trades, pf.ParseTrades(c.Flatten())...)
			memeEvents = append(memeEvents, pf.ParseMemeEvents()...)
		case registry.PumpswapProgramID:
			ps := pumpswap.New(a, instructions)
			trades = append(trades, ps.ParseTrades()...)
			liquidities = append(liquidities, ps.ParseLiquidity()...)
		case registry.JupiterProgramID:
			jp := jupiter.New(a, instructions, transfers)
			trades = append(trades, jp.ParseTrades()...)
		case registry.RaydiumProgramID:
			rp := raydium.New(a, instructions, transfers)
			trades = append(trades, rp.ParseTrades()...)
			liquidities = append(liquidities, rp.ParseLiquidity()...)
		case registry.OrcaProgramID:
			op := orca.New(a, instructions, transfers)
			trades = append(trades, op.ParseTrades()...)
			liquidities = append(liquidities, op.ParseLiquidity()...)
		case registry.MeteoraProgramID:
			mp := meteora.New(a, instructions, transfers)
			trades = append(trades, mp.ParseTrades()...)
			liquidities = append(liquidities, mp.ParseLiquidity()...)
		default:
			if !cfg.TryUnknownDex {
				continue
			}
			p.log.WithField("programId", programID).Debug("trying unknown dex via simple fallback parsers")
			lp := simple.NewLiquidityParser(a, instructions, transfers)
			liquidities = append(liquidities, lp.ParseLiquidity()...)
			mp := simple.NewMemeParser(a, transfers)
			memeEvents = append(memeEvents, mp.ParseMemeEvents()...)
			if trade := txutil.ProcessSwapData(a, transfers, dex); trade != nil {
				trades = append(trades, *trade)
			}
		}
	}

	for i := range trades {
		txutil.AttachTradeFee(a, &trades[i])
		if trades[i].User == "" {
			trades[i].User = a.Signer()
		}
		if len(trades[i].Signer) == 0 {
			trades[i].Signer = a.Signers()
		}
	}
	txutil.AttachUserBalanceToLPs(a.Signer(), liquidities)

	sortByIdx(trades, func(t types.TradeInfo) string { return t.Idx })
	sortByIdx(liquidities, func(e types.PoolEvent) string { return e.Idx })
	sortByIdx(memeEvents, func(e types.MemeEvent) string { return e.Idx })

	status := a.TxStatus()
	if status == types.TxFailed {
		trades = nil
		liquidities = nil
		memeEvents = nil
	}

	result := types.ParseResult{
		State:              true,
		Fee:                a.Fee(),
		Trades:             emptyIfNil(trades),
		Liquidities:        emptyPoolsIfNil(liquidities),
		Transfers:          emptyTransfersIfNil(allTransfers),
		SolBalanceChange:   a.GetAccountSolBalanceChanges(false),
		TokenBalanceChange: a.GetAccountTokenBalanceChanges(false),
		MemeEvents:         emptyMemesIfNil(memeEvents),
		Slot:               a.Slot(),
		Timestamp:          a.BlockTime(),
		Signature:          a.Signature(),
		Signer:             a.Signers(),
		ComputeUnits:       a.ComputeUnits(),
		TxStatus:           status,
	}
	if cfg.AggregateTrades {
		result.AggregateTrade = aggregateTrades(trades)
	}
	return result, nil
}

// resolvePrograms applies step 2 of §4.8: keep only cfg.ProgramIDs when
// set, then subtract cfg.IgnoreProgramIDs and system/skip programs
// (already filtered out by classifier.GetAllProgramIDs).
func (p *Parser) resolvePrograms(c *classifier.Classifier, cfg types.ParseConfig) []string {
	ignored := make(map[string]struct{}, len(cfg.IgnoreProgramIDs))
	for _, id := range cfg.IgnoreProgramIDs {
		ignored[id] = struct{}{}
	}

	var allowed map[string]struct{}
	if len(cfg.ProgramIDs) > 0 {
		allowed = make(map[string]struct{}, len(cfg.ProgramIDs))
		for _, id := range cfg.ProgramIDs {
			allowed[id] = struct{}{}
		}
	}

	var out []string
	for _, id := range c.GetAllProgramIDs() {
		if _, skip := ignored[id]; skip {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[id]; !ok {
				continue
			}
		}
		out = append(out, id)
	}
	return out
}

func emptyIfNil(v []types.TradeInfo) []types.TradeInfo {
	if v == nil {
		return []types.TradeInfo{}
	}
	return v
}

func emptyPoolsIfNil(v []types.PoolEvent) []types.PoolEvent {
	if v == nil {
		return []types.PoolEvent{}
	}
	return v
}

func emptyTransfersIfNil(v []types.TransferData) []types.TransferData {
	if v == nil {
		return []types.TransferData{}
	}
	return v
}

func emptyMemesIfNil(v []types.MemeEvent) []types.MemeEvent {
	if v == nil {
		return []types.MemeEvent{}
	}
	return v
}

// aggregateTrades folds trades sharing an (input_mint, output_mint) pair
// into a single synthetic trade (spec §4.8 step 7, §9 open question (c)):
// the first pair (in idx order) with >= 2 participants is chosen since
// ParseResult carries a single aggregate_trade field.
func aggregateTrades(trades []types.TradeInfo) *types.TradeInfo {
	type group struct {
		key    [2]string
		trades []types.TradeInfo
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, t := range trades {
		key := t.InputToken.Mint + "|" + t.OutputToken.Mint
		g, ok := groups[key]
		if !ok {
			g = &group{key: [2]string{t.InputToken.Mint, t.OutputToken.Mint}}
			groups[key] = g
			order = append(order, key)
		}
		g.trades = append(g.trades, t)
	}

	for _, key := range order {
		g := groups[key]
		if len(g.trades) < 2 {
			continue
		}
		return buildAggregate(g.trades)
	}
	return nil
}

func buildAggregate(trades []types.TradeInfo) *types.TradeInfo {
	var inSum, outSum uint64
	decimalsIn := trades[0].InputToken.Decimals
	decimalsOut := trades[0].OutputToken.Decimals

	ammSeen := make(map[string]struct{})
	var amms []string
	var route []string
	for _, t := range trades {
		inSum += mustUint64(t.InputToken.Amount)
		outSum += mustUint64(t.OutputToken.Amount)
		if t.AMM != "" {
			if _, ok := ammSeen[t.AMM]; !ok {
				ammSeen[t.AMM] = struct{}{}
				amms = append(amms, t.AMM)
			}
		}
		route = append(route, t.Idx)
	}

	first := trades[0]
	return &types.TradeInfo{
		TradeType: types.TradeSwap,
		InputToken: types.TokenAmount{
			Mint: first.InputToken.Mint, Decimals: decimalsIn,
			Amount: strconv.FormatUint(inSum, 10), UIAmount: uiAmount(inSum, decimalsIn),
		},
		OutputToken: types.TokenAmount{
			Mint: first.OutputToken.Mint, Decimals: decimalsOut,
			Amount: strconv.FormatUint(outSum, 10), UIAmount: uiAmount(outSum, decimalsOut),
		},
		AMMs:      amms,
		Route:     joinStrings(route, ","),
		Slot:      first.Slot,
		Timestamp: first.Timestamp,
		Signature: first.Signature,
		Idx:       first.Idx,
		Signer:    first.Signer,
	}
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

func mustUint64(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func uiAmount(raw uint64, decimals uint8) float64 {
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}

// sortByIdx sorts s ascending by the (outer, inner) numeric order the idx
// string's last two '-'-delimited components encode (spec §4.8 step 6).
// Taking the last two components rather than splitting once tolerates
// AttachUserBalanceToLPs's "<signer>-<idx>" prefix, since base58 signer
// strings never themselves contain '-'.
func sortByIdx[T any](s []T, key func(T) string) {
	sort.SliceStable(s, func(i, j int) bool {
		oi, ii := splitIdx(key(s[i]))
		oj, ij := splitIdx(key(s[j]))
		if oi != oj {
			return oi < oj
		}
		return ii < ij
	})
}

func splitIdx(s string) (outer, inner int) {
	last, rest := -1, -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' {
			if last == -1 {
				last = i
			} else {
				rest = i
				break
			}
		}
	}
	switch {
	case last == -1:
		outer, _ = strconv.Atoi(s)
		return outer, 0
	case rest == -1:
		outer, _ = strconv.Atoi(s[:last])
		inner, _ = strconv.Atoi(s[last+1:])
		return outer, inner
	default:
		outer, _ = strconv.Atoi(s[rest+1 : last])
		inner, _ = strconv.Atoi(s[last+1:])
		return outer, inner
	}
}

// ParseBlockRaw parses a block given as a JSON array of raw transactions,
// each going through JSON -> SolanaTransaction conversion before parseOne
// (spec §4.8 parse_block_raw). Output order mirrors input order regardless
// of cfg.Concurrency (spec §5).
func (p *Parser) ParseBlockRaw(data []byte, cfg types.ParseConfig) (types.BlockParseResult, error) {
	var rawTxs []json.RawMessage
	if err := json.Unmarshal(data, &rawTxs); err != nil {
		return types.BlockParseResult{}, dexerr.SchemaMismatch("block", err)
	}
	return p.parseBlock(rawTxs, cfg)
}

// blockEnvelope is the "block object with a transactions field" shape §6
// accepts for parse_block_parsed.
type blockEnvelope struct {
	Transactions []json.RawMessage `json:"transactions"`
}

// ParseBlockParsed parses a block given either as a JSON array of
// transactions or as an object carrying a "transactions" field (spec §6,
// §4.8 parse_block_parsed).
func (p *Parser) ParseBlockParsed(data []byte, cfg types.ParseConfig) (types.BlockParseResult, error) {
	var asArray []json.RawMessage
	if err := json.Unmarshal(data, &asArray); err == nil {
		return p.parseBlock(asArray, cfg)
	}
	var envelope blockEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return types.BlockParseResult{}, dexerr.SchemaMismatch("block", err)
	}
	return p.parseBlock(envelope.Transactions, cfg)
}

func (p *Parser) parseBlock(rawTxs []json.RawMessage, cfg types.ParseConfig) (types.BlockParseResult, error) {
	results := make([]types.ParseResult, len(rawTxs))

	if cfg.Concurrency <= 1 {
		for i, tx := range rawTxs {
			result, err := p.ParseAll(tx, cfg)
			if err != nil {
				return types.BlockParseResult{}, err
			}
			results[i] = result
		}
		return types.BlockParseResult{Transactions: results}, nil
	}

	errs := make([]error, len(rawTxs))
	sem := make(chan struct{}, cfg.Concurrency)
	var wg sync.WaitGroup
	for i, tx := range rawTxs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, tx json.RawMessage) {
			defer wg.Done()
			defer func() { <-sem }()
			result, err := p.ParseAll(tx, cfg)
			results[i] = result
			errs[i] = err
		}(i, tx)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return types.BlockParseResult{}, err
		}
	}
	return types.BlockParseResult{Transactions: results}, nil
}
