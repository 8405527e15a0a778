// Package types defines the data contracts shared across the parsing
// pipeline (spec §3). Every sequence field here is ordered by the idx rule
// from §4.8 unless documented otherwise.
package types

import "strconv"

// TradeType enumerates the economic direction of a decoded swap.
type TradeType string

const (
	TradeBuy  TradeType = "Buy"
	TradeSell TradeType = "Sell"
	TradeSwap TradeType = "Swap"
)

// PoolEventType enumerates the liquidity actions a PoolEvent may describe.
type PoolEventType string

const (
	PoolEventCreate PoolEventType = "CreatePool"
	PoolEventAdd    PoolEventType = "AddLiquidity"
	PoolEventRemove PoolEventType = "RemoveLiquidity"
)

// MemeEventType enumerates the Pumpfun/Pumpswap launch-lifecycle events.
type MemeEventType string

const (
	MemeCreate   MemeEventType = "Create"
	MemeBuy      MemeEventType = "Buy"
	MemeSell     MemeEventType = "Sell"
	MemeComplete MemeEventType = "Complete"
	MemeMigrate  MemeEventType = "Migrate"
)

// TxStatus is the three-state transaction outcome (spec §4.3).
type TxStatus string

const (
	TxSuccess TxStatus = "Success"
	TxFailed  TxStatus = "Failed"
	TxUnknown TxStatus = "Unknown"
)

// TokenAmount is the universal value type for an on-chain amount.
type TokenAmount struct {
	Mint      string  `json:"mint"`
	Amount    string  `json:"amount"`
	Decimals  uint8   `json:"decimals"`
	UIAmount  float64 `json:"uiAmount"`
}

// BalanceChange is the pre/post/delta triple produced by the adapter's
// balance-change builders. Change is always post - pre in raw units.
type BalanceChange struct {
	Pre    TokenAmount `json:"pre"`
	Post   TokenAmount `json:"post"`
	Change TokenAmount `json:"change"`
}

// ParsedPayload is the optional decoded {type, info} shape parsed-encoding
// instructions carry directly from the RPC layer.
type ParsedPayload struct {
	Type string         `json:"type"`
	Info map[string]any `json:"info"`
}

// SolanaInstruction is a single outer or inner instruction, normalized by
// the adapter so downstream code never distinguishes compiled vs. parsed
// shapes (spec §9 "Dual instruction encodings").
type SolanaInstruction struct {
	ProgramID string         `json:"programId"`
	Accounts  []string       `json:"accounts"`
	Data      []byte         `json:"data"`
	Parsed    *ParsedPayload `json:"parsed,omitempty"`
}

// InnerInstruction groups the instructions a single outer instruction
// triggered via CPI.
type InnerInstruction struct {
	Index        int                 `json:"index"`
	Instructions []SolanaInstruction `json:"instructions"`
}

// ClassifiedInstruction tags a SolanaInstruction with its position in the
// outer/inner instruction tree. InnerIndex is nil for outer instructions.
type ClassifiedInstruction struct {
	ProgramID   string
	OuterIndex  int
	InnerIndex  *int
	Instruction SolanaInstruction
}

// Idx renders the "<outer>-<inner>" ordering key described in spec §4.6/§4.8.
func (c ClassifiedInstruction) Idx() string {
	inner := 0
	if c.InnerIndex != nil {
		inner = *c.InnerIndex
	}
	return formatIdx(c.OuterIndex, inner)
}

// TokenInfo is a per-account snapshot of SPL-token identity and balances.
type TokenInfo struct {
	Mint            string  `json:"mint"`
	Decimals        uint8   `json:"decimals"`
	AmountRaw       string  `json:"amountRaw"`
	AmountUI        float64 `json:"amountUi"`
	Authority       string  `json:"authority"`
	Source          string  `json:"source"`
	Destination     string  `json:"destination"`
	SourceOwner     string  `json:"sourceOwner"`
	DestinationOwner string `json:"destinationOwner"`
	PreBalance      string  `json:"preBalance"`
	PostBalance     string  `json:"postBalance"`
}

// TransferData is one materialized SPL-token (or SOL) transfer.
type TransferData struct {
	ProgramID string      `json:"programId"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Amount    TokenAmount `json:"amount"`
	Idx       string      `json:"idx"`
	Info      TokenInfo   `json:"info"`
}

// DexInfo identifies the dominant DEX program for a transaction.
type DexInfo struct {
	ProgramID string `json:"programId,omitempty"`
	AMM       string `json:"amm,omitempty"`
	Route     string `json:"route,omitempty"`
}

// FeeInfo describes an economic fee attached to a trade.
type FeeInfo struct {
	Mint      string  `json:"mint"`
	AmountRaw string  `json:"amountRaw"`
	AmountUI  float64 `json:"amountUi"`
	Decimals  uint8   `json:"decimals"`
	Dex       string  `json:"dex,omitempty"`
	FeeType   string  `json:"feeType,omitempty"`
	Recipient string  `json:"recipient,omitempty"`
}

// TradeInfo is emitted once per decoded swap.
type TradeInfo struct {
	TradeType   TradeType     `json:"tradeType"`
	Pool        []string      `json:"pool,omitempty"`
	InputToken  TokenAmount   `json:"inputToken"`
	OutputToken TokenAmount   `json:"outputToken"`
	Fee         *FeeInfo      `json:"fee,omitempty"`
	Fees        []FeeInfo     `json:"fees,omitempty"`
	User        string        `json:"user,omitempty"`
	ProgramID   string        `json:"programId,omitempty"`
	AMM         string        `json:"amm,omitempty"`
	AMMs        []string      `json:"amms,omitempty"`
	Route       string        `json:"route,omitempty"`
	Slot        uint64        `json:"slot"`
	Timestamp   int64         `json:"timestamp"`
	Signature   string        `json:"signature"`
	Idx         string        `json:"idx"`
	Signer      []string      `json:"signer,omitempty"`
}

// PoolEvent is emitted per decoded liquidity action.
type PoolEvent struct {
	ProgramID string        `json:"programId"`
	EventType PoolEventType `json:"eventType"`
	MintA     string        `json:"mintA"`
	MintB     string        `json:"mintB"`
	Liquidity string        `json:"liquidity"`
	Signature string        `json:"signature"`
	Idx       string        `json:"idx"`
	User      string        `json:"user,omitempty"`
}

// MemeEvent is emitted per Pumpfun/Pumpswap launch-lifecycle event.
type MemeEvent struct {
	EventType     MemeEventType `json:"eventType"`
	BaseMint      string        `json:"baseMint"`
	QuoteMint     string        `json:"quoteMint,omitempty"`
	User          string        `json:"user"`
	BaseTokens    string        `json:"baseTokens,omitempty"`
	QuoteTokens   string        `json:"quoteTokens,omitempty"`
	Fee           *FeeInfo      `json:"fee,omitempty"`
	Pool          string        `json:"pool,omitempty"`
	BondingCurve  string        `json:"bondingCurve,omitempty"`
	VirtualSOL    string        `json:"virtualSolReserves,omitempty"`
	VirtualToken  string        `json:"virtualTokenReserves,omitempty"`
	RealSOL       string        `json:"realSolReserves,omitempty"`
	RealToken     string        `json:"realTokenReserves,omitempty"`
	Signature     string        `json:"signature"`
	Slot          uint64        `json:"slot"`
	Timestamp     int64         `json:"timestamp"`
	Idx           string        `json:"idx"`
}

// ParseResult is the final output of parsing one transaction.
type ParseResult struct {
	State             bool                             `json:"state"`
	Fee               TokenAmount                      `json:"fee"`
	AggregateTrade    *TradeInfo                        `json:"aggregateTrade,omitempty"`
	Trades            []TradeInfo                       `json:"trades"`
	Liquidities       []PoolEvent                        `json:"liquidities"`
	Transfers         []TransferData                     `json:"transfers"`
	SolBalanceChange  map[string]BalanceChange            `json:"solBalanceChange,omitempty"`
	TokenBalanceChange map[string]map[string]BalanceChange `json:"tokenBalanceChange"`
	MemeEvents        []MemeEvent                        `json:"memeEvents"`
	Slot              uint64                             `json:"slot"`
	Timestamp         int64                              `json:"timestamp"`
	Signature         string                             `json:"signature"`
	Signer            []string                           `json:"signer"`
	ComputeUnits      uint64                             `json:"computeUnits,omitempty"`
	TxStatus          TxStatus                            `json:"txStatus"`
	Msg               string                             `json:"msg,omitempty"`
}

// BlockParseResult is the output of parsing a block of transactions; order
// mirrors the input transaction index (spec §5).
type BlockParseResult struct {
	Transactions []ParseResult `json:"transactions"`
}

// ParseConfig tunes orchestration behavior (spec §4.8).
type ParseConfig struct {
	ProgramIDs       []string
	IgnoreProgramIDs []string
	TryUnknownDex    bool
	AggregateTrades  bool
	ThrowError       bool

	// Concurrency bounds how many transactions a block parse may process
	// in parallel (spec §5: "MAY parse independent transactions
	// concurrently... must preserve per-block output order"). <= 1 means
	// sequential.
	Concurrency int
}

func formatIdx(outer, inner int) string {
	return strconv.Itoa(outer) + "-" + strconv.Itoa(inner)
}
