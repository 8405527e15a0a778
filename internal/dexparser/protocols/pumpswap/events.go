package pumpswap

import (
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/binreader"
)

const defaultCoinCreator = "11111111111111111111111111111111"

// BuySellEvent is the decoded Pumpswap Buy/Sell payload (spec §4.6). Field
// names follow the Buy direction; for Sell, BaseAmount is base_amount_in,
// QuoteAmount is quote_amount_out, and QuoteAmountAdjusted is
// quote_amount_out_without_lp_fee.
type BuySellEvent struct {
	Timestamp                 int64
	BaseAmount                uint64
	QuoteAmountLimit          uint64
	UserBaseTokenReserves     uint64
	UserQuoteTokenReserves    uint64
	PoolBaseTokenReserves     uint64
	PoolQuoteTokenReserves    uint64
	QuoteAmount               uint64
	LPFeeBasisPoints          uint64
	LPFee                     uint64
	ProtocolFeeBasisPoints    uint64
	ProtocolFee               uint64
	QuoteAmountAdjusted       uint64
	UserQuoteAmount           uint64
	Pool                      string
	User                      string
	UserBaseTokenAccount      string
	UserQuoteTokenAccount     string
	ProtocolFeeRecipient      string
	ProtocolFeeRecipientAcct  string
	HasCreator                bool
	CoinCreator               string
	CoinCreatorFeeBasisPoints uint64
	CoinCreatorFee            uint64
}

func decodeBuySellEvent(payload []byte) (BuySellEvent, error) {
	r := binreader.New(payload)
	var ev BuySellEvent
	var err error

	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}

	u64Fields := []*uint64{
		&ev.BaseAmount, &ev.QuoteAmountLimit, &ev.UserBaseTokenReserves, &ev.UserQuoteTokenReserves,
		&ev.PoolBaseTokenReserves, &ev.PoolQuoteTokenReserves, &ev.QuoteAmount, &ev.LPFeeBasisPoints,
		&ev.LPFee, &ev.ProtocolFeeBasisPoints, &ev.ProtocolFee, &ev.QuoteAmountAdjusted, &ev.UserQuoteAmount,
	}
	for _, f := range u64Fields {
		if *f, err = r.ReadU64(); err != nil {
			return ev, err
		}
	}

	pubkeyFields := []*string{
		&ev.Pool, &ev.User, &ev.UserBaseTokenAccount, &ev.UserQuoteTokenAccount,
		&ev.ProtocolFeeRecipient, &ev.ProtocolFeeRecipientAcct,
	}
	for _, f := range pubkeyFields {
		if *f, err = r.ReadPubkey(); err != nil {
			return ev, err
		}
	}

	ev.CoinCreator = defaultCoinCreator
	if r.Remaining() == 0 {
		return ev, nil
	}
	ev.HasCreator = true
	if ev.CoinCreator, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.CoinCreatorFeeBasisPoints, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.CoinCreatorFee, err = r.ReadU64(); err != nil {
		return ev, err
	}
	return ev, nil
}

// DecodeBuyEvent decodes a Pumpswap Buy event.
func DecodeBuyEvent(payload []byte) (BuySellEvent, error) { return decodeBuySellEvent(payload) }

// DecodeSellEvent decodes a Pumpswap Sell event.
func DecodeSellEvent(payload []byte) (BuySellEvent, error) { return decodeBuySellEvent(payload) }

// CreatePoolEvent is the decoded Pumpswap pool-creation payload.
type CreatePoolEvent struct {
	Index                 uint16
	Creator               string
	BaseMint              string
	QuoteMint             string
	BaseMintDecimals      uint8
	QuoteMintDecimals     uint8
	BaseAmountIn          uint64
	QuoteAmountIn         uint64
	PoolBaseAmount        uint64
	PoolQuoteAmount       uint64
	MinimumLiquidity      uint64
	InitialLiquidity      uint64
	LPTokenAmountOut      uint64
	PoolBump              uint8
	Pool                  string
	LPMint                string
	UserBaseTokenAccount  string
	UserQuoteTokenAccount string
}

// DecodeCreatePoolEvent decodes the Pumpswap CreatePool layout (spec §4.6).
func DecodeCreatePoolEvent(payload []byte) (CreatePoolEvent, error) {
	r := binreader.New(payload)
	var ev CreatePoolEvent
	var err error

	if ev.Index, err = r.ReadU16(); err != nil {
		return ev, err
	}
	if ev.Creator, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.BaseMint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.QuoteMint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.BaseMintDecimals, err = r.ReadU8(); err != nil {
		return ev, err
	}
	if ev.QuoteMintDecimals, err = r.ReadU8(); err != nil {
		return ev, err
	}

	u64Fields := []*uint64{
		&ev.BaseAmountIn, &ev.QuoteAmountIn, &ev.PoolBaseAmount, &ev.PoolQuoteAmount,
		&ev.MinimumLiquidity, &ev.InitialLiquidity, &ev.LPTokenAmountOut,
	}
	for _, f := range u64Fields {
		if *f, err = r.ReadU64(); err != nil {
			return ev, err
		}
	}

	if ev.PoolBump, err = r.ReadU8(); err != nil {
		return ev, err
	}
	if ev.Pool, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.LPMint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.UserBaseTokenAccount, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.UserQuoteTokenAccount, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	return ev, nil
}

// LiquidityEvent is the decoded Pumpswap AddLiquidity/RemoveLiquidity
// payload: timestamp, 11 u64 fields, then 5 pubkeys ending in
// user_pool_token_account (spec §4.6).
type LiquidityEvent struct {
	Timestamp              int64
	BaseAmount             uint64
	QuoteAmount            uint64
	LPAmount               uint64
	PoolBaseAmount         uint64
	PoolQuoteAmount        uint64
	PoolLPSupply           uint64
	MinOrMaxLPAmount       uint64
	UserBaseTokenReserves  uint64
	UserQuoteTokenReserves uint64
	UserPoolTokenReserves  uint64
	LPMintSupply           uint64
	Pool                   string
	User                   string
	UserBaseTokenAccount   string
	UserQuoteTokenAccount  string
	UserPoolTokenAccount   string
}

func decodeLiquidityEvent(payload []byte) (LiquidityEvent, error) {
	r := binreader.New(payload)
	var ev LiquidityEvent
	var err error

	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}

	u64Fields := []*uint64{
		&ev.BaseAmount, &ev.QuoteAmount, &ev.LPAmount, &ev.PoolBaseAmount, &ev.PoolQuoteAmount,
		&ev.PoolLPSupply, &ev.MinOrMaxLPAmount, &ev.UserBaseTokenReserves, &ev.UserQuoteTokenReserves,
		&ev.UserPoolTokenReserves, &ev.LPMintSupply,
	}
	for _, f := range u64Fields {
		if *f, err = r.ReadU64(); err != nil {
			return ev, err
		}
	}

	pubkeyFields := []*string{&ev.Pool, &ev.User, &ev.UserBaseTokenAccount, &ev.UserQuoteTokenAccount, &ev.UserPoolTokenAccount}
	for _, f := range pubkeyFields {
		if *f, err = r.ReadPubkey(); err != nil {
			return ev, err
		}
	}
	return ev, nil
}

// DecodeAddLiquidityEvent decodes a Pumpswap AddLiquidity event.
func DecodeAddLiquidityEvent(payload []byte) (LiquidityEvent, error) { return decodeLiquidityEvent(payload) }

// DecodeRemoveLiquidityEvent decodes a Pumpswap RemoveLiquidity event.
func DecodeRemoveLiquidityEvent(payload []byte) (LiquidityEvent, error) { return decodeLiquidityEvent(payload) }
